package labapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/ports"
)

var (
	_ ports.LabAPI  = (*Client)(nil)
	_ ports.AuthAPI = (*Client)(nil)
)

func (c *Client) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	var out []domain.Patient
	if err := c.do(ctx, http.MethodGet, "/patients", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPatient(ctx context.Context, id string) (*domain.Patient, error) {
	var out domain.Patient
	if err := c.do(ctx, http.MethodGet, "/patients/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePatient(ctx context.Context, in ports.CreatePatientInput) (*domain.Patient, error) {
	var out domain.Patient
	if err := c.do(ctx, http.MethodPost, "/patients", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTests(ctx context.Context) ([]domain.LabTest, error) {
	var out []domain.LabTest
	if err := c.do(ctx, http.MethodGet, "/tests", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	var out []domain.Doctor
	if err := c.do(ctx, http.MethodGet, "/doctors", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListBills(ctx context.Context) ([]domain.Bill, error) {
	var out []domain.Bill
	if err := c.do(ctx, http.MethodGet, "/bills", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBill(ctx context.Context, in ports.CreateBillInput) (*domain.Bill, error) {
	var out domain.Bill
	if err := c.do(ctx, http.MethodPost, "/bills", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RecordPayment(ctx context.Context, billID string, in ports.PaymentInput) (*domain.Bill, error) {
	var out domain.Bill
	path := "/bills/" + url.PathEscape(billID) + "/payments"
	if err := c.do(ctx, http.MethodPost, path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPendingOrders(ctx context.Context) ([]domain.PendingOrder, error) {
	var out []domain.PendingOrder
	if err := c.do(ctx, http.MethodGet, "/orders/pending", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type assignTestsBody struct {
	TestIDs []string `json:"testIds"`
}

func (c *Client) AssignTests(ctx context.Context, orderID string, testIDs []string) (*domain.PendingOrder, error) {
	var out domain.PendingOrder
	path := "/orders/" + url.PathEscape(orderID) + "/tests"
	if err := c.do(ctx, http.MethodPost, path, nil, assignTestsBody{TestIDs: testIDs}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	var out []domain.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	var out []domain.Discount
	if err := c.do(ctx, http.MethodGet, "/discounts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDiscount(ctx context.Context, in ports.CreateDiscountInput) (*domain.Discount, error) {
	var out domain.Discount
	if err := c.do(ctx, http.MethodPost, "/discounts", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DashboardMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	var out domain.DashboardMetrics
	if err := c.do(ctx, http.MethodGet, "/dashboard/metrics", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Revenue(ctx context.Context, q ports.RevenueQuery) (*domain.RevenueReport, error) {
	query := url.Values{}
	if q.From != "" {
		query.Set("from", q.From)
	}
	if q.To != "" {
		query.Set("to", q.To)
	}

	var out domain.RevenueReport
	if err := c.do(ctx, http.MethodGet, "/reports/revenue", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
