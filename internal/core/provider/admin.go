package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/ports"
)

// AdminProvider serves the administrator screens: dashboard metrics,
// catalogue, expenses, revenue and discounts.
type AdminProvider struct {
	base

	expenses  *Collection[[]domain.Expense]
	discounts *Collection[[]domain.Discount]
	metrics   *Collection[*domain.DashboardMetrics]
}

func NewAdminProvider(api ports.LabAPI) *AdminProvider {
	p := &AdminProvider{
		base:      newBase(api),
		expenses:  NewCollection("expenses", api.ListExpenses),
		discounts: NewCollection("discounts", api.ListDiscounts),
		metrics:   NewCollection("dashboard_metrics", api.DashboardMetrics),
	}
	p.all = append(p.all, p.expenses, p.discounts, p.metrics)
	return p
}

func (p *AdminProvider) Role() domain.Role { return domain.RoleAdmin }

func (p *AdminProvider) Expenses(ctx context.Context) ([]domain.Expense, error) {
	return p.expenses.Get(ctx)
}

func (p *AdminProvider) Discounts(ctx context.Context) ([]domain.Discount, error) {
	return p.discounts.Get(ctx)
}

func (p *AdminProvider) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	return p.metrics.Get(ctx)
}

// Revenue is not cached: every report is parameterised by its date range.
func (p *AdminProvider) Revenue(ctx context.Context, q ports.RevenueQuery) (*domain.RevenueReport, error) {
	return p.api.Revenue(ctx, q)
}

// CreateDiscount adds a discount scheme; the percentage must be in (0, 100].
func (p *AdminProvider) CreateDiscount(ctx context.Context, in ports.CreateDiscountInput) (*domain.Discount, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: discount name is required", domain.ErrInvalidInput)
	}
	if in.Percent <= 0 || in.Percent > 100 {
		return nil, fmt.Errorf("%w: percent must be greater than 0 and at most 100", domain.ErrInvalidInput)
	}

	d, err := p.api.CreateDiscount(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create discount: %w", err)
	}
	p.discounts.Invalidate()
	return d, nil
}

// AddPatient also invalidates the dashboard counters.
func (p *AdminProvider) AddPatient(ctx context.Context, in ports.CreatePatientInput) (*domain.Patient, error) {
	pt, err := p.base.AddPatient(ctx, in)
	if err != nil {
		return nil, err
	}
	p.metrics.Invalidate()
	return pt, nil
}
