package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/ports"
)

var paymentMethods = map[string]struct{}{"cash": {}, "card": {}, "upi": {}, "insurance": {}}

// ReceptionProvider serves the operator screens: billing, payments, pending
// orders and test assignment.
type ReceptionProvider struct {
	base

	pending *Collection[[]domain.PendingOrder]
}

func NewReceptionProvider(api ports.LabAPI) *ReceptionProvider {
	p := &ReceptionProvider{
		base:    newBase(api),
		pending: NewCollection("pending_orders", api.ListPendingOrders),
	}
	p.all = append(p.all, p.pending)
	return p
}

func (p *ReceptionProvider) Role() domain.Role { return domain.RoleOperator }

func (p *ReceptionProvider) PendingOrders(ctx context.Context) ([]domain.PendingOrder, error) {
	return p.pending.Get(ctx)
}

// Reports returns the bills whose diagnostic report is ready to print.
func (p *ReceptionProvider) Reports(ctx context.Context) ([]domain.Bill, error) {
	bills, err := p.bills.Get(ctx)
	if err != nil {
		return nil, err
	}
	ready := make([]domain.Bill, 0, len(bills))
	for _, b := range bills {
		if b.ReportReady {
			ready = append(ready, b)
		}
	}
	return ready, nil
}

// CreateBill bills a patient for one or more tests.
func (p *ReceptionProvider) CreateBill(ctx context.Context, in ports.CreateBillInput) (*domain.Bill, error) {
	if strings.TrimSpace(in.PatientID) == "" {
		return nil, fmt.Errorf("%w: patient is required", domain.ErrInvalidInput)
	}
	if len(in.TestIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one test is required", domain.ErrInvalidInput)
	}

	b, err := p.api.CreateBill(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}
	p.bills.Invalidate()
	p.pending.Invalidate()
	return b, nil
}

// RecordPayment records a payment against a bill. The amount must be
// positive and no larger than the cached outstanding amount, when known.
func (p *ReceptionProvider) RecordPayment(ctx context.Context, billID string, in ports.PaymentInput) (*domain.Bill, error) {
	if billID == "" {
		return nil, fmt.Errorf("%w: bill is required", domain.ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", domain.ErrInvalidInput)
	}
	in.Method = strings.ToLower(strings.TrimSpace(in.Method))
	if _, ok := paymentMethods[in.Method]; !ok {
		return nil, fmt.Errorf("%w: unsupported payment method %q", domain.ErrInvalidInput, in.Method)
	}
	if bills, err := p.bills.Get(ctx); err == nil {
		for _, b := range bills {
			if b.ID == billID && in.Amount > b.Due() {
				return nil, fmt.Errorf("%w: amount exceeds the %.2f due", domain.ErrInvalidInput, b.Due())
			}
		}
	}

	b, err := p.api.RecordPayment(ctx, billID, in)
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	p.bills.Invalidate()
	return b, nil
}

// AssignTests attaches tests to a pending order.
func (p *ReceptionProvider) AssignTests(ctx context.Context, orderID string, testIDs []string) (*domain.PendingOrder, error) {
	if orderID == "" || len(testIDs) == 0 {
		return nil, fmt.Errorf("%w: order and tests are required", domain.ErrInvalidInput)
	}

	o, err := p.api.AssignTests(ctx, orderID, testIDs)
	if err != nil {
		return nil, fmt.Errorf("assign tests: %w", err)
	}
	p.pending.Invalidate()
	return o, nil
}
