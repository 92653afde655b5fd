package provider

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/ports"
)

// stubLabAPI serves fixed data and counts calls per endpoint.
type stubLabAPI struct {
	mu    sync.Mutex
	calls map[string]int

	patients  []domain.Patient
	bills     []domain.Bill
	listErr   error
	block     chan struct{}
	inflights atomic.Int32
}

func newStubLabAPI() *stubLabAPI {
	return &stubLabAPI{
		calls: map[string]int{},
		patients: []domain.Patient{
			{ID: "p-1", Name: "Asha Rao", Age: 34, Phone: "9000000001"},
		},
		bills: []domain.Bill{
			{ID: "b-1", PatientID: "p-1", Total: 500, Paid: 200, Status: domain.BillPartial},
			{ID: "b-2", PatientID: "p-1", Total: 300, Paid: 300, Status: domain.BillPaid, ReportReady: true},
		},
	}
}

func (s *stubLabAPI) hit(name string) {
	s.mu.Lock()
	s.calls[name]++
	s.mu.Unlock()
}

func (s *stubLabAPI) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *stubLabAPI) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	s.hit("patients")
	if s.block != nil {
		s.inflights.Add(1)
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Patient(nil), s.patients...), nil
}

func (s *stubLabAPI) GetPatient(_ context.Context, id string) (*domain.Patient, error) {
	s.hit("patient")
	return &domain.Patient{ID: id, Name: "Remote"}, nil
}

func (s *stubLabAPI) CreatePatient(_ context.Context, in ports.CreatePatientInput) (*domain.Patient, error) {
	s.hit("create_patient")
	p := domain.Patient{ID: "p-new", Name: in.Name, Age: in.Age, Phone: in.Phone}
	s.mu.Lock()
	s.patients = append(s.patients, p)
	s.mu.Unlock()
	return &p, nil
}

func (s *stubLabAPI) ListTests(context.Context) ([]domain.LabTest, error) {
	s.hit("tests")
	return []domain.LabTest{{ID: "t-1", Name: "CBC", Price: 250}}, nil
}

func (s *stubLabAPI) ListDoctors(context.Context) ([]domain.Doctor, error) {
	s.hit("doctors")
	return []domain.Doctor{{ID: "d-1", Name: "Dr. Iyer"}}, nil
}

func (s *stubLabAPI) ListBills(context.Context) ([]domain.Bill, error) {
	s.hit("bills")
	return s.bills, nil
}

func (s *stubLabAPI) CreateBill(_ context.Context, in ports.CreateBillInput) (*domain.Bill, error) {
	s.hit("create_bill")
	return &domain.Bill{ID: "b-new", PatientID: in.PatientID, Status: domain.BillUnpaid}, nil
}

func (s *stubLabAPI) RecordPayment(_ context.Context, billID string, in ports.PaymentInput) (*domain.Bill, error) {
	s.hit("payment")
	return &domain.Bill{ID: billID, Paid: in.Amount}, nil
}

func (s *stubLabAPI) ListPendingOrders(context.Context) ([]domain.PendingOrder, error) {
	s.hit("pending_orders")
	return []domain.PendingOrder{{ID: "o-1", BillID: "b-1", Status: domain.OrderPending}}, nil
}

func (s *stubLabAPI) AssignTests(_ context.Context, orderID string, testIDs []string) (*domain.PendingOrder, error) {
	s.hit("assign_tests")
	return &domain.PendingOrder{ID: orderID, TestIDs: testIDs}, nil
}

func (s *stubLabAPI) ListExpenses(context.Context) ([]domain.Expense, error) {
	s.hit("expenses")
	return []domain.Expense{{ID: "e-1", Amount: 1200}}, nil
}

func (s *stubLabAPI) ListDiscounts(context.Context) ([]domain.Discount, error) {
	s.hit("discounts")
	return []domain.Discount{{ID: "dc-1", Name: "Senior", Percent: 10}}, nil
}

func (s *stubLabAPI) CreateDiscount(_ context.Context, in ports.CreateDiscountInput) (*domain.Discount, error) {
	s.hit("create_discount")
	return &domain.Discount{ID: "dc-new", Name: in.Name, Percent: in.Percent, Active: true}, nil
}

func (s *stubLabAPI) DashboardMetrics(context.Context) (*domain.DashboardMetrics, error) {
	s.hit("metrics")
	return &domain.DashboardMetrics{TotalPatients: 1}, nil
}

func (s *stubLabAPI) Revenue(_ context.Context, q ports.RevenueQuery) (*domain.RevenueReport, error) {
	s.hit("revenue")
	return &domain.RevenueReport{From: q.From, To: q.To}, nil
}
