package sandbox

import (
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diaglab/labdesk/internal/core/domain"
)

const dateLayout = "2006-01-02"

// Store is the sandbox's in-memory lab database.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	patients  []domain.Patient
	tests     []domain.LabTest
	doctors   []domain.Doctor
	bills     []domain.Bill
	orders    []domain.PendingOrder
	expenses  []domain.Expense
	discounts []domain.Discount
}

// NewStore returns a store seeded with a small catalogue and a few records.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{now: now}
	s.seed()
	return s
}

func (s *Store) seed() {
	t := s.now().UTC()

	s.tests = []domain.LabTest{
		{ID: "t-cbc", Code: "CBC", Name: "Complete Blood Count", Category: "Haematology", Price: 350},
		{ID: "t-lft", Code: "LFT", Name: "Liver Function Test", Category: "Biochemistry", Price: 800},
		{ID: "t-tsh", Code: "TSH", Name: "Thyroid Stimulating Hormone", Category: "Endocrinology", Price: 450},
		{ID: "t-hba1c", Code: "HBA1C", Name: "Glycated Haemoglobin", Category: "Biochemistry", Price: 600},
	}
	s.doctors = []domain.Doctor{
		{ID: "d-iyer", Name: "Dr. Meera Iyer", Specialization: "General Medicine", CommissionPct: 10},
		{ID: "d-khan", Name: "Dr. Arif Khan", Specialization: "Endocrinology", CommissionPct: 12},
	}
	s.discounts = []domain.Discount{
		{ID: "dc-senior", Name: "Senior Citizen", Percent: 15, Active: true},
		{ID: "dc-staff", Name: "Staff", Percent: 25, Active: true},
	}
	s.patients = []domain.Patient{
		{ID: "p-1001", Name: "Asha Rao", Age: 34, Gender: "female", Phone: "9000000001", DoctorID: "d-iyer", CreatedAt: t.AddDate(0, 0, -3)},
		{ID: "p-1002", Name: "Vikram Shah", Age: 67, Gender: "male", Phone: "9000000002", DoctorID: "d-khan", CreatedAt: t.AddDate(0, 0, -1)},
	}
	s.expenses = []domain.Expense{
		{ID: "e-1", Category: "Reagents", Amount: 4200, Note: "Haematology reagents", SpentAt: t.AddDate(0, 0, -2)},
		{ID: "e-2", Category: "Utilities", Amount: 1800, SpentAt: t.AddDate(0, 0, -1)},
	}

	paid := s.buildBill("b-1", s.patients[0], []string{"t-cbc", "t-tsh"}, "", t.AddDate(0, 0, -3))
	paid.Paid = paid.Total
	paid.Status = domain.BillPaid
	paid.ReportReady = true
	paid.Payments = []domain.Payment{{ID: "pay-1", Amount: paid.Total, Method: "cash", PaidAt: paid.CreatedAt}}

	open := s.buildBill("b-2", s.patients[1], []string{"t-hba1c", "t-lft"}, "dc-senior", t.AddDate(0, 0, -1))

	s.bills = []domain.Bill{paid, open}
	s.orders = []domain.PendingOrder{{
		ID: "o-1", BillID: open.ID, PatientID: open.PatientID, PatientName: open.PatientName,
		TestIDs: []string{"t-hba1c", "t-lft"}, Status: domain.OrderPending, CreatedAt: open.CreatedAt,
	}}
}

func (s *Store) Patients() []domain.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.patients)
}

func (s *Store) Patient(id string) (domain.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Patient{}, fmt.Errorf("patient %s: %w", id, domain.ErrNotFound)
}

func (s *Store) AddPatient(p domain.Patient) domain.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = s.now().UTC()
	s.patients = append(s.patients, p)
	return p
}

func (s *Store) Tests() []domain.LabTest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tests)
}

func (s *Store) Doctors() []domain.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.doctors)
}

func (s *Store) Bills() []domain.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bills)
}

// CreateBill prices the tests, applies the discount and opens a pending
// order for sample processing.
func (s *Store) CreateBill(patientID string, testIDs []string, discountID string) (domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.patients, func(p domain.Patient) bool { return p.ID == patientID })
	if idx < 0 {
		return domain.Bill{}, fmt.Errorf("patient %s: %w", patientID, domain.ErrNotFound)
	}
	for _, id := range testIDs {
		if s.test(id) == nil {
			return domain.Bill{}, fmt.Errorf("%w: unknown test %s", domain.ErrInvalidInput, id)
		}
	}
	if discountID != "" && s.discount(discountID) == nil {
		return domain.Bill{}, fmt.Errorf("%w: unknown discount %s", domain.ErrInvalidInput, discountID)
	}

	now := s.now().UTC()
	bill := s.buildBill(uuid.NewString(), s.patients[idx], testIDs, discountID, now)
	s.bills = append(s.bills, bill)
	s.orders = append(s.orders, domain.PendingOrder{
		ID:          uuid.NewString(),
		BillID:      bill.ID,
		PatientID:   bill.PatientID,
		PatientName: bill.PatientName,
		TestIDs:     slices.Clone(testIDs),
		Status:      domain.OrderPending,
		CreatedAt:   now,
	})
	return bill, nil
}

func (s *Store) buildBill(id string, p domain.Patient, testIDs []string, discountID string, at time.Time) domain.Bill {
	b := domain.Bill{
		ID:          id,
		PatientID:   p.ID,
		PatientName: p.Name,
		DiscountID:  discountID,
		Status:      domain.BillUnpaid,
		CreatedAt:   at,
	}
	for _, tid := range testIDs {
		t := s.test(tid)
		b.Items = append(b.Items, domain.BillItem{TestID: t.ID, Name: t.Name, Price: t.Price})
		b.Subtotal += t.Price
	}
	if d := s.discount(discountID); d != nil {
		b.Discount = round2(b.Subtotal * d.Percent / 100)
	}
	b.Total = round2(b.Subtotal - b.Discount)
	return b
}

// RecordPayment applies a payment and moves the bill to partial or paid.
func (s *Store) RecordPayment(billID string, amount float64, method string) (domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.bills, func(b domain.Bill) bool { return b.ID == billID })
	if idx < 0 {
		return domain.Bill{}, fmt.Errorf("bill %s: %w", billID, domain.ErrNotFound)
	}
	b := &s.bills[idx]

	if amount > b.Due()+0.005 {
		return domain.Bill{}, fmt.Errorf("%w: amount %.2f exceeds the %.2f due", domain.ErrInvalidInput, amount, b.Due())
	}
	next := domain.BillPartial
	if b.Paid+amount >= b.Total-0.005 {
		next = domain.BillPaid
	}
	if !b.Status.CanTransitionTo(next) {
		return domain.Bill{}, fmt.Errorf("%w: bill is %s", domain.ErrInvalidInput, b.Status)
	}

	b.Paid = round2(b.Paid + amount)
	b.Status = next
	b.Payments = append(b.Payments, domain.Payment{
		ID:     uuid.NewString(),
		Amount: amount,
		Method: method,
		PaidAt: s.now().UTC(),
	})
	return *b, nil
}

// PendingOrders returns orders whose samples are not yet completed.
func (s *Store) PendingOrders() []domain.PendingOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PendingOrder, 0, len(s.orders))
	for _, o := range s.orders {
		if o.Status != domain.OrderCompleted {
			out = append(out, o)
		}
	}
	return out
}

// AssignTests replaces the tests of a pending order and starts processing.
func (s *Store) AssignTests(orderID string, testIDs []string) (domain.PendingOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.orders, func(o domain.PendingOrder) bool { return o.ID == orderID })
	if idx < 0 {
		return domain.PendingOrder{}, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	for _, id := range testIDs {
		if s.test(id) == nil {
			return domain.PendingOrder{}, fmt.Errorf("%w: unknown test %s", domain.ErrInvalidInput, id)
		}
	}

	o := &s.orders[idx]
	if o.Status == domain.OrderCompleted {
		return domain.PendingOrder{}, fmt.Errorf("%w: order already completed", domain.ErrInvalidInput)
	}
	o.TestIDs = slices.Clone(testIDs)
	o.Status = domain.OrderInProgress
	return *o, nil
}

func (s *Store) Expenses() []domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.expenses)
}

func (s *Store) Discounts() []domain.Discount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.discounts)
}

func (s *Store) AddDiscount(name string, percent float64) domain.Discount {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := domain.Discount{ID: uuid.NewString(), Name: name, Percent: percent, Active: true}
	s.discounts = append(s.discounts, d)
	return d
}

// Metrics summarises today's and this month's activity.
func (s *Store) Metrics() domain.DashboardMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now().UTC()
	today := now.Format(dateLayout)
	month := now.Format("2006-01")

	m := domain.DashboardMetrics{TotalPatients: len(s.patients)}
	for _, p := range s.patients {
		if p.CreatedAt.Format(dateLayout) == today {
			m.PatientsToday++
		}
	}
	for _, o := range s.orders {
		if o.Status != domain.OrderCompleted {
			m.PendingOrders++
		}
	}
	for _, b := range s.bills {
		if b.Status == domain.BillCancelled {
			continue
		}
		m.OutstandingDue += b.Due()
		for _, p := range b.Payments {
			if p.PaidAt.Format(dateLayout) == today {
				m.RevenueToday += p.Amount
			}
			if p.PaidAt.Format("2006-01") == month {
				m.RevenueMonth += p.Amount
			}
		}
	}
	m.OutstandingDue = round2(m.OutstandingDue)
	return m
}

// Revenue aggregates payments and expenses per day in [from, to]. Empty
// bounds default to the last 30 days.
func (s *Store) Revenue(from, to string) (domain.RevenueReport, error) {
	end := s.now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -29)

	var err error
	if to != "" {
		if end, err = time.Parse(dateLayout, to); err != nil {
			return domain.RevenueReport{}, fmt.Errorf("%w: to must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	if from != "" {
		if start, err = time.Parse(dateLayout, from); err != nil {
			return domain.RevenueReport{}, fmt.Errorf("%w: from must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	if start.After(end) {
		return domain.RevenueReport{}, fmt.Errorf("%w: from is after to", domain.ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	byDay := map[string]*domain.RevenuePoint{}
	report := domain.RevenueReport{From: start.Format(dateLayout), To: end.Format(dateLayout)}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		report.Points = append(report.Points, domain.RevenuePoint{Date: key})
	}
	for i := range report.Points {
		byDay[report.Points[i].Date] = &report.Points[i]
	}

	for _, b := range s.bills {
		for _, p := range b.Payments {
			if pt, ok := byDay[p.PaidAt.Format(dateLayout)]; ok {
				pt.Revenue += p.Amount
				report.Total += p.Amount
			}
		}
	}
	for _, e := range s.expenses {
		if pt, ok := byDay[e.SpentAt.Format(dateLayout)]; ok {
			pt.Expenses += e.Amount
		}
	}
	return report, nil
}

func (s *Store) test(id string) *domain.LabTest {
	for i := range s.tests {
		if s.tests[i].ID == id {
			return &s.tests[i]
		}
	}
	return nil
}

func (s *Store) discount(id string) *domain.Discount {
	if id == "" {
		return nil
	}
	for i := range s.discounts {
		if s.discounts[i].ID == id {
			return &s.discounts[i]
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
