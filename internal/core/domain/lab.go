package domain

import "time"

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillUnpaid    BillStatus = "unpaid"
	BillPartial   BillStatus = "partial"
	BillPaid      BillStatus = "paid"
	BillCancelled BillStatus = "cancelled"
)

var billTransitions = map[BillStatus][]BillStatus{
	BillUnpaid:  {BillPartial, BillPaid, BillCancelled},
	BillPartial: {BillPartial, BillPaid},
}

// CanTransitionTo reports whether a bill may move from s to next.
func (s BillStatus) CanTransitionTo(next BillStatus) bool {
	for _, allowed := range billTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderStatus is the processing state of a test order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
)

type Patient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    string    `json:"gender"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	DoctorID  string    `json:"doctorId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// LabTest is an orderable diagnostic test from the lab catalogue.
type LabTest struct {
	ID       string  `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

type Doctor struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Phone          string  `json:"phone,omitempty"`
	CommissionPct  float64 `json:"commissionPct"`
}

type BillItem struct {
	TestID string  `json:"testId"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
}

type Payment struct {
	ID     string    `json:"id"`
	Amount float64   `json:"amount"`
	Method string    `json:"method"`
	PaidAt time.Time `json:"paidAt"`
}

type Bill struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patientId"`
	PatientName string     `json:"patientName"`
	Items       []BillItem `json:"items"`
	DiscountID  string     `json:"discountId,omitempty"`
	Subtotal    float64    `json:"subtotal"`
	Discount    float64    `json:"discount"`
	Total       float64    `json:"total"`
	Paid        float64    `json:"paid"`
	Status      BillStatus `json:"status"`
	Payments    []Payment  `json:"payments,omitempty"`
	ReportReady bool       `json:"reportReady"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Due returns the outstanding amount on the bill.
func (b Bill) Due() float64 {
	if d := b.Total - b.Paid; d > 0 {
		return d
	}
	return 0
}

// PendingOrder is a bill whose tests still await sample processing.
type PendingOrder struct {
	ID          string      `json:"id"`
	BillID      string      `json:"billId"`
	PatientID   string      `json:"patientId"`
	PatientName string      `json:"patientName"`
	TestIDs     []string    `json:"testIds"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type Expense struct {
	ID       string    `json:"id"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Note     string    `json:"note,omitempty"`
	SpentAt  time.Time `json:"spentAt"`
}

type Discount struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Active  bool    `json:"active"`
}

// DashboardMetrics is the admin dashboard summary.
type DashboardMetrics struct {
	PatientsToday  int     `json:"patientsToday"`
	TotalPatients  int     `json:"totalPatients"`
	PendingOrders  int     `json:"pendingOrders"`
	RevenueToday   float64 `json:"revenueToday"`
	RevenueMonth   float64 `json:"revenueMonth"`
	OutstandingDue float64 `json:"outstandingDue"`
}

type RevenuePoint struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

type RevenueReport struct {
	From   string         `json:"from"`
	To     string         `json:"to"`
	Total  float64        `json:"total"`
	Points []RevenuePoint `json:"points"`
}
