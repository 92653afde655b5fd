package ports

import (
	"context"

	"github.com/diaglab/labdesk/internal/core/domain"
)

// LoginRequest is the body of the remote login call.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the remote login payload. Role is kept as delivered by
// the backend; a response without Token is a failed login.
type LoginResponse struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	LabID   string `json:"labId"`
	LabName string `json:"labName"`
	Message string `json:"message"`
}

// AuthAPI is the authentication surface of the remote lab API.
type AuthAPI interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

type CreatePatientInput struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	DoctorID string `json:"doctorId,omitempty"`
}

type CreateBillInput struct {
	PatientID  string   `json:"patientId"`
	TestIDs    []string `json:"testIds"`
	DiscountID string   `json:"discountId,omitempty"`
}

type PaymentInput struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

type CreateDiscountInput struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// RevenueQuery bounds a revenue report; dates are YYYY-MM-DD, empty means
// the server default.
type RevenueQuery struct {
	From string
	To   string
}

// LabAPI is the authenticated domain surface of the remote lab API. Every
// call carries the current bearer token.
type LabAPI interface {
	ListPatients(ctx context.Context) ([]domain.Patient, error)
	GetPatient(ctx context.Context, id string) (*domain.Patient, error)
	CreatePatient(ctx context.Context, in CreatePatientInput) (*domain.Patient, error)

	ListTests(ctx context.Context) ([]domain.LabTest, error)
	ListDoctors(ctx context.Context) ([]domain.Doctor, error)

	ListBills(ctx context.Context) ([]domain.Bill, error)
	CreateBill(ctx context.Context, in CreateBillInput) (*domain.Bill, error)
	RecordPayment(ctx context.Context, billID string, in PaymentInput) (*domain.Bill, error)

	ListPendingOrders(ctx context.Context) ([]domain.PendingOrder, error)
	AssignTests(ctx context.Context, orderID string, testIDs []string) (*domain.PendingOrder, error)

	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	ListDiscounts(ctx context.Context) ([]domain.Discount, error)
	CreateDiscount(ctx context.Context, in CreateDiscountInput) (*domain.Discount, error)

	DashboardMetrics(ctx context.Context) (*domain.DashboardMetrics, error)
	Revenue(ctx context.Context, q RevenueQuery) (*domain.RevenueReport, error)
}
