package handler

import (
	"github.com/diaglab/labdesk/internal/core/domain"
)

type addPatientRequest struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Age      int    `json:"age" form:"age" validate:"gte=0,lte=150"`
	Gender   string `json:"gender" form:"gender" validate:"omitempty,oneof=male female other"`
	Phone    string `json:"phone" form:"phone" validate:"required"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	Address  string `json:"address" form:"address"`
	DoctorID string `json:"doctorId" form:"doctorId"`
}

type createBillRequest struct {
	PatientID  string   `json:"patientId" form:"patientId" validate:"required"`
	TestIDs    []string `json:"testIds" form:"testIds" validate:"required,min=1,dive,required"`
	DiscountID string   `json:"discountId" form:"discountId"`
}

type paymentRequest struct {
	Amount float64 `json:"amount" form:"amount" validate:"gt=0"`
	Method string  `json:"method" form:"method" validate:"required"`
}

type assignTestsRequest struct {
	OrderID string   `json:"orderId" form:"orderId" validate:"required"`
	TestIDs []string `json:"testIds" form:"testIds" validate:"required,min=1,dive,required"`
}

type createDiscountRequest struct {
	Name    string  `json:"name" form:"name" validate:"required"`
	Percent float64 `json:"percent" form:"percent" validate:"gt=0,lte=100"`
}

type revenueQuery struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// adminDashboard is the data block of the admin dashboard screen.
type adminDashboard struct {
	Metrics *domain.DashboardMetrics `json:"metrics"`
}

// deskDashboard summarises the front desk's day for either role.
type deskDashboard struct {
	Patients    int           `json:"patients"`
	UnpaidBills int           `json:"unpaidBills"`
	Outstanding float64       `json:"outstanding"`
	RecentBills []domain.Bill `json:"recentBills"`
}

type patientDetail struct {
	Patient *domain.Patient `json:"patient"`
	Bills   []domain.Bill   `json:"bills"`
}

type addPatientForm struct {
	Doctors []domain.Doctor `json:"doctors"`
}

type billingScreen struct {
	Bills []domain.Bill    `json:"bills"`
	Tests []domain.LabTest `json:"tests"`
}

type assignTestsScreen struct {
	Orders []domain.PendingOrder `json:"orders"`
	Tests  []domain.LabTest      `json:"tests"`
}

type settingsScreen struct {
	LabID      string `json:"labId"`
	LabName    string `json:"labName"`
	LabAPIURL  string `json:"labApiUrl"`
	Backend    string `json:"sessionBackend"`
	AuditTrail bool   `json:"auditTrail"`
}
