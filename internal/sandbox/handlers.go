package sandbox

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/diaglab/labdesk/internal/core/domain"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	LabID   string `json:"labId"`
	LabName string `json:"labName"`
}

// loginResponse carries the identity fields flat next to the token.
type loginResponse struct {
	Token string `json:"token"`
	loginUser
}

const (
	labID   = "lab-001"
	labName = "DiagLab Central"
)

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	token, user, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, loginResponse{
		Token: token,
		loginUser: loginUser{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Role:    user.Role,
			LabID:   labID,
			LabName: labName,
		},
	}, "Login successful")
}

func (s *Server) logout(c echo.Context) error {
	jti, _ := c.Get("jti").(string)
	exp, _ := c.Get("exp").(time.Time)
	s.auth.Revoke(jti, exp)
	return ok(c, http.StatusOK, nil, "Logged out")
}

type createPatientRequest struct {
	Name     string `json:"name" validate:"required"`
	Age      int    `json:"age" validate:"gte=0,lte=150"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Address  string `json:"address"`
	DoctorID string `json:"doctorId"`
}

func (s *Server) listPatients(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.Patients(), "")
}

func (s *Server) getPatient(c echo.Context) error {
	p, err := s.store.Patient(c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, p, "")
}

func (s *Server) createPatient(c echo.Context) error {
	var req createPatientRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p := s.store.AddPatient(domain.Patient{
		Name:     req.Name,
		Age:      req.Age,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		DoctorID: req.DoctorID,
	})
	return ok(c, http.StatusCreated, p, "Patient registered")
}

func (s *Server) listTests(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.Tests(), "")
}

func (s *Server) listDoctors(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.Doctors(), "")
}

type createBillRequest struct {
	PatientID  string   `json:"patientId" validate:"required"`
	TestIDs    []string `json:"testIds" validate:"required,min=1,dive,required"`
	DiscountID string   `json:"discountId"`
}

func (s *Server) listBills(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.Bills(), "")
}

func (s *Server) createBill(c echo.Context) error {
	var req createBillRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	b, err := s.store.CreateBill(req.PatientID, req.TestIDs, req.DiscountID)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, b, "Bill created")
}

type paymentRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
	Method string  `json:"method" validate:"required,oneof=cash card upi insurance"`
}

func (s *Server) recordPayment(c echo.Context) error {
	var req paymentRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	b, err := s.store.RecordPayment(c.Param("id"), req.Amount, req.Method)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, b, "Payment recorded")
}

type assignTestsRequest struct {
	TestIDs []string `json:"testIds" validate:"required,min=1,dive,required"`
}

func (s *Server) listPendingOrders(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.PendingOrders(), "")
}

func (s *Server) assignTests(c echo.Context) error {
	var req assignTestsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	o, err := s.store.AssignTests(c.Param("id"), req.TestIDs)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, o, "Tests assigned")
}

type createDiscountRequest struct {
	Name    string  `json:"name" validate:"required"`
	Percent float64 `json:"percent" validate:"gt=0,lte=100"`
}

func (s *Server) listExpenses(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.Expenses(), "")
}

func (s *Server) listDiscounts(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.Discounts(), "")
}

func (s *Server) createDiscount(c echo.Context) error {
	var req createDiscountRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	return ok(c, http.StatusCreated, s.store.AddDiscount(req.Name, req.Percent), "Discount created")
}

func (s *Server) dashboardMetrics(c echo.Context) error {
	return ok(c, http.StatusOK, s.store.Metrics(), "")
}

func (s *Server) revenue(c echo.Context) error {
	report, err := s.store.Revenue(c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, report, "")
}
