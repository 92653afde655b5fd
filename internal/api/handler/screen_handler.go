package handler

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/diaglab/labdesk/internal/api/screen"
	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/guard"
	"github.com/diaglab/labdesk/internal/core/ports"
	"github.com/diaglab/labdesk/internal/core/provider"
)

// Settings is the static portal configuration shown on the settings screen.
type Settings struct {
	LabAPIURL      string
	SessionBackend string
	AuditTrail     bool
}

// ScreenHandler renders the role-scoped screens from the data providers.
type ScreenHandler struct {
	providers ProviderSource
	settings  Settings
}

func NewScreenHandler(providers ProviderSource, settings Settings) *ScreenHandler {
	return &ScreenHandler{providers: providers, settings: settings}
}

func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	return nil
}

// Dashboard renders the admin dashboard metrics.
//
// @Summary  Admin dashboard
// @Tags     screens
// @Produce  json
// @Success  200  {object}  screen.Model
// @Router   /dashboard [get]
func (h *ScreenHandler) Dashboard(c echo.Context) error {
	id, p, err := ctxProvider[*provider.AdminProvider](c, h.providers)
	if err != nil {
		return err
	}
	m, err := p.Metrics(c.Request().Context())
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusOK, guard.ScreenDashboard, id, adminDashboard{Metrics: m})
}

// DeskDashboard renders the front desk summary for both roles.
//
// @Summary  Front desk dashboard
// @Tags     screens
// @Produce  json
// @Success  200  {object}  screen.Model
// @Router   /receptionist-dashboard [get]
func (h *ScreenHandler) DeskDashboard(c echo.Context) error {
	id, p, err := ctxProvider[provider.Provider](c, h.providers)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	patients, err := p.Patients(ctx)
	if err != nil {
		return err
	}
	bills, err := p.Bills(ctx)
	if err != nil {
		return err
	}

	data := deskDashboard{Patients: len(patients)}
	for _, b := range bills {
		if b.Status == domain.BillUnpaid || b.Status == domain.BillPartial {
			data.UnpaidBills++
			data.Outstanding += b.Due()
		}
	}
	recent := slices.Clone(bills)
	slices.SortFunc(recent, func(a, b domain.Bill) int { return b.CreatedAt.Compare(a.CreatedAt) })
	data.RecentBills = recent[:min(len(recent), 5)]

	return screen.Render(c, http.StatusOK, guard.ScreenReceptionistDashboard, id, data)
}

// Patients renders the patient registry, optionally filtered by ?q=.
//
// @Summary  Patient registry
// @Tags     screens
// @Produce  json
// @Param    q    query     string  false  "name or phone filter"
// @Success  200  {object}  screen.Model
// @Router   /patients [get]
func (h *ScreenHandler) Patients(c echo.Context) error {
	id, p, err := ctxProvider[provider.Provider](c, h.providers)
	if err != nil {
		return err
	}
	list, err := p.Patients(c.Request().Context())
	if err != nil {
		return err
	}
	if q := strings.ToLower(strings.TrimSpace(c.QueryParam("q"))); q != "" {
		list = slices.DeleteFunc(slices.Clone(list), func(pt domain.Patient) bool {
			return !strings.Contains(strings.ToLower(pt.Name), q) && !strings.Contains(pt.Phone, q)
		})
	}
	return screen.Render(c, http.StatusOK, guard.ScreenPatients, id, list)
}

// AddPatientForm renders the registration form data.
//
// @Summary  Add patient form
// @Tags     screens
// @Produce  json
// @Success  200  {object}  screen.Model
// @Router   /patients/add [get]
func (h *ScreenHandler) AddPatientForm(c echo.Context) error {
	id, p, err := ctxProvider[provider.Provider](c, h.providers)
	if err != nil {
		return err
	}
	doctors, err := p.Doctors(c.Request().Context())
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusOK, guard.ScreenAddPatient, id, addPatientForm{Doctors: doctors})
}

// AddPatient registers a patient and renders its detail screen.
//
// @Summary  Register patient
// @Tags     screens
// @Accept   json
// @Produce  json
// @Param    body  body      addPatientRequest  true  "Patient"
// @Success  201   {object}  screen.Model
// @Failure  422   {object}  map[string]string
// @Router   /patients/add [post]
func (h *ScreenHandler) AddPatient(c echo.Context) error {
	id, p, err := ctxProvider[provider.Provider](c, h.providers)
	if err != nil {
		return err
	}
	var req addPatientRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	pt, err := p.AddPatient(c.Request().Context(), ports.CreatePatientInput{
		Name:     req.Name,
		Age:      req.Age,
		Gender:   req.Gender,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		DoctorID: req.DoctorID,
	})
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusCreated, guard.ScreenPatientDetail, id, patientDetail{Patient: pt, Bills: []domain.Bill{}})
}

// PatientDetail renders one patient with their bills.
//
// @Summary  Patient detail
// @Tags     screens
// @Produce  json
// @Param    id   path      string  true  "Patient ID"
// @Success  200  {object}  screen.Model
// @Failure  404  {object}  map[string]string
// @Router   /patient/{id} [get]
func (h *ScreenHandler) PatientDetail(c echo.Context) error {
	id, p, err := ctxProvider[provider.Provider](c, h.providers)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	pt, err := p.Patient(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	bills, err := p.Bills(ctx)
	if err != nil {
		return err
	}
	own := make([]domain.Bill, 0)
	for _, b := range bills {
		if b.PatientID == pt.ID {
			own = append(own, b)
		}
	}
	return screen.Render(c, http.StatusOK, guard.ScreenPatientDetail, id, patientDetail{Patient: pt, Bills: own})
}

// Billing renders bills and the test catalogue for billing.
//
// @Summary  Billing
// @Tags     screens
// @Produce  json
// @Success  200  {object}  screen.Model
// @Router   /billing [get]
func (h *ScreenHandler) Billing(c echo.Context) error {
	id, p, err := ctxProvider[*provider.ReceptionProvider](c, h.providers)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	bills, err := p.Bills(ctx)
	if err != nil {
		return err
	}
	tests, err := p.Tests(ctx)
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusOK, guard.ScreenBilling, id, billingScreen{Bills: bills, Tests: tests})
}

// CreateBill bills a patient for tests.
//
// @Summary  Create bill
// @Tags     screens
// @Accept   json
// @Produce  json
// @Param    body  body      createBillRequest  true  "Bill"
// @Success  201   {object}  screen.Model
// @Router   /billing [post]
func (h *ScreenHandler) CreateBill(c echo.Context) error {
	id, p, err := ctxProvider[*provider.ReceptionProvider](c, h.providers)
	if err != nil {
		return err
	}
	var req createBillRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	b, err := p.CreateBill(c.Request().Context(), ports.CreateBillInput{
		PatientID:  req.PatientID,
		TestIDs:    req.TestIDs,
		DiscountID: req.DiscountID,
	})
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusCreated, guard.ScreenBilling, id, b)
}

// RecordPayment records a payment against a bill.
//
// @Summary  Record payment
// @Tags     screens
// @Accept   json
// @Produce  json
// @Param    id    path      string          true  "Bill ID"
// @Param    body  body      paymentRequest  true  "Payment"
// @Success  201   {object}  screen.Model
// @Router   /billing/{id}/payments [post]
func (h *ScreenHandler) RecordPayment(c echo.Context) error {
	id, p, err := ctxProvider[*provider.ReceptionProvider](c, h.providers)
	if err != nil {
		return err
	}
	var req paymentRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	b, err := p.RecordPayment(c.Request().Context(), c.Param("id"), ports.PaymentInput{Amount: req.Amount, Method: req.Method})
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusCreated, guard.ScreenBilling, id, b)
}

// Reports renders the bills whose reports are ready.
//
// @Summary  Reports
// @Tags     screens
// @Produce  json
// @Success  200  {object}  screen.Model
// @Router   /reports [get]
func (h *ScreenHandler) Reports(c echo.Context) error {
	id, p, err := ctxProvider[*provider.ReceptionProvider](c, h.providers)
	if err != nil {
		return err
	}
	ready, err := p.Reports(c.Request().Context())
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusOK, guard.ScreenReports, id, ready)
}

// PendingOrders renders orders awaiting processing.
//
// @Summary  Pending orders
// @Tags     screens
// @Produce  json
// @Success  200  {object}  screen.Model
// @Router   /pending-orders [get]
func (h *ScreenHandler) PendingOrders(c echo.Context) error {
	id, p, err := ctxProvider[*provider.ReceptionProvider](c, h.providers)
	if err != nil {
		return err
	}
	orders, err := p.PendingOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusOK, guard.ScreenPendingOrders, id, orders)
}

// AssignTestsForm renders pending orders with the test catalogue.
//
// @Summary  Assign tests form
// @Tags     screens
// @Produce  json
// @Success  200  {object}  screen.Model
// @Router   /assign-tests [get]
func (h *ScreenHandler) AssignTestsForm(c echo.Context) error {
	id, p, err := ctxProvider[*provider.ReceptionProvider](c, h.providers)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	orders, err := p.PendingOrders(ctx)
	if err != nil {
		return err
	}
	tests, err := p.Tests(ctx)
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusOK, guard.ScreenAssignTests, id, assignTestsScreen{Orders: orders, Tests: tests})
}

// AssignTests attaches tests to a pending order.
//
// @Summary  Assign tests
// @Tags     screens
// @Accept   json
// @Produce  json
// @Param    body  body      assignTestsRequest  true  "Assignment"
// @Success  201   {object}  screen.Model
// @Router   /assign-tests [post]
func (h *ScreenHandler) AssignTests(c echo.Context) error {
	id, p, err := ctxProvider[*provider.ReceptionProvider](c, h.providers)
	if err != nil {
		return err
	}
	var req assignTestsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	o, err := p.AssignTests(c.Request().Context(), req.OrderID, req.TestIDs)
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusCreated, guard.ScreenAssignTests, id, o)
}

// Expenses renders the expense ledger.
//
// @Summary  Expenses
// @Tags     screens
// @Produce  json
// @Success  200  {object}  screen.Model
// @Router   /expenses [get]
func (h *ScreenHandler) Expenses(c echo.Context) error {
	id, p, err := ctxProvider[*provider.AdminProvider](c, h.providers)
	if err != nil {
		return err
	}
	list, err := p.Expenses(c.Request().Context())
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusOK, guard.ScreenExpenses, id, list)
}

// Tests renders the test catalogue.
//
// @Summary  Test catalogue
// @Tags     screens
// @Produce  json
// @Success  200  {object}  screen.Model
// @Router   /tests [get]
func (h *ScreenHandler) Tests(c echo.Context) error {
	id, p, err := ctxProvider[*provider.AdminProvider](c, h.providers)
	if err != nil {
		return err
	}
	list, err := p.Tests(c.Request().Context())
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusOK, guard.ScreenTests, id, list)
}

// Doctors renders the referring doctors.
//
// @Summary  Doctors
// @Tags     screens
// @Produce  json
// @Success  200  {object}  screen.Model
// @Router   /doctors [get]
func (h *ScreenHandler) Doctors(c echo.Context) error {
	id, p, err := ctxProvider[*provider.AdminProvider](c, h.providers)
	if err != nil {
		return err
	}
	list, err := p.Doctors(c.Request().Context())
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusOK, guard.ScreenDoctors, id, list)
}

// Revenue renders the revenue report for ?from= and ?to= (YYYY-MM-DD).
//
// @Summary  Revenue report
// @Tags     screens
// @Produce  json
// @Param    from  query     string  false  "start date"
// @Param    to    query     string  false  "end date"
// @Success  200   {object}  screen.Model
// @Router   /revenue [get]
func (h *ScreenHandler) Revenue(c echo.Context) error {
	id, p, err := ctxProvider[*provider.AdminProvider](c, h.providers)
	if err != nil {
		return err
	}
	var q revenueQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}
	report, err := p.Revenue(c.Request().Context(), ports.RevenueQuery{From: q.From, To: q.To})
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusOK, guard.ScreenRevenue, id, report)
}

// Discounts renders the discount schemes.
//
// @Summary  Discounts
// @Tags     screens
// @Produce  json
// @Success  200  {object}  screen.Model
// @Router   /discounts [get]
func (h *ScreenHandler) Discounts(c echo.Context) error {
	id, p, err := ctxProvider[*provider.AdminProvider](c, h.providers)
	if err != nil {
		return err
	}
	list, err := p.Discounts(c.Request().Context())
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusOK, guard.ScreenDiscounts, id, list)
}

// CreateDiscount adds a discount scheme.
//
// @Summary  Create discount
// @Tags     screens
// @Accept   json
// @Produce  json
// @Param    body  body      createDiscountRequest  true  "Discount"
// @Success  201   {object}  screen.Model
// @Router   /discounts [post]
func (h *ScreenHandler) CreateDiscount(c echo.Context) error {
	id, p, err := ctxProvider[*provider.AdminProvider](c, h.providers)
	if err != nil {
		return err
	}
	var req createDiscountRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	d, err := p.CreateDiscount(c.Request().Context(), ports.CreateDiscountInput{Name: req.Name, Percent: req.Percent})
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusCreated, guard.ScreenDiscounts, id, d)
}

// Settings renders the lab and portal settings.
//
// @Summary  Settings
// @Tags     screens
// @Produce  json
// @Success  200  {object}  screen.Model
// @Router   /settings [get]
func (h *ScreenHandler) Settings(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return screen.Render(c, http.StatusOK, guard.ScreenSettings, id, settingsScreen{
		LabID:      id.LabID,
		LabName:    id.LabName,
		LabAPIURL:  h.settings.LabAPIURL,
		Backend:    h.settings.SessionBackend,
		AuditTrail: h.settings.AuditTrail,
	})
}

// Refresh reloads every cached collection of the signed-in role.
//
// @Summary  Refresh cached data
// @Tags     screens
// @Success  204
// @Router   /refresh [post]
func (h *ScreenHandler) Refresh(c echo.Context) error {
	_, p, err := ctxProvider[provider.Provider](c, h.providers)
	if err != nil {
		return err
	}
	if err := p.Refresh(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// NotFound renders the not-found screen for unknown paths.
func (h *ScreenHandler) NotFound(c echo.Context) error {
	id, _ := ctxIdentity(c)
	return screen.NotFound(c, id)
}
