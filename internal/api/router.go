package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/diaglab/labdesk/docs"
	"github.com/diaglab/labdesk/internal/api/handler"
	"github.com/diaglab/labdesk/internal/api/middleware"
	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/guard"
	"github.com/diaglab/labdesk/internal/core/provider"
	"github.com/diaglab/labdesk/internal/infrastructure/http/handlers"
	"github.com/diaglab/labdesk/internal/pkg/validation"
)

// Deps are the collaborators the portal router is built from.
type Deps struct {
	Session   middleware.Session
	Auth      handler.AuthService
	Providers *provider.Manager
	Readiness map[string]handlers.Pinger
	Settings  handler.Settings
	Log       zerolog.Logger

	// SessionWait bounds how long a request waits for session restore.
	SessionWait time.Duration
	// Metrics overrides the Prometheus registry; nil uses the default one.
	Metrics *prometheus.Registry
}

var refreshRoute = guard.Route{
	Path:   "/refresh",
	Screen: "refresh",
	Roles:  []domain.Role{domain.RoleAdmin, domain.RoleOperator},
}

// NewRouter builds the portal echo instance with every screen of the route
// table registered behind the guard.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.Recovery(d.Log))
	e.Use(prometheusMiddleware(d.Metrics))

	// --- Ops endpoints (no session) ---
	e.GET("/metrics", prometheusHandler(d.Metrics))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(d.Readiness).Readiness)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Providers)
	e.POST(guard.PathLogin, authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	// --- Screens ---
	screens := handler.NewScreenHandler(d.Providers, d.Settings)
	views := map[string]echo.HandlerFunc{
		guard.ScreenHome:                  func(c echo.Context) error { return c.Redirect(http.StatusFound, guard.PathLogin) },
		guard.ScreenLogin:                 authHandler.LoginPage,
		guard.ScreenDashboard:             screens.Dashboard,
		guard.ScreenReceptionistDashboard: screens.DeskDashboard,
		guard.ScreenPatients:              screens.Patients,
		guard.ScreenAddPatient:            screens.AddPatientForm,
		guard.ScreenPatientDetail:         screens.PatientDetail,
		guard.ScreenBilling:               screens.Billing,
		guard.ScreenReports:               screens.Reports,
		guard.ScreenPendingOrders:         screens.PendingOrders,
		guard.ScreenAssignTests:           screens.AssignTestsForm,
		guard.ScreenExpenses:              screens.Expenses,
		guard.ScreenTests:                 screens.Tests,
		guard.ScreenDoctors:               screens.Doctors,
		guard.ScreenRevenue:               screens.Revenue,
		guard.ScreenDiscounts:             screens.Discounts,
		guard.ScreenSettings:              screens.Settings,
	}
	mutations := map[string]struct {
		path string
		h    echo.HandlerFunc
	}{
		guard.ScreenAddPatient:  {"/patients/add", screens.AddPatient},
		guard.ScreenBilling:     {"/billing", screens.CreateBill},
		guard.ScreenAssignTests: {"/assign-tests", screens.AssignTests},
		guard.ScreenDiscounts:   {"/discounts", screens.CreateDiscount},
	}

	for _, route := range guard.Routes {
		guarded := middleware.Guard(route, d.Session, d.SessionWait)
		if route.Path == guard.PathNotFound {
			e.RouteNotFound("/*", screens.NotFound, guarded)
			continue
		}
		if h, ok := views[route.Screen]; ok {
			e.GET(route.Path, h, guarded)
		}
		if m, ok := mutations[route.Screen]; ok {
			e.POST(m.path, m.h, guarded)
		}
	}

	// Payments are part of the billing screen.
	billing, _ := guard.ByScreen(guard.ScreenBilling)
	e.POST("/billing/:id/payments", screens.RecordPayment, middleware.Guard(billing, d.Session, d.SessionWait))
	e.POST(refreshRoute.Path, screens.Refresh, middleware.Guard(refreshRoute, d.Session, d.SessionWait))

	return e
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Subsystem: "labdesk",
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/metrics" || strings.HasPrefix(p, "/swagger/")
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func prometheusHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
