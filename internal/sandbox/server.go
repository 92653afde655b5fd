// Package sandbox is a development stand-in for the remote lab REST API. It
// serves seeded in-memory data behind HS256 bearer tokens using the same
// response envelope as the real service.
package sandbox

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/diaglab/labdesk/internal/api/middleware"
	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/pkg/validation"
)

const (
	roleAdmin        = "admin"
	roleOperator     = "operator"
	roleReceptionist = "receptionist"
)

// Options configures a sandbox server.
type Options struct {
	Secret   string
	TokenTTL time.Duration
	// HashCost is the bcrypt cost for seeded passwords; zero means the default.
	HashCost int
	Accounts []Account
	Now      func() time.Time
}

// Server wires the sandbox store and authenticator into echo handlers.
type Server struct {
	auth  *Authenticator
	store *Store
	log   zerolog.Logger
}

// New builds the sandbox echo instance.
func New(opts Options, log zerolog.Logger) (*echo.Echo, error) {
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	if opts.Accounts == nil {
		opts.Accounts = DefaultAccounts
	}

	auth, err := NewAuthenticator(opts.Accounts, opts.Secret, opts.TokenTTL, opts.HashCost)
	if err != nil {
		return nil, err
	}
	s := &Server{auth: auth, store: NewStore(opts.Now), log: log}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = s.errorHandler

	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Recovery(log))

	s.register(e)
	return e, nil
}

func (s *Server) register(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return ok(c, http.StatusOK, map[string]string{"service": "labdesk sandbox"}, "")
	})
	e.POST("/auth/login", s.login)

	authn := s.auth.Authenticate()
	e.POST("/auth/logout", s.logout, authn)

	anyRole := RequireRole(roleAdmin, roleOperator, roleReceptionist)
	desk := RequireRole(roleOperator, roleReceptionist)
	admin := RequireRole(roleAdmin)

	e.GET("/patients", s.listPatients, authn, anyRole)
	e.POST("/patients", s.createPatient, authn, anyRole)
	e.GET("/patients/:id", s.getPatient, authn, anyRole)
	e.GET("/tests", s.listTests, authn, anyRole)
	e.GET("/doctors", s.listDoctors, authn, anyRole)
	e.GET("/bills", s.listBills, authn, anyRole)

	e.POST("/bills", s.createBill, authn, desk)
	e.POST("/bills/:id/payments", s.recordPayment, authn, desk)
	e.GET("/orders/pending", s.listPendingOrders, authn, desk)
	e.POST("/orders/:id/tests", s.assignTests, authn, desk)

	e.GET("/expenses", s.listExpenses, authn, admin)
	e.GET("/discounts", s.listDiscounts, authn, admin)
	e.POST("/discounts", s.createDiscount, authn, admin)
	e.GET("/dashboard/metrics", s.dashboardMetrics, authn, admin)
	e.GET("/reports/revenue", s.revenue, authn, admin)
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok(c echo.Context, status int, data any, msg string) error {
	return c.JSON(status, envelope{Success: true, Data: data, Message: msg})
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code, msg = he.Code, fmt.Sprint(he.Message)
	case errors.Is(err, domain.ErrInvalidCredentials):
		code, msg = http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, domain.ErrNotFound):
		code, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		code, msg = http.StatusUnprocessableEntity, err.Error()
	default:
		s.log.Error().Err(err).Str("method", c.Request().Method).Str("path", c.Path()).Msg("unhandled error")
	}

	_ = c.JSON(code, envelope{Success: false, Message: msg})
}

func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
