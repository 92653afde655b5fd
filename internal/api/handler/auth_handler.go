package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diaglab/labdesk/internal/api/screen"
	"github.com/diaglab/labdesk/internal/core/guard"
	"github.com/diaglab/labdesk/internal/core/service"
)

// AuthService performs login and logout against the lab API.
type AuthService interface {
	Login(ctx context.Context, username, password string) service.LoginResult
	Logout(ctx context.Context) service.LogoutResult
}

// ProviderResetter drops cached role data when the session ends.
type ProviderResetter interface {
	Reset()
}

type AuthHandler struct {
	authService AuthService
	providers   ProviderResetter
}

func NewAuthHandler(authService AuthService, providers ProviderResetter) *AuthHandler {
	return &AuthHandler{authService: authService, providers: providers}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginPage renders the login screen.
//
// @Summary      Login screen
// @Tags         auth
// @Produce      json
// @Success      200  {object}  screen.Model
// @Success      302  "authenticated: redirect to the role landing page"
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return screen.Login(c, http.StatusOK, c.QueryParam("message"))
}

// Login authenticates against the lab API and redirects to the landing page
// of the signed-in role. Failures re-render the login screen with a message.
//
// @Summary      Login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      302   "redirect to the role landing page"
// @Failure      400   {object}  screen.Model
// @Failure      401   {object}  screen.Model
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return screen.Login(c, http.StatusBadRequest, "invalid payload")
	}

	res := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if !res.Success {
		return screen.Login(c, http.StatusUnauthorized, res.Message)
	}

	return c.Redirect(http.StatusFound, guard.LandingPath(res.Identity.Role))
}

// Logout ends the session. The local session is cleared even when the lab
// API cannot be reached.
//
// @Summary      Logout
// @Tags         auth
// @Success      302  "redirect to /login"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	_ = h.authService.Logout(c.Request().Context())
	h.providers.Reset()
	return c.Redirect(http.StatusFound, guard.PathLogin)
}
