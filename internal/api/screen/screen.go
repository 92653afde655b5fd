// Package screen defines the JSON view models the portal renders.
package screen

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/guard"
)

// Model is the body of every rendered screen.
type Model struct {
	Screen   string           `json:"screen"`
	Identity *domain.Identity `json:"identity"`
	Data     any              `json:"data,omitempty"`
	Message  string           `json:"message,omitempty"`
}

// Render writes a screen model with the given status.
func Render(c echo.Context, status int, name string, id *domain.Identity, data any) error {
	return c.JSON(status, Model{Screen: name, Identity: id, Data: data})
}

// Login renders the login screen, optionally with a message.
func Login(c echo.Context, status int, msg string) error {
	return c.JSON(status, Model{Screen: guard.ScreenLogin, Message: msg})
}

// Loading renders the placeholder shown while the session is restored.
func Loading(c echo.Context, retryAfter time.Duration) error {
	secs := int(retryAfter.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
	return c.JSON(http.StatusServiceUnavailable, Model{Screen: "loading", Message: "restoring session"})
}

// NotFound renders the not-found screen.
func NotFound(c echo.Context, id *domain.Identity) error {
	return c.JSON(http.StatusNotFound, Model{Screen: guard.ScreenNotFound, Identity: id})
}
