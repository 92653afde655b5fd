package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/diaglab/labdesk/internal/pkg/metrics"
	"github.com/diaglab/labdesk/internal/api/screen"
	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/guard"
)

// Context keys set by Guard.
const (
	IdentityKey = "identity"
	RouteKey    = "route"
)

const defaultWait = 3 * time.Second

// Session is the view of the session store the guard needs.
type Session interface {
	Loading() bool
	Wait(ctx context.Context) error
	Current() *domain.Identity
}

// Guard evaluates the route policy before the screen handler runs. While the
// session is still being restored the request waits up to wait; if it is
// still pending after that the loading screen is rendered with 503.
// Redirect decisions become 302 Found.
func Guard(route guard.Route, session Session, wait time.Duration) echo.MiddlewareFunc {
	if wait <= 0 {
		wait = defaultWait
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := session.Current()
			d := guard.Evaluate(route, session.Loading(), id)

			if d.State == guard.StatePending {
				ctx, cancel := context.WithTimeout(c.Request().Context(), wait)
				err := session.Wait(ctx)
				cancel()
				if err != nil {
					metrics.GuardDecisionsTotal.WithLabelValues(d.State.String(), route.Path).Inc()
					return screen.Loading(c, time.Second)
				}
				id = session.Current()
				d = guard.Evaluate(route, false, id)
			}

			metrics.GuardDecisionsTotal.WithLabelValues(d.State.String(), route.Path).Inc()

			if d.Redirect != "" {
				return c.Redirect(http.StatusFound, d.Redirect)
			}

			c.Set(IdentityKey, id)
			c.Set(RouteKey, route)
			return next(c)
		}
	}
}
