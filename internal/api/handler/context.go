package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diaglab/labdesk/internal/api/middleware"
	"github.com/diaglab/labdesk/internal/core/domain"
	"github.com/diaglab/labdesk/internal/core/provider"
)

// ctxIdentity returns the identity the guard attached to the request. The
// presence check proves the guard ran.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id, _ := c.Get(middleware.IdentityKey).(*domain.Identity)
	if id == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return id, nil
}

// ProviderSource hands out the data provider for an identity.
type ProviderSource interface {
	For(id *domain.Identity) provider.Provider
}

// ctxProvider resolves the identity and its data provider. A provider of a
// different role than P is reported as forbidden.
func ctxProvider[P provider.Provider](c echo.Context, src ProviderSource) (*domain.Identity, P, error) {
	var zero P
	id, err := ctxIdentity(c)
	if err != nil {
		return nil, zero, err
	}
	p, ok := src.For(id).(P)
	if !ok {
		return nil, zero, domain.ErrForbidden
	}
	return id, p, nil
}
