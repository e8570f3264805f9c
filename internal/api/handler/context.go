package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/marketplace-roles/internal/api/middleware"
	"github.com/99minutos/marketplace-roles/internal/core/domain"
)

// ctxPrincipal extracts the claims injected by the Auth middleware. A nil
// principal means the route was mounted without Auth; reject rather than
// serve protected data.
func ctxPrincipal(c echo.Context) (*domain.TokenClaims, error) {
	p := middleware.Principal(c)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusForbidden, "not authenticated")
	}
	return p, nil
}
