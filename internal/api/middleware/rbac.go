package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/marketplace-roles/internal/api/metrics"
	"github.com/99minutos/marketplace-roles/internal/core/domain"
)

// RequireRole gates a route on the role claim injected by Auth.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Principal(c).HasRole(role) {
				metrics.AccessDecisionsTotal.WithLabelValues(role.String(), "denied").Inc()
				return domain.ErrRoleMismatch
			}
			metrics.AccessDecisionsTotal.WithLabelValues(role.String(), "authorized").Inc()
			return next(c)
		}
	}
}
