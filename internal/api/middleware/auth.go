package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/marketplace-roles/internal/api/metrics"
	"github.com/99minutos/marketplace-roles/internal/core/domain"
	"github.com/99minutos/marketplace-roles/internal/core/ports"
)

// PrincipalKey is the echo context key holding the *domain.TokenClaims of
// the current request.
const PrincipalKey = "principal"

// Auth decodes the bearer token and injects its claims into context.
// A missing or non-bearer Authorization header is answered with 403, the
// same status as an undecodable token.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				metrics.TokensRejectedTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "not authenticated")
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				metrics.TokensRejectedTotal.WithLabelValues("malformed").Inc()
				return err
			}

			c.Set(PrincipalKey, claims)
			return next(c)
		}
	}
}

// Principal returns the claims injected by Auth, or nil if Auth did not run.
func Principal(c echo.Context) *domain.TokenClaims {
	claims, _ := c.Get(PrincipalKey).(*domain.TokenClaims)
	return claims
}
