package ports

import (
	"context"

	"github.com/99minutos/marketplace-roles/internal/core/domain"
)

// TokenService issues bearer tokens on login and decodes them on every
// protected request.
type TokenService interface {
	Issue(ctx context.Context, username, password string) (string, error)
	Parse(token string) (*domain.TokenClaims, error)
}
