package ports

import (
	"context"

	"github.com/99minutos/marketplace-roles/internal/core/domain"
)

// CredentialStore resolves usernames to directory records.
type CredentialStore interface {
	Lookup(ctx context.Context, username string) (domain.UserRecord, error)
}
