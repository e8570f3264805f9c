// Package directory holds the static, in-memory user directory that backs
// login. It is built once at startup and only read afterwards, so lookups
// need no locking.
package directory

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/marketplace-roles/internal/core/domain"
)

// Directory is a read-only username → record registry.
type Directory struct {
	users map[string]domain.UserRecord
}

// New validates the records and builds a Directory from them.
func New(records ...domain.UserRecord) (*Directory, error) {
	v := validator.New()
	users := make(map[string]domain.UserRecord, len(records))

	for i, rec := range records {
		if err := v.Struct(rec); err != nil {
			return nil, fmt.Errorf("directory: record %d: %w: %v", i, domain.ErrInvalidRecord, err)
		}
		if _, exists := users[rec.Username]; exists {
			return nil, fmt.Errorf("directory: %q: %w", rec.Username, domain.ErrDuplicateUser)
		}
		users[rec.Username] = rec
	}

	return &Directory{users: users}, nil
}

// DefaultRecords is the fixed reference directory.
func DefaultRecords() []domain.UserRecord {
	return []domain.UserRecord{
		{Username: "buyer1", Password: "buyerpass", Role: domain.RoleBuyer},
		{Username: "seller1", Password: "sellerpass", Role: domain.RoleSeller},
	}
}

// Default returns a Directory over DefaultRecords.
func Default() *Directory {
	d, err := New(DefaultRecords()...)
	if err != nil {
		panic(err)
	}
	return d
}

// Lookup returns the record for username or domain.ErrUserNotFound.
func (d *Directory) Lookup(_ context.Context, username string) (domain.UserRecord, error) {
	rec, ok := d.users[username]
	if !ok {
		return domain.UserRecord{}, domain.ErrUserNotFound
	}
	return rec, nil
}

// Len reports how many users the directory holds.
func (d *Directory) Len() int {
	return len(d.users)
}
