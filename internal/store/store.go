package store

import (
	"context"
	"errors"

	"member-portal/accountd/internal/model"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
)

// Store is the credential store: keyed persistence of account records.
// Lookup misses are reported as ErrNotFound; any other error is an
// infrastructure failure.
type Store interface {
	FindByUsername(ctx context.Context, username string) (*model.Account, error)

	// FindByEmail returns the first account carrying the address. Email is
	// not unique in the model, so callers must tolerate an arbitrary match.
	FindByEmail(ctx context.Context, email string) (*model.Account, error)

	// FindByUsernameAndPassword matches both fields by exact equality.
	FindByUsernameAndPassword(ctx context.Context, username, password string) (*model.Account, error)

	// Create persists a new account with Active set. The uniqueness check on
	// username is atomic with the insert and yields ErrConflict on duplicate.
	Create(ctx context.Context, username, password, fullName, email string) (model.Account, error)

	// UpdatePassword overwrites the password field. An unknown username is a
	// no-op, not an error.
	UpdatePassword(ctx context.Context, username, newPassword string) error

	ListAll(ctx context.Context) ([]model.Account, error)
}
