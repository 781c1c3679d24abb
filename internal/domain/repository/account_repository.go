// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"userhub/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its store-assigned id.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address (exact match).
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account and fills in the assigned id and timestamps.
	// The store's unique email constraint is the authoritative uniqueness guard;
	// a violation surfaces as the domain's EmailConflict error.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account in the storage.
	Update(ctx context.Context, account *entity.Account) error

	// List returns every account, active or not, in insertion (id) order.
	List(ctx context.Context) ([]*entity.Account, error)
}
