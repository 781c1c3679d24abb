// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"userhub/internal/domain/entity"
)

// --- Input DTOs ---

// CreateAccountInput defines the data required to create a new account.
type CreateAccountInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateAccountInput defines the data required to update an existing account.
// PasswordHashed is the caller's explicit assertion that Password is already
// a hash; without it the password is always re-hashed, so a plaintext that
// merely resembles a hash is never stored verbatim by accident.
type UpdateAccountInput struct {
	Email          string
	Password       string
	PasswordHashed bool
	FirstName      string
	LastName       string
}

// AccountUsecase defines the account directory: uniqueness enforcement,
// lifecycle transitions and read access over the account store.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Create adds a new account. Fails with EmailConflict when the email is
	// already taken. The stored password is a hash; the account starts active.
	Create(ctx context.Context, input *CreateAccountInput) (*entity.Account, error)

	// Update modifies an existing account. Fails with NotFound for an unknown
	// id, and with EmailConflict when changing the email to one owned by a
	// different account. Update reinstates: active is re-asserted true.
	Update(ctx context.Context, id int64, input *UpdateAccountInput) (*entity.Account, error)

	// Deactivate soft-deletes an account: active flips to false, the record
	// is retained. Fails with NotFound for an unknown id.
	Deactivate(ctx context.Context, id int64) error

	// FindByID returns the account with the given id or NotFound.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)

	// List returns a point-in-time listing of every account, active or not.
	List(ctx context.Context) ([]*entity.Account, error)
}
