// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Account is the central entity of the service: a persisted user identity
// with credentials and an activation status. Instances are treated as
// immutable values; updates go through copy-with-overrides rather than
// in-place mutation of a record shared across layers.
type Account struct {
	ID        int64     // Store-assigned identifier, stable for the account's lifetime.
	Email     string    // Login identifier, unique across all accounts (exact comparison).
	FirstName string    // The account holder's first name.
	LastName  string    // The account holder's last name.
	Password  string    // Bcrypt hash of the password. Never plaintext once persisted.
	Active    bool      // False after deactivation (soft delete); the row is retained.
	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification.
}
