// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	// Re-hashing the same plaintext yields a different hash string.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, hash string) bool

	// LooksLikeHash reports whether value structurally matches an encoded
	// hash (algorithm-version prefix plus fixed-length body). Used to avoid
	// double-hashing a value the caller asserts is already a hash.
	LooksLikeHash(value string) bool
}
