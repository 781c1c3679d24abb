// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"userhub/config"
	"userhub/internal/domain/service"
)

// bcryptPattern matches the modular crypt form of a bcrypt hash:
// a $2a/$2b/$2y version prefix followed by the 56-character cost+salt+digest body.
// A plaintext password that happens to match this shape would be
// misclassified; callers therefore only consult LooksLikeHash together with
// an explicit already-hashed assertion.
var bcryptPattern = regexp.MustCompile(`^\$2[ayb]\$.{56}$`)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher. The cost factor comes
// from configuration; zero or out-of-range values fall back to bcrypt's default.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil &&
		cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// NewBcryptHasherWithCost builds a hasher with an explicit cost factor.
// Mainly useful in tests, where a low cost keeps hashing fast.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// LooksLikeHash reports whether value has the structural form of a bcrypt hash.
func (h *bcryptHasher) LooksLikeHash(value string) bool {
	return bcryptPattern.MatchString(value)
}
