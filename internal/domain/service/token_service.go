package service

import (
	"github.com/golang-jwt/jwt/v5"

	"userhub/internal/domain/entity"
)

// Claims defines the custom claims carried by issued credential tokens.
type Claims struct {
	AccountID int64  `json:"id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating signed
// credential tokens. Tokens are stateless: nothing is persisted and there
// is no server-side revocation.
type TokenService interface {
	// Issue mints a signed token asserting the given account's identity.
	Issue(account *entity.Account) (string, error)

	// Validate checks a token string and returns its claims when valid.
	Validate(tokenString string) (*Claims, error)
}
