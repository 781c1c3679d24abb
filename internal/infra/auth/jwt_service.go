// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"userhub/config"
	"userhub/internal/domain/entity"
	"userhub/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// The signing secret is injected at construction, never read from ambient
// global state, so tests can supply deterministic keys.
type jwtService struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := cfg.SecretKey.TokenTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	return &jwtService{
		secret:   []byte(cfg.SecretKey.Secret),
		tokenTTL: ttl,
	}, nil
}

// Issue mints a signed token carrying the account's id and email.
// Tokens expire after the configured TTL.
func (s *jwtService) Issue(account *entity.Account) (string, error) {
	now := time.Now()
	claims := service.Claims{
		AccountID: account.ID,
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate checks the signature and expiry of a token string and returns its claims.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}

	return claims, nil
}
