package usecase

import (
	"context"

	"userhub/internal/domain/entity"
)

// LoginInput defines the credentials submitted for a login attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput returns the issued token after a successful login.
type LoginOutput struct {
	Token   string
	Account *entity.Account
}

// AuthUsecase defines the authenticator: credential verification followed by
// token issuance. Checks run in a fixed order so failures are precise:
// unknown email, then deactivated account, then password mismatch.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
