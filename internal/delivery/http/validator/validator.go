// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	playground "github.com/go-playground/validator/v10"

	domainerrors "userhub/internal/domain/errors"
)

// CustomValidator wraps a validator instance for Echo.
type CustomValidator struct {
	validate *playground.Validate
}

// New creates a CustomValidator with struct-tag validation enabled.
func New() *CustomValidator {
	return &CustomValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate checks the bound request struct against its validate tags.
// Failures surface as the domain's validation error so the error middleware
// maps them to a 400 deterministically.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
