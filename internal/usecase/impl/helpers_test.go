package impl

import (
	"time"

	"userhub/internal/domain/entity"
)

// newStoredAccount builds an account the way the repository would return it.
func newStoredAccount(id int64, email string, active bool) *entity.Account {
	now := time.Now().UTC()

	return &entity.Account{
		ID:        id,
		Email:     email,
		FirstName: "Test",
		LastName:  "Account",
		Password:  "$2a$10$abcdefghijklmnopqrstuvABCDEFGHIJKLMNOPQRSTUV0123456789",
		Active:    active,
		CreatedAt: now.Add(-time.Hour),
		UpdatedAt: now,
	}
}
