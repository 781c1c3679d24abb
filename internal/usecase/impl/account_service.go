// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"userhub/internal/domain/entity"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/repository"
	"userhub/internal/domain/service"
	"userhub/internal/usecase"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager: txManager,
		hasher:    hasher,
		logger:    logger,
	}
}

// Create orchestrates account creation: uniqueness pre-check, password
// hashing, and insert, all within a single transaction. The pre-check gives
// a friendly error; the store's unique constraint remains the authoritative
// guard against concurrent creates with the same email.
func (srv *accountService) Create(ctx context.Context, input *usecase.CreateAccountInput) (*entity.Account, error) {
	srv.logger.Info("Creating account", "email", input.Email)

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during account creation", "error", err)

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("account creation failed")
	}

	var createdAccount *entity.Account

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// 1. Check whether the email is already taken.
		_, err := accountRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrEmailConflict.WrapMessage("account creation failed")
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to find account by email")
		}

		// 2. Persist the new account; the store assigns the id.
		newAccount := &entity.Account{
			Email:     input.Email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Password:  hashedPassword,
			Active:    true,
		}
		if err := accountRepo.Create(ctx, newAccount); err != nil {
			return errors.WithStack(err)
		}
		createdAccount = newAccount

		return nil
	})

	if err != nil {
		srv.logger.Warn("Account creation failed", "email", input.Email, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute account creation transaction")
	}
	srv.logger.Debug("Account created", "accountID", createdAccount.ID)

	return createdAccount, nil
}

// Update modifies an existing account. The fetched entity is never mutated
// in place: a new value is built with the requested overrides and persisted.
// Update reinstates: active is re-asserted true regardless of prior state.
func (srv *accountService) Update(ctx context.Context, id int64, input *usecase.UpdateAccountInput) (*entity.Account, error) {
	srv.logger.Info("Updating account", "accountID", id)

	var updatedAccount *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// 1. The account must exist.
		existing, err := accountRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account update failed")
			}

			return errors.Wrap(err, "failed to find account")
		}

		// 2. A changed email must not collide with a different account.
		// Keeping the account's own email unchanged is always allowed.
		if input.Email != existing.Email {
			if _, err := accountRepo.FindByEmail(ctx, input.Email); err == nil {
				return domainerrors.ErrEmailConflict.WrapMessage("account update failed")
			} else if !errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(err, "failed to find account by email")
			}
		}

		// 3. Resolve the password to store.
		password, err := srv.resolvePassword(input)
		if err != nil {
			return err
		}

		updated := &entity.Account{
			ID:        existing.ID,
			Email:     input.Email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Password:  password,
			Active:    true,
			CreatedAt: existing.CreatedAt,
		}
		if err := accountRepo.Update(ctx, updated); err != nil {
			return errors.WithStack(err)
		}
		updatedAccount = updated

		return nil
	})

	if err != nil {
		srv.logger.Warn("Account update failed", "accountID", id, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute account update transaction")
	}
	srv.logger.Debug("Account updated", "accountID", updatedAccount.ID)

	return updatedAccount, nil
}

// resolvePassword hashes the submitted password unless the caller explicitly
// asserted it is already a hash AND it structurally looks like one. A
// plaintext that merely resembles a hash is therefore still hashed unless
// the caller vouches for it.
func (srv *accountService) resolvePassword(input *usecase.UpdateAccountInput) (string, error) {
	if input.PasswordHashed && srv.hasher.LooksLikeHash(input.Password) {
		return input.Password, nil
	}

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during account update", "error", err)

		return "", domainerrors.ErrPasswordHashFailed.WrapMessage("account update failed")
	}

	return hashed, nil
}

// Deactivate soft-deletes an account: the active flag flips to false and the
// record is retained, so the id is never reused.
func (srv *accountService) Deactivate(ctx context.Context, id int64) error {
	srv.logger.Info("Deactivating account", "accountID", id)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		existing, err := accountRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account deactivation failed")
			}

			return errors.Wrap(err, "failed to find account")
		}

		deactivated := *existing
		deactivated.Active = false

		return errors.WithStack(accountRepo.Update(ctx, &deactivated))
	})

	if err != nil {
		srv.logger.Warn("Account deactivation failed", "accountID", id, "error", err.Error())

		return errors.Wrap(err, "failed to execute account deactivation transaction")
	}
	srv.logger.Debug("Account deactivated", "accountID", id)

	return nil
}

// FindByID retrieves a single account.
func (srv *accountService) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	var account *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AccountRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account lookup failed")
			}

			return errors.Wrap(err, "failed to find account")
		}
		account = found

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute account lookup transaction")
	}

	return account, nil
}

// List returns a point-in-time listing of every account.
func (srv *accountService) List(ctx context.Context) ([]*entity.Account, error) {
	var accounts []*entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		listed, err := repoFactory.AccountRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list accounts")
		}
		accounts = listed

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute account listing transaction")
	}

	return accounts, nil
}
