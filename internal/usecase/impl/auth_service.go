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

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:    txManager,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Login verifies the submitted credentials and issues a signed token.
// The check order is fixed: existence before activity, activity before
// password, so each failure maps to exactly one typed error.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.logger.Debug("Starting login", "email", input.Email)

	var account *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// 1. The account must exist.
		found, err := accountRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("login failed")
			}

			return errors.Wrap(err, "failed to find account by email")
		}

		// 2. The account must be active.
		if !found.Active {
			return domainerrors.ErrAccountDeactivated.WrapMessage("login failed")
		}

		// 3. The password must match the stored hash.
		if !srv.hasher.Check(input.Password, found.Password) {
			return domainerrors.ErrAuthenticationFailed.WrapMessage("login failed")
		}
		account = found

		return nil
	})

	if err != nil {
		srv.logger.Warn("Login failed", "email", input.Email, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute login transaction")
	}

	// 4. All checks passed; issue the credential token.
	token, err := srv.tokenService.Issue(account)
	if err != nil {
		srv.logger.Error("Failed to issue token", "accountID", account.ID, "error", err)

		return nil, errors.Wrap(err, "failed to issue token")
	}
	srv.logger.Debug("Login succeeded", "accountID", account.ID)

	return &usecase.LoginOutput{
		Token:   token,
		Account: account,
	}, nil
}
