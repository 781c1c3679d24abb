package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"userhub/internal/domain/entity"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/repository"
	mockRepo "userhub/internal/mocks/repository"
	mockSvc "userhub/internal/mocks/service"
	"userhub/internal/usecase"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service   usecase.AccountUsecase
	txManager *mockRepo.MockTransactionManager
	hasher    *mockSvc.MockPasswordHasher
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAccountService(txManager, hasher, logger)

	return accountServiceFixtures{
		service:   service,
		txManager: txManager,
		hasher:    hasher,
	}
}

func TestAccountService_Create_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.CreateAccountInput{
		Email:     "new@example.com",
		Password:  "Password123!",
		FirstName: "New",
		LastName:  "Account",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(nil, repository.ErrAccountNotFound)

			mockAccountRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Account")).
				Run(func(ctx context.Context, account *entity.Account) {
					account.ID = 1
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	account, err := fx.service.Create(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, int64(1), account.ID)
	assert.Equal(t, input.Email, account.Email)
	assert.Equal(t, "hashed_password", account.Password)
	assert.True(t, account.Active)
}

func TestAccountService_Create_EmailConflict(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.CreateAccountInput{
		Email:     "taken@example.com",
		Password:  "Password123!",
		FirstName: "New",
		LastName:  "Account",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(newStoredAccount(7, input.Email, true), nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrEmailConflict, "account creation failed"))

	account, err := fx.service.Create(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, account)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailConflict))
}

func TestAccountService_Create_HashFailure(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.CreateAccountInput{
		Email:     "new@example.com",
		Password:  "Password123!",
		FirstName: "New",
		LastName:  "Account",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("", errors.New("cost out of range"))

	account, err := fx.service.Create(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, account)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestAccountService_Update_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	existing := newStoredAccount(3, "old@example.com", false)
	input := &usecase.UpdateAccountInput{
		Email:     "new@example.com",
		Password:  "NewPassword123!",
		FirstName: "Updated",
		LastName:  "Account",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("new_hash", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByID(ctx, existing.ID).
				Return(existing, nil)

			mockAccountRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(nil, repository.ErrAccountNotFound)

			mockAccountRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Account")).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	account, err := fx.service.Update(ctx, existing.ID, input)

	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, existing.ID, account.ID)
	assert.Equal(t, input.Email, account.Email)
	assert.Equal(t, "new_hash", account.Password)
	assert.Equal(t, existing.CreatedAt, account.CreatedAt)
	// Updating a deactivated account reinstates it.
	assert.True(t, account.Active)
	// The fetched entity must not be mutated in place.
	assert.False(t, existing.Active)
	assert.Equal(t, "old@example.com", existing.Email)
}

func TestAccountService_Update_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.UpdateAccountInput{
		Email:     "new@example.com",
		Password:  "NewPassword123!",
		FirstName: "Updated",
		LastName:  "Account",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByID(ctx, int64(99)).
				Return(nil, repository.ErrAccountNotFound)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrAccountNotFound, "account update failed"))

	account, err := fx.service.Update(ctx, 99, input)

	assert.Error(t, err)
	assert.Nil(t, account)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountService_Update_EmailConflict(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	existing := newStoredAccount(3, "old@example.com", true)
	input := &usecase.UpdateAccountInput{
		Email:     "taken@example.com",
		Password:  "NewPassword123!",
		FirstName: "Updated",
		LastName:  "Account",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByID(ctx, existing.ID).
				Return(existing, nil)

			mockAccountRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(newStoredAccount(8, input.Email, true), nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrEmailConflict, "account update failed"))

	account, err := fx.service.Update(ctx, existing.ID, input)

	assert.Error(t, err)
	assert.Nil(t, account)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailConflict))
}

func TestAccountService_Update_KeepOwnEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	existing := newStoredAccount(3, "same@example.com", true)
	input := &usecase.UpdateAccountInput{
		Email:     "same@example.com",
		Password:  "NewPassword123!",
		FirstName: "Updated",
		LastName:  "Account",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("new_hash", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByID(ctx, existing.ID).
				Return(existing, nil)

			// No FindByEmail call: keeping the same email never conflicts.
			mockAccountRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Account")).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	account, err := fx.service.Update(ctx, existing.ID, input)

	require.NoError(t, err)
	assert.Equal(t, existing.Email, account.Email)
}

func TestAccountService_Update_PrehashedPasswordStoredVerbatim(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	existing := newStoredAccount(3, "same@example.com", true)
	prehashed := "$2a$10$abcdefghijklmnopqrstuvABCDEFGHIJKLMNOPQRSTUV9876543210"
	input := &usecase.UpdateAccountInput{
		Email:          "same@example.com",
		Password:       prehashed,
		PasswordHashed: true,
		FirstName:      "Updated",
		LastName:       "Account",
	}

	fx.hasher.EXPECT().LooksLikeHash(prehashed).Return(true)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByID(ctx, existing.ID).
				Return(existing, nil)

			mockAccountRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Account")).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	account, err := fx.service.Update(ctx, existing.ID, input)

	require.NoError(t, err)
	assert.Equal(t, prehashed, account.Password)
}

func TestAccountService_Update_HashAssertionWithoutHashShapeRehashes(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	existing := newStoredAccount(3, "same@example.com", true)
	input := &usecase.UpdateAccountInput{
		Email:          "same@example.com",
		Password:       "not-actually-a-hash",
		PasswordHashed: true,
		FirstName:      "Updated",
		LastName:       "Account",
	}

	fx.hasher.EXPECT().LooksLikeHash(input.Password).Return(false)
	fx.hasher.EXPECT().Hash(input.Password).Return("new_hash", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByID(ctx, existing.ID).
				Return(existing, nil)

			mockAccountRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Account")).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	account, err := fx.service.Update(ctx, existing.ID, input)

	require.NoError(t, err)
	assert.Equal(t, "new_hash", account.Password)
}

func TestAccountService_Update_PlaintextResemblingHashIsStillHashed(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	existing := newStoredAccount(3, "same@example.com", true)
	// Shaped like a bcrypt hash, but the caller never asserted it is one.
	hashLike := "$2a$10$abcdefghijklmnopqrstuvABCDEFGHIJKLMNOPQRSTUV9876543210"
	input := &usecase.UpdateAccountInput{
		Email:     "same@example.com",
		Password:  hashLike,
		FirstName: "Updated",
		LastName:  "Account",
	}

	fx.hasher.EXPECT().Hash(hashLike).Return("new_hash", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByID(ctx, existing.ID).
				Return(existing, nil)

			mockAccountRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Account")).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	account, err := fx.service.Update(ctx, existing.ID, input)

	require.NoError(t, err)
	assert.Equal(t, "new_hash", account.Password)
}

func TestAccountService_Deactivate_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	existing := newStoredAccount(5, "bye@example.com", true)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByID(ctx, existing.ID).
				Return(existing, nil)

			mockAccountRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Account")).
				Run(func(ctx context.Context, account *entity.Account) {
					assert.False(t, account.Active)
					assert.Equal(t, existing.Email, account.Email)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	err := fx.service.Deactivate(ctx, existing.ID)

	require.NoError(t, err)
	// The record is retained; only the copy handed to Update flips.
	assert.True(t, existing.Active)
}

func TestAccountService_Deactivate_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByID(ctx, int64(42)).
				Return(nil, repository.ErrAccountNotFound)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrAccountNotFound, "account deactivation failed"))

	err := fx.service.Deactivate(ctx, 42)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountService_FindByID_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	existing := newStoredAccount(9, "find@example.com", true)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByID(ctx, existing.ID).
				Return(existing, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	account, err := fx.service.FindByID(ctx, existing.ID)

	require.NoError(t, err)
	assert.Equal(t, existing, account)
}

func TestAccountService_FindByID_NotFound(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByID(ctx, int64(404)).
				Return(nil, repository.ErrAccountNotFound)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrAccountNotFound, "account lookup failed"))

	account, err := fx.service.FindByID(ctx, 404)

	assert.Error(t, err)
	assert.Nil(t, account)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountService_List_IncludesDeactivated(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	stored := []*entity.Account{
		newStoredAccount(1, "a@example.com", true),
		newStoredAccount(2, "b@example.com", false),
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				List(ctx).
				Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	accounts, err := fx.service.List(ctx)

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.False(t, accounts[1].Active)
}
