package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"userhub/internal/domain/entity"
	domainerrors "userhub/internal/domain/errors"
	"userhub/internal/domain/repository"
)

// newMockDB opens a GORM connection backed by sqlmock, configured the same
// way as the production connection (error translation, no default tx).
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func accountRows(accounts ...*entity.Account) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "email", "first_name", "last_name", "password", "active", "created_at", "updated_at",
	})
	for _, a := range accounts {
		rows.AddRow(a.ID, a.Email, a.FirstName, a.LastName, a.Password, a.Active, a.CreatedAt, a.UpdatedAt)
	}

	return rows
}

func storedAccount(id int64, email string, active bool) *entity.Account {
	now := time.Now().UTC().Truncate(time.Microsecond)

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

func TestAccountRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	want := storedAccount(1, "find@example.com", true)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
		WillReturnRows(accountRows(want))

	got, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, want.Active, got.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
		WillReturnRows(accountRows())

	got, err := repo.FindByID(context.Background(), 404)

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, repository.ErrAccountNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	want := storedAccount(2, "find@example.com", true)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WillReturnRows(accountRows(want))

	got, err := repo.FindByEmail(context.Background(), want.Email)

	require.NoError(t, err)
	assert.Equal(t, want.Email, got.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WillReturnRows(accountRows())

	got, err := repo.FindByEmail(context.Background(), "nobody@example.com")

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, repository.ErrAccountNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	account := &entity.Account{
		Email:     "new@example.com",
		FirstName: "New",
		LastName:  "Account",
		Password:  "hashed_password",
		Active:    true,
	}

	mock.ExpectQuery(`INSERT INTO "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	err := repo.Create(context.Background(), account)

	require.NoError(t, err)
	// The generated id is propagated back onto the entity.
	assert.Equal(t, int64(7), account.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	account := &entity.Account{
		Email:     "taken@example.com",
		FirstName: "New",
		LastName:  "Account",
		Password:  "hashed_password",
		Active:    true,
	}

	mock.ExpectQuery(`INSERT INTO "accounts"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_accounts_email" (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), account)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	account := storedAccount(3, "update@example.com", false)

	mock.ExpectExec(`UPDATE "accounts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), account)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	first := storedAccount(1, "a@example.com", true)
	second := storedAccount(2, "b@example.com", false)

	mock.ExpectQuery(`SELECT \* FROM "accounts" ORDER BY id`).
		WillReturnRows(accountRows(first, second))

	accounts, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, first.Email, accounts[0].Email)
	// Deactivated accounts stay in the listing.
	assert.False(t, accounts[1].Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}
