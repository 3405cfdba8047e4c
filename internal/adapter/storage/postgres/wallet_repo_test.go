package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"brokerwallet/internal/core/domain"
	"brokerwallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWallet(userID uuid.UUID) *domain.Wallet {
	return &domain.Wallet{
		UserID:        userID,
		Balance:       decimal.NewFromInt(10000),
		LockedBalance: decimal.Zero,
		UsedBalance:   decimal.Zero,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func walletColumns() []string {
	return []string{"user_id", "balance", "locked_balance", "used_balance", "created_at", "updated_at"}
}

func walletRow(w *domain.Wallet) *pgxmock.Rows {
	return pgxmock.NewRows(walletColumns()).AddRow(
		w.UserID, w.Balance, w.LockedBalance, w.UsedBalance, w.CreatedAt, w.UpdatedAt,
	)
}

func TestWalletRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(uuid.New())

	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(w.UserID, w.Balance, w.LockedBalance, w.UsedBalance, w.CreatedAt, w.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), w)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE user_id").
		WithArgs(w.UserID).
		WillReturnRows(walletRow(w))

	result, err := repo.GetByUserID(context.Background(), w.UserID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.UserID, result.UserID)
	assert.True(t, w.Balance.Equal(result.Balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByUserID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	userID := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE user_id").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows(walletColumns()))

	result, err := repo.GetByUserID(context.Background(), userID)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByUserIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM wallets WHERE user_id .+ FOR UPDATE").
		WithArgs(w.UserID).
		WillReturnRows(walletRow(w))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByUserIDForUpdate(context.Background(), tx, w.UserID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.UserID, result.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_ApplyDelta(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	userID := uuid.New()
	delta := decimal.NewFromInt(-2000)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE wallets").
		WithArgs(delta, userID).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimal.NewFromInt(8000)))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	newBalance, err := repo.ApplyDelta(context.Background(), tx, userID, delta)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(8000).Equal(newBalance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_ApplyDelta_Insufficient(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	userID := uuid.New()
	delta := decimal.NewFromInt(-999999)

	mock.ExpectBegin()
	// The non-negative guard matches no row.
	mock.ExpectQuery("UPDATE wallets").
		WithArgs(delta, userID).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	_, err = repo.ApplyDelta(context.Background(), tx, userID, delta)
	assert.True(t, errors.Is(err, ports.ErrInsufficientBalance))
	assert.NoError(t, mock.ExpectationsWereMet())
}
