package postgres

import (
	"context"
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

func newTestWithdrawal(userID uuid.UUID) *domain.WithdrawalRequest {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.WithdrawalRequest{
		ID:           uuid.New(),
		UserID:       userID,
		Amount:       decimal.NewFromInt(10000),
		ServerCharge: decimal.NewFromInt(2000),
		BankDetails:  "HDFC ****4242",
		Status:       domain.WithdrawalStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func withdrawalColumnNames() []string {
	return []string{
		"id", "user_id", "amount", "server_charge", "bank_details", "status",
		"balance_deducted", "refunded", "failure_reason", "utr_number", "proof_ref",
		"transaction_ref", "processing_started_at", "processing_ends_at", "created_at", "updated_at",
	}
}

func withdrawalRow(w *domain.WithdrawalRequest) *pgxmock.Rows {
	return pgxmock.NewRows(withdrawalColumnNames()).AddRow(
		w.ID, w.UserID, w.Amount, w.ServerCharge, w.BankDetails, w.Status,
		w.BalanceDeducted, w.Refunded, w.FailureReason, w.UTRNumber, w.ProofRef,
		w.TransactionRef, w.ProcessingStartedAt, w.ProcessingEndsAt, w.CreatedAt, w.UpdatedAt,
	)
}

func TestWithdrawalRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	w := newTestWithdrawal(uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO withdrawal_requests").
		WithArgs(
			w.ID, w.UserID, w.Amount, w.ServerCharge, w.BankDetails, w.Status,
			w.BalanceDeducted, w.Refunded, w.FailureReason, w.UTRNumber, w.ProofRef,
			w.TransactionRef, w.ProcessingStartedAt, w.ProcessingEndsAt, w.CreatedAt, w.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.Create(context.Background(), tx, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	w := newTestWithdrawal(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM withdrawal_requests WHERE id").
		WithArgs(w.ID).
		WillReturnRows(withdrawalRow(w))

	result, err := repo.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.ID, result.ID)
	assert.Equal(t, domain.WithdrawalStatusPending, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM withdrawal_requests WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(withdrawalColumnNames()))

	result, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	w := newTestWithdrawal(uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE withdrawal_requests SET").
		WithArgs(
			w.ServerCharge, w.Status, w.BalanceDeducted, w.Refunded,
			w.FailureReason, w.UTRNumber, w.ProofRef, w.TransactionRef,
			w.ProcessingStartedAt, w.ProcessingEndsAt, w.ID,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Update(context.Background(), tx, w)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_CountFailedByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	userID := uuid.New()
	exclude := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(userID, domain.WithdrawalStatusFailed, exclude).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	count, err := repo.CountFailedByUser(context.Background(), tx, userID, exclude)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawalRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithdrawalRepo(mock)
	userID := uuid.New()
	w := newTestWithdrawal(userID)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(&userID, (*domain.WithdrawalStatus)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT .+ FROM withdrawal_requests").
		WithArgs(&userID, (*domain.WithdrawalStatus)(nil), 20, 0).
		WillReturnRows(withdrawalRow(w))

	result, total, err := repo.List(context.Background(), ports.WithdrawalListParams{
		UserID: &userID, Page: 1, PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, result, 1)
	assert.Equal(t, w.ID, result[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
