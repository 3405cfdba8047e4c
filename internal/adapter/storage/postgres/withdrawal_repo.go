package postgres

import (
	"context"
	"errors"
	"fmt"

	"brokerwallet/internal/core/domain"
	"brokerwallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const withdrawalColumns = `id, user_id, amount, server_charge, bank_details, status,
	balance_deducted, refunded, failure_reason, utr_number, proof_ref, transaction_ref,
	processing_started_at, processing_ends_at, created_at, updated_at`

// WithdrawalRepo implements ports.WithdrawalRepository.
type WithdrawalRepo struct {
	pool Pool
}

// NewWithdrawalRepo creates a new WithdrawalRepo.
func NewWithdrawalRepo(pool Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

func scanWithdrawal(row pgx.Row) (*domain.WithdrawalRequest, error) {
	w := &domain.WithdrawalRequest{}
	err := row.Scan(
		&w.ID, &w.UserID, &w.Amount, &w.ServerCharge, &w.BankDetails, &w.Status,
		&w.BalanceDeducted, &w.Refunded, &w.FailureReason, &w.UTRNumber, &w.ProofRef,
		&w.TransactionRef, &w.ProcessingStartedAt, &w.ProcessingEndsAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Create inserts a withdrawal request within a database transaction.
func (r *WithdrawalRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.WithdrawalRequest) error {
	query := `INSERT INTO withdrawal_requests (` + withdrawalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.UserID, w.Amount, w.ServerCharge, w.BankDetails, w.Status,
		w.BalanceDeducted, w.Refunded, w.FailureReason, w.UTRNumber, w.ProofRef,
		w.TransactionRef, w.ProcessingStartedAt, w.ProcessingEndsAt, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

// GetByID fetches a withdrawal by id (non-locking read).
func (r *WithdrawalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1`

	w, err := scanWithdrawal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal by id: %w", err)
	}
	return w, nil
}

// GetByIDForUpdate fetches a withdrawal with pessimistic locking.
// This MUST be called within a transaction.
func (r *WithdrawalRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1 FOR UPDATE`

	w, err := scanWithdrawal(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal for update: %w", err)
	}
	return w, nil
}

// Update rewrites the mutable fields of a withdrawal within a transaction.
func (r *WithdrawalRepo) Update(ctx context.Context, tx pgx.Tx, w *domain.WithdrawalRequest) error {
	query := `UPDATE withdrawal_requests SET
		server_charge = $1, status = $2, balance_deducted = $3, refunded = $4,
		failure_reason = $5, utr_number = $6, proof_ref = $7, transaction_ref = $8,
		processing_started_at = $9, processing_ends_at = $10, updated_at = NOW()
		WHERE id = $11`

	tag, err := tx.Exec(ctx, query,
		w.ServerCharge, w.Status, w.BalanceDeducted, w.Refunded,
		w.FailureReason, w.UTRNumber, w.ProofRef, w.TransactionRef,
		w.ProcessingStartedAt, w.ProcessingEndsAt, w.ID,
	)
	if err != nil {
		return fmt.Errorf("update withdrawal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("withdrawal not found: %s", w.ID)
	}
	return nil
}

// GetLatestByUser fetches the user's most recent withdrawal request.
func (r *WithdrawalRepo) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`

	w, err := scanWithdrawal(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest withdrawal: %w", err)
	}
	return w, nil
}

// List returns withdrawals matching the filter, newest first, with total count.
func (r *WithdrawalRepo) List(ctx context.Context, params ports.WithdrawalListParams) ([]domain.WithdrawalRequest, int64, error) {
	where := ` WHERE ($1::uuid IS NULL OR user_id = $1) AND ($2::text IS NULL OR status = $2)`

	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM withdrawal_requests`+where,
		params.UserID, params.Status).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count withdrawals: %w", err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests` + where +
		` ORDER BY created_at DESC LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, params.UserID, params.Status, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()

	var result []domain.WithdrawalRequest
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan withdrawal row: %w", err)
		}
		result = append(result, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate withdrawal rows: %w", err)
	}
	return result, total, nil
}

// CountFailedByUser counts the user's FAILED withdrawals excluding one id.
// Runs on the transaction so the escalation decision and the transition it
// feeds observe the same snapshot.
func (r *WithdrawalRepo) CountFailedByUser(ctx context.Context, tx pgx.Tx, userID uuid.UUID, exclude uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM withdrawal_requests
		WHERE user_id = $1 AND status = $2 AND id <> $3`

	var count int
	err := tx.QueryRow(ctx, query, userID, domain.WithdrawalStatusFailed, exclude).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count failed withdrawals: %w", err)
	}
	return count, nil
}
