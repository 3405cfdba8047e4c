package postgres

import (
	"context"
	"fmt"

	"brokerwallet/internal/core/domain"
	"brokerwallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, user_id, type, amount, status, description, balance_after, reference, created_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a ledger entry within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.UserID, t.Type, t.Amount, t.Status, t.Description,
		t.BalanceAfter, t.Reference, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByUser returns the user's ledger entries, newest first, with total count.
func (r *TransactionRepo) ListByUser(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	where := ` WHERE user_id = $1 AND ($2::text IS NULL OR type = $2) AND ($3::text IS NULL OR status = $3)`

	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`+where,
		params.UserID, params.Type, params.Status).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions` + where +
		` ORDER BY created_at DESC LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query, params.UserID, params.Type, params.Status, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		err := rows.Scan(
			&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Status, &t.Description,
			&t.BalanceAfter, &t.Reference, &t.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return result, total, nil
}

// UpdateStatusByReference re-statuses all entries linked to a request id.
func (r *TransactionRepo) UpdateStatusByReference(ctx context.Context, tx pgx.Tx, reference uuid.UUID, status domain.TransactionStatus) error {
	query := `UPDATE transactions SET status = $1 WHERE reference = $2`

	if _, err := tx.Exec(ctx, query, status, reference); err != nil {
		return fmt.Errorf("update transaction status by reference: %w", err)
	}
	return nil
}

// UpdateStatusByUser re-statuses all of a user's entries currently in `from`.
func (r *TransactionRepo) UpdateStatusByUser(ctx context.Context, tx pgx.Tx, userID uuid.UUID, from, to domain.TransactionStatus) error {
	query := `UPDATE transactions SET status = $1 WHERE user_id = $2 AND status = $3`

	if _, err := tx.Exec(ctx, query, to, userID, from); err != nil {
		return fmt.Errorf("update transaction status by user: %w", err)
	}
	return nil
}
