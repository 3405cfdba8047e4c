package postgres

import (
	"context"
	"errors"
	"fmt"

	"brokerwallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const unholdColumns = `id, user_id, unhold_charge, utr_number, status, refunded, created_at, updated_at`

// UnholdRepo implements ports.UnholdRepository.
type UnholdRepo struct {
	pool Pool
}

// NewUnholdRepo creates a new UnholdRepo.
func NewUnholdRepo(pool Pool) *UnholdRepo {
	return &UnholdRepo{pool: pool}
}

func scanUnhold(row pgx.Row) (*domain.UnholdRequest, error) {
	u := &domain.UnholdRequest{}
	err := row.Scan(
		&u.ID, &u.UserID, &u.UnholdCharge, &u.UTRNumber, &u.Status,
		&u.Refunded, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts an unhold request within a database transaction.
func (r *UnholdRepo) Create(ctx context.Context, tx pgx.Tx, u *domain.UnholdRequest) error {
	query := `INSERT INTO unhold_requests (` + unholdColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		u.ID, u.UserID, u.UnholdCharge, u.UTRNumber, u.Status, u.Refunded, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert unhold request: %w", err)
	}
	return nil
}

// GetByID fetches an unhold request by id (non-locking read).
func (r *UnholdRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.UnholdRequest, error) {
	query := `SELECT ` + unholdColumns + ` FROM unhold_requests WHERE id = $1`

	u, err := scanUnhold(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unhold request by id: %w", err)
	}
	return u, nil
}

// GetByIDForUpdate fetches an unhold request with pessimistic locking.
// This MUST be called within a transaction.
func (r *UnholdRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.UnholdRequest, error) {
	query := `SELECT ` + unholdColumns + ` FROM unhold_requests WHERE id = $1 FOR UPDATE`

	u, err := scanUnhold(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unhold request for update: %w", err)
	}
	return u, nil
}

// Update rewrites the mutable fields of an unhold request within a transaction.
func (r *UnholdRepo) Update(ctx context.Context, tx pgx.Tx, u *domain.UnholdRequest) error {
	query := `UPDATE unhold_requests SET status = $1, refunded = $2, updated_at = NOW() WHERE id = $3`

	tag, err := tx.Exec(ctx, query, u.Status, u.Refunded, u.ID)
	if err != nil {
		return fmt.Errorf("update unhold request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("unhold request not found: %s", u.ID)
	}
	return nil
}

// GetLatestByUser fetches the user's most recent unhold request.
func (r *UnholdRepo) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.UnholdRequest, error) {
	query := `SELECT ` + unholdColumns + ` FROM unhold_requests
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`

	u, err := scanUnhold(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest unhold request: %w", err)
	}
	return u, nil
}
