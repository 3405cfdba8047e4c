package postgres

import (
	"context"
	"errors"
	"fmt"

	"brokerwallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Get fetches the withdrawal flags for a user. Returns nil, nil when no
// row exists (an unrestricted account).
func (r *AccountRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.Account, error) {
	query := `SELECT user_id, withdrawal_blocked, on_hold, updated_at
		FROM accounts WHERE user_id = $1`

	a := &domain.Account{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&a.UserID, &a.WithdrawalBlocked, &a.OnHold, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// SetWithdrawalBlocked upserts the platform-wide withdrawal block flag.
func (r *AccountRepo) SetWithdrawalBlocked(ctx context.Context, tx pgx.Tx, userID uuid.UUID, blocked bool) error {
	query := `INSERT INTO accounts (user_id, withdrawal_blocked, on_hold, updated_at)
		VALUES ($1, $2, false, NOW())
		ON CONFLICT (user_id) DO UPDATE SET withdrawal_blocked = $2, updated_at = NOW()`

	if _, err := tx.Exec(ctx, query, userID, blocked); err != nil {
		return fmt.Errorf("set withdrawal blocked: %w", err)
	}
	return nil
}

// SetOnHold upserts the account-frozen flag.
func (r *AccountRepo) SetOnHold(ctx context.Context, tx pgx.Tx, userID uuid.UUID, onHold bool) error {
	query := `INSERT INTO accounts (user_id, withdrawal_blocked, on_hold, updated_at)
		VALUES ($1, false, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET on_hold = $2, updated_at = NOW()`

	if _, err := tx.Exec(ctx, query, userID, onHold); err != nil {
		return fmt.Errorf("set on hold: %w", err)
	}
	return nil
}
