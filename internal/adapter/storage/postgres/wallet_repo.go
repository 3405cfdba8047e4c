package postgres

import (
	"context"
	"errors"
	"fmt"

	"brokerwallet/internal/core/domain"
	"brokerwallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet into the database.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (user_id, balance, locked_balance, used_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		w.UserID, w.Balance, w.LockedBalance, w.UsedBalance, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByUserID fetches a wallet by owning user (non-locking read).
func (r *WalletRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT user_id, balance, locked_balance, used_balance, created_at, updated_at
		FROM wallets WHERE user_id = $1`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&w.UserID, &w.Balance, &w.LockedBalance, &w.UsedBalance, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by user id: %w", err)
	}
	return w, nil
}

// GetByUserIDForUpdate fetches a wallet with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT user_id, balance, locked_balance, used_balance, created_at, updated_at
		FROM wallets WHERE user_id = $1 FOR UPDATE`

	w := &domain.Wallet{}
	err := tx.QueryRow(ctx, query, userID).Scan(
		&w.UserID, &w.Balance, &w.LockedBalance, &w.UsedBalance, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet for update: %w", err)
	}
	return w, nil
}

// ApplyDelta atomically shifts a wallet balance and returns the new value.
// The mutation happens in a single UPDATE ... RETURNING, so concurrent
// writers can never compute from a stale read. A debit that would go
// negative matches no row and surfaces as ErrInsufficientBalance.
func (r *WalletRepo) ApplyDelta(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `UPDATE wallets
		SET balance = balance + $1, updated_at = NOW()
		WHERE user_id = $2 AND balance + $1 >= 0
		RETURNING balance`

	var newBalance decimal.Decimal
	err := tx.QueryRow(ctx, query, delta, userID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Callers hold the row lock on an existing wallet, so no
			// match means the non-negative guard failed.
			return decimal.Zero, ports.ErrInsufficientBalance
		}
		return decimal.Zero, fmt.Errorf("apply balance delta: %w", err)
	}
	return newBalance, nil
}
