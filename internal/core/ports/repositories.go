package ports

import (
	"context"
	"errors"

	"brokerwallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrInsufficientBalance is returned by WalletRepository.ApplyDelta when a
// debit would drive the balance negative.
var ErrInsufficientBalance = errors.New("insufficient balance")

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, w *domain.Wallet) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.Wallet, error)
	// ApplyDelta is the ledger mutation primitive: the only sanctioned way
	// to change a balance. It must be a single atomic read-modify-write
	// (never fetch-then-write) and returns the post-mutation balance so
	// callers can snapshot it without a second read.
	ApplyDelta(ctx context.Context, tx pgx.Tx, userID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)
}

// WithdrawalRepository defines persistence operations for withdrawal requests.
type WithdrawalRepository interface {
	Create(ctx context.Context, tx pgx.Tx, w *domain.WithdrawalRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WithdrawalRequest, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WithdrawalRequest, error)
	Update(ctx context.Context, tx pgx.Tx, w *domain.WithdrawalRequest) error
	GetLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.WithdrawalRequest, error)
	List(ctx context.Context, params WithdrawalListParams) ([]domain.WithdrawalRequest, int64, error)
	// CountFailedByUser counts the user's FAILED withdrawal requests,
	// excluding the given id. This drives the escalation rule.
	CountFailedByUser(ctx context.Context, tx pgx.Tx, userID uuid.UUID, exclude uuid.UUID) (int, error)
}

// WithdrawalListParams holds filter + pagination for listing withdrawals.
type WithdrawalListParams struct {
	UserID   *uuid.UUID
	Status   *domain.WithdrawalStatus
	Page     int
	PageSize int
}

// UnholdRepository defines persistence operations for unhold requests.
type UnholdRepository interface {
	Create(ctx context.Context, tx pgx.Tx, u *domain.UnholdRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UnholdRequest, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.UnholdRequest, error)
	Update(ctx context.Context, tx pgx.Tx, u *domain.UnholdRequest) error
	GetLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.UnholdRequest, error)
}

// AccountRepository defines persistence for the per-user withdrawal flags.
// Get returns nil, nil for an unknown user: absent means unrestricted.
type AccountRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Account, error)
	SetWithdrawalBlocked(ctx context.Context, tx pgx.Tx, userID uuid.UUID, blocked bool) error
	SetOnHold(ctx context.Context, tx pgx.Tx, userID uuid.UUID, onHold bool) error
}

// TransactionRepository defines persistence for the append-only ledger.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	ListByUser(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	// UpdateStatusByReference re-statuses the entries linked to a
	// withdrawal/unhold request (settlement bookkeeping, not a balance change).
	UpdateStatusByReference(ctx context.Context, tx pgx.Tx, reference uuid.UUID, status domain.TransactionStatus) error
	// UpdateStatusByUser re-statuses all of a user's entries currently in
	// `from`. Used when an approved unhold settles the frozen entries.
	UpdateStatusByUser(ctx context.Context, tx pgx.Tx, userID uuid.UUID, from, to domain.TransactionStatus) error
}

// TransactionListParams holds filter + pagination for the ledger listing.
type TransactionListParams struct {
	UserID   uuid.UUID
	Type     *domain.TransactionType
	Status   *domain.TransactionStatus
	Page     int
	PageSize int
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
