package ports

import (
	"context"
	"time"

	"brokerwallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimerKind distinguishes the scheduler's delayed transition events.
type TimerKind string

const (
	// TimerProcessingOutcome fires at the end of the admin-declared
	// processing window and resolves the withdrawal by escalation rule.
	TimerProcessingOutcome TimerKind = "processing_outcome"
	// TimerReversal fires after a fake-success outcome and reverses the
	// withdrawal into a failure with a full refund.
	TimerReversal TimerKind = "reversal"
	// TimerProofExpiry is the safety net armed at payment-proof time; it
	// auto-fails the request if no admin acts within the window.
	TimerProofExpiry TimerKind = "proof_expiry"
)

// Scheduler issues delayed, cancellable transition events. Timers are
// keyed by (withdrawalID, kind); arming an existing key replaces it.
type Scheduler interface {
	Arm(delay time.Duration, withdrawalID uuid.UUID, kind TimerKind)
	Cancel(withdrawalID uuid.UUID, kind TimerKind)
	CancelAll(withdrawalID uuid.UUID)
}

// WithdrawalEvent is the push payload for a withdrawal state change.
type WithdrawalEvent struct {
	WithdrawalID     uuid.UUID               `json:"withdrawal_id"`
	UserID           uuid.UUID               `json:"user_id"`
	Status           domain.WithdrawalStatus `json:"status"`
	ProcessingEndsAt *time.Time              `json:"processing_ends_at,omitempty"`
	RefundAmount     *decimal.Decimal        `json:"refund_amount,omitempty"`
	NewBalance       *decimal.Decimal        `json:"new_balance,omitempty"`
	Reason           *string                 `json:"reason,omitempty"`
}

// AccountEvent is the push payload for an account hold/unhold change.
type AccountEvent struct {
	UserID uuid.UUID `json:"user_id"`
	Status string    `json:"status"` // ACTIVE or ON_HOLD
}

// Notifier fans state-change events out to connected clients. Publishing
// is fire-and-forget: failures must never block or fail the ledger
// mutation that triggered them.
type Notifier interface {
	PublishWithdrawal(ctx context.Context, ev WithdrawalEvent) error
	PublishAccount(ctx context.Context, ev AccountEvent) error
}

// Caller identifies the authenticated principal, as supplied by the
// authentication collaborator through middleware.
type Caller struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// WithdrawRequest holds validated input for a new withdrawal.
type WithdrawRequest struct {
	UserID            uuid.UUID
	Amount            decimal.Decimal
	BankDetails       string
	DeductImmediately bool
}

// PaymentProofRequest holds validated input for a payment-proof submission.
type PaymentProofRequest struct {
	UserID       uuid.UUID
	WithdrawalID uuid.UUID
	UTRNumber    string
	ServerCharge decimal.Decimal
	ProofRef     string
}

// WithdrawalService is the withdrawal lifecycle engine's public surface.
type WithdrawalService interface {
	RequestWithdrawal(ctx context.Context, req WithdrawRequest) (*domain.WithdrawalRequest, error)
	SubmitPaymentProof(ctx context.Context, req PaymentProofRequest) (*domain.WithdrawalRequest, error)
	StartProcessing(ctx context.Context, caller Caller, withdrawalID uuid.UUID, window time.Duration) (*domain.WithdrawalRequest, error)
	AdminApprove(ctx context.Context, caller Caller, withdrawalID uuid.UUID, transactionRef string) (*domain.WithdrawalRequest, error)
	AdminReject(ctx context.Context, caller Caller, withdrawalID uuid.UUID, reason string) (*domain.WithdrawalRequest, error)
	AdminHold(ctx context.Context, caller Caller, withdrawalID uuid.UUID) (*domain.WithdrawalRequest, error)
	AdminFail(ctx context.Context, caller Caller, withdrawalID uuid.UUID, reason string) (*domain.WithdrawalRequest, error)
	// HandleTimer is the scheduler callback entry point. It re-reads the
	// request status under lock before applying any effect (stale-timer guard).
	HandleTimer(ctx context.Context, withdrawalID uuid.UUID, kind TimerKind) error
	GetLatestStatus(ctx context.Context, userID uuid.UUID) (*domain.WithdrawalRequest, error)
	List(ctx context.Context, caller Caller, params WithdrawalListParams) ([]domain.WithdrawalRequest, int64, error)
}

// UnholdService is the account-hold review sub-flow.
type UnholdService interface {
	SubmitPaymentProof(ctx context.Context, userID uuid.UUID, utrNumber string, charge decimal.Decimal) (*domain.UnholdRequest, error)
	Approve(ctx context.Context, caller Caller, requestID uuid.UUID) (*domain.UnholdRequest, error)
	Reject(ctx context.Context, caller Caller, requestID uuid.UUID, reason string) (*domain.UnholdRequest, error)
	GetStatus(ctx context.Context, userID uuid.UUID) (*domain.UnholdRequest, error)
}

// ReportingService is the read side consumed by the wallet UI.
type ReportingService interface {
	GetWalletBalance(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
}

// TokenService handles JWT token operations. Issuance belongs to the
// authentication collaborator; this core only validates.
type TokenService interface {
	Generate(userID uuid.UUID, isAdmin bool) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID  uuid.UUID
	IsAdmin bool
}
