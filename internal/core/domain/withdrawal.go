package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalStatus represents the lifecycle state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "PENDING"
	WithdrawalStatusProcessing WithdrawalStatus = "PROCESSING"
	WithdrawalStatusCompleted  WithdrawalStatus = "COMPLETED"
	WithdrawalStatusFailed     WithdrawalStatus = "FAILED"
	WithdrawalStatusOnHold     WithdrawalStatus = "ON_HOLD"
	WithdrawalStatusHeld       WithdrawalStatus = "HELD"
	WithdrawalStatusRejected   WithdrawalStatus = "REJECTED"
	WithdrawalStatusCancelled  WithdrawalStatus = "CANCELLED"
)

// WithdrawalRequest is a user-initiated ask to move funds out of the
// platform, subject to admin review and simulated settlement.
type WithdrawalRequest struct {
	ID           uuid.UUID        `json:"id"`
	UserID       uuid.UUID        `json:"user_id"`
	Amount       decimal.Decimal  `json:"amount"`
	ServerCharge decimal.Decimal  `json:"server_charge"`
	BankDetails  string           `json:"bank_details"`
	Status       WithdrawalStatus `json:"status"`
	// BalanceDeducted is true while funds for this request are out of the
	// wallet. Flipped back to false when a refund is applied.
	BalanceDeducted bool `json:"balance_deducted"`
	// Refunded is monotonic: once true, no further refund may be applied
	// for this request.
	Refunded            bool       `json:"refunded"`
	FailureReason       *string    `json:"failure_reason,omitempty"`
	UTRNumber           *string    `json:"utr_number,omitempty"`
	ProofRef            *string    `json:"proof_ref,omitempty"`
	// TransactionRef is the settlement reference the admin supplies on
	// approval. Kept apart from UTRNumber so the user's submitted proof
	// survives completion.
	TransactionRef      *string    `json:"transaction_ref,omitempty"`
	ProcessingStartedAt *time.Time `json:"processing_started_at,omitempty"`
	ProcessingEndsAt    *time.Time `json:"processing_ends_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TotalDebit returns the full amount taken from the wallet for this
// request: amount plus any server charge.
func (w *WithdrawalRequest) TotalDebit() decimal.Decimal {
	return w.Amount.Add(w.ServerCharge)
}

// IsTerminal returns true if no further transitions are possible without
// a separate review flow. ON_HOLD is semi-terminal: only the unhold flow
// affects the account afterward, never this request.
func (w *WithdrawalRequest) IsTerminal() bool {
	switch w.Status {
	case WithdrawalStatusCompleted, WithdrawalStatusRejected, WithdrawalStatusCancelled,
		WithdrawalStatusFailed, WithdrawalStatusOnHold:
		return true
	}
	return false
}

// RefundDue returns true if a refund must accompany a failing transition.
func (w *WithdrawalRequest) RefundDue() bool {
	return w.BalanceDeducted && !w.Refunded
}
