package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of money movement.
type TransactionType string

const (
	TransactionTypeWithdrawal   TransactionType = "WITHDRAWAL"
	TransactionTypeRefund       TransactionType = "REFUND"
	TransactionTypeUnholdCharge TransactionType = "UNHOLD_CHARGE"
	TransactionTypeUnholdRefund TransactionType = "UNHOLD_REFUND"
)

// TransactionStatus represents the settlement state of a ledger entry.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusOnHold    TransactionStatus = "ON_HOLD"
)

// Transaction is an append-only ledger entry. BalanceAfter snapshots the
// wallet balance immediately after the mutation so audits never need a
// second read. Reference links back to the withdrawal or unhold request
// that caused the movement.
type Transaction struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	Type         TransactionType   `json:"type"`
	Amount       decimal.Decimal   `json:"amount"`
	Status       TransactionStatus `json:"status"`
	Description  string            `json:"description"`
	BalanceAfter *decimal.Decimal  `json:"balance_after,omitempty"`
	Reference    uuid.UUID         `json:"reference"`
	CreatedAt    time.Time         `json:"created_at"`
}
