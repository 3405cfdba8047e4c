package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnholdStatus represents the review state of an unhold request.
type UnholdStatus string

const (
	UnholdStatusPending  UnholdStatus = "PENDING"
	UnholdStatusApproved UnholdStatus = "APPROVED"
	UnholdStatusRejected UnholdStatus = "REJECTED"
)

// UnholdRequest is a user's paid request to lift an account hold.
// The charge is deducted exactly once at creation; approval never touches
// the balance again, rejection refunds the charge exactly once.
type UnholdRequest struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	UnholdCharge decimal.Decimal `json:"unhold_charge"`
	UTRNumber    string          `json:"utr_number"`
	Status       UnholdStatus    `json:"status"`
	Refunded     bool            `json:"refunded"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
