package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet represents a user's currency wallet. Balance is the available
// amount; LockedBalance and UsedBalance track funds earmarked by open
// positions and are settled outside this core.
type Wallet struct {
	UserID        uuid.UUID       `json:"user_id"`
	Balance       decimal.Decimal `json:"balance"`
	LockedBalance decimal.Decimal `json:"locked_balance"`
	UsedBalance   decimal.Decimal `json:"used_balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CanCover returns true if the available balance covers amount.
func (w *Wallet) CanCover(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}
