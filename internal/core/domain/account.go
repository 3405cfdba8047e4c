package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account carries the per-user withdrawal flags. These are modeled
// explicitly rather than as incidental booleans on other records:
// every hold/unhold transition writes them through AccountRepository.
type Account struct {
	UserID uuid.UUID `json:"user_id"`
	// WithdrawalBlocked disables the withdrawal button platform-wide.
	// Set by an admin hold of a request, cleared on admin approval or
	// an approved unhold.
	WithdrawalBlocked bool `json:"withdrawal_blocked"`
	// OnHold marks the account frozen by third-strike escalation.
	// Only the unhold review flow clears it.
	OnHold    bool      `json:"on_hold"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanWithdraw returns true if the user may submit new withdrawal requests.
func (a *Account) CanWithdraw() bool {
	return !a.WithdrawalBlocked && !a.OnHold
}
