package domain

import (
	"errors"
	"fmt"
)

// LifecycleEvent is an input to the withdrawal state machine.
type LifecycleEvent string

const (
	EventStartProcessing  LifecycleEvent = "start_processing"
	EventTimerOutcome     LifecycleEvent = "timer_outcome"
	EventTimerReversal    LifecycleEvent = "timer_reversal"
	EventTimerProofExpiry LifecycleEvent = "timer_proof_expiry"
	EventAdminReject      LifecycleEvent = "admin_reject"
	EventAdminHold        LifecycleEvent = "admin_hold"
	EventAdminComplete    LifecycleEvent = "admin_complete"
	EventAdminFail        LifecycleEvent = "admin_fail"
	EventPaymentProof     LifecycleEvent = "payment_proof"
)

// LedgerEffect is the wallet side effect a transition demands. The
// service gates EffectRefund on RefundDue() and EffectDeduct on
// BalanceDeducted, so applying a transition twice never moves money twice.
type LedgerEffect int

const (
	EffectNone LedgerEffect = iota
	EffectRefund
	EffectDeduct
)

// Transition is the decision of the state machine: the next status, the
// required wallet effect, and whether a reversal timer must be armed.
type Transition struct {
	Next        WithdrawalStatus
	Effect      LedgerEffect
	ArmReversal bool
	// FreezeAccount is set when the transition escalates to an account
	// hold; the service flips the account flags alongside the status.
	FreezeAccount bool
	// BlockWithdrawals and UnblockWithdrawals drive the platform-wide
	// withdrawal flag: an admin hold sets it, an admin completion clears it.
	BlockWithdrawals   bool
	UnblockWithdrawals bool
}

// ErrInvalidTransition is returned when an event is not permitted from
// the current status. Callers surface it as an invalid-state failure;
// for timer events this is the stale-timer guard doing its job.
var ErrInvalidTransition = errors.New("invalid transition")

// Decide is the pure withdrawal state machine. priorFailures is the count
// of the user's other withdrawal requests already in FAILED status;
// holdThreshold is the count at which a timer outcome escalates to an
// account hold (nominally 2, i.e. the third attempt locks the account).
//
// The timer outcome rule is deliberate: the second attempt appears to
// succeed and then reverses, and the third attempt freezes the account
// with no refund. This models an ops-review pattern, not payment rails.
func Decide(current WithdrawalStatus, ev LifecycleEvent, priorFailures, holdThreshold int) (Transition, error) {
	switch ev {
	case EventStartProcessing:
		if current == WithdrawalStatusPending {
			return Transition{Next: WithdrawalStatusProcessing}, nil
		}

	case EventTimerOutcome:
		if current == WithdrawalStatusProcessing {
			switch {
			case priorFailures >= holdThreshold:
				return Transition{Next: WithdrawalStatusOnHold, FreezeAccount: true}, nil
			case priorFailures == holdThreshold-1:
				return Transition{Next: WithdrawalStatusCompleted, ArmReversal: true}, nil
			default:
				return Transition{Next: WithdrawalStatusFailed, Effect: EffectRefund}, nil
			}
		}

	case EventTimerReversal:
		if current == WithdrawalStatusCompleted {
			return Transition{Next: WithdrawalStatusFailed, Effect: EffectRefund}, nil
		}

	case EventTimerProofExpiry:
		if current == WithdrawalStatusPending {
			return Transition{Next: WithdrawalStatusFailed, Effect: EffectRefund}, nil
		}

	case EventAdminReject:
		if current == WithdrawalStatusPending || current == WithdrawalStatusProcessing {
			return Transition{Next: WithdrawalStatusRejected, Effect: EffectRefund}, nil
		}

	case EventAdminHold:
		if current == WithdrawalStatusPending || current == WithdrawalStatusProcessing {
			return Transition{Next: WithdrawalStatusHeld, BlockWithdrawals: true}, nil
		}

	case EventAdminComplete:
		// HELD requests resume through admin completion; that is also what
		// lifts the platform-wide block the hold imposed.
		if current == WithdrawalStatusProcessing || current == WithdrawalStatusHeld {
			return Transition{Next: WithdrawalStatusCompleted, Effect: EffectDeduct, UnblockWithdrawals: true}, nil
		}

	case EventAdminFail:
		if current == WithdrawalStatusProcessing {
			return Transition{Next: WithdrawalStatusFailed, Effect: EffectRefund}, nil
		}

	case EventPaymentProof:
		if current == WithdrawalStatusPending {
			return Transition{Next: WithdrawalStatusPending, Effect: EffectDeduct}, nil
		}
	}

	return Transition{}, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, current)
}
