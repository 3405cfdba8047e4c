package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"brokerwallet/config"
	"brokerwallet/internal/core/domain"
	"brokerwallet/internal/core/ports"
	"brokerwallet/internal/service"
	"brokerwallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// env wires real services against in-memory adapters, with a manual
// scheduler so tests fire timers deterministically.
type env struct {
	wallets  *inMemoryWalletRepo
	wdrs     *inMemoryWithdrawalRepo
	unholds  *inMemoryUnholdRepo
	accts    *inMemoryAccountRepo
	ledger   *inMemoryTransactionRepo
	sched    *manualScheduler
	notifier *recordingNotifier

	withdrawalSvc ports.WithdrawalService
	unholdSvc     ports.UnholdService

	userID uuid.UUID
	admin  ports.Caller
}

func newEnv(t *testing.T, startBalance int64) *env {
	t.Helper()

	e := &env{
		wallets:  newInMemoryWalletRepo(),
		wdrs:     newInMemoryWithdrawalRepo(),
		unholds:  newInMemoryUnholdRepo(),
		accts:    newInMemoryAccountRepo(),
		ledger:   newInMemoryTransactionRepo(),
		sched:    newManualScheduler(),
		notifier: newRecordingNotifier(),
		userID:   uuid.New(),
		admin:    ports.Caller{UserID: uuid.New(), IsAdmin: true},
	}

	cfg := config.WithdrawalConfig{
		ReversalDelay: 5 * time.Minute,
		ProofExpiry:   30 * time.Minute,
		HoldThreshold: 2,
	}
	log := zerolog.Nop()
	transactor := newInMemoryTransactor()

	e.withdrawalSvc = service.NewWithdrawalService(
		e.wdrs, e.wallets, e.accts, e.ledger, transactor, e.sched, e.notifier, cfg, log)
	e.unholdSvc = service.NewUnholdService(
		e.unholds, e.wallets, e.accts, e.ledger, transactor, e.notifier, log)

	require.NoError(t, e.wallets.Create(context.Background(), &domain.Wallet{
		UserID:  e.userID,
		Balance: decimal.NewFromInt(startBalance),
	}))
	return e
}

func (e *env) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	w, err := e.wallets.GetByUserID(context.Background(), e.userID)
	require.NoError(t, err)
	require.NotNil(t, w)
	return w.Balance
}

// startAttempt drives a withdrawal through request, payment proof, and
// the admin starting the processing window.
func (e *env) startAttempt(t *testing.T, amount, charge int64, utr string) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	w, err := e.withdrawalSvc.RequestWithdrawal(ctx, ports.WithdrawRequest{
		UserID:      e.userID,
		Amount:      decimal.NewFromInt(amount),
		BankDetails: "HDFC ****1234",
	})
	require.NoError(t, err)

	_, err = e.withdrawalSvc.SubmitPaymentProof(ctx, ports.PaymentProofRequest{
		UserID:       e.userID,
		WithdrawalID: w.ID,
		UTRNumber:    utr,
		ServerCharge: decimal.NewFromInt(charge),
	})
	require.NoError(t, err)

	_, err = e.withdrawalSvc.StartProcessing(ctx, e.admin, w.ID, 10*time.Minute)
	require.NoError(t, err)

	return w.ID
}

func (e *env) status(t *testing.T, id uuid.UUID) domain.WithdrawalStatus {
	t.Helper()
	w, err := e.wdrs.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, w)
	return w.Status
}

func TestEscalation_WorkedExample(t *testing.T) {
	e := newEnv(t, 100_000)
	ctx := context.Background()

	// Attempt 1: the processing window elapses, the withdrawal fails and
	// the full debit (amount + charge) comes back.
	id1 := e.startAttempt(t, 10_000, 2_000, "UTR-1")
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(88_000)))

	require.NoError(t, e.withdrawalSvc.HandleTimer(ctx, id1, ports.TimerProcessingOutcome))
	assert.Equal(t, domain.WithdrawalStatusFailed, e.status(t, id1))
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(100_000)))

	// Attempt 2: fake success. The request completes and a reversal timer
	// is armed; when it fires the money comes back again.
	id2 := e.startAttempt(t, 10_000, 2_000, "UTR-2")
	require.NoError(t, e.withdrawalSvc.HandleTimer(ctx, id2, ports.TimerProcessingOutcome))
	assert.Equal(t, domain.WithdrawalStatusCompleted, e.status(t, id2))
	assert.True(t, e.sched.armed(id2, ports.TimerReversal), "reversal timer should be armed")
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(88_000)))

	require.NoError(t, e.withdrawalSvc.HandleTimer(ctx, id2, ports.TimerReversal))
	assert.Equal(t, domain.WithdrawalStatusFailed, e.status(t, id2))
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(100_000)))

	// Attempt 3: two prior failures. The outcome escalates to an account
	// hold, the money stays gone, and the account freezes.
	id3 := e.startAttempt(t, 10_000, 2_000, "UTR-3")
	require.NoError(t, e.withdrawalSvc.HandleTimer(ctx, id3, ports.TimerProcessingOutcome))
	assert.Equal(t, domain.WithdrawalStatusOnHold, e.status(t, id3))
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(88_000)))

	acct, err := e.accts.Get(ctx, e.userID)
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.True(t, acct.OnHold)
	assert.True(t, acct.WithdrawalBlocked)

	ev, ok := e.notifier.lastAccountEvent()
	require.True(t, ok)
	assert.Equal(t, "ON_HOLD", ev.Status)

	// Ledger entries for the held withdrawal froze with it.
	for _, entry := range e.ledger.byReference(id3) {
		assert.Equal(t, domain.TransactionStatusOnHold, entry.Status)
	}

	// New withdrawals are refused while the account is frozen.
	_, err = e.withdrawalSvc.RequestWithdrawal(ctx, ports.WithdrawRequest{
		UserID:      e.userID,
		Amount:      decimal.NewFromInt(1_000),
		BankDetails: "HDFC ****1234",
	})
	requireAppError(t, err, "WDR_004")

	// Unhold review: charge moves once at submission.
	u, err := e.unholdSvc.SubmitPaymentProof(ctx, e.userID, "UTR-UNHOLD", decimal.NewFromInt(2_000))
	require.NoError(t, err)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(86_000)))

	// Approval lifts the hold without touching the wallet and settles the
	// frozen entries.
	_, err = e.unholdSvc.Approve(ctx, e.admin, u.ID)
	require.NoError(t, err)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(86_000)))

	acct, err = e.accts.Get(ctx, e.userID)
	require.NoError(t, err)
	assert.False(t, acct.OnHold)
	assert.False(t, acct.WithdrawalBlocked)

	for _, entry := range e.ledger.byReference(id3) {
		assert.Equal(t, domain.TransactionStatusCompleted, entry.Status)
	}

	ev, ok = e.notifier.lastAccountEvent()
	require.True(t, ok)
	assert.Equal(t, "ACTIVE", ev.Status)

	// The account can withdraw again.
	_, err = e.withdrawalSvc.RequestWithdrawal(ctx, ports.WithdrawRequest{
		UserID:      e.userID,
		Amount:      decimal.NewFromInt(1_000),
		BankDetails: "HDFC ****1234",
	})
	assert.NoError(t, err)
}

func TestProofExpiry_AutoFailsAndRefunds(t *testing.T) {
	e := newEnv(t, 50_000)
	ctx := context.Background()

	w, err := e.withdrawalSvc.RequestWithdrawal(ctx, ports.WithdrawRequest{
		UserID:            e.userID,
		Amount:            decimal.NewFromInt(10_000),
		BankDetails:       "ICICI ****9876",
		DeductImmediately: true,
	})
	require.NoError(t, err)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(40_000)))

	require.NoError(t, e.withdrawalSvc.HandleTimer(ctx, w.ID, ports.TimerProofExpiry))
	assert.Equal(t, domain.WithdrawalStatusFailed, e.status(t, w.ID))
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(50_000)))

	got, err := e.wdrs.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got.FailureReason)
	assert.Equal(t, "Payment proof expired without review", *got.FailureReason)
}

func TestStaleTimer_NoopAfterAdminResolution(t *testing.T) {
	e := newEnv(t, 50_000)
	ctx := context.Background()

	id := e.startAttempt(t, 10_000, 0, "UTR-S")

	_, err := e.withdrawalSvc.AdminApprove(ctx, e.admin, id, "BANK-REF-7")
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalStatusCompleted, e.status(t, id))
	balanceAfter := e.balance(t)

	// The outcome timer lost the race; it must change nothing.
	require.NoError(t, e.withdrawalSvc.HandleTimer(ctx, id, ports.TimerProcessingOutcome))
	assert.Equal(t, domain.WithdrawalStatusCompleted, e.status(t, id))
	assert.True(t, e.balance(t).Equal(balanceAfter))
}

func TestAdminReject_RefundsExactlyOnce(t *testing.T) {
	e := newEnv(t, 50_000)
	ctx := context.Background()

	id := e.startAttempt(t, 10_000, 2_000, "UTR-R")
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(38_000)))

	_, err := e.withdrawalSvc.AdminReject(ctx, e.admin, id, "suspicious UTR")
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalStatusRejected, e.status(t, id))
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(50_000)))

	// Rejecting again is an invalid state, not a second refund.
	_, err = e.withdrawalSvc.AdminReject(ctx, e.admin, id, "again")
	requireAppError(t, err, "WDR_002")
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(50_000)))

	refunds := 0
	for _, entry := range e.ledger.byReference(id) {
		if entry.Type == domain.TransactionTypeRefund {
			refunds++
		}
	}
	assert.Equal(t, 1, refunds)
}

func TestUnholdReject_RefundsChargeOnce_AccountStaysHeld(t *testing.T) {
	e := newEnv(t, 50_000)
	ctx := context.Background()

	require.NoError(t, e.accts.SetOnHold(ctx, nil, e.userID, true))
	require.NoError(t, e.accts.SetWithdrawalBlocked(ctx, nil, e.userID, true))

	u, err := e.unholdSvc.SubmitPaymentProof(ctx, e.userID, "UTR-U1", decimal.NewFromInt(2_000))
	require.NoError(t, err)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(48_000)))

	_, err = e.unholdSvc.Reject(ctx, e.admin, u.ID, "illegible receipt")
	require.NoError(t, err)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(50_000)))

	// Still on hold; the user may submit a fresh review.
	acct, err := e.accts.Get(ctx, e.userID)
	require.NoError(t, err)
	assert.True(t, acct.OnHold)

	_, err = e.unholdSvc.Reject(ctx, e.admin, u.ID, "again")
	requireAppError(t, err, "WDR_002")
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(50_000)))

	_, err = e.unholdSvc.SubmitPaymentProof(ctx, e.userID, "UTR-U2", decimal.NewFromInt(2_000))
	assert.NoError(t, err)
}

func TestAdminHold_BlocksUserUntilAdminCompletes(t *testing.T) {
	e := newEnv(t, 50_000)
	ctx := context.Background()

	id := e.startAttempt(t, 10_000, 0, "UTR-H")
	balanceBefore := e.balance(t)

	_, err := e.withdrawalSvc.AdminHold(ctx, e.admin, id)
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalStatusHeld, e.status(t, id))
	assert.True(t, e.balance(t).Equal(balanceBefore), "holding never moves money")

	acct, err := e.accts.Get(ctx, e.userID)
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.True(t, acct.WithdrawalBlocked)
	assert.False(t, acct.OnHold, "a hold is not the third-strike freeze")

	ev, ok := e.notifier.lastAccountEvent()
	require.True(t, ok)
	assert.Equal(t, "BLOCKED", ev.Status)

	// The hold blocks the whole user, not just this request.
	_, err = e.withdrawalSvc.RequestWithdrawal(ctx, ports.WithdrawRequest{
		UserID:      e.userID,
		Amount:      decimal.NewFromInt(5_000),
		BankDetails: "HDFC ****1234",
	})
	requireAppError(t, err, "WDR_004")

	// Completing the held request settles it and lifts the block; the
	// user's UTR survives next to the settlement reference.
	_, err = e.withdrawalSvc.AdminApprove(ctx, e.admin, id, "BANK-REF-42")
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalStatusCompleted, e.status(t, id))
	assert.True(t, e.balance(t).Equal(balanceBefore), "funds already left at proof time")

	got, err := e.wdrs.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.UTRNumber)
	assert.Equal(t, "UTR-H", *got.UTRNumber)
	require.NotNil(t, got.TransactionRef)
	assert.Equal(t, "BANK-REF-42", *got.TransactionRef)

	acct, err = e.accts.Get(ctx, e.userID)
	require.NoError(t, err)
	assert.False(t, acct.WithdrawalBlocked)

	_, err = e.withdrawalSvc.RequestWithdrawal(ctx, ports.WithdrawRequest{
		UserID:      e.userID,
		Amount:      decimal.NewFromInt(5_000),
		BankDetails: "HDFC ****1234",
	})
	assert.NoError(t, err)
}

func TestImmediateDeduct_ChargeCollectedAtProof(t *testing.T) {
	e := newEnv(t, 50_000)
	ctx := context.Background()

	w, err := e.withdrawalSvc.RequestWithdrawal(ctx, ports.WithdrawRequest{
		UserID:            e.userID,
		Amount:            decimal.NewFromInt(10_000),
		BankDetails:       "ICICI ****9876",
		DeductImmediately: true,
	})
	require.NoError(t, err)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(40_000)))

	// The amount is already out, so the proof collects just the charge.
	_, err = e.withdrawalSvc.SubmitPaymentProof(ctx, ports.PaymentProofRequest{
		UserID:       e.userID,
		WithdrawalID: w.ID,
		UTRNumber:    "UTR-IM",
		ServerCharge: decimal.NewFromInt(2_000),
	})
	require.NoError(t, err)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(38_000)))

	_, err = e.withdrawalSvc.StartProcessing(ctx, e.admin, w.ID, 10*time.Minute)
	require.NoError(t, err)

	// The refund pays back amount plus charge, exactly what was taken
	// across both deductions.
	require.NoError(t, e.withdrawalSvc.HandleTimer(ctx, w.ID, ports.TimerProcessingOutcome))
	assert.Equal(t, domain.WithdrawalStatusFailed, e.status(t, w.ID))
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(50_000)))
}

func requireAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok, fmt.Sprintf("expected AppError, got %T: %v", err, err))
	assert.Equal(t, code, appErr.Code)
}
