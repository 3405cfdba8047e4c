package integration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"brokerwallet/internal/core/domain"
	"brokerwallet/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentProofSubmission_DeductsOnce(t *testing.T) {
	e := newEnv(t, 100_000)
	ctx := context.Background()

	w, err := e.withdrawalSvc.RequestWithdrawal(ctx, ports.WithdrawRequest{
		UserID:      e.userID,
		Amount:      decimal.NewFromInt(10_000),
		BankDetails: "HDFC ****1234",
	})
	require.NoError(t, err)

	const attempts = 20
	var successes int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := e.withdrawalSvc.SubmitPaymentProof(ctx, ports.PaymentProofRequest{
				UserID:       e.userID,
				WithdrawalID: w.ID,
				UTRNumber:    fmt.Sprintf("UTR-%d", n),
				ServerCharge: decimal.NewFromInt(2_000),
			})
			if err == nil {
				atomic.AddInt64(&successes, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes, "exactly one proof submission should win")
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(88_000)), "balance deducted exactly once")

	deducts := 0
	for _, entry := range e.ledger.byReference(w.ID) {
		if entry.Type == domain.TransactionTypeWithdrawal {
			deducts++
		}
	}
	assert.Equal(t, 1, deducts)
}

func TestConcurrentTimerFires_RefundsOnce(t *testing.T) {
	e := newEnv(t, 100_000)
	ctx := context.Background()

	id := e.startAttempt(t, 10_000, 2_000, "UTR-C")
	require.True(t, e.balance(t).Equal(decimal.NewFromInt(88_000)))

	// Duplicate fires of the same timer: one applies, the rest observe a
	// terminal status and become no-ops.
	const fires = 20
	var wg sync.WaitGroup
	for i := 0; i < fires; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, e.withdrawalSvc.HandleTimer(ctx, id, ports.TimerProcessingOutcome))
		}()
	}
	wg.Wait()

	assert.Equal(t, domain.WithdrawalStatusFailed, e.status(t, id))
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(100_000)), "refund applied exactly once")

	refunds := 0
	for _, entry := range e.ledger.byReference(id) {
		if entry.Type == domain.TransactionTypeRefund {
			refunds++
		}
	}
	assert.Equal(t, 1, refunds)
}

func TestConcurrentRequests_OnlyOneInFlight(t *testing.T) {
	e := newEnv(t, 100_000)
	ctx := context.Background()

	const attempts = 10
	var successes int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.withdrawalSvc.RequestWithdrawal(ctx, ports.WithdrawRequest{
				UserID:      e.userID,
				Amount:      decimal.NewFromInt(1_000),
				BankDetails: "HDFC ****1234",
			})
			if err == nil {
				atomic.AddInt64(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes, "in-progress guard admits a single open request")
}

func TestApplyDelta_NeverDrivesBalanceNegative(t *testing.T) {
	e := newEnv(t, 50)
	ctx := context.Background()

	const attempts = 100
	var successes int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.wallets.ApplyDelta(ctx, nil, e.userID, decimal.NewFromInt(-1)); err == nil {
				atomic.AddInt64(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), successes)
	assert.True(t, e.balance(t).Equal(decimal.Zero))
	assert.False(t, e.balance(t).IsNegative())
}

func TestConcurrentUnholdSubmissions_SingleCharge(t *testing.T) {
	e := newEnv(t, 50_000)
	ctx := context.Background()

	require.NoError(t, e.accts.SetOnHold(ctx, nil, e.userID, true))

	const attempts = 10
	var successes int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := e.unholdSvc.SubmitPaymentProof(ctx, e.userID, fmt.Sprintf("UTR-U%d", n), decimal.NewFromInt(2_000))
			if err == nil {
				atomic.AddInt64(&successes, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes, "only one pending unhold review at a time")
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(48_000)), "charge deducted exactly once")
}
