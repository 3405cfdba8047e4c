package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brokerwallet/config"
	"brokerwallet/internal/core/domain"
	"brokerwallet/internal/core/ports"
	"brokerwallet/pkg/apperror"
	"brokerwallet/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WithdrawalServiceImpl implements ports.WithdrawalService: the
// withdrawal lifecycle engine.
//
// Concurrency: every transition locks the withdrawal key first and the
// user key second (always that order), then re-reads the request row
// under FOR UPDATE inside a database transaction. The re-read is the
// stale-timer guard: a timer that lost the race observes a status its
// event is invalid from and becomes a no-op.
type WithdrawalServiceImpl struct {
	wdrRepo    ports.WithdrawalRepository
	walletRepo ports.WalletRepository
	acctRepo   ports.AccountRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	scheduler  ports.Scheduler
	notifier   ports.Notifier
	wdrLocks   *keyMutex
	userLocks  *keyMutex
	cfg        config.WithdrawalConfig
	log        zerolog.Logger
}

// NewWithdrawalService creates a new WithdrawalServiceImpl.
func NewWithdrawalService(
	wdrRepo ports.WithdrawalRepository,
	walletRepo ports.WalletRepository,
	acctRepo ports.AccountRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	scheduler ports.Scheduler,
	notifier ports.Notifier,
	cfg config.WithdrawalConfig,
	log zerolog.Logger,
) *WithdrawalServiceImpl {
	return &WithdrawalServiceImpl{
		wdrRepo:    wdrRepo,
		walletRepo: walletRepo,
		acctRepo:   acctRepo,
		txRepo:     txRepo,
		transactor: transactor,
		scheduler:  scheduler,
		notifier:   notifier,
		wdrLocks:   newKeyMutex(),
		userLocks:  newKeyMutex(),
		cfg:        cfg,
		log:        log,
	}
}

// RequestWithdrawal creates a new PENDING withdrawal request. With
// DeductImmediately the full amount leaves the wallet atomically here;
// otherwise the deduction happens at payment-proof time.
func (s *WithdrawalServiceImpl) RequestWithdrawal(ctx context.Context, req ports.WithdrawRequest) (*domain.WithdrawalRequest, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	s.userLocks.Lock(req.UserID)
	defer s.userLocks.Unlock(req.UserID)

	acct, err := s.acctRepo.Get(ctx, req.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get account: %w", err))
	}
	if acct != nil && !acct.CanWithdraw() {
		return nil, apperror.ErrAccountBlocked()
	}

	latest, err := s.wdrRepo.GetLatestByUser(ctx, req.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get latest withdrawal: %w", err))
	}
	if latest != nil && !latest.IsTerminal() && latest.Status != domain.WithdrawalStatusHeld {
		return nil, apperror.ErrInvalidState("a withdrawal request is already in progress")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	w := &domain.WithdrawalRequest{
		ID:           uuid.New(),
		UserID:       req.UserID,
		Amount:       req.Amount,
		ServerCharge: decimal.Zero,
		BankDetails:  req.BankDetails,
		Status:       domain.WithdrawalStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if req.DeductImmediately {
		newBalance, err := s.walletRepo.ApplyDelta(ctx, dbTx, req.UserID, req.Amount.Neg())
		if err != nil {
			if errors.Is(err, ports.ErrInsufficientBalance) {
				return nil, apperror.ErrInsufficientFunds()
			}
			return nil, apperror.InternalError(fmt.Errorf("deduct balance: %w", err))
		}
		w.BalanceDeducted = true

		if err := s.txRepo.Create(ctx, dbTx, &domain.Transaction{
			ID:           uuid.New(),
			UserID:       req.UserID,
			Type:         domain.TransactionTypeWithdrawal,
			Amount:       req.Amount,
			Status:       domain.TransactionStatusPending,
			Description:  "Withdrawal request",
			BalanceAfter: &newBalance,
			Reference:    w.ID,
			CreatedAt:    now,
		}); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create ledger entry: %w", err))
		}
	} else {
		wallet, err := s.walletRepo.GetByUserIDForUpdate(ctx, dbTx, req.UserID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
		}
		if wallet == nil {
			return nil, apperror.ErrNotFound("wallet")
		}
		if !wallet.CanCover(req.Amount) {
			return nil, apperror.ErrInsufficientFunds()
		}
	}

	if err := s.wdrRepo.Create(ctx, dbTx, w); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create withdrawal: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	metrics.WithdrawalTransitions.WithLabelValues(string(w.Status), "user").Inc()
	s.publishWithdrawal(ctx, w, nil, nil)

	s.log.Info().
		Str("withdrawal_id", w.ID.String()).
		Str("user_id", req.UserID.String()).
		Str("amount", req.Amount.String()).
		Bool("deducted", w.BalanceDeducted).
		Msg("withdrawal requested")

	return w, nil
}

// SubmitPaymentProof records the user's UTR number and proof reference
// on a PENDING request and deducts amount plus server charge if the
// balance is still untouched. Arms the proof-expiry safety net.
func (s *WithdrawalServiceImpl) SubmitPaymentProof(ctx context.Context, req ports.PaymentProofRequest) (*domain.WithdrawalRequest, error) {
	if req.UTRNumber == "" {
		return nil, apperror.Validation("UTR number is required")
	}
	if req.ServerCharge.IsNegative() {
		return nil, apperror.ErrInvalidAmount()
	}

	s.wdrLocks.Lock(req.WithdrawalID)
	defer s.wdrLocks.Unlock(req.WithdrawalID)
	s.userLocks.Lock(req.UserID)
	defer s.userLocks.Unlock(req.UserID)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	w, err := s.wdrRepo.GetByIDForUpdate(ctx, dbTx, req.WithdrawalID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock withdrawal: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("withdrawal request")
	}
	if w.UserID != req.UserID {
		return nil, apperror.ErrForbidden()
	}
	if w.UTRNumber != nil {
		return nil, apperror.ErrDuplicateProof()
	}

	tr, err := domain.Decide(w.Status, domain.EventPaymentProof, 0, s.cfg.HoldThreshold)
	if err != nil {
		return nil, apperror.ErrInvalidState(fmt.Sprintf("cannot submit proof while %s", w.Status))
	}

	w.ServerCharge = req.ServerCharge
	w.UTRNumber = &req.UTRNumber
	if req.ProofRef != "" {
		w.ProofRef = &req.ProofRef
	}

	var newBalance *decimal.Decimal
	if tr.Effect == domain.EffectDeduct {
		switch {
		case !w.BalanceDeducted:
			balance, err := s.walletRepo.ApplyDelta(ctx, dbTx, w.UserID, w.TotalDebit().Neg())
			if err != nil {
				if errors.Is(err, ports.ErrInsufficientBalance) {
					return nil, apperror.ErrInsufficientFunds()
				}
				return nil, apperror.InternalError(fmt.Errorf("deduct balance: %w", err))
			}
			w.BalanceDeducted = true
			newBalance = &balance

			if err := s.txRepo.Create(ctx, dbTx, &domain.Transaction{
				ID:           uuid.New(),
				UserID:       w.UserID,
				Type:         domain.TransactionTypeWithdrawal,
				Amount:       w.TotalDebit(),
				Status:       domain.TransactionStatusPending,
				Description:  "Withdrawal payment proof",
				BalanceAfter: newBalance,
				Reference:    w.ID,
				CreatedAt:    time.Now().UTC(),
			}); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("create ledger entry: %w", err))
			}

		case w.ServerCharge.IsPositive():
			// Immediate-deduction path: the amount left the wallet at request
			// time, so only the server charge is outstanding. A later refund
			// of amount plus charge then returns exactly what was taken.
			balance, err := s.walletRepo.ApplyDelta(ctx, dbTx, w.UserID, w.ServerCharge.Neg())
			if err != nil {
				if errors.Is(err, ports.ErrInsufficientBalance) {
					return nil, apperror.ErrInsufficientFunds()
				}
				return nil, apperror.InternalError(fmt.Errorf("deduct server charge: %w", err))
			}
			newBalance = &balance

			if err := s.txRepo.Create(ctx, dbTx, &domain.Transaction{
				ID:           uuid.New(),
				UserID:       w.UserID,
				Type:         domain.TransactionTypeWithdrawal,
				Amount:       w.ServerCharge,
				Status:       domain.TransactionStatusPending,
				Description:  "Withdrawal server charge",
				BalanceAfter: newBalance,
				Reference:    w.ID,
				CreatedAt:    time.Now().UTC(),
			}); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("create ledger entry: %w", err))
			}
		}
	}

	if err := s.wdrRepo.Update(ctx, dbTx, w); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update withdrawal: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.scheduler.Arm(s.cfg.ProofExpiry, w.ID, ports.TimerProofExpiry)
	s.publishWithdrawal(ctx, w, nil, newBalance)

	s.log.Info().
		Str("withdrawal_id", w.ID.String()).
		Str("utr", req.UTRNumber).
		Msg("payment proof submitted")

	return w, nil
}

// StartProcessing moves a PENDING request into PROCESSING and arms the
// outcome timer for the admin-declared window.
func (s *WithdrawalServiceImpl) StartProcessing(ctx context.Context, caller ports.Caller, withdrawalID uuid.UUID, window time.Duration) (*domain.WithdrawalRequest, error) {
	if !caller.IsAdmin {
		return nil, apperror.ErrForbidden()
	}
	if window <= 0 {
		return nil, apperror.Validation("processing window must be positive")
	}

	w, err := s.transition(ctx, withdrawalID, domain.EventStartProcessing, "admin", nil, func(w *domain.WithdrawalRequest) {
		now := time.Now().UTC()
		ends := now.Add(window)
		w.ProcessingStartedAt = &now
		w.ProcessingEndsAt = &ends
	})
	if err != nil {
		return nil, err
	}

	s.scheduler.Cancel(withdrawalID, ports.TimerProofExpiry)
	s.scheduler.Arm(window, withdrawalID, ports.TimerProcessingOutcome)
	metrics.ProcessingWindow.Observe(window.Seconds())

	s.log.Info().
		Str("withdrawal_id", withdrawalID.String()).
		Dur("window", window).
		Msg("withdrawal processing started")

	return w, nil
}

// AdminApprove completes a PROCESSING or HELD request with a real
// settlement reference and lifts any platform-wide withdrawal block.
// Any outstanding timers are disarmed.
func (s *WithdrawalServiceImpl) AdminApprove(ctx context.Context, caller ports.Caller, withdrawalID uuid.UUID, transactionRef string) (*domain.WithdrawalRequest, error) {
	if !caller.IsAdmin {
		return nil, apperror.ErrForbidden()
	}
	if transactionRef == "" {
		return nil, apperror.Validation("transaction reference is required")
	}

	w, err := s.transition(ctx, withdrawalID, domain.EventAdminComplete, "admin", nil, func(w *domain.WithdrawalRequest) {
		w.TransactionRef = &transactionRef
	})
	if err != nil {
		return nil, err
	}

	s.scheduler.CancelAll(withdrawalID)
	s.log.Info().Str("withdrawal_id", withdrawalID.String()).Msg("withdrawal approved")
	return w, nil
}

// AdminReject refuses a PENDING or PROCESSING request, refunding any
// deducted funds exactly once.
func (s *WithdrawalServiceImpl) AdminReject(ctx context.Context, caller ports.Caller, withdrawalID uuid.UUID, reason string) (*domain.WithdrawalRequest, error) {
	if !caller.IsAdmin {
		return nil, apperror.ErrForbidden()
	}

	w, err := s.transition(ctx, withdrawalID, domain.EventAdminReject, "admin", &reason, nil)
	if err != nil {
		return nil, err
	}

	s.scheduler.CancelAll(withdrawalID)
	s.log.Info().Str("withdrawal_id", withdrawalID.String()).Str("reason", reason).Msg("withdrawal rejected")
	return w, nil
}

// AdminHold parks a request in HELD for manual review and blocks the
// user's withdrawals platform-wide until an admin completes the request.
// Money does not move; pending timers are disarmed so the park is
// indefinite.
func (s *WithdrawalServiceImpl) AdminHold(ctx context.Context, caller ports.Caller, withdrawalID uuid.UUID) (*domain.WithdrawalRequest, error) {
	if !caller.IsAdmin {
		return nil, apperror.ErrForbidden()
	}

	w, err := s.transition(ctx, withdrawalID, domain.EventAdminHold, "admin", nil, nil)
	if err != nil {
		return nil, err
	}

	s.scheduler.CancelAll(withdrawalID)
	s.log.Info().Str("withdrawal_id", withdrawalID.String()).Msg("withdrawal held")
	return w, nil
}

// AdminFail fails a PROCESSING request with a reason, refunding any
// deducted funds exactly once.
func (s *WithdrawalServiceImpl) AdminFail(ctx context.Context, caller ports.Caller, withdrawalID uuid.UUID, reason string) (*domain.WithdrawalRequest, error) {
	if !caller.IsAdmin {
		return nil, apperror.ErrForbidden()
	}

	w, err := s.transition(ctx, withdrawalID, domain.EventAdminFail, "admin", &reason, nil)
	if err != nil {
		return nil, err
	}

	s.scheduler.CancelAll(withdrawalID)
	s.log.Info().Str("withdrawal_id", withdrawalID.String()).Str("reason", reason).Msg("withdrawal failed by admin")
	return w, nil
}

// HandleTimer is the scheduler callback. A timer that arrives after an
// admin already resolved the request observes a status its event is not
// valid from; that case is swallowed as stale, never an error.
func (s *WithdrawalServiceImpl) HandleTimer(ctx context.Context, withdrawalID uuid.UUID, kind ports.TimerKind) error {
	var ev domain.LifecycleEvent
	switch kind {
	case ports.TimerProcessingOutcome:
		ev = domain.EventTimerOutcome
	case ports.TimerReversal:
		ev = domain.EventTimerReversal
	case ports.TimerProofExpiry:
		ev = domain.EventTimerProofExpiry
	default:
		return fmt.Errorf("unknown timer kind: %s", kind)
	}

	reason := timerFailureReason(kind)
	w, err := s.transition(ctx, withdrawalID, ev, "timer", &reason, nil)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && (appErr.Code == "WDR_002" || appErr.Code == "WDR_001") {
			metrics.TimerFires.WithLabelValues(string(kind), "stale").Inc()
			s.log.Debug().
				Str("withdrawal_id", withdrawalID.String()).
				Str("kind", string(kind)).
				Msg("stale timer ignored")
			return nil
		}
		return err
	}

	metrics.TimerFires.WithLabelValues(string(kind), "applied").Inc()

	if w.Status == domain.WithdrawalStatusCompleted {
		// Fake success: the reversal timer undoes it later.
		s.scheduler.Arm(s.cfg.ReversalDelay, withdrawalID, ports.TimerReversal)
	}

	s.log.Info().
		Str("withdrawal_id", withdrawalID.String()).
		Str("kind", string(kind)).
		Str("status", string(w.Status)).
		Msg("timer transition applied")

	return nil
}

// GetLatestStatus returns the user's most recent withdrawal request.
func (s *WithdrawalServiceImpl) GetLatestStatus(ctx context.Context, userID uuid.UUID) (*domain.WithdrawalRequest, error) {
	w, err := s.wdrRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get latest withdrawal: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("withdrawal request")
	}
	return w, nil
}

// List returns withdrawal requests. Non-admin callers only ever see
// their own, whatever filter they ask for.
func (s *WithdrawalServiceImpl) List(ctx context.Context, caller ports.Caller, params ports.WithdrawalListParams) ([]domain.WithdrawalRequest, int64, error) {
	if !caller.IsAdmin {
		params.UserID = &caller.UserID
	}
	result, total, err := s.wdrRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list withdrawals: %w", err))
	}
	return result, total, nil
}

// transition runs the full locked transition pipeline: lock keys, open a
// transaction, re-read the row, consult the state machine, apply ledger
// and account side effects, persist, commit, then notify.
func (s *WithdrawalServiceImpl) transition(
	ctx context.Context,
	withdrawalID uuid.UUID,
	ev domain.LifecycleEvent,
	trigger string,
	reason *string,
	mutate func(*domain.WithdrawalRequest),
) (*domain.WithdrawalRequest, error) {
	s.wdrLocks.Lock(withdrawalID)
	defer s.wdrLocks.Unlock(withdrawalID)

	// Non-locking read just to learn the user key; the authoritative
	// re-read happens under FOR UPDATE below.
	peek, err := s.wdrRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get withdrawal: %w", err))
	}
	if peek == nil {
		return nil, apperror.ErrNotFound("withdrawal request")
	}

	s.userLocks.Lock(peek.UserID)
	defer s.userLocks.Unlock(peek.UserID)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	w, err := s.wdrRepo.GetByIDForUpdate(ctx, dbTx, withdrawalID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock withdrawal: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("withdrawal request")
	}

	priorFailures := 0
	if ev == domain.EventTimerOutcome {
		priorFailures, err = s.wdrRepo.CountFailedByUser(ctx, dbTx, w.UserID, w.ID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("count failed withdrawals: %w", err))
		}
	}

	tr, err := domain.Decide(w.Status, ev, priorFailures, s.cfg.HoldThreshold)
	if err != nil {
		return nil, apperror.ErrInvalidState(fmt.Sprintf("%s not allowed from %s", ev, w.Status))
	}

	refundAmount, newBalance, err := s.applyTransition(ctx, dbTx, w, tr)
	if err != nil {
		return nil, err
	}

	w.Status = tr.Next
	if reason != nil && (tr.Next == domain.WithdrawalStatusFailed ||
		tr.Next == domain.WithdrawalStatusRejected ||
		tr.Next == domain.WithdrawalStatusOnHold) {
		w.FailureReason = reason
	}
	if mutate != nil {
		mutate(w)
	}

	if err := s.wdrRepo.Update(ctx, dbTx, w); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update withdrawal: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	metrics.WithdrawalTransitions.WithLabelValues(string(w.Status), trigger).Inc()
	s.publishWithdrawal(ctx, w, refundAmount, newBalance)
	switch {
	case tr.FreezeAccount:
		s.publishAccount(ctx, w.UserID, "ON_HOLD")
	case tr.BlockWithdrawals:
		s.publishAccount(ctx, w.UserID, "BLOCKED")
	case tr.UnblockWithdrawals:
		s.publishAccount(ctx, w.UserID, "ACTIVE")
	}

	return w, nil
}

// applyTransition performs the ledger and account side effects the state
// machine demanded. Refunds are gated on RefundDue and deductions on
// BalanceDeducted, so re-applying a transition never moves money twice.
func (s *WithdrawalServiceImpl) applyTransition(
	ctx context.Context,
	dbTx pgx.Tx,
	w *domain.WithdrawalRequest,
	tr domain.Transition,
) (refundAmount, newBalance *decimal.Decimal, err error) {
	now := time.Now().UTC()

	switch tr.Effect {
	case domain.EffectRefund:
		if !w.RefundDue() {
			break
		}
		amount := w.TotalDebit()
		balance, err := s.walletRepo.ApplyDelta(ctx, dbTx, w.UserID, amount)
		if err != nil {
			return nil, nil, apperror.InternalError(fmt.Errorf("refund balance: %w", err))
		}
		w.Refunded = true
		w.BalanceDeducted = false
		refundAmount = &amount
		newBalance = &balance

		if err := s.txRepo.Create(ctx, dbTx, &domain.Transaction{
			ID:           uuid.New(),
			UserID:       w.UserID,
			Type:         domain.TransactionTypeRefund,
			Amount:       amount,
			Status:       domain.TransactionStatusCompleted,
			Description:  "Withdrawal refund",
			BalanceAfter: newBalance,
			Reference:    w.ID,
			CreatedAt:    now,
		}); err != nil {
			return nil, nil, apperror.InternalError(fmt.Errorf("create refund entry: %w", err))
		}
		if err := s.txRepo.UpdateStatusByReference(ctx, dbTx, w.ID, domain.TransactionStatusFailed); err != nil {
			return nil, nil, apperror.InternalError(fmt.Errorf("fail ledger entries: %w", err))
		}
		metrics.LedgerRefunds.Inc()

	case domain.EffectDeduct:
		if w.BalanceDeducted {
			break
		}
		balance, err := s.walletRepo.ApplyDelta(ctx, dbTx, w.UserID, w.TotalDebit().Neg())
		if err != nil {
			if errors.Is(err, ports.ErrInsufficientBalance) {
				return nil, nil, apperror.ErrInsufficientFunds()
			}
			return nil, nil, apperror.InternalError(fmt.Errorf("deduct balance: %w", err))
		}
		w.BalanceDeducted = true
		newBalance = &balance

		if err := s.txRepo.Create(ctx, dbTx, &domain.Transaction{
			ID:           uuid.New(),
			UserID:       w.UserID,
			Type:         domain.TransactionTypeWithdrawal,
			Amount:       w.TotalDebit(),
			Status:       domain.TransactionStatusPending,
			Description:  "Withdrawal settlement",
			BalanceAfter: newBalance,
			Reference:    w.ID,
			CreatedAt:    now,
		}); err != nil {
			return nil, nil, apperror.InternalError(fmt.Errorf("create ledger entry: %w", err))
		}
	}

	switch tr.Next {
	case domain.WithdrawalStatusCompleted:
		if err := s.txRepo.UpdateStatusByReference(ctx, dbTx, w.ID, domain.TransactionStatusCompleted); err != nil {
			return nil, nil, apperror.InternalError(fmt.Errorf("complete ledger entries: %w", err))
		}
	case domain.WithdrawalStatusOnHold:
		if err := s.txRepo.UpdateStatusByReference(ctx, dbTx, w.ID, domain.TransactionStatusOnHold); err != nil {
			return nil, nil, apperror.InternalError(fmt.Errorf("hold ledger entries: %w", err))
		}
	}

	switch {
	case tr.FreezeAccount:
		if err := s.acctRepo.SetOnHold(ctx, dbTx, w.UserID, true); err != nil {
			return nil, nil, apperror.InternalError(fmt.Errorf("freeze account: %w", err))
		}
		if err := s.acctRepo.SetWithdrawalBlocked(ctx, dbTx, w.UserID, true); err != nil {
			return nil, nil, apperror.InternalError(fmt.Errorf("block withdrawals: %w", err))
		}
	case tr.BlockWithdrawals:
		if err := s.acctRepo.SetWithdrawalBlocked(ctx, dbTx, w.UserID, true); err != nil {
			return nil, nil, apperror.InternalError(fmt.Errorf("block withdrawals: %w", err))
		}
	case tr.UnblockWithdrawals:
		if err := s.acctRepo.SetWithdrawalBlocked(ctx, dbTx, w.UserID, false); err != nil {
			return nil, nil, apperror.InternalError(fmt.Errorf("unblock withdrawals: %w", err))
		}
	}

	return refundAmount, newBalance, nil
}

func (s *WithdrawalServiceImpl) publishWithdrawal(ctx context.Context, w *domain.WithdrawalRequest, refundAmount, newBalance *decimal.Decimal) {
	ev := ports.WithdrawalEvent{
		WithdrawalID:     w.ID,
		UserID:           w.UserID,
		Status:           w.Status,
		ProcessingEndsAt: w.ProcessingEndsAt,
		RefundAmount:     refundAmount,
		NewBalance:       newBalance,
		Reason:           w.FailureReason,
	}
	if err := s.notifier.PublishWithdrawal(ctx, ev); err != nil {
		s.log.Warn().Err(err).
			Str("withdrawal_id", w.ID.String()).
			Msg("failed to publish withdrawal event")
	}
}

func (s *WithdrawalServiceImpl) publishAccount(ctx context.Context, userID uuid.UUID, status string) {
	if err := s.notifier.PublishAccount(ctx, ports.AccountEvent{UserID: userID, Status: status}); err != nil {
		s.log.Warn().Err(err).
			Str("user_id", userID.String()).
			Msg("failed to publish account event")
	}
}

func timerFailureReason(kind ports.TimerKind) string {
	switch kind {
	case ports.TimerReversal:
		return "Transaction reversed by bank"
	case ports.TimerProofExpiry:
		return "Payment proof expired without review"
	default:
		return "Transaction could not be completed"
	}
}
