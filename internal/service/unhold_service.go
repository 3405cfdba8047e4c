package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brokerwallet/internal/core/domain"
	"brokerwallet/internal/core/ports"
	"brokerwallet/pkg/apperror"
	"brokerwallet/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// UnholdServiceImpl implements ports.UnholdService: the paid review
// flow for lifting an account hold. The unhold charge moves exactly
// once at submission; approval lifts the hold without touching the
// wallet, rejection refunds the charge exactly once.
type UnholdServiceImpl struct {
	unholdRepo ports.UnholdRepository
	walletRepo ports.WalletRepository
	acctRepo   ports.AccountRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	notifier   ports.Notifier
	userLocks  *keyMutex
	log        zerolog.Logger
}

// NewUnholdService creates a new UnholdServiceImpl.
func NewUnholdService(
	unholdRepo ports.UnholdRepository,
	walletRepo ports.WalletRepository,
	acctRepo ports.AccountRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	notifier ports.Notifier,
	log zerolog.Logger,
) *UnholdServiceImpl {
	return &UnholdServiceImpl{
		unholdRepo: unholdRepo,
		walletRepo: walletRepo,
		acctRepo:   acctRepo,
		txRepo:     txRepo,
		transactor: transactor,
		notifier:   notifier,
		userLocks:  newKeyMutex(),
		log:        log,
	}
}

// SubmitPaymentProof opens an unhold review, deducting the charge
// atomically with the request creation.
func (s *UnholdServiceImpl) SubmitPaymentProof(ctx context.Context, userID uuid.UUID, utrNumber string, charge decimal.Decimal) (*domain.UnholdRequest, error) {
	if utrNumber == "" {
		return nil, apperror.Validation("UTR number is required")
	}
	if charge.IsNegative() {
		return nil, apperror.ErrInvalidAmount()
	}

	s.userLocks.Lock(userID)
	defer s.userLocks.Unlock(userID)

	acct, err := s.acctRepo.Get(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get account: %w", err))
	}
	if acct == nil || !acct.OnHold {
		return nil, apperror.ErrInvalidState("account is not on hold")
	}

	latest, err := s.unholdRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get latest unhold: %w", err))
	}
	if latest != nil && latest.Status == domain.UnholdStatusPending {
		return nil, apperror.ErrDuplicateProof()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	u := &domain.UnholdRequest{
		ID:           uuid.New(),
		UserID:       userID,
		UnholdCharge: charge,
		UTRNumber:    utrNumber,
		Status:       domain.UnholdStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if charge.IsPositive() {
		newBalance, err := s.walletRepo.ApplyDelta(ctx, dbTx, userID, charge.Neg())
		if err != nil {
			if errors.Is(err, ports.ErrInsufficientBalance) {
				return nil, apperror.ErrInsufficientFunds()
			}
			return nil, apperror.InternalError(fmt.Errorf("deduct charge: %w", err))
		}

		if err := s.txRepo.Create(ctx, dbTx, &domain.Transaction{
			ID:           uuid.New(),
			UserID:       userID,
			Type:         domain.TransactionTypeUnholdCharge,
			Amount:       charge,
			Status:       domain.TransactionStatusCompleted,
			Description:  "Account unhold review charge",
			BalanceAfter: &newBalance,
			Reference:    u.ID,
			CreatedAt:    now,
		}); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create charge entry: %w", err))
		}
	}

	if err := s.unholdRepo.Create(ctx, dbTx, u); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create unhold request: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("unhold_id", u.ID.String()).
		Str("user_id", userID.String()).
		Str("charge", charge.String()).
		Msg("unhold request submitted")

	return u, nil
}

// Approve lifts the account hold. The wallet is never touched here: the
// charge already moved at submission. Frozen ledger entries settle.
func (s *UnholdServiceImpl) Approve(ctx context.Context, caller ports.Caller, requestID uuid.UUID) (*domain.UnholdRequest, error) {
	if !caller.IsAdmin {
		return nil, apperror.ErrForbidden()
	}

	u, err := s.resolve(ctx, requestID, domain.UnholdStatusApproved)
	if err != nil {
		return nil, err
	}

	s.publishAccount(ctx, u.UserID, "ACTIVE")
	s.log.Info().Str("unhold_id", requestID.String()).Msg("unhold approved")
	return u, nil
}

// Reject refuses the review and refunds the charge exactly once. The
// account stays on hold.
func (s *UnholdServiceImpl) Reject(ctx context.Context, caller ports.Caller, requestID uuid.UUID, reason string) (*domain.UnholdRequest, error) {
	if !caller.IsAdmin {
		return nil, apperror.ErrForbidden()
	}

	u, err := s.resolve(ctx, requestID, domain.UnholdStatusRejected)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("unhold_id", requestID.String()).Str("reason", reason).Msg("unhold rejected")
	return u, nil
}

// GetStatus returns the user's most recent unhold request.
func (s *UnholdServiceImpl) GetStatus(ctx context.Context, userID uuid.UUID) (*domain.UnholdRequest, error) {
	u, err := s.unholdRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get latest unhold: %w", err))
	}
	if u == nil {
		return nil, apperror.ErrNotFound("unhold request")
	}
	return u, nil
}

func (s *UnholdServiceImpl) resolve(ctx context.Context, requestID uuid.UUID, next domain.UnholdStatus) (*domain.UnholdRequest, error) {
	peek, err := s.unholdRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get unhold request: %w", err))
	}
	if peek == nil {
		return nil, apperror.ErrNotFound("unhold request")
	}

	s.userLocks.Lock(peek.UserID)
	defer s.userLocks.Unlock(peek.UserID)

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	u, err := s.unholdRepo.GetByIDForUpdate(ctx, dbTx, requestID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock unhold request: %w", err))
	}
	if u == nil {
		return nil, apperror.ErrNotFound("unhold request")
	}
	if u.Status != domain.UnholdStatusPending {
		return nil, apperror.ErrInvalidState(fmt.Sprintf("unhold request already %s", u.Status))
	}

	switch next {
	case domain.UnholdStatusApproved:
		if err := s.acctRepo.SetOnHold(ctx, dbTx, u.UserID, false); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("lift account hold: %w", err))
		}
		if err := s.acctRepo.SetWithdrawalBlocked(ctx, dbTx, u.UserID, false); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("unblock withdrawals: %w", err))
		}
		// Entries frozen by the hold settle now.
		if err := s.txRepo.UpdateStatusByUser(ctx, dbTx, u.UserID,
			domain.TransactionStatusOnHold, domain.TransactionStatusCompleted); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("settle held entries: %w", err))
		}

	case domain.UnholdStatusRejected:
		if u.UnholdCharge.IsPositive() && !u.Refunded {
			newBalance, err := s.walletRepo.ApplyDelta(ctx, dbTx, u.UserID, u.UnholdCharge)
			if err != nil {
				return nil, apperror.InternalError(fmt.Errorf("refund charge: %w", err))
			}
			u.Refunded = true

			if err := s.txRepo.Create(ctx, dbTx, &domain.Transaction{
				ID:           uuid.New(),
				UserID:       u.UserID,
				Type:         domain.TransactionTypeUnholdRefund,
				Amount:       u.UnholdCharge,
				Status:       domain.TransactionStatusCompleted,
				Description:  "Unhold charge refund",
				BalanceAfter: &newBalance,
				Reference:    u.ID,
				CreatedAt:    time.Now().UTC(),
			}); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("create refund entry: %w", err))
			}
			metrics.LedgerRefunds.Inc()
		}
	}

	u.Status = next

	if err := s.unholdRepo.Update(ctx, dbTx, u); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update unhold request: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	return u, nil
}

func (s *UnholdServiceImpl) publishAccount(ctx context.Context, userID uuid.UUID, status string) {
	if err := s.notifier.PublishAccount(ctx, ports.AccountEvent{UserID: userID, Status: status}); err != nil {
		s.log.Warn().Err(err).
			Str("user_id", userID.String()).
			Msg("failed to publish account event")
	}
}
