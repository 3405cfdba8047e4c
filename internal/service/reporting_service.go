package service

import (
	"context"
	"fmt"

	"brokerwallet/internal/core/domain"
	"brokerwallet/internal/core/ports"
	"brokerwallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReportingServiceImpl implements ports.ReportingService: the read side
// consumed by the wallet UI.
type ReportingServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	log        zerolog.Logger
}

// NewReportingService creates a new ReportingServiceImpl.
func NewReportingService(walletRepo ports.WalletRepository, txRepo ports.TransactionRepository, log zerolog.Logger) *ReportingServiceImpl {
	return &ReportingServiceImpl{walletRepo: walletRepo, txRepo: txRepo, log: log}
}

// GetWalletBalance returns the user's wallet.
func (s *ReportingServiceImpl) GetWalletBalance(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	w, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return w, nil
}

// ListTransactions returns the user's ledger entries, newest first.
func (s *ReportingServiceImpl) ListTransactions(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	result, total, err := s.txRepo.ListByUser(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return result, total, nil
}
