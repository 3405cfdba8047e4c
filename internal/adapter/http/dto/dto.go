package dto

import (
	"github.com/shopspring/decimal"

	"brokerwallet/internal/core/domain"
)

// ---- Requests ----

// WithdrawRequest is the body for POST /withdrawals.
type WithdrawRequest struct {
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	BankDetails       string          `json:"bank_details" binding:"required,max=256"`
	DeductImmediately bool            `json:"deduct_immediately"`
}

// PaymentProofRequest is the body for POST /withdrawals/:id/proof.
type PaymentProofRequest struct {
	UTRNumber    string          `json:"utr_number" binding:"required,max=64"`
	ServerCharge decimal.Decimal `json:"server_charge"`
	ProofRef     string          `json:"proof_ref" binding:"max=256"`
}

// StartProcessingRequest is the body for the admin process endpoint.
type StartProcessingRequest struct {
	WindowMinutes int `json:"window_minutes" binding:"required,gt=0,lte=1440"`
}

// ApproveRequest is the body for the admin approve endpoint.
type ApproveRequest struct {
	TransactionRef string `json:"transaction_ref" binding:"required,max=64"`
}

// ReasonRequest is the body for reject/fail endpoints.
type ReasonRequest struct {
	Reason string `json:"reason" binding:"required,max=256"`
}

// UnholdSubmitRequest is the body for POST /unhold.
type UnholdSubmitRequest struct {
	UTRNumber    string          `json:"utr_number" binding:"required,max=64"`
	UnholdCharge decimal.Decimal `json:"unhold_charge"`
}

// ---- Responses ----

// WithdrawalResponse is the wire shape of a withdrawal request.
type WithdrawalResponse struct {
	ID               string          `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	ServerCharge     decimal.Decimal `json:"server_charge"`
	BankDetails      string          `json:"bank_details"`
	Status           string          `json:"status"`
	FailureReason    *string         `json:"failure_reason,omitempty"`
	UTRNumber        *string         `json:"utr_number,omitempty"`
	TransactionRef   *string         `json:"transaction_ref,omitempty"`
	ProcessingEndsAt *string         `json:"processing_ends_at,omitempty"`
	CreatedAt        string          `json:"created_at"`
}

// UnholdResponse is the wire shape of an unhold request.
type UnholdResponse struct {
	ID           string          `json:"id"`
	UnholdCharge decimal.Decimal `json:"unhold_charge"`
	UTRNumber    string          `json:"utr_number"`
	Status       string          `json:"status"`
	Refunded     bool            `json:"refunded"`
	CreatedAt    string          `json:"created_at"`
}

// WalletResponse is the wire shape of a wallet.
type WalletResponse struct {
	Balance       decimal.Decimal `json:"balance"`
	LockedBalance decimal.Decimal `json:"locked_balance"`
	UsedBalance   decimal.Decimal `json:"used_balance"`
}

// TransactionResponse is the wire shape of a ledger entry.
type TransactionResponse struct {
	ID           string           `json:"id"`
	Type         string           `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	Status       string           `json:"status"`
	Description  string           `json:"description"`
	BalanceAfter *decimal.Decimal `json:"balance_after,omitempty"`
	Reference    string           `json:"reference"`
	CreatedAt    string           `json:"created_at"`
}

// ListResponse wraps a page of items with the total count.
type ListResponse struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// FromWithdrawal converts a domain withdrawal to its wire shape.
func FromWithdrawal(w *domain.WithdrawalRequest) WithdrawalResponse {
	resp := WithdrawalResponse{
		ID:             w.ID.String(),
		Amount:         w.Amount,
		ServerCharge:   w.ServerCharge,
		BankDetails:    w.BankDetails,
		Status:         string(w.Status),
		FailureReason:  w.FailureReason,
		UTRNumber:      w.UTRNumber,
		TransactionRef: w.TransactionRef,
		CreatedAt:      w.CreatedAt.Format(timeLayout),
	}
	if w.ProcessingEndsAt != nil {
		s := w.ProcessingEndsAt.Format(timeLayout)
		resp.ProcessingEndsAt = &s
	}
	return resp
}

// FromWithdrawals converts a page of domain withdrawals.
func FromWithdrawals(ws []domain.WithdrawalRequest) []WithdrawalResponse {
	out := make([]WithdrawalResponse, 0, len(ws))
	for i := range ws {
		out = append(out, FromWithdrawal(&ws[i]))
	}
	return out
}

// FromUnhold converts a domain unhold request to its wire shape.
func FromUnhold(u *domain.UnholdRequest) UnholdResponse {
	return UnholdResponse{
		ID:           u.ID.String(),
		UnholdCharge: u.UnholdCharge,
		UTRNumber:    u.UTRNumber,
		Status:       string(u.Status),
		Refunded:     u.Refunded,
		CreatedAt:    u.CreatedAt.Format(timeLayout),
	}
}

// FromWallet converts a domain wallet to its wire shape.
func FromWallet(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		Balance:       w.Balance,
		LockedBalance: w.LockedBalance,
		UsedBalance:   w.UsedBalance,
	}
}

// FromTransaction converts a domain ledger entry to its wire shape.
func FromTransaction(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID.String(),
		Type:         string(t.Type),
		Amount:       t.Amount,
		Status:       string(t.Status),
		Description:  t.Description,
		BalanceAfter: t.BalanceAfter,
		Reference:    t.Reference.String(),
		CreatedAt:    t.CreatedAt.Format(timeLayout),
	}
}

// FromTransactions converts a page of domain ledger entries.
func FromTransactions(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for i := range ts {
		out = append(out, FromTransaction(&ts[i]))
	}
	return out
}
