package handler

import (
	"strconv"

	"brokerwallet/internal/adapter/http/dto"
	"brokerwallet/internal/adapter/http/middleware"
	"brokerwallet/internal/core/domain"
	"brokerwallet/internal/core/ports"
	"brokerwallet/pkg/apperror"
	"brokerwallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WithdrawalHandler handles the user-facing withdrawal endpoints.
type WithdrawalHandler struct {
	withdrawalSvc ports.WithdrawalService
	unholdSvc     ports.UnholdService
	reportingSvc  ports.ReportingService
}

// NewWithdrawalHandler creates a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawalSvc ports.WithdrawalService, unholdSvc ports.UnholdService, reportingSvc ports.ReportingService) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalSvc: withdrawalSvc,
		unholdSvc:     unholdSvc,
		reportingSvc:  reportingSvc,
	}
}

// RequestWithdrawal handles POST /api/v1/withdrawals.
func (h *WithdrawalHandler) RequestWithdrawal(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.withdrawalSvc.RequestWithdrawal(c.Request.Context(), ports.WithdrawRequest{
		UserID:            caller.UserID,
		Amount:            req.Amount,
		BankDetails:       req.BankDetails,
		DeductImmediately: req.DeductImmediately,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromWithdrawal(result))
}

// SubmitPaymentProof handles POST /api/v1/withdrawals/:id/proof.
func (h *WithdrawalHandler) SubmitPaymentProof(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	withdrawalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid withdrawal id"))
		return
	}

	var req dto.PaymentProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.withdrawalSvc.SubmitPaymentProof(c.Request.Context(), ports.PaymentProofRequest{
		UserID:       caller.UserID,
		WithdrawalID: withdrawalID,
		UTRNumber:    req.UTRNumber,
		ServerCharge: req.ServerCharge,
		ProofRef:     req.ProofRef,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWithdrawal(result))
}

// GetLatestStatus handles GET /api/v1/withdrawals/latest.
func (h *WithdrawalHandler) GetLatestStatus(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	result, err := h.withdrawalSvc.GetLatestStatus(c.Request.Context(), caller.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWithdrawal(result))
}

// ListWithdrawals handles GET /api/v1/withdrawals.
func (h *WithdrawalHandler) ListWithdrawals(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	params := parseWithdrawalListParams(c)
	result, total, err := h.withdrawalSvc.List(c.Request.Context(), caller, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ListResponse{
		Items:    dto.FromWithdrawals(result),
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
}

// GetWalletBalance handles GET /api/v1/wallet/balance.
func (h *WithdrawalHandler) GetWalletBalance(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallet, err := h.reportingSvc.GetWalletBalance(c.Request.Context(), caller.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWallet(wallet))
}

// ListTransactions handles GET /api/v1/transactions.
func (h *WithdrawalHandler) ListTransactions(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	params := ports.TransactionListParams{
		UserID:   caller.UserID,
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if s := c.Query("type"); s != "" {
		tt := domain.TransactionType(s)
		params.Type = &tt
	}
	if s := c.Query("status"); s != "" {
		ts := domain.TransactionStatus(s)
		params.Status = &ts
	}

	result, total, err := h.reportingSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ListResponse{
		Items:    dto.FromTransactions(result),
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
}

// SubmitUnholdProof handles POST /api/v1/unhold.
func (h *WithdrawalHandler) SubmitUnholdProof(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.UnholdSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.unholdSvc.SubmitPaymentProof(c.Request.Context(), caller.UserID, req.UTRNumber, req.UnholdCharge)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromUnhold(result))
}

// GetUnholdStatus handles GET /api/v1/unhold/status.
func (h *WithdrawalHandler) GetUnholdStatus(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	result, err := h.unholdSvc.GetStatus(c.Request.Context(), caller.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromUnhold(result))
}

func parseWithdrawalListParams(c *gin.Context) ports.WithdrawalListParams {
	params := ports.WithdrawalListParams{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if s := c.Query("status"); s != "" {
		st := domain.WithdrawalStatus(s)
		params.Status = &st
	}
	if s := c.Query("user_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			params.UserID = &id
		}
	}
	return params
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if s := c.Query(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
