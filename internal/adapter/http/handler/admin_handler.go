package handler

import (
	"time"

	"brokerwallet/internal/adapter/http/dto"
	"brokerwallet/internal/adapter/http/middleware"
	"brokerwallet/internal/core/ports"
	"brokerwallet/pkg/apperror"
	"brokerwallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles the admin review endpoints.
type AdminHandler struct {
	withdrawalSvc ports.WithdrawalService
	unholdSvc     ports.UnholdService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(withdrawalSvc ports.WithdrawalService, unholdSvc ports.UnholdService) *AdminHandler {
	return &AdminHandler{withdrawalSvc: withdrawalSvc, unholdSvc: unholdSvc}
}

// StartProcessing handles POST /api/v1/admin/withdrawals/:id/process.
func (h *AdminHandler) StartProcessing(c *gin.Context) {
	caller, withdrawalID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	var req dto.StartProcessingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.withdrawalSvc.StartProcessing(c.Request.Context(), caller, withdrawalID,
		time.Duration(req.WindowMinutes)*time.Minute)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWithdrawal(result))
}

// Approve handles POST /api/v1/admin/withdrawals/:id/approve.
func (h *AdminHandler) Approve(c *gin.Context) {
	caller, withdrawalID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.withdrawalSvc.AdminApprove(c.Request.Context(), caller, withdrawalID, req.TransactionRef)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWithdrawal(result))
}

// Reject handles POST /api/v1/admin/withdrawals/:id/reject.
func (h *AdminHandler) Reject(c *gin.Context) {
	caller, withdrawalID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	var req dto.ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.withdrawalSvc.AdminReject(c.Request.Context(), caller, withdrawalID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWithdrawal(result))
}

// Hold handles POST /api/v1/admin/withdrawals/:id/hold.
func (h *AdminHandler) Hold(c *gin.Context) {
	caller, withdrawalID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	result, err := h.withdrawalSvc.AdminHold(c.Request.Context(), caller, withdrawalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWithdrawal(result))
}

// Fail handles POST /api/v1/admin/withdrawals/:id/fail.
func (h *AdminHandler) Fail(c *gin.Context) {
	caller, withdrawalID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	var req dto.ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.withdrawalSvc.AdminFail(c.Request.Context(), caller, withdrawalID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWithdrawal(result))
}

// ListWithdrawals handles GET /api/v1/admin/withdrawals.
func (h *AdminHandler) ListWithdrawals(c *gin.Context) {
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

// ApproveUnhold handles POST /api/v1/admin/unhold/:id/approve.
func (h *AdminHandler) ApproveUnhold(c *gin.Context) {
	caller, requestID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	result, err := h.unholdSvc.Approve(c.Request.Context(), caller, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromUnhold(result))
}

// RejectUnhold handles POST /api/v1/admin/unhold/:id/reject.
func (h *AdminHandler) RejectUnhold(c *gin.Context) {
	caller, requestID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	var req dto.ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.unholdSvc.Reject(c.Request.Context(), caller, requestID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromUnhold(result))
}

// adminTarget extracts the caller and the :id path parameter, writing
// the error response itself on failure.
func (h *AdminHandler) adminTarget(c *gin.Context) (ports.Caller, uuid.UUID, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return ports.Caller{}, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid request id"))
		return ports.Caller{}, uuid.Nil, false
	}

	return caller, id, true
}
