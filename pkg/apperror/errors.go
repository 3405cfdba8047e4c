package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Withdrawal Business Logic (WDR) ----

func ErrNotFound(entity string) *AppError {
	return New("WDR_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ErrInvalidState is returned when a transition is attempted from a status
// that does not permit it, including stale-timer races.
func ErrInvalidState(detail string) *AppError {
	return New("WDR_002", fmt.Sprintf("Invalid state: %s", detail), http.StatusConflict)
}

func ErrInsufficientFunds() *AppError {
	return New("WDR_003", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrAccountBlocked() *AppError {
	return New("WDR_004", "Withdrawals are blocked for this account", http.StatusForbidden)
}

func ErrInvalidAmount() *AppError {
	return New("WDR_005", "Invalid amount", http.StatusBadRequest)
}

func ErrDuplicateProof() *AppError {
	return New("WDR_006", "Payment proof already submitted", http.StatusConflict)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_002", "Administrator privilege required", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a WDR_005-style validation error with a custom message.
func Validation(message string) *AppError {
	return New("WDR_005", message, http.StatusBadRequest)
}
