package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken     = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken     = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInsufficientBalance   = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE", "Balance cannot cover this transaction"}
	ErrBalanceOverflow       = &AppError{http.StatusUnprocessableEntity, "BALANCE_OVERFLOW", "Transaction would take the balance out of range"}
	ErrInvalidResource       = &AppError{http.StatusBadRequest, "INVALID_RESOURCE", "Resource must be coins, gems, or credits"}
	ErrInvalidWeeks          = &AppError{http.StatusBadRequest, "INVALID_WEEKS", "Forecast weeks out of range"}
	ErrMissingIdempotencyKey = &AppError{http.StatusBadRequest, "MISSING_IDEMPOTENCY_KEY", "Idempotency-Key header is required"}
	ErrIdempotencyConflict   = &AppError{http.StatusConflict, "IDEMPOTENCY_CONFLICT", "Idempotency key already used with a different request"}
	ErrIdempotencyInFlight   = &AppError{http.StatusConflict, "IDEMPOTENCY_IN_PROGRESS", "A request with this idempotency key is still being processed"}
)
