package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists,
// including idempotency hits on a ledger external reference.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller does not own the resource they are operating on.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInsufficientFunds indicates a wallet debit larger than the current balance.
var ErrInsufficientFunds = errors.New("insufficient wallet balance")

// ErrImmutableField indicates an update attempted to change a field that is fixed after creation.
var ErrImmutableField = errors.New("field is immutable")

// ErrInvalidTransition indicates an illegal lifecycle status change.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrPaymentNotCompleted indicates the external checkout session is not in a paid state.
var ErrPaymentNotCompleted = errors.New("payment not completed")

// ErrGatewayUnavailable indicates the payment gateway could not be reached; callers may retry.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInvalidRefreshToken indicates the presented refresh token does not match the stored one.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// AppError wraps a low-level error with an HTTP-ish status code and a message
// safe to surface to callers. Used mainly by the repository layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
