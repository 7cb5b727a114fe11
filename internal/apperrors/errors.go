package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrConflict indicates that an atomic apply failed due to a concurrent
// mutation. Callers are expected to re-run the same logical operation from a
// fresh read; retry policy (backoff, max attempts) is a caller concern.
var ErrConflict = errors.New("conflict with concurrent modification")

// ErrInvalidPricingInput indicates malformed cart or line data (quantity <= 0,
// negative unit price, negative tax rate). Detected before any state mutation.
var ErrInvalidPricingInput = errors.New("invalid pricing input")

// ErrInsufficientStock indicates that available stock cannot cover a
// reservation and the product does not allow negative stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidStateTransition indicates an operation was attempted outside its
// legal lifecycle state. This is a usage error and is never auto-retried.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrPaymentShortfall indicates finalize was called while the tendered amount
// does not yet cover the grand total. Recoverable by adding more tenders.
var ErrPaymentShortfall = errors.New("tendered amount does not cover grand total")

// ErrShiftAlreadyOpen indicates the terminal already has an open shift session.
var ErrShiftAlreadyOpen = errors.New("shift session already open for terminal")

// ErrShiftClosed indicates a cash-affecting operation was attempted against a
// closed shift session. Late cash deltas must be queued against the next
// opened session by the caller, never retried into the closed one.
var ErrShiftClosed = errors.New("shift session is closed")

// AppError wraps a lower-level error with a status code and a message.
// Used primarily by the repository layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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
