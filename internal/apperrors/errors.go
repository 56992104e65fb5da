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

// ErrInvalidSchedule indicates that the schedule calculator received inputs it cannot work with.
var ErrInvalidSchedule = errors.New("invalid schedule parameters")

// ErrInvalidPayment indicates a payment that can never be applied as submitted.
var ErrInvalidPayment = errors.New("invalid payment")

// ErrOverpayment indicates a payment larger than the outstanding remainder of the installment.
var ErrOverpayment = errors.New("payment exceeds outstanding amount")

// ErrScheduleLocked indicates that a schedule with payment history cannot be regenerated.
var ErrScheduleLocked = errors.New("schedule has recorded payments")

// ErrConflict indicates a concurrent modification. Callers may retry the whole read-modify-write.
var ErrConflict = errors.New("concurrent modification")

// ErrExternalSystem indicates that the external ledger rejected or did not answer a request.
var ErrExternalSystem = errors.New("external system error")

// ErrPersistence indicates that storage is unavailable or failed unexpectedly.
var ErrPersistence = errors.New("persistence error")

// AppError carries an HTTP-like status code next to the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the error marks a conflict that the caller can retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}
