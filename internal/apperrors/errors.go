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

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrPersistence indicates a storage-layer failure (network/disk). Callers
// retry these with backoff; transactionality guarantees no partial state
// was left behind.
var ErrPersistence = errors.New("persistence failure")

// AppError wraps a lower-level error with a status-like code and a
// message suitable for logging. It unwraps to the underlying error so
// errors.Is/As keep working through it.
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

// NewAppError builds an AppError around err. Storage failures (code >= 500)
// additionally match ErrPersistence so callers can treat them as retryable.
func NewAppError(code int, message string, err error) *AppError {
	if code >= 500 {
		if err == nil {
			err = ErrPersistence
		} else if !errors.Is(err, ErrPersistence) {
			err = fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	return &AppError{Code: code, Message: message, Err: err}
}
