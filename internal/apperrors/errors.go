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

// ErrUnauthorized indicates a missing or invalid session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource is in a state that does not allow the operation.
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected failure (e.g. backing store unavailable).
var ErrInternal = errors.New("internal error")

// Domain specific errors. Each wraps one of the generic sentinels above so handlers
// can map them with errors.Is.
var (
	ErrDuplicateCode        = fmt.Errorf("%w: account code already exists in organization", ErrDuplicate)
	ErrDuplicateCheckNumber = fmt.Errorf("%w: check number already exists in organization", ErrDuplicate)
	ErrDuplicateEntryNumber = fmt.Errorf("%w: journal entry number already exists in organization", ErrDuplicate)
	ErrInvalidParent        = fmt.Errorf("%w: parent account not found in organization", ErrValidation)
	ErrUnbalancedEntry      = fmt.Errorf("%w: journal entry debits and credits do not balance", ErrValidation)
	ErrCheckAlreadyCleared  = fmt.Errorf("%w: check is already cleared", ErrConflict)
	ErrAccountingDisabled   = fmt.Errorf("%w: accounting is not enabled for this organization", ErrForbidden)
)

// AppError carries an HTTP-style status code alongside the wrapped error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
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
