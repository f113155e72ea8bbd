package apperrors

import (
	"errors"
	"fmt"
)

// Ledger rule violations. The HTTP layer maps each to a 4xx status.
var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	// ErrAlreadyExists is the duplicate-record error (phone collision).
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrOverpayment rejects a payment larger than the outstanding balance.
	ErrOverpayment = errors.New("payment exceeds outstanding balance")

	// ErrAlreadySettled rejects any payment while the balance is zero.
	ErrAlreadySettled = errors.New("customer has already settled all loans")

	ErrUnauthorized = errors.New("unauthorized")
)

// Infrastructure failures. Never shown to clients in detail.
var (
	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// DatabaseError is a store failure that is not a ledger rule: lost
// connections, bad SQL, constraint types the ledger does not model.
type DatabaseError struct {
	Backend string
	Err     error
}

func (e *DatabaseError) Error() string {
	if e.Backend == "" {
		return fmt.Sprintf("database error: %v", e.Err)
	}
	return fmt.Sprintf("%s: database error: %v", e.Backend, e.Err)
}

// Unwrap exposes both ErrDatabase and the driver error to errors.Is/As.
func (e *DatabaseError) Unwrap() []error {
	return []error{ErrDatabase, e.Err}
}

func WrapDatabaseError(cause error, backend string) error {
	if cause == nil {
		return nil
	}
	return &DatabaseError{Backend: backend, Err: cause}
}

// Code returns the stable machine-readable code used in API error bodies.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidArgument):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrAlreadyExists):
		return "DUPLICATE"
	case errors.Is(err, ErrOverpayment):
		return "OVERPAYMENT"
	case errors.Is(err, ErrAlreadySettled):
		return "ALREADY_SETTLED"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrDatabase):
		return "DB_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
