package types

import "errors"

var (
	// ErrValidation matches every *ValidationError via errors.Is
	ErrValidation = errors.New("order validation failed")

	// ErrOrderNotFound is returned by lookups for an id that is not resting in the book
	ErrOrderNotFound = errors.New("order not found")

	// ErrInternal matches every *InternalError via errors.Is
	ErrInternal = errors.New("internal engine error")
)

// ValidationError reports the first rule an order request failed.
// The book and trade log are untouched when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a validation error for the given field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InternalError is an unexpected failure detected inside the engine
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// NewInternalError wraps err as an internal failure of op
func NewInternalError(op string, err error) *InternalError {
	return &InternalError{Op: op, Err: err}
}
