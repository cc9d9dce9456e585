package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrValidation        = errors.New("validation error")
	ErrRecipientRequired = errors.New("recipient required")
	ErrConfiguration     = errors.New("configuration error")
	ErrUnavailable       = errors.New("storage unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ConfigurationError reports a stored policy whose mode is not one of the
// known distribution modes. It is surfaced to the caller, never auto-corrected.
type ConfigurationError struct {
	GameID string
	Mode   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("game %s: unknown distribution mode %q", e.GameID, e.Mode)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// UnavailableError wraps a storage failure observed while reading or writing
// catalog, policy, or ledger state. The cause is carried for logging; callers
// match on ErrUnavailable.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }
