package domain

import (
	"errors"
	"fmt"
)

// ErrForbidden is returned when the actor may not touch the resource
var ErrForbidden = errors.New("forbidden")

// ConflictError reports a uniqueness violation on a named field.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// NewConflict creates a conflict error for the given field
func NewConflict(field, value string) *ConflictError {
	return &ConflictError{Field: field, Value: value}
}

// AsConflict extracts a ConflictError from an error chain, if present
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a validation error with a field-level message
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AsValidation extracts a ValidationError from an error chain, if present
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
