// Package common defines sentinel errors and small helpers shared by the
// SWMS client packages. Callers should match errors with errors.Is.
package common

import (
	"errors"
	"fmt"
)

var (
	// Lookup errors.
	ErrNotFound        = errors.New("not found")
	ErrAccountNotFound = errors.New("account not found")

	// Authentication and authorisation errors.
	ErrInvalidCredential = errors.New("invalid credential")
	ErrForbidden         = errors.New("forbidden")

	// Write-time validation errors; the registry is left unchanged.
	ErrValidation     = errors.New("validation error")
	ErrDuplicateEmail = errors.New("email already registered")

	// Storage medium errors. These are logged by the store and never
	// surfaced to the operator.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrParseFailure       = errors.New("stored value could not be parsed")
)

// ValidationError describes which input field was rejected and why.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
