// Package models defines the error taxonomy shared across FitFlow modules.
package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions callers branch on with errors.Is.
var (
	// ErrProfileNotFound indicates an operation that requires a profile
	// was invoked for a user that has not completed profile setup.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrNoActiveSession indicates a turn arrived for a user with no
	// in-progress dialog.
	ErrNoActiveSession = errors.New("no active session")
)

// ValidationError reports bad user input. It is recoverable: the session
// manager re-prompts the same state instead of advancing. Message is safe
// to show to the end user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a user-facing message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ExternalServiceError reports a failure of an external collaborator
// (temperature lookup, food search). It aborts the in-progress flow step;
// the underlying cause is logged but never shown to the user.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service %s failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// StoreError reports a persistence failure. No partial writes are assumed
// committed; the active session is destroyed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
