package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")

	// ErrNoActiveVideo is returned when no video can be resolved for a
	// session: no explicit id was supplied and the user's watch history
	// contains no non-placeholder entries.
	ErrNoActiveVideo = errors.New("no videos found")

	// ErrNotReady is returned by session operations that require the
	// session to have finished loading.
	ErrNotReady = errors.New("session not ready")

	// ErrTranscriptUnavailable is returned by the transcript provider when
	// no transcript exists for the requested video.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	// ErrBadSchema is returned when an AI generator's response does not
	// parse against the expected JSON schema.
	ErrBadSchema = errors.New("response does not match expected schema")
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
