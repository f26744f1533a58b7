package model

import (
	"errors"
	"fmt"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON   = "INVALID_JSON"
	ErrCodeValidation    = "VALIDATION_FAILED"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnauthorised  = "UNAUTHORIZED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// NotFoundError is returned by services when an id does not resolve to a live aggregate.
type NotFoundError struct {
	ID        string
	Aggregate string
}

// NewNotFoundError creates a NotFoundError for the given aggregate.
func NewNotFoundError(id, aggregate string) *NotFoundError {
	return &NotFoundError{ID: id, Aggregate: aggregate}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s was not found", e.Aggregate, e.ID)
}

// ValidationError reports malformed input rejected before any store access.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PersistenceError wraps a store-level failure on read or commit.
type PersistenceError struct {
	Op  string
	Err error
}

// NewPersistenceError wraps err with the failed operation name.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// MappingConfigurationError is raised at startup when a destination field
// has neither a matching source field nor an explicit rule.
type MappingConfigurationError struct {
	Source string
	Target string
	Field  string
}

func (e *MappingConfigurationError) Error() string {
	return fmt.Sprintf("mapping %s -> %s: destination field %q has no source and no rule", e.Source, e.Target, e.Field)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPersistence reports whether err is, or wraps, a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
