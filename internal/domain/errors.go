// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when a request carries no valid principal.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the authorization policy denies an
	// operation for the acting principal.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError describes a validation failure on a specific field.
// It wraps ErrValidation (or a more specific sentinel) so callers can
// classify it with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// validationSentinels lists every entity validation error so callers can
// classify them without enumerating each one.
var validationSentinels = []error{
	ErrValidation,
	ErrInvalidID,
	ErrEmptyUserID,
	ErrEmptyName,
	ErrEmptyUsername,
	ErrEmptyEmail,
	ErrInvalidEmail,
	ErrInvalidRole,
	ErrEmptyPassword,
	ErrPasswordTooLong,
	ErrEmptyHashedPassword,
	ErrVerbIDEmpty,
	ErrVerbPairIDEmpty,
	ErrVerbRootEmpty,
	ErrInvalidConjugationType,
	ErrInvalidAspectContent,
	ErrInvalidTranslations,
	ErrNounIDEmpty,
	ErrNounEmpty,
	ErrInvalidGender,
	ErrInvalidDeclension,
	ErrGroupIDEmpty,
	ErrGroupNameEmpty,
	ErrGroupOwnerIDEmpty,
}

// IsValidationError reports whether err is (or wraps) any entity
// validation error.
func IsValidationError(err error) bool {
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
