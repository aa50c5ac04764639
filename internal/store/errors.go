package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. Entity-specific variants wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a
	// uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or
	// violates a referential constraint before being stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors.

	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)
	ErrVerbNotFound = fmt.Errorf("%w: verb", ErrNotFound)
	ErrNounNotFound = fmt.Errorf("%w: noun", ErrNotFound)

	// ErrGroupNotFound covers both verb and noun groups.
	ErrGroupNotFound = fmt.Errorf("%w: group", ErrNotFound)

	// ErrLinkNotFound indicates that no student-teacher link exists for
	// the given pair.
	ErrLinkNotFound = fmt.Errorf("%w: student-teacher link", ErrNotFound)

	// Entity-specific "duplicate" errors.

	ErrEmailExists    = fmt.Errorf("%w: email", ErrDuplicate)
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
	ErrVerbPairExists = fmt.Errorf("%w: verb pair", ErrDuplicate)
	ErrNounExists     = fmt.Errorf("%w: noun", ErrDuplicate)

	// ErrStudentAlreadyLinked indicates the student already has a linked
	// teacher. A student has at most one teacher.
	ErrStudentAlreadyLinked = fmt.Errorf("%w: student link", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific failures with
// additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "verb")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}
