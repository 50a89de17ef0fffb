package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested key does not exist in a collection.
	ErrNotFound = errors.New("entity not found")

	// ErrUnknownCollection is returned when a collection name is not one of
	// Collections.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrInvalidEntity is returned when a stored document cannot be decoded
	// or an entity fails validation before being stored. Check the wrapped
	// error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when buffered writes could not be applied.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrClosed is returned by stores used after Close.
	ErrClosed = errors.New("store closed")
)

// IsNotFoundError checks if the error is a missing key.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ValidateCollection returns ErrUnknownCollection for names outside Collections.
func ValidateCollection(name string) error {
	for _, c := range Collections {
		if c == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCollection, name)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The collection or entity (e.g., "decks", "stats")
	Operation string // The operation that failed (e.g., "get", "apply")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
