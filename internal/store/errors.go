package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrVersionConflict is returned when an optimistic-concurrency update
	// finds that the entity changed since it was read. Callers should
	// re-read the latest version and retry the transition.
	ErrVersionConflict = errors.New("version conflict")

	// ErrUpdateFailed is returned when an update operation fails, for example
	// because the entity does not exist or the update violates constraints.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrItemNotFound indicates that the requested clothing item does not exist.
	ErrItemNotFound = fmt.Errorf("%w: clothing item", ErrNotFound)

	// ErrLaundryEntryNotFound indicates that the item has no active laundry entry.
	ErrLaundryEntryNotFound = fmt.Errorf("%w: laundry entry", ErrNotFound)

	// ErrRecommendationNotFound indicates that the requested recommendation does not exist.
	ErrRecommendationNotFound = fmt.Errorf("%w: recommendation", ErrNotFound)

	// ErrFeedbackNotFound indicates that the requested feedback does not exist.
	ErrFeedbackNotFound = fmt.Errorf("%w: feedback", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrDuplicateFeedback indicates that the user already submitted feedback
	// for this recommendation.
	ErrDuplicateFeedback = fmt.Errorf("%w: feedback", ErrDuplicate)

	// ErrDuplicateLaundryEntry indicates that the item already has an active
	// laundry entry.
	ErrDuplicateLaundryEntry = fmt.Errorf("%w: laundry entry", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "clothing_item", "feedback")
	Operation string // The operation that failed (e.g., "create", "update")
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
