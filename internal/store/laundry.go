package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// LaundryEntryStore defines the interface for laundry entry persistence.
// At most one active entry exists per clothing item.
type LaundryEntryStore interface {
	// Create saves a new laundry entry.
	// Returns ErrDuplicateLaundryEntry if the item already has an active entry.
	Create(ctx context.Context, entry *domain.LaundryEntry) error

	// GetActiveByItem retrieves the active entry for an item.
	// Returns ErrLaundryEntryNotFound if the item has no active entry.
	GetActiveByItem(ctx context.Context, itemID uuid.UUID) (*domain.LaundryEntry, error)

	// Update modifies an existing entry (status progression, closing).
	// Returns ErrLaundryEntryNotFound if the entry does not exist.
	Update(ctx context.Context, entry *domain.LaundryEntry) error

	// Delete removes an entry, used when an item leaves the laundry bag
	// without being washed.
	// Returns ErrLaundryEntryNotFound if the entry does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new LaundryEntryStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) LaundryEntryStore
}
