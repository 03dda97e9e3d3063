package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// ClothingItemStore defines the interface for clothing item persistence.
type ClothingItemStore interface {
	// Create saves a new clothing item.
	// It handles domain validation internally.
	// Returns validation errors from the domain ClothingItem if data is invalid.
	Create(ctx context.Context, item *domain.ClothingItem) error

	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ClothingItem, error)

	// ListByOwner retrieves all items owned by a user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.ClothingItem, error)

	// Update persists a state transition under optimistic concurrency.
	// The item's Version field must hold the version the caller read; on
	// success the stored version is incremented and the item's Version
	// field is updated to match. Returns ErrVersionConflict if the stored
	// version no longer matches, in which case the caller should re-read
	// and retry the transition against the latest state.
	// Returns ErrItemNotFound if the item does not exist.
	Update(ctx context.Context, item *domain.ClothingItem) error

	// Delete removes an item from the store by its ID.
	// Returns ErrItemNotFound if the item does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ClothingItemStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ClothingItemStore
}
