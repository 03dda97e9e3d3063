// Package wardrobe implements clothing item management: creation, listing,
// and every cleanliness lifecycle transition, applied under optimistic
// concurrency with bounded retries.
package wardrobe

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// WardrobeService provides methods for managing a user's clothing items
// and driving them through the wear/wash lifecycle.
type WardrobeService interface {
	// CreateItem registers a new clothing item for the owner. The item
	// starts FRESH with a full freshness score. An empty embedding is
	// replaced by one derived from the attributes.
	CreateItem(
		ctx context.Context,
		ownerID uuid.UUID,
		attrs domain.ItemAttributes,
		embedding []float64,
		pref domain.WashPreference,
	) (*domain.ClothingItem, error)

	// GetItem retrieves an item, enforcing ownership.
	//
	// Returns ErrItemNotFound if the item does not exist and
	// ErrItemNotOwned if it belongs to a different user.
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error)

	// ListItems retrieves all items owned by a user.
	ListItems(ctx context.Context, ownerID uuid.UUID) ([]*domain.ClothingItem, error)

	// DeleteItem removes an item, enforcing ownership.
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error

	// RecordWear applies one worn event: wear count up, freshness decayed
	// per the item's wash preference, status re-derived. The write retries
	// on version conflicts; ErrTransitionConflict is returned when every
	// attempt lost the race.
	RecordWear(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error)

	// AddToLaundry moves the item into the laundry bag and opens its
	// laundry entry. expectedReturn may be zero when the user gave no
	// estimate.
	AddToLaundry(ctx context.Context, userID, itemID uuid.UUID, expectedReturn time.Time) (*domain.ClothingItem, error)

	// RemoveFromLaundry takes an unwashed item back out of the laundry
	// bag. Its status reverts to whatever its freshness score derives and
	// the laundry entry is deleted, as if the trip never happened.
	RemoveFromLaundry(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error)

	// MarkWashed records that the item has been washed but is not yet
	// back in rotation.
	MarkWashed(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error)

	// ReturnToRotation brings a washed item back at READY_TO_WEAR with a
	// full score and zero wears, closing its laundry entry.
	ReturnToRotation(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error)

	// UpdateWashPreference changes how aggressively laundry is suggested
	// for the item.
	UpdateWashPreference(ctx context.Context, userID, itemID uuid.UUID, pref domain.WashPreference) (*domain.ClothingItem, error)
}

// Common error types for WardrobeService
var (
	// ErrItemNotFound indicates that the clothing item does not exist.
	ErrItemNotFound = errors.New("clothing item not found")

	// ErrItemNotOwned indicates that the user does not own the item.
	ErrItemNotOwned = errors.New("unauthorized access: item not owned by user")

	// ErrTransitionConflict indicates that every retry of an optimistic
	// update lost the version race.
	ErrTransitionConflict = errors.New("item was modified concurrently, transition abandoned")
)
