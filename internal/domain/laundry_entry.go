package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// LaundryEntryStatus tracks a laundry entry's progress through the wash cycle.
type LaundryEntryStatus string

// Possible laundry entry status values
const (
	LaundryInLaundry   LaundryEntryStatus = "in_laundry"
	LaundryWashed      LaundryEntryStatus = "washed"
	LaundryReadyToWear LaundryEntryStatus = "ready_to_wear"
)

// Laundry-entry-specific validation errors
var (
	// ErrLaundryEntryIDEmpty is returned when a laundry entry ID is empty or nil.
	ErrLaundryEntryIDEmpty = errors.New("laundry entry ID cannot be empty")

	// ErrLaundryEntryItemIDEmpty is returned when a laundry entry's item ID is empty or nil.
	ErrLaundryEntryItemIDEmpty = errors.New("laundry entry item ID cannot be empty")

	// ErrLaundryEntryStatusInvalid is returned when a laundry entry status is not valid.
	ErrLaundryEntryStatusInvalid = errors.New("invalid laundry entry status")
)

// LaundryEntry records an item's trip through the laundry. At most one
// active entry exists per item; the entry is closed when the item returns
// to wearable rotation.
type LaundryEntry struct {
	ID             uuid.UUID          `json:"id"`
	ClothingItemID uuid.UUID          `json:"clothing_item_id"`
	Status         LaundryEntryStatus `json:"status"`
	AddedAt        time.Time          `json:"added_at"`
	ExpectedReturn time.Time          `json:"expected_return"`
	ClosedAt       time.Time          `json:"closed_at"`
}

// NewLaundryEntry creates an active laundry entry for the given item.
// expectedReturn may be zero when the user gave no estimate.
func NewLaundryEntry(itemID uuid.UUID, expectedReturn time.Time) (*LaundryEntry, error) {
	entry := &LaundryEntry{
		ID:             uuid.New(),
		ClothingItemID: itemID,
		Status:         LaundryInLaundry,
		AddedAt:        time.Now().UTC(),
		ExpectedReturn: expectedReturn,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the LaundryEntry has valid data.
func (e *LaundryEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrLaundryEntryIDEmpty
	}

	if e.ClothingItemID == uuid.Nil {
		return ErrLaundryEntryItemIDEmpty
	}

	switch e.Status {
	case LaundryInLaundry, LaundryWashed, LaundryReadyToWear:
	default:
		return ErrLaundryEntryStatusInvalid
	}

	return nil
}

// Active reports whether the entry still holds the item out of rotation.
func (e *LaundryEntry) Active() bool {
	return e.ClosedAt.IsZero()
}
