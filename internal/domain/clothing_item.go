package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CleanlinessStatus represents an item's position in the wear/wash lifecycle.
type CleanlinessStatus string

// Possible cleanliness status values
const (
	StatusFresh        CleanlinessStatus = "fresh"
	StatusWornWearable CleanlinessStatus = "worn_wearable"
	StatusNeedsWash    CleanlinessStatus = "needs_wash"
	StatusInLaundry    CleanlinessStatus = "in_laundry"
	StatusWashed       CleanlinessStatus = "washed"
	StatusReadyToWear  CleanlinessStatus = "ready_to_wear"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s CleanlinessStatus) IsValid() bool {
	switch s {
	case StatusFresh, StatusWornWearable, StatusNeedsWash,
		StatusInLaundry, StatusWashed, StatusReadyToWear:
		return true
	default:
		return false
	}
}

// Wearable reports whether an item in this status may appear in outfit
// recommendations. Items that need a wash or sit in the laundry pipeline
// are never eligible. Ready-to-wear items count as fresh: the lifecycle
// treats READY_TO_WEAR as the hand-off back into FRESH.
func (s CleanlinessStatus) Wearable() bool {
	return s == StatusFresh || s == StatusWornWearable || s == StatusReadyToWear
}

// WashPreference controls how aggressively laundry is suggested for an item.
type WashPreference string

// Possible wash preference values
const (
	WashAfterEachWear WashPreference = "afterEachWear"
	WashAfterFewWears WashPreference = "afterFewWears"
	WashManual        WashPreference = "manual"
)

// IsValid reports whether the preference is one of the known policies.
func (p WashPreference) IsValid() bool {
	switch p {
	case WashAfterEachWear, WashAfterFewWears, WashManual:
		return true
	default:
		return false
	}
}

// Clothing-item-specific validation errors
var (
	// ErrItemIDEmpty is returned when an item ID is empty or nil.
	ErrItemIDEmpty = errors.New("clothing item ID cannot be empty")

	// ErrItemOwnerIDEmpty is returned when an item's owner ID is empty or nil.
	ErrItemOwnerIDEmpty = errors.New("clothing item owner ID cannot be empty")

	// ErrItemCategoryEmpty is returned when an item's category is empty.
	ErrItemCategoryEmpty = errors.New("clothing item category cannot be empty")

	// ErrItemScoreOutOfRange is returned when a freshness score is outside 0-100.
	ErrItemScoreOutOfRange = errors.New("freshness score must be between 0 and 100")

	// ErrItemWearCountNegative is returned when a wear count is negative.
	ErrItemWearCountNegative = errors.New("wear count cannot be negative")
)

// Freshness score bounds. The score is an integer proxy for how clean an
// item currently is; 100 means freshly washed.
const (
	MinFreshnessScore = 0
	MaxFreshnessScore = 100
)

// ItemAttributes holds the category-tagged metadata for a clothing item.
// Every field beyond Category is optional; validation happens at the API
// boundary rather than through duck-typed maps.
type ItemAttributes struct {
	Category  string   `json:"category"`
	Colors    []string `json:"colors,omitempty"`
	Formality string   `json:"formality,omitempty"`
	Season    string   `json:"season,omitempty"`
	Material  string   `json:"material,omitempty"`
}

// ClothingItem represents a single garment owned by a user, including its
// embedding vector and its freshness/cleanliness state. Items are owned
// exclusively by their user and mutated only through freshness.Service
// transitions applied under optimistic concurrency (Version).
type ClothingItem struct {
	ID             uuid.UUID         `json:"id"`
	OwnerID        uuid.UUID         `json:"owner_id"`
	Attributes     ItemAttributes    `json:"attributes"`
	Embedding      []float64         `json:"embedding,omitempty"`
	WearCount      int               `json:"wear_count"`
	LastWornAt     time.Time         `json:"last_worn_at"`
	Status         CleanlinessStatus `json:"cleanliness_status"`
	FreshnessScore int               `json:"freshness_score"`
	WashPreference WashPreference    `json:"wash_preference"`
	Version        int64             `json:"version"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewClothingItem creates a new ClothingItem owned by the given user.
// New items start fresh with a full freshness score and zero wears.
// Returns an error if validation fails.
func NewClothingItem(
	ownerID uuid.UUID,
	attrs ItemAttributes,
	embedding []float64,
	pref WashPreference,
) (*ClothingItem, error) {
	now := time.Now().UTC()
	item := &ClothingItem{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Attributes:     attrs,
		Embedding:      embedding,
		WearCount:      0,
		Status:         StatusFresh,
		FreshnessScore: MaxFreshnessScore,
		WashPreference: pref,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the ClothingItem has valid data.
// Returns an error if any field fails validation.
func (i *ClothingItem) Validate() error {
	if i.ID == uuid.Nil {
		return ErrItemIDEmpty
	}

	if i.OwnerID == uuid.Nil {
		return ErrItemOwnerIDEmpty
	}

	if i.Attributes.Category == "" {
		return ErrItemCategoryEmpty
	}

	if !i.Status.IsValid() {
		return ErrInvalidCleanlinessStatus
	}

	if !i.WashPreference.IsValid() {
		return ErrInvalidWashPreference
	}

	if i.FreshnessScore < MinFreshnessScore || i.FreshnessScore > MaxFreshnessScore {
		return ErrItemScoreOutOfRange
	}

	if i.WearCount < 0 {
		return ErrItemWearCountNegative
	}

	return nil
}

// Note: there are no mutable wear/wash methods here. Use freshness.Service,
// which follows immutability principles by returning new instances rather
// than modifying existing ones.
