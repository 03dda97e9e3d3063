package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// WashDecision is a user's response to a laundry suggestion.
type WashDecision string

// Possible wash decision values
const (
	DecisionMovedToLaundry WashDecision = "moved_to_laundry"
	DecisionKeptWearing    WashDecision = "kept_wearing"
)

// IsValid reports whether the decision is one of the known responses.
func (d WashDecision) IsValid() bool {
	return d == DecisionMovedToLaundry || d == DecisionKeptWearing
}

// Wash-decision-specific validation errors
var (
	// ErrDecisionUserIDEmpty is returned when a decision record's user ID is empty or nil.
	ErrDecisionUserIDEmpty = errors.New("wash decision user ID cannot be empty")

	// ErrDecisionItemIDEmpty is returned when a decision record's item ID is empty or nil.
	ErrDecisionItemIDEmpty = errors.New("wash decision item ID cannot be empty")
)

// WashDecisionRecord is one entry in the append-only log of laundry
// suggestion responses. Records are never mutated; the wear decision
// learner folds them into its per-category dismiss rate.
type WashDecisionRecord struct {
	ID             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"user_id"`
	ClothingItemID uuid.UUID    `json:"clothing_item_id"`
	Decision       WashDecision `json:"decision"`
	ItemType       string       `json:"item_type"`
	CreatedAt      time.Time    `json:"created_at"`
}

// NewWashDecisionRecord creates a log record for a laundry suggestion response.
func NewWashDecisionRecord(
	userID, itemID uuid.UUID,
	decision WashDecision,
	itemType string,
) (*WashDecisionRecord, error) {
	rec := &WashDecisionRecord{
		ID:             uuid.New(),
		UserID:         userID,
		ClothingItemID: itemID,
		Decision:       decision,
		ItemType:       itemType,
		CreatedAt:      time.Now().UTC(),
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Validate checks if the WashDecisionRecord has valid data.
func (r *WashDecisionRecord) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrDecisionUserIDEmpty
	}

	if r.ClothingItemID == uuid.Nil {
		return ErrDecisionItemIDEmpty
	}

	if !r.Decision.IsValid() {
		return ErrInvalidDecision
	}

	return nil
}
