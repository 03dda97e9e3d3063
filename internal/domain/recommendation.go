package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Recommendation-specific validation errors
var (
	// ErrRecommendationIDEmpty is returned when a recommendation ID is empty or nil.
	ErrRecommendationIDEmpty = errors.New("recommendation ID cannot be empty")

	// ErrRecommendationUserIDEmpty is returned when a recommendation's user ID is empty or nil.
	ErrRecommendationUserIDEmpty = errors.New("recommendation user ID cannot be empty")
)

// RecommendationContext captures the request a recommendation was computed
// for. Latitude/Longitude are optional; when nil no weather advisory is
// resolved.
type RecommendationContext struct {
	Occasion  string   `json:"occasion,omitempty"`
	Weather   string   `json:"weather,omitempty"`
	Season    string   `json:"season,omitempty"`
	Formality string   `json:"formality,omitempty"`
	Query     string   `json:"query,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// RankedItem is one entry in a recommendation, an item ID with the
// similarity score it was ranked by.
type RankedItem struct {
	ItemID     uuid.UUID `json:"item_id"`
	Similarity float64   `json:"similarity"`
}

// RecommendationResult is a persisted outfit recommendation. It is
// immutable once created; feedback and worn-events reference it by ID.
// Narrative is empty when the external text generation failed or timed
// out, which never fails the recommendation itself.
type RecommendationResult struct {
	ID              uuid.UUID               `json:"id"`
	UserID          uuid.UUID               `json:"user_id"`
	Context         RecommendationContext   `json:"context"`
	ItemsByCategory map[string][]RankedItem `json:"items_by_category"`
	Narrative       string                  `json:"narrative,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
}

// NewRecommendationResult creates a persisted recommendation for the given user.
func NewRecommendationResult(
	userID uuid.UUID,
	reqCtx RecommendationContext,
	itemsByCategory map[string][]RankedItem,
	narrative string,
) (*RecommendationResult, error) {
	result := &RecommendationResult{
		ID:              uuid.New(),
		UserID:          userID,
		Context:         reqCtx,
		ItemsByCategory: itemsByCategory,
		Narrative:       narrative,
		CreatedAt:       time.Now().UTC(),
	}

	if err := result.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}

// Validate checks if the RecommendationResult has valid data.
func (r *RecommendationResult) Validate() error {
	if r.ID == uuid.Nil {
		return ErrRecommendationIDEmpty
	}

	if r.UserID == uuid.Nil {
		return ErrRecommendationUserIDEmpty
	}

	return nil
}

// ItemIDs returns the IDs of every item in the recommendation, across all
// categories. Used by mark-worn to drive a worn event per item.
func (r *RecommendationResult) ItemIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, ranked := range r.ItemsByCategory {
		for _, item := range ranked {
			ids = append(ids, item.ItemID)
		}
	}
	return ids
}

// TotalItems returns the number of items in the recommendation.
func (r *RecommendationResult) TotalItems() int {
	n := 0
	for _, ranked := range r.ItemsByCategory {
		n += len(ranked)
	}
	return n
}
