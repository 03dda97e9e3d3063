// Package recommendation implements the outfit recommendation composer:
// candidate gathering, weather advisory resolution, embedding ranking,
// narrative generation, and persistence of the immutable result.
package recommendation

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/weather"
)

// Outcome bundles a freshly composed recommendation with the weather
// advisory that shaped it. Advisory is nil when the request carried no
// coordinates or the provider was unavailable.
type Outcome struct {
	Result   *domain.RecommendationResult
	Advisory *weather.Advisory
}

// RecommendationService composes, persists, and tracks outfit
// recommendations.
type RecommendationService interface {
	// Recommend builds an outfit recommendation for the request context.
	// External failures degrade: an unreachable weather provider drops the
	// weather filter, and a failed or timed-out narrative call leaves the
	// narrative empty. Both never fail the request.
	Recommend(ctx context.Context, userID uuid.UUID, reqCtx domain.RecommendationContext) (*Outcome, error)

	// MarkWorn records one worn event for every item in the
	// recommendation. Items that have disappeared since the
	// recommendation was made are skipped. Returns the items as updated.
	MarkWorn(ctx context.Context, userID, recommendationID uuid.UUID) ([]*domain.ClothingItem, error)
}

// WornRecorder applies a single worn event to an item, retrying on
// version conflicts. The wardrobe service satisfies this.
type WornRecorder interface {
	RecordWear(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error)
}

// BiasProvider supplies the learned per-category quality adjustment.
// The feedback service satisfies this.
type BiasProvider interface {
	CategoryBias(ctx context.Context, userID uuid.UUID, occasion, season string) (map[string]float64, error)
}

// Common error types for RecommendationService
var (
	// ErrRecommendationNotFound indicates the recommendation does not exist.
	ErrRecommendationNotFound = errors.New("recommendation not found")

	// ErrRecommendationNotOwned indicates the user does not own the recommendation.
	ErrRecommendationNotOwned = errors.New("unauthorized access: recommendation not owned by user")

	// ErrNoEligibleItems indicates the user has no wearable items to rank.
	ErrNoEligibleItems = errors.New("no eligible items for recommendation")
)
