package generation

import (
	"context"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// NarrativeGenerator defines the interface for describing a recommended
// outfit in natural language. This interface serves as a boundary between
// the application core and external AI/LLM services, following the
// hexagonal architecture pattern.
type NarrativeGenerator interface {
	// GenerateNarrative produces a short prose description of the selected
	// items for the given request context.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - reqCtx: The occasion, season, and weather the outfit is for
	//   - items: The clothing items the composer selected
	//
	// Returns:
	//   - The narrative text
	//   - An error if the generation fails for any reason (see errors.go for specific types)
	GenerateNarrative(ctx context.Context, reqCtx domain.RecommendationContext, items []*domain.ClothingItem) (string, error)
}
