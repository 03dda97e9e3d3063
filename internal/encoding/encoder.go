// Package encoding defines the embedding encoder boundary. Turning item
// metadata and request context into vectors is an external concern; the
// application only depends on this interface.
package encoding

import (
	"context"
	"errors"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// Common errors returned by encoder implementations
var (
	// ErrEncodingFailed is returned when a vector could not be produced.
	ErrEncodingFailed = errors.New("failed to encode embedding vector")
)

// Encoder produces embedding vectors for clothing items and for
// recommendation requests. Both must land in the same vector space; the
// matcher treats length mismatches as zero similarity.
type Encoder interface {
	// EncodeItem builds the embedding vector for an item's attributes.
	EncodeItem(ctx context.Context, attrs domain.ItemAttributes) ([]float64, error)

	// EncodeQuery builds the query vector for a recommendation request.
	EncodeQuery(ctx context.Context, reqCtx domain.RecommendationContext) ([]float64, error)
}
