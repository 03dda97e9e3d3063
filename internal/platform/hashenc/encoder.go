// Package hashenc implements the encoding.Encoder interface with
// deterministic feature hashing. It stands in for an external embedding
// service: tokens from the attributes or the request context are hashed
// into a fixed number of signed buckets and the result is L2-normalized,
// so identical inputs always produce identical unit vectors.
package hashenc

import (
	"context"
	"hash/fnv"
	"math"
	"strings"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/encoding"
)

// DefaultDimension is the vector length used when none is configured.
const DefaultDimension = 64

// Encoder hashes text features into a fixed-length vector.
type Encoder struct {
	dimension int
}

// NewEncoder creates a feature-hashing encoder. Dimensions below 1 fall
// back to DefaultDimension.
func NewEncoder(dimension int) *Encoder {
	if dimension < 1 {
		dimension = DefaultDimension
	}
	return &Encoder{dimension: dimension}
}

// Ensure Encoder implements encoding.Encoder interface
var _ encoding.Encoder = (*Encoder)(nil)

// EncodeItem implements encoding.Encoder.EncodeItem.
func (e *Encoder) EncodeItem(ctx context.Context, attrs domain.ItemAttributes) ([]float64, error) {
	tokens := []string{
		"category:" + attrs.Category,
		"formality:" + attrs.Formality,
		"season:" + attrs.Season,
		"material:" + attrs.Material,
	}
	for _, color := range attrs.Colors {
		tokens = append(tokens, "color:"+color)
	}
	return e.encode(tokens), nil
}

// EncodeQuery implements encoding.Encoder.EncodeQuery.
func (e *Encoder) EncodeQuery(ctx context.Context, reqCtx domain.RecommendationContext) ([]float64, error) {
	tokens := []string{
		"occasion:" + reqCtx.Occasion,
		"formality:" + reqCtx.Formality,
		"season:" + reqCtx.Season,
		"weather:" + reqCtx.Weather,
	}
	for _, word := range strings.Fields(strings.ToLower(reqCtx.Query)) {
		tokens = append(tokens, "query:"+word)
	}
	return e.encode(tokens), nil
}

// encode hashes each non-empty token into a bucket with a hash-derived
// sign and normalizes the result to unit length. An input with no tokens
// yields the zero vector, which the matcher scores as similarity 0.
func (e *Encoder) encode(tokens []string) []float64 {
	vec := make([]float64, e.dimension)
	for _, token := range tokens {
		if idx := strings.IndexByte(token, ':'); idx == len(token)-1 {
			continue
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(token))
		sum := h.Sum64()
		bucket := int(sum % uint64(e.dimension))
		if sum&(1<<63) != 0 {
			vec[bucket] -= 1
		} else {
			vec[bucket] += 1
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
