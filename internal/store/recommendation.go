package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// RecommendationStore defines the interface for recommendation persistence.
// Results are immutable once created.
type RecommendationStore interface {
	// Create saves a new recommendation result.
	Create(ctx context.Context, result *domain.RecommendationResult) error

	// GetByID retrieves a recommendation by its unique ID.
	// Returns ErrRecommendationNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RecommendationResult, error)

	// WithTx returns a new RecommendationStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) RecommendationStore
}
