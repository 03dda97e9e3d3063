package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// FeedbackStore defines the interface for feedback persistence.
// Feedback is unique per (user, recommendation).
type FeedbackStore interface {
	// Create saves new feedback.
	// Returns ErrDuplicateFeedback if the user already submitted feedback
	// for this recommendation; the existing feedback is unaffected.
	Create(ctx context.Context, feedback *domain.Feedback) error

	// GetByUserAndRecommendation retrieves feedback by its unique pair.
	// Returns ErrFeedbackNotFound if it does not exist.
	GetByUserAndRecommendation(
		ctx context.Context,
		userID, recommendationID uuid.UUID,
	) (*domain.Feedback, error)

	// ListByUser retrieves all feedback a user has submitted. Used to
	// rebuild the per-context quality averages that bias future rankings.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Feedback, error)

	// WithTx returns a new FeedbackStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) FeedbackStore
}
