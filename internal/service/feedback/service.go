// Package feedback implements recommendation feedback: capturing a user's
// rating of a persisted recommendation and folding past ratings into the
// per-category quality bias the composer adds to similarity scores.
package feedback

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// FeedbackService provides feedback submission and the learned quality bias.
type FeedbackService interface {
	// SubmitFeedback records a user's rating of a recommendation. At most
	// one feedback exists per (user, recommendation); a second submission
	// returns ErrDuplicateFeedback and leaves the first untouched.
	SubmitFeedback(
		ctx context.Context,
		userID, recommendationID uuid.UUID,
		rating int,
		comment string,
		aspects map[string]int,
		wouldWearAgain bool,
	) (*domain.Feedback, error)

	// CategoryBias derives the per-category similarity adjustment from the
	// user's past feedback, restricted to the (occasion, season) bucket of
	// the upcoming request. Empty bucket fields match everything.
	CategoryBias(ctx context.Context, userID uuid.UUID, occasion, season string) (map[string]float64, error)
}

// Common error types for FeedbackService
var (
	// ErrRecommendationNotFound indicates the recommendation does not exist.
	ErrRecommendationNotFound = errors.New("recommendation not found")

	// ErrRecommendationNotOwned indicates the user does not own the recommendation.
	ErrRecommendationNotOwned = errors.New("unauthorized access: recommendation not owned by user")

	// ErrDuplicateFeedback indicates feedback already exists for this
	// (user, recommendation) pair.
	ErrDuplicateFeedback = errors.New("feedback already submitted for this recommendation")
)
