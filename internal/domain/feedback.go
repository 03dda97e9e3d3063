package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Feedback-specific validation errors
var (
	// ErrFeedbackIDEmpty is returned when a feedback ID is empty or nil.
	ErrFeedbackIDEmpty = errors.New("feedback ID cannot be empty")

	// ErrFeedbackUserIDEmpty is returned when a feedback's user ID is empty or nil.
	ErrFeedbackUserIDEmpty = errors.New("feedback user ID cannot be empty")

	// ErrFeedbackRecommendationIDEmpty is returned when a feedback's recommendation ID is empty or nil.
	ErrFeedbackRecommendationIDEmpty = errors.New("feedback recommendation ID cannot be empty")
)

// Feedback is a user's rating of a persisted recommendation. At most one
// feedback exists per (user, recommendation); a second submission is a
// conflict and leaves the first untouched.
type Feedback struct {
	ID               uuid.UUID      `json:"id"`
	RecommendationID uuid.UUID      `json:"recommendation_id"`
	UserID           uuid.UUID      `json:"user_id"`
	Rating           int            `json:"rating"`
	Comment          string         `json:"comment,omitempty"`
	SpecificAspects  map[string]int `json:"specific_aspects,omitempty"`
	WouldWearAgain   bool           `json:"would_wear_again"`
	CreatedAt        time.Time      `json:"created_at"`
}

// NewFeedback creates feedback for a recommendation.
// Rating is required and must be between 1 and 5; per-aspect ratings
// share the same scale.
func NewFeedback(
	recommendationID, userID uuid.UUID,
	rating int,
	comment string,
	aspects map[string]int,
	wouldWearAgain bool,
) (*Feedback, error) {
	fb := &Feedback{
		ID:               uuid.New(),
		RecommendationID: recommendationID,
		UserID:           userID,
		Rating:           rating,
		Comment:          comment,
		SpecificAspects:  aspects,
		WouldWearAgain:   wouldWearAgain,
		CreatedAt:        time.Now().UTC(),
	}

	if err := fb.Validate(); err != nil {
		return nil, err
	}

	return fb, nil
}

// Validate checks if the Feedback has valid data.
func (f *Feedback) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFeedbackIDEmpty
	}

	if f.RecommendationID == uuid.Nil {
		return ErrFeedbackRecommendationIDEmpty
	}

	if f.UserID == uuid.Nil {
		return ErrFeedbackUserIDEmpty
	}

	if f.Rating < 1 || f.Rating > 5 {
		return ErrInvalidRating
	}

	for _, v := range f.SpecificAspects {
		if v < 1 || v > 5 {
			return ErrInvalidRating
		}
	}

	return nil
}
