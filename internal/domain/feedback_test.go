package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewFeedback(t *testing.T) {
	t.Parallel()

	fb, err := NewFeedback(uuid.New(), uuid.New(), 4, "liked the mix",
		map[string]int{"style": 5, "weather": 3}, true)
	if err != nil {
		t.Fatalf("NewFeedback failed: %v", err)
	}

	if fb.Rating != 4 {
		t.Errorf("expected rating 4, got %d", fb.Rating)
	}
	if !fb.WouldWearAgain {
		t.Error("expected wouldWearAgain to be kept")
	}
	if fb.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestNewFeedback_RatingBounds(t *testing.T) {
	t.Parallel()

	for _, rating := range []int{0, 6, -1} {
		if _, err := NewFeedback(uuid.New(), uuid.New(), rating, "", nil, true); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestNewFeedback_AspectRatingsShareScale(t *testing.T) {
	t.Parallel()

	_, err := NewFeedback(uuid.New(), uuid.New(), 3, "",
		map[string]int{"style": 9}, false)
	if !errors.Is(err, ErrInvalidRating) {
		t.Errorf("expected ErrInvalidRating for out-of-range aspect, got %v", err)
	}
}

func TestNewFeedback_RequiredIDs(t *testing.T) {
	t.Parallel()

	if _, err := NewFeedback(uuid.Nil, uuid.New(), 3, "", nil, true); !errors.Is(err, ErrFeedbackRecommendationIDEmpty) {
		t.Errorf("expected ErrFeedbackRecommendationIDEmpty, got %v", err)
	}
	if _, err := NewFeedback(uuid.New(), uuid.Nil, 3, "", nil, true); !errors.Is(err, ErrFeedbackUserIDEmpty) {
		t.Errorf("expected ErrFeedbackUserIDEmpty, got %v", err)
	}
}
