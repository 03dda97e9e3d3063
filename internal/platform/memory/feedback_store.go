package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// FeedbackStore is a mutex-guarded map-backed store.FeedbackStore keyed by
// the (user, recommendation) pair.
type FeedbackStore struct {
	mu       sync.RWMutex
	feedback map[feedbackKey]*domain.Feedback
}

type feedbackKey struct {
	userID           uuid.UUID
	recommendationID uuid.UUID
}

// NewFeedbackStore creates an empty in-memory feedback store.
func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{feedback: make(map[feedbackKey]*domain.Feedback)}
}

// Create implements store.FeedbackStore. The first submission wins; a
// duplicate pair returns ErrDuplicateFeedback and leaves it untouched.
func (s *FeedbackStore) Create(ctx context.Context, feedback *domain.Feedback) error {
	if err := feedback.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := feedbackKey{userID: feedback.UserID, recommendationID: feedback.RecommendationID}
	if _, exists := s.feedback[key]; exists {
		return store.ErrDuplicateFeedback
	}

	s.feedback[key] = cloneFeedback(feedback)
	return nil
}

// GetByUserAndRecommendation implements store.FeedbackStore.
func (s *FeedbackStore) GetByUserAndRecommendation(
	ctx context.Context,
	userID, recommendationID uuid.UUID,
) (*domain.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feedback, exists := s.feedback[feedbackKey{userID: userID, recommendationID: recommendationID}]
	if !exists {
		return nil, store.ErrFeedbackNotFound
	}
	return cloneFeedback(feedback), nil
}

// ListByUser returns all feedback a user has submitted. The feedback
// service folds these into its per-context quality averages.
func (s *FeedbackStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Feedback
	for key, feedback := range s.feedback {
		if key.userID == userID {
			out = append(out, cloneFeedback(feedback))
		}
	}
	return out, nil
}

// WithTx implements store.FeedbackStore; the in-memory store ignores
// transactions.
func (s *FeedbackStore) WithTx(tx *sql.Tx) store.FeedbackStore {
	return s
}

func cloneFeedback(feedback *domain.Feedback) *domain.Feedback {
	clone := *feedback
	if feedback.SpecificAspects != nil {
		clone.SpecificAspects = make(map[string]int, len(feedback.SpecificAspects))
		for aspect, rating := range feedback.SpecificAspects {
			clone.SpecificAspects[aspect] = rating
		}
	}
	return &clone
}
