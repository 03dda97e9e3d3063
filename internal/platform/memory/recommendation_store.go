package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// RecommendationStore is a mutex-guarded map-backed store.RecommendationStore.
type RecommendationStore struct {
	mu      sync.RWMutex
	results map[uuid.UUID]*domain.RecommendationResult
}

// NewRecommendationStore creates an empty in-memory recommendation store.
func NewRecommendationStore() *RecommendationStore {
	return &RecommendationStore{results: make(map[uuid.UUID]*domain.RecommendationResult)}
}

// Create implements store.RecommendationStore.
func (s *RecommendationStore) Create(ctx context.Context, result *domain.RecommendationResult) error {
	if err := result.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[result.ID]; exists {
		return store.ErrDuplicate
	}
	s.results[result.ID] = cloneResult(result)
	return nil
}

// GetByID implements store.RecommendationStore.
func (s *RecommendationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.RecommendationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, exists := s.results[id]
	if !exists {
		return nil, store.ErrRecommendationNotFound
	}
	return cloneResult(result), nil
}

// WithTx implements store.RecommendationStore; the in-memory store ignores
// transactions.
func (s *RecommendationStore) WithTx(tx *sql.Tx) store.RecommendationStore {
	return s
}

func cloneResult(result *domain.RecommendationResult) *domain.RecommendationResult {
	clone := *result
	clone.ItemsByCategory = make(map[string][]domain.RankedItem, len(result.ItemsByCategory))
	for category, ranked := range result.ItemsByCategory {
		clone.ItemsByCategory[category] = append([]domain.RankedItem(nil), ranked...)
	}
	return &clone
}
