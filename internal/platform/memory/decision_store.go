package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// WashDecisionStore is an append-only in-memory store.WashDecisionStore.
type WashDecisionStore struct {
	mu      sync.RWMutex
	records []*domain.WashDecisionRecord
}

// NewWashDecisionStore creates an empty in-memory wash decision log.
func NewWashDecisionStore() *WashDecisionStore {
	return &WashDecisionStore{}
}

// Append implements store.WashDecisionStore.
func (s *WashDecisionStore) Append(ctx context.Context, record *domain.WashDecisionRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *record
	s.records = append(s.records, &clone)
	return nil
}

// ListByUser implements store.WashDecisionStore. Records come back in the
// order they were appended, which is chronological.
func (s *WashDecisionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WashDecisionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.WashDecisionRecord
	for _, record := range s.records {
		if record.UserID == userID {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, nil
}

// WithTx implements store.WashDecisionStore; the in-memory store ignores
// transactions.
func (s *WashDecisionStore) WithTx(tx *sql.Tx) store.WashDecisionStore {
	return s
}
