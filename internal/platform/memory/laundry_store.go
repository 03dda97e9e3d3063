package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// LaundryEntryStore is a mutex-guarded map-backed store.LaundryEntryStore.
type LaundryEntryStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*domain.LaundryEntry
}

// NewLaundryEntryStore creates an empty in-memory laundry entry store.
func NewLaundryEntryStore() *LaundryEntryStore {
	return &LaundryEntryStore{entries: make(map[uuid.UUID]*domain.LaundryEntry)}
}

// Create implements store.LaundryEntryStore.
func (s *LaundryEntryStore) Create(ctx context.Context, entry *domain.LaundryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.entries {
		if existing.ClothingItemID == entry.ClothingItemID && existing.Active() {
			return store.ErrDuplicateLaundryEntry
		}
	}

	clone := *entry
	s.entries[entry.ID] = &clone
	return nil
}

// GetActiveByItem implements store.LaundryEntryStore.
func (s *LaundryEntryStore) GetActiveByItem(ctx context.Context, itemID uuid.UUID) (*domain.LaundryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.entries {
		if entry.ClothingItemID == itemID && entry.Active() {
			clone := *entry
			return &clone, nil
		}
	}
	return nil, store.ErrLaundryEntryNotFound
}

// Update implements store.LaundryEntryStore.
func (s *LaundryEntryStore) Update(ctx context.Context, entry *domain.LaundryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[entry.ID]; !exists {
		return store.ErrLaundryEntryNotFound
	}

	clone := *entry
	s.entries[entry.ID] = &clone
	return nil
}

// Delete implements store.LaundryEntryStore.
func (s *LaundryEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[id]; !exists {
		return store.ErrLaundryEntryNotFound
	}
	delete(s.entries, id)
	return nil
}

// WithTx implements store.LaundryEntryStore; the in-memory store ignores
// transactions.
func (s *LaundryEntryStore) WithTx(tx *sql.Tx) store.LaundryEntryStore {
	return s
}
