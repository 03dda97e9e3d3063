package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// ClothingItemStore is a mutex-guarded map-backed store.ClothingItemStore.
type ClothingItemStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*domain.ClothingItem
}

// NewClothingItemStore creates an empty in-memory item store.
func NewClothingItemStore() *ClothingItemStore {
	return &ClothingItemStore{items: make(map[uuid.UUID]*domain.ClothingItem)}
}

// Create implements store.ClothingItemStore.
func (s *ClothingItemStore) Create(ctx context.Context, item *domain.ClothingItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID]; exists {
		return store.ErrDuplicate
	}

	s.items[item.ID] = cloneItem(item)
	return nil
}

// GetByID implements store.ClothingItemStore.
func (s *ClothingItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ClothingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists {
		return nil, store.ErrItemNotFound
	}
	return cloneItem(item), nil
}

// ListByOwner implements store.ClothingItemStore.
func (s *ClothingItemStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.ClothingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.ClothingItem
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			out = append(out, cloneItem(item))
		}
	}
	return out, nil
}

// Update implements store.ClothingItemStore. The compare-and-swap on
// Version happens under the write lock, matching what the SQL store does
// with a WHERE version = $n clause.
func (s *ClothingItemStore) Update(ctx context.Context, item *domain.ClothingItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.items[item.ID]
	if !exists {
		return store.ErrItemNotFound
	}

	if current.Version != item.Version {
		return store.ErrVersionConflict
	}

	updated := cloneItem(item)
	updated.Version++
	updated.UpdatedAt = time.Now().UTC()
	s.items[item.ID] = updated

	item.Version = updated.Version
	item.UpdatedAt = updated.UpdatedAt
	return nil
}

// Delete implements store.ClothingItemStore.
func (s *ClothingItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return store.ErrItemNotFound
	}
	delete(s.items, id)
	return nil
}

// WithTx implements store.ClothingItemStore. The in-memory store has no
// transaction support; each operation is already atomic under its lock.
func (s *ClothingItemStore) WithTx(tx *sql.Tx) store.ClothingItemStore {
	return s
}

func cloneItem(item *domain.ClothingItem) *domain.ClothingItem {
	clone := *item
	clone.Embedding = append([]float64(nil), item.Embedding...)
	clone.Attributes.Colors = append([]string(nil), item.Attributes.Colors...)
	return &clone
}
