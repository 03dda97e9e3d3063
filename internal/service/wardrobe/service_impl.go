package wardrobe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/domain/freshness"
	"github.com/closetpilot/wardrobe-api/internal/encoding"
	"github.com/closetpilot/wardrobe-api/internal/platform/logger"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// Verify interface compliance at compile time
var _ WardrobeService = (*wardrobeServiceImpl)(nil)

// wardrobeServiceImpl implements the WardrobeService interface.
type wardrobeServiceImpl struct {
	itemStore    store.ClothingItemStore
	laundryStore store.LaundryEntryStore
	db           *sql.DB
	freshness    freshness.Service
	encoder      encoding.Encoder
	retries      int
	logger       *slog.Logger
}

// NewWardrobeService creates a new WardrobeService implementation.
// db may be nil when the stores are not database-backed; laundry
// transitions then run their item and entry writes sequentially instead
// of inside one transaction.
// retries bounds how often an optimistic update is re-attempted after a
// version conflict; values below 1 fall back to 1.
func NewWardrobeService(
	itemStore store.ClothingItemStore,
	laundryStore store.LaundryEntryStore,
	db *sql.DB,
	freshnessService freshness.Service,
	encoder encoding.Encoder,
	retries int,
	logger *slog.Logger,
) WardrobeService {
	if itemStore == nil {
		panic("itemStore cannot be nil")
	}
	if laundryStore == nil {
		panic("laundryStore cannot be nil")
	}
	if freshnessService == nil {
		panic("freshnessService cannot be nil")
	}
	if encoder == nil {
		panic("encoder cannot be nil")
	}

	if retries < 1 {
		retries = 1
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &wardrobeServiceImpl{
		itemStore:    itemStore,
		laundryStore: laundryStore,
		db:           db,
		freshness:    freshnessService,
		encoder:      encoder,
		retries:      retries,
		logger:       logger.With(slog.String("component", "wardrobe_service")),
	}
}

// CreateItem implements WardrobeService.CreateItem.
func (s *wardrobeServiceImpl) CreateItem(
	ctx context.Context,
	ownerID uuid.UUID,
	attrs domain.ItemAttributes,
	embedding []float64,
	pref domain.WashPreference,
) (*domain.ClothingItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// When the caller brings no vector of its own, derive one from the
	// attributes so the item can still participate in ranking.
	if len(embedding) == 0 {
		encoded, err := s.encoder.EncodeItem(ctx, attrs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode item embedding: %w", err)
		}
		embedding = encoded
	}

	item, err := domain.NewClothingItem(ownerID, attrs, embedding, pref)
	if err != nil {
		return nil, err
	}

	if err := s.itemStore.Create(ctx, item); err != nil {
		log.Error("failed to create clothing item",
			slog.String("owner_id", ownerID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create clothing item: %w", err)
	}

	log.Debug("clothing item created",
		slog.String("item_id", item.ID.String()),
		slog.String("category", item.Attributes.Category))
	return item, nil
}

// GetItem implements WardrobeService.GetItem.
func (s *wardrobeServiceImpl) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error) {
	return getOwnedItem(ctx, s.itemStore, userID, itemID)
}

// ListItems implements WardrobeService.ListItems.
func (s *wardrobeServiceImpl) ListItems(ctx context.Context, ownerID uuid.UUID) ([]*domain.ClothingItem, error) {
	items, err := s.itemStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clothing items: %w", err)
	}
	return items, nil
}

// DeleteItem implements WardrobeService.DeleteItem.
func (s *wardrobeServiceImpl) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := getOwnedItem(ctx, s.itemStore, userID, itemID); err != nil {
		return err
	}

	if err := s.itemStore.Delete(ctx, itemID); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete clothing item: %w", err)
	}
	return nil
}

// RecordWear implements WardrobeService.RecordWear.
func (s *wardrobeServiceImpl) RecordWear(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error) {
	return s.applyTransition(ctx, s.itemStore, userID, itemID, "record_wear",
		func(item *domain.ClothingItem, now time.Time) (*domain.ClothingItem, error) {
			return s.freshness.ApplyWear(item, now)
		})
}

// AddToLaundry implements WardrobeService.AddToLaundry.
func (s *wardrobeServiceImpl) AddToLaundry(
	ctx context.Context,
	userID, itemID uuid.UUID,
	expectedReturn time.Time,
) (*domain.ClothingItem, error) {
	var item *domain.ClothingItem
	err := s.withStores(ctx, func(ctx context.Context, items store.ClothingItemStore, entries store.LaundryEntryStore) error {
		updated, err := s.applyTransition(ctx, items, userID, itemID, "add_to_laundry",
			func(item *domain.ClothingItem, now time.Time) (*domain.ClothingItem, error) {
				return s.freshness.AddToLaundry(item, now)
			})
		if err != nil {
			return err
		}

		entry, err := domain.NewLaundryEntry(itemID, expectedReturn)
		if err != nil {
			return err
		}
		if err := entries.Create(ctx, entry); err != nil {
			// A leftover active entry from an earlier trip is tolerated;
			// the item state is authoritative.
			if !errors.Is(err, store.ErrDuplicateLaundryEntry) {
				return fmt.Errorf("failed to open laundry entry: %w", err)
			}
		}

		item = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveFromLaundry implements WardrobeService.RemoveFromLaundry.
func (s *wardrobeServiceImpl) RemoveFromLaundry(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error) {
	var item *domain.ClothingItem
	err := s.withStores(ctx, func(ctx context.Context, items store.ClothingItemStore, entries store.LaundryEntryStore) error {
		updated, err := s.applyTransition(ctx, items, userID, itemID, "remove_from_laundry",
			func(item *domain.ClothingItem, now time.Time) (*domain.ClothingItem, error) {
				return s.freshness.RemoveFromLaundry(item, now)
			})
		if err != nil {
			return err
		}

		if entry, getErr := entries.GetActiveByItem(ctx, itemID); getErr == nil {
			if delErr := entries.Delete(ctx, entry.ID); delErr != nil {
				return fmt.Errorf("failed to delete laundry entry: %w", delErr)
			}
		}

		item = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// MarkWashed implements WardrobeService.MarkWashed.
func (s *wardrobeServiceImpl) MarkWashed(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error) {
	var item *domain.ClothingItem
	err := s.withStores(ctx, func(ctx context.Context, items store.ClothingItemStore, entries store.LaundryEntryStore) error {
		updated, err := s.applyTransition(ctx, items, userID, itemID, "mark_washed",
			func(item *domain.ClothingItem, now time.Time) (*domain.ClothingItem, error) {
				return s.freshness.MarkWashed(item, now)
			})
		if err != nil {
			return err
		}

		if entry, getErr := entries.GetActiveByItem(ctx, itemID); getErr == nil {
			entry.Status = domain.LaundryWashed
			if updErr := entries.Update(ctx, entry); updErr != nil {
				return fmt.Errorf("failed to update laundry entry status: %w", updErr)
			}
		}

		item = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ReturnToRotation implements WardrobeService.ReturnToRotation.
func (s *wardrobeServiceImpl) ReturnToRotation(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error) {
	var item *domain.ClothingItem
	err := s.withStores(ctx, func(ctx context.Context, items store.ClothingItemStore, entries store.LaundryEntryStore) error {
		updated, err := s.applyTransition(ctx, items, userID, itemID, "return_to_rotation",
			func(item *domain.ClothingItem, now time.Time) (*domain.ClothingItem, error) {
				return s.freshness.ReturnToRotation(item, now)
			})
		if err != nil {
			return err
		}

		if entry, getErr := entries.GetActiveByItem(ctx, itemID); getErr == nil {
			entry.Status = domain.LaundryReadyToWear
			entry.ClosedAt = time.Now().UTC()
			if updErr := entries.Update(ctx, entry); updErr != nil {
				return fmt.Errorf("failed to close laundry entry: %w", updErr)
			}
		}

		item = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateWashPreference implements WardrobeService.UpdateWashPreference.
func (s *wardrobeServiceImpl) UpdateWashPreference(
	ctx context.Context,
	userID, itemID uuid.UUID,
	pref domain.WashPreference,
) (*domain.ClothingItem, error) {
	if !pref.IsValid() {
		return nil, domain.ErrInvalidWashPreference
	}

	return s.applyTransition(ctx, s.itemStore, userID, itemID, "update_wash_preference",
		func(item *domain.ClothingItem, now time.Time) (*domain.ClothingItem, error) {
			updated := *item
			updated.WashPreference = pref
			return &updated, nil
		})
}

// withStores runs fn against the base stores, or against
// transaction-bound stores when a database connection is configured, so
// an item transition and its laundry entry write commit or roll back as
// one unit.
func (s *wardrobeServiceImpl) withStores(
	ctx context.Context,
	fn func(ctx context.Context, items store.ClothingItemStore, entries store.LaundryEntryStore) error,
) error {
	if s.db == nil {
		return fn(ctx, s.itemStore, s.laundryStore)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.itemStore.WithTx(tx), s.laundryStore.WithTx(tx))
	})
}

// applyTransition reads the item, applies fn, and persists the result
// under the optimistic version check, retrying the whole cycle when the
// write loses a version race. items is the store to read and write
// through, so laundry transitions can pass a transaction-bound one.
func (s *wardrobeServiceImpl) applyTransition(
	ctx context.Context,
	items store.ClothingItemStore,
	userID, itemID uuid.UUID,
	operation string,
	fn func(item *domain.ClothingItem, now time.Time) (*domain.ClothingItem, error),
) (*domain.ClothingItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for attempt := 1; attempt <= s.retries; attempt++ {
		item, err := getOwnedItem(ctx, items, userID, itemID)
		if err != nil {
			return nil, err
		}

		updated, err := fn(item, time.Now().UTC())
		if err != nil {
			return nil, err
		}

		err = items.Update(ctx, updated)
		if err == nil {
			log.Debug("item transition applied",
				slog.String("operation", operation),
				slog.String("item_id", itemID.String()),
				slog.String("status", string(updated.Status)),
				slog.Int("freshness_score", updated.FreshnessScore))
			return updated, nil
		}
		if errors.Is(err, store.ErrVersionConflict) {
			log.Debug("version conflict, retrying transition",
				slog.String("operation", operation),
				slog.String("item_id", itemID.String()),
				slog.Int("attempt", attempt))
			continue
		}
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to persist %s transition: %w", operation, err)
	}

	log.Warn("transition abandoned after repeated version conflicts",
		slog.String("operation", operation),
		slog.String("item_id", itemID.String()),
		slog.Int("attempts", s.retries))
	return nil, ErrTransitionConflict
}

func getOwnedItem(ctx context.Context, items store.ClothingItemStore, userID, itemID uuid.UUID) (*domain.ClothingItem, error) {
	item, err := items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get clothing item: %w", err)
	}

	if item.OwnerID != userID {
		return nil, ErrItemNotOwned
	}
	return item, nil
}
