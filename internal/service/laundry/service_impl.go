package laundry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/domain/freshness"
	domainlaundry "github.com/closetpilot/wardrobe-api/internal/domain/laundry"
	"github.com/closetpilot/wardrobe-api/internal/platform/logger"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// Verify interface compliance at compile time
var _ LaundryService = (*laundryServiceImpl)(nil)

// laundryServiceImpl implements the LaundryService interface.
type laundryServiceImpl struct {
	itemStore     store.ClothingItemStore
	decisionStore store.WashDecisionStore
	freshness     freshness.Service
	mover         ItemMover
	params        *domainlaundry.Params
	logger        *slog.Logger
}

// NewLaundryService creates a new LaundryService implementation.
// params may be nil to use the default learner parameters.
func NewLaundryService(
	itemStore store.ClothingItemStore,
	decisionStore store.WashDecisionStore,
	freshnessService freshness.Service,
	mover ItemMover,
	params *domainlaundry.Params,
	logger *slog.Logger,
) LaundryService {
	if itemStore == nil {
		panic("itemStore cannot be nil")
	}
	if decisionStore == nil {
		panic("decisionStore cannot be nil")
	}
	if freshnessService == nil {
		panic("freshnessService cannot be nil")
	}
	if mover == nil {
		panic("mover cannot be nil")
	}

	if params == nil {
		params = domainlaundry.NewDefaultParams()
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &laundryServiceImpl{
		itemStore:     itemStore,
		decisionStore: decisionStore,
		freshness:     freshnessService,
		mover:         mover,
		params:        params,
		logger:        logger.With(slog.String("component", "laundry_service")),
	}
}

// Suggestions implements LaundryService.Suggestions.
func (s *laundryServiceImpl) Suggestions(ctx context.Context, userID uuid.UUID) ([]domainlaundry.Suggestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	items, err := s.itemStore.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clothing items: %w", err)
	}

	// One malformed item must not take down the whole batch.
	valid := make([]*domain.ClothingItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if err := item.Validate(); err != nil {
			log.Warn("skipping malformed clothing item",
				slog.String("item_id", item.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		valid = append(valid, item)
	}

	rates, err := s.dismissRates(ctx, userID)
	if err != nil {
		return nil, err
	}

	suggestions := domainlaundry.ComputeSuggestions(
		valid, s.freshness.NeedsWashThreshold(), rates, s.params)

	log.Debug("laundry suggestions computed",
		slog.String("user_id", userID.String()),
		slog.Int("candidates", len(valid)),
		slog.Int("suggestions", len(suggestions)))
	return suggestions, nil
}

// RecordDecision implements LaundryService.RecordDecision.
func (s *laundryServiceImpl) RecordDecision(
	ctx context.Context,
	userID, itemID uuid.UUID,
	decision domain.WashDecision,
	itemType string,
) (*domain.WashDecisionRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !decision.IsValid() {
		return nil, domain.ErrInvalidDecision
	}

	item, err := s.itemStore.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get clothing item: %w", err)
	}
	if item.OwnerID != userID {
		return nil, ErrItemNotOwned
	}

	if itemType == "" {
		itemType = item.Attributes.Category
	}

	record, err := domain.NewWashDecisionRecord(userID, itemID, decision, itemType)
	if err != nil {
		return nil, err
	}
	if err := s.decisionStore.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append wash decision: %w", err)
	}

	if decision == domain.DecisionMovedToLaundry {
		if _, err := s.mover.AddToLaundry(ctx, userID, itemID, time.Time{}); err != nil {
			// The item may already be in the laundry; the decision log
			// entry stands either way.
			if errors.Is(err, domain.ErrInvalidTransition) {
				log.Debug("item already in laundry, decision recorded",
					slog.String("item_id", itemID.String()))
				return record, nil
			}
			return nil, fmt.Errorf("failed to move item to laundry: %w", err)
		}
	}

	log.Debug("wash decision recorded",
		slog.String("user_id", userID.String()),
		slog.String("item_id", itemID.String()),
		slog.String("decision", string(decision)))
	return record, nil
}

// dismissRates rebuilds the per-category learner state from the user's
// decision log, folding records in chronological order.
func (s *laundryServiceImpl) dismissRates(ctx context.Context, userID uuid.UUID) (map[string]*domainlaundry.DismissRate, error) {
	records, err := s.decisionStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wash decisions: %w", err)
	}

	rates := make(map[string]*domainlaundry.DismissRate)
	for _, record := range records {
		rate, ok := rates[record.ItemType]
		if !ok {
			rate = domainlaundry.NewDismissRate(s.params.Alpha)
			rates[record.ItemType] = rate
		}
		rate.Update(record.Decision)
	}
	return rates, nil
}
