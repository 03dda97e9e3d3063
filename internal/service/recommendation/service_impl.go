package recommendation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/domain/match"
	"github.com/closetpilot/wardrobe-api/internal/encoding"
	"github.com/closetpilot/wardrobe-api/internal/generation"
	"github.com/closetpilot/wardrobe-api/internal/platform/logger"
	"github.com/closetpilot/wardrobe-api/internal/service/wardrobe"
	"github.com/closetpilot/wardrobe-api/internal/store"
	"github.com/closetpilot/wardrobe-api/internal/weather"
)

// Verify interface compliance at compile time
var _ RecommendationService = (*recommendationServiceImpl)(nil)

// recommendationServiceImpl implements the RecommendationService interface.
type recommendationServiceImpl struct {
	itemStore           store.ClothingItemStore
	recommendationStore store.RecommendationStore
	weatherCache        *weather.Cache
	encoder             encoding.Encoder
	biasProvider        BiasProvider
	generator           generation.NarrativeGenerator
	wornRecorder        WornRecorder
	matchParams         *match.Params
	narrativeTimeout    time.Duration
	logger              *slog.Logger
}

// NewRecommendationService creates a new RecommendationService
// implementation. weatherCache and generator may be nil: without a cache
// requests are never weather-filtered, and without a generator results
// ship without narrative text. matchParams may be nil for defaults.
func NewRecommendationService(
	itemStore store.ClothingItemStore,
	recommendationStore store.RecommendationStore,
	weatherCache *weather.Cache,
	encoder encoding.Encoder,
	biasProvider BiasProvider,
	generator generation.NarrativeGenerator,
	wornRecorder WornRecorder,
	matchParams *match.Params,
	narrativeTimeout time.Duration,
	logger *slog.Logger,
) RecommendationService {
	if itemStore == nil {
		panic("itemStore cannot be nil")
	}
	if recommendationStore == nil {
		panic("recommendationStore cannot be nil")
	}
	if encoder == nil {
		panic("encoder cannot be nil")
	}
	if biasProvider == nil {
		panic("biasProvider cannot be nil")
	}
	if wornRecorder == nil {
		panic("wornRecorder cannot be nil")
	}

	if matchParams == nil {
		matchParams = match.NewDefaultParams()
	}
	if narrativeTimeout <= 0 {
		narrativeTimeout = 10 * time.Second
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &recommendationServiceImpl{
		itemStore:           itemStore,
		recommendationStore: recommendationStore,
		weatherCache:        weatherCache,
		encoder:             encoder,
		biasProvider:        biasProvider,
		generator:           generator,
		wornRecorder:        wornRecorder,
		matchParams:         matchParams,
		narrativeTimeout:    narrativeTimeout,
		logger:              logger.With(slog.String("component", "recommendation_service")),
	}
}

// Recommend implements RecommendationService.Recommend.
func (s *recommendationServiceImpl) Recommend(
	ctx context.Context,
	userID uuid.UUID,
	reqCtx domain.RecommendationContext,
) (*Outcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	advisory := s.resolveAdvisory(ctx, reqCtx)

	items, err := s.itemStore.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clothing items: %w", err)
	}

	candidates := filterByAdvisory(items, advisory)
	if len(candidates) == 0 {
		return nil, ErrNoEligibleItems
	}

	query, err := s.encoder.EncodeQuery(ctx, reqCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	bias, err := s.biasProvider.CategoryBias(ctx, userID, reqCtx.Occasion, reqCtx.Season)
	if err != nil {
		// The learned bias is an optimization, not a requirement.
		log.Warn("failed to compute category bias, ranking without it",
			slog.String("error", err.Error()))
		bias = nil
	}

	ranked := match.Rank(query, candidates, bias, s.matchParams)
	if len(ranked) == 0 {
		return nil, ErrNoEligibleItems
	}

	itemsByCategory := make(map[string][]domain.RankedItem, len(ranked))
	var selected []*domain.ClothingItem
	for category, scored := range ranked {
		for _, sc := range scored {
			itemsByCategory[category] = append(itemsByCategory[category], domain.RankedItem{
				ItemID:     sc.Item.ID,
				Similarity: sc.Similarity,
			})
			selected = append(selected, sc.Item)
		}
	}

	narrative := s.generateNarrative(ctx, reqCtx, selected)

	result, err := domain.NewRecommendationResult(userID, reqCtx, itemsByCategory, narrative)
	if err != nil {
		return nil, err
	}
	if err := s.recommendationStore.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to persist recommendation: %w", err)
	}

	log.Info("recommendation composed",
		slog.String("recommendation_id", result.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("total_items", result.TotalItems()),
		slog.Bool("has_narrative", narrative != ""),
		slog.Bool("weather_filtered", advisory != nil))
	return &Outcome{Result: result, Advisory: advisory}, nil
}

// MarkWorn implements RecommendationService.MarkWorn.
func (s *recommendationServiceImpl) MarkWorn(
	ctx context.Context,
	userID, recommendationID uuid.UUID,
) ([]*domain.ClothingItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	recommendation, err := s.recommendationStore.GetByID(ctx, recommendationID)
	if err != nil {
		if errors.Is(err, store.ErrRecommendationNotFound) {
			return nil, ErrRecommendationNotFound
		}
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}
	if recommendation.UserID != userID {
		return nil, ErrRecommendationNotOwned
	}

	var updated []*domain.ClothingItem
	for _, itemID := range recommendation.ItemIDs() {
		item, err := s.wornRecorder.RecordWear(ctx, userID, itemID)
		if err != nil {
			// Items deleted or moved into the laundry since the
			// recommendation was composed are skipped, so earlier worn
			// events in this batch stand; anything else aborts.
			if errors.Is(err, store.ErrItemNotFound) ||
				errors.Is(err, wardrobe.ErrItemNotFound) ||
				errors.Is(err, domain.ErrInvalidTransition) {
				log.Warn("skipping worn event for unavailable item",
					slog.String("item_id", itemID.String()),
					slog.String("reason", err.Error()))
				continue
			}
			return nil, fmt.Errorf("failed to record worn event for item %s: %w", itemID, err)
		}
		updated = append(updated, item)
	}

	log.Debug("recommendation marked worn",
		slog.String("recommendation_id", recommendationID.String()),
		slog.Int("items_updated", len(updated)))
	return updated, nil
}

// resolveAdvisory looks up the cached weather advisory for the request
// coordinates. Any failure degrades to nil: recommendations proceed
// unfiltered rather than failing on an unavailable provider.
func (s *recommendationServiceImpl) resolveAdvisory(
	ctx context.Context,
	reqCtx domain.RecommendationContext,
) *weather.Advisory {
	if s.weatherCache == nil || reqCtx.Latitude == nil || reqCtx.Longitude == nil {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, err := s.weatherCache.Lookup(ctx, *reqCtx.Latitude, *reqCtx.Longitude, time.Now().UTC())
	if err != nil {
		log.Warn("weather advisory unavailable, skipping weather filter",
			slog.String("error", err.Error()))
		return nil
	}

	advisory := entry.Advisory
	return &advisory
}

// filterByAdvisory drops candidates the weather advisory argues against.
// A nil advisory passes everything through.
func filterByAdvisory(items []*domain.ClothingItem, advisory *weather.Advisory) []*domain.ClothingItem {
	if advisory == nil {
		return items
	}

	avoidCategories := toSet(advisory.AvoidCategories)
	avoidMaterials := toSet(advisory.AvoidMaterials)

	filtered := make([]*domain.ClothingItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if avoidCategories[item.Attributes.Category] {
			continue
		}
		if item.Attributes.Material != "" && avoidMaterials[item.Attributes.Material] {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// generateNarrative asks the LLM for prose describing the selection,
// bounded by the configured timeout. Every failure path returns an empty
// narrative; the recommendation itself always succeeds.
func (s *recommendationServiceImpl) generateNarrative(
	ctx context.Context,
	reqCtx domain.RecommendationContext,
	selected []*domain.ClothingItem,
) string {
	if s.generator == nil || len(selected) == 0 {
		return ""
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	narrativeCtx, cancel := context.WithTimeout(ctx, s.narrativeTimeout)
	defer cancel()

	narrative, err := s.generator.GenerateNarrative(narrativeCtx, reqCtx, selected)
	if err != nil {
		log.Warn("narrative generation failed, continuing without text",
			slog.String("error", err.Error()))
		return ""
	}
	return narrative
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
