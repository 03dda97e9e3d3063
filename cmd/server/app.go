package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver

	"github.com/closetpilot/wardrobe-api/internal/config"
	"github.com/closetpilot/wardrobe-api/internal/domain/freshness"
	domainlaundry "github.com/closetpilot/wardrobe-api/internal/domain/laundry"
	"github.com/closetpilot/wardrobe-api/internal/domain/match"
	"github.com/closetpilot/wardrobe-api/internal/generation"
	"github.com/closetpilot/wardrobe-api/internal/platform/gemini"
	"github.com/closetpilot/wardrobe-api/internal/platform/hashenc"
	"github.com/closetpilot/wardrobe-api/internal/platform/memory"
	"github.com/closetpilot/wardrobe-api/internal/platform/openmeteo"
	"github.com/closetpilot/wardrobe-api/internal/platform/postgres"
	"github.com/closetpilot/wardrobe-api/internal/service/feedback"
	"github.com/closetpilot/wardrobe-api/internal/service/laundry"
	"github.com/closetpilot/wardrobe-api/internal/service/recommendation"
	"github.com/closetpilot/wardrobe-api/internal/service/wardrobe"
	"github.com/closetpilot/wardrobe-api/internal/store"
	"github.com/closetpilot/wardrobe-api/internal/weather"
)

// application bundles the long-lived dependencies: configuration, stores,
// the weather cache and the domain services the handlers run on.
type application struct {
	config *config.Config
	logger *slog.Logger

	db *sql.DB // nil when running on the in-memory stores

	itemStore           store.ClothingItemStore
	laundryStore        store.LaundryEntryStore
	decisionStore       store.WashDecisionStore
	recommendationStore store.RecommendationStore
	feedbackStore       store.FeedbackStore

	weatherCache *weather.Cache

	wardrobeService       wardrobe.WardrobeService
	laundryService        laundry.LaundryService
	feedbackService       feedback.FeedbackService
	recommendationService recommendation.RecommendationService
}

// newApplication wires the full dependency graph from the configuration.
// With a database URL the stores run on PostgreSQL (migrations applied on
// startup); without one everything lives in memory, which suits local
// development. An empty Gemini API key disables narrative generation.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: log}

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	freshnessService := freshness.NewServiceWithParams(freshness.NewParams(freshness.ParamsConfig{
		FreshBoundary:      cfg.Freshness.FreshBoundary,
		NeedsWashThreshold: cfg.Freshness.NeedsWashThreshold,
		AfterEachWearDecay: cfg.Freshness.AfterEachWearDecay,
		AfterFewWearsDecay: cfg.Freshness.AfterFewWearsDecay,
		ManualDecay:        cfg.Freshness.ManualDecay,
	}))

	learnerParams := domainlaundry.NewParams(domainlaundry.ParamsConfig{
		Alpha:         cfg.Learner.Alpha,
		MinMultiplier: cfg.Learner.MinMultiplier,
		MaxMultiplier: cfg.Learner.MaxMultiplier,
	})

	matchParams := &match.Params{
		PerCategoryCap:      cfg.Recommendation.PerCategoryCap,
		MaxTotalItems:       cfg.Recommendation.MaxTotalItems,
		EssentialCategories: cfg.Recommendation.EssentialCategories,
	}

	provider := openmeteo.NewClient(cfg.Weather.ProviderURL, cfg.Weather.ProviderTimeout, log)
	app.weatherCache = weather.NewCache(provider, cfg.Weather.TTL, cfg.Weather.CoordinatePrecision, log)
	if cfg.Weather.SweepInterval > 0 {
		go app.weatherCache.StartSweep(ctx, cfg.Weather.SweepInterval)
	}

	var generator generation.NarrativeGenerator
	if cfg.LLM.GeminiAPIKey != "" {
		g, err := gemini.NewNarrativeGenerator(ctx, log, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to create narrative generator: %w", err)
		}
		generator = g
	} else {
		log.Info("no Gemini API key configured, recommendations will ship without narrative text")
	}

	encoder := hashenc.NewEncoder(hashenc.DefaultDimension)

	app.wardrobeService = wardrobe.NewWardrobeService(
		app.itemStore,
		app.laundryStore,
		app.db,
		freshnessService,
		encoder,
		cfg.Recommendation.TransitionRetries,
		log,
	)
	app.laundryService = laundry.NewLaundryService(
		app.itemStore,
		app.decisionStore,
		freshnessService,
		app.wardrobeService,
		learnerParams,
		log,
	)
	app.feedbackService = feedback.NewFeedbackService(
		app.feedbackStore,
		app.recommendationStore,
		log,
	)
	app.recommendationService = recommendation.NewRecommendationService(
		app.itemStore,
		app.recommendationStore,
		app.weatherCache,
		encoder,
		app.feedbackService,
		generator,
		app.wardrobeService,
		matchParams,
		cfg.Recommendation.NarrativeTimeout,
		log,
	)

	return app, nil
}

// setupStores selects the persistence backend from the configuration.
func (app *application) setupStores(ctx context.Context) error {
	if app.config.Database.URL == "" {
		app.logger.Info("no database URL configured, using in-memory stores")
		app.itemStore = memory.NewClothingItemStore()
		app.laundryStore = memory.NewLaundryEntryStore()
		app.decisionStore = memory.NewWashDecisionStore()
		app.recommendationStore = memory.NewRecommendationStore()
		app.feedbackStore = memory.NewFeedbackStore()
		return nil
	}

	db, err := sql.Open("pgx", app.config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := postgres.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.db = db
	app.itemStore = postgres.NewPostgresClothingItemStore(db, app.logger)
	app.laundryStore = postgres.NewPostgresLaundryEntryStore(db, app.logger)
	app.decisionStore = postgres.NewPostgresWashDecisionStore(db, app.logger)
	app.recommendationStore = postgres.NewPostgresRecommendationStore(db, app.logger)
	app.feedbackStore = postgres.NewPostgresFeedbackStore(db, app.logger)

	app.logger.Info("connected to database, migrations applied")
	return nil
}

// cleanup releases resources on shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
