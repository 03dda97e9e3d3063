package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// PostgresRecommendationStore implements the store.RecommendationStore
// interface using a PostgreSQL database as the storage backend. The request
// context and the ranked items are stored as JSONB.
type PostgresRecommendationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRecommendationStore creates a new PostgreSQL implementation of
// the RecommendationStore interface.
func NewPostgresRecommendationStore(db store.DBTX, logger *slog.Logger) *PostgresRecommendationStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRecommendationStore{
		db:     db,
		logger: logger.With(slog.String("component", "recommendation_store")),
	}
}

// Ensure PostgresRecommendationStore implements store.RecommendationStore interface
var _ store.RecommendationStore = (*PostgresRecommendationStore)(nil)

// Create implements store.RecommendationStore.Create
func (s *PostgresRecommendationStore) Create(ctx context.Context, result *domain.RecommendationResult) error {
	if err := result.Validate(); err != nil {
		return err
	}

	reqCtx, err := json.Marshal(result.Context)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation context: %w", err)
	}
	items, err := json.Marshal(result.ItemsByCategory)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation items: %w", err)
	}

	query := `
		INSERT INTO recommendations
			(id, user_id, context, items_by_category, narrative, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = s.db.ExecContext(ctx, query,
		result.ID, result.UserID, reqCtx, items, result.Narrative, result.CreatedAt)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create recommendation",
			slog.String("recommendation_id", result.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.RecommendationStore.GetByID
func (s *PostgresRecommendationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.RecommendationResult, error) {
	query := `
		SELECT id, user_id, context, items_by_category, narrative, created_at
		FROM recommendations
		WHERE id = $1`

	var (
		result domain.RecommendationResult
		reqCtx []byte
		items  []byte
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&result.ID, &result.UserID, &reqCtx, &items, &result.Narrative, &result.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRecommendationNotFound
		}
		return nil, MapError(err)
	}

	if err := json.Unmarshal(reqCtx, &result.Context); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation context: %w", err)
	}
	if err := json.Unmarshal(items, &result.ItemsByCategory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendation items: %w", err)
	}

	return &result, nil
}

// WithTx implements store.RecommendationStore.WithTx
func (s *PostgresRecommendationStore) WithTx(tx *sql.Tx) store.RecommendationStore {
	return &PostgresRecommendationStore{db: tx, logger: s.logger}
}
