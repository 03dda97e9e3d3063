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

// PostgresFeedbackStore implements the store.FeedbackStore interface using
// a PostgreSQL database as the storage backend. A unique index on
// (user_id, recommendation_id) enforces the one-feedback-per-pair invariant.
type PostgresFeedbackStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFeedbackStore creates a new PostgreSQL implementation of the
// FeedbackStore interface.
func NewPostgresFeedbackStore(db store.DBTX, logger *slog.Logger) *PostgresFeedbackStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFeedbackStore{
		db:     db,
		logger: logger.With(slog.String("component", "feedback_store")),
	}
}

// Ensure PostgresFeedbackStore implements store.FeedbackStore interface
var _ store.FeedbackStore = (*PostgresFeedbackStore)(nil)

// Create implements store.FeedbackStore.Create
func (s *PostgresFeedbackStore) Create(ctx context.Context, feedback *domain.Feedback) error {
	if err := feedback.Validate(); err != nil {
		return err
	}

	aspects, err := json.Marshal(feedback.SpecificAspects)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback aspects: %w", err)
	}

	query := `
		INSERT INTO feedback
			(id, recommendation_id, user_id, rating, comment, specific_aspects,
			 would_wear_again, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = s.db.ExecContext(ctx, query,
		feedback.ID, feedback.RecommendationID, feedback.UserID, feedback.Rating,
		feedback.Comment, aspects, feedback.WouldWearAgain, feedback.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrDuplicateFeedback
		}
		s.logger.ErrorContext(ctx, "failed to create feedback",
			slog.String("recommendation_id", feedback.RecommendationID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetByUserAndRecommendation implements store.FeedbackStore.GetByUserAndRecommendation
func (s *PostgresFeedbackStore) GetByUserAndRecommendation(
	ctx context.Context,
	userID, recommendationID uuid.UUID,
) (*domain.Feedback, error) {
	query := `
		SELECT id, recommendation_id, user_id, rating, comment, specific_aspects,
		       would_wear_again, created_at
		FROM feedback
		WHERE user_id = $1 AND recommendation_id = $2`

	feedback, err := scanFeedback(s.db.QueryRowContext(ctx, query, userID, recommendationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFeedbackNotFound
		}
		return nil, MapError(err)
	}
	return feedback, nil
}

// ListByUser implements store.FeedbackStore.ListByUser
func (s *PostgresFeedbackStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Feedback, error) {
	query := `
		SELECT id, recommendation_id, user_id, rating, comment, specific_aspects,
		       would_wear_again, created_at
		FROM feedback
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.WarnContext(ctx, "failed to close rows",
				slog.String("error", closeErr.Error()))
		}
	}()

	var out []*domain.Feedback
	for rows.Next() {
		feedback, err := scanFeedback(rows)
		if err != nil {
			return nil, MapError(err)
		}
		out = append(out, feedback)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return out, nil
}

// WithTx implements store.FeedbackStore.WithTx
func (s *PostgresFeedbackStore) WithTx(tx *sql.Tx) store.FeedbackStore {
	return &PostgresFeedbackStore{db: tx, logger: s.logger}
}

func scanFeedback(row scanner) (*domain.Feedback, error) {
	var (
		feedback domain.Feedback
		aspects  []byte
	)

	err := row.Scan(&feedback.ID, &feedback.RecommendationID, &feedback.UserID,
		&feedback.Rating, &feedback.Comment, &aspects, &feedback.WouldWearAgain,
		&feedback.CreatedAt)
	if err != nil {
		return nil, err
	}

	if len(aspects) > 0 {
		if err := json.Unmarshal(aspects, &feedback.SpecificAspects); err != nil {
			return nil, fmt.Errorf("failed to unmarshal feedback aspects: %w", err)
		}
	}
	return &feedback, nil
}
