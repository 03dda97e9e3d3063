package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// PostgresWashDecisionStore implements the store.WashDecisionStore interface
// using a PostgreSQL database as the storage backend. The table is an
// append-only log; there are no UPDATE or DELETE paths.
type PostgresWashDecisionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWashDecisionStore creates a new PostgreSQL implementation of
// the WashDecisionStore interface.
func NewPostgresWashDecisionStore(db store.DBTX, logger *slog.Logger) *PostgresWashDecisionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWashDecisionStore{
		db:     db,
		logger: logger.With(slog.String("component", "wash_decision_store")),
	}
}

// Ensure PostgresWashDecisionStore implements store.WashDecisionStore interface
var _ store.WashDecisionStore = (*PostgresWashDecisionStore)(nil)

// Append implements store.WashDecisionStore.Append
func (s *PostgresWashDecisionStore) Append(ctx context.Context, record *domain.WashDecisionRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO wash_decisions
			(id, user_id, clothing_item_id, decision, item_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.ClothingItemID,
		string(record.Decision), record.ItemType, record.CreatedAt)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to append wash decision",
			slog.String("user_id", record.UserID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// ListByUser implements store.WashDecisionStore.ListByUser
func (s *PostgresWashDecisionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WashDecisionRecord, error) {
	query := `
		SELECT id, user_id, clothing_item_id, decision, item_type, created_at
		FROM wash_decisions
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

	var records []*domain.WashDecisionRecord
	for rows.Next() {
		var (
			record   domain.WashDecisionRecord
			decision string
		)
		if err := rows.Scan(&record.ID, &record.UserID, &record.ClothingItemID,
			&decision, &record.ItemType, &record.CreatedAt); err != nil {
			return nil, MapError(err)
		}
		record.Decision = domain.WashDecision(decision)
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return records, nil
}

// WithTx implements store.WashDecisionStore.WithTx
func (s *PostgresWashDecisionStore) WithTx(tx *sql.Tx) store.WashDecisionStore {
	return &PostgresWashDecisionStore{db: tx, logger: s.logger}
}
