package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// PostgresClothingItemStore implements the store.ClothingItemStore interface
// using a PostgreSQL database as the storage backend. Attributes and the
// embedding vector are stored as JSONB.
type PostgresClothingItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresClothingItemStore creates a new PostgreSQL implementation of
// the ClothingItemStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresClothingItemStore(db store.DBTX, logger *slog.Logger) *PostgresClothingItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresClothingItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "clothing_item_store")),
	}
}

// Ensure PostgresClothingItemStore implements store.ClothingItemStore interface
var _ store.ClothingItemStore = (*PostgresClothingItemStore)(nil)

// Create implements store.ClothingItemStore.Create
func (s *PostgresClothingItemStore) Create(ctx context.Context, item *domain.ClothingItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	attrs, embedding, err := marshalItemJSON(item)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO clothing_items
			(id, owner_id, attributes, embedding, wear_count, last_worn_at,
			 status, freshness_score, wash_preference, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = s.db.ExecContext(ctx, query,
		item.ID, item.OwnerID, attrs, embedding, item.WearCount,
		nullableTime(item.LastWornAt), string(item.Status), item.FreshnessScore,
		string(item.WashPreference), item.Version, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create clothing item",
			slog.String("item_id", item.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.ClothingItemStore.GetByID
func (s *PostgresClothingItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ClothingItem, error) {
	query := `
		SELECT id, owner_id, attributes, embedding, wear_count, last_worn_at,
		       status, freshness_score, wash_preference, version, created_at, updated_at
		FROM clothing_items
		WHERE id = $1`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrItemNotFound
		}
		return nil, MapError(err)
	}
	return item, nil
}

// ListByOwner implements store.ClothingItemStore.ListByOwner
func (s *PostgresClothingItemStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.ClothingItem, error) {
	query := `
		SELECT id, owner_id, attributes, embedding, wear_count, last_worn_at,
		       status, freshness_score, wash_preference, version, created_at, updated_at
		FROM clothing_items
		WHERE owner_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.WarnContext(ctx, "failed to close rows",
				slog.String("error", closeErr.Error()))
		}
	}()

	var items []*domain.ClothingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, MapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return items, nil
}

// Update implements store.ClothingItemStore.Update. The WHERE clause on
// version implements the compare-and-swap: zero rows affected with an
// existing row means another writer won.
func (s *PostgresClothingItemStore) Update(ctx context.Context, item *domain.ClothingItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	attrs, embedding, err := marshalItemJSON(item)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query := `
		UPDATE clothing_items
		SET attributes = $1, embedding = $2, wear_count = $3, last_worn_at = $4,
		    status = $5, freshness_score = $6, wash_preference = $7,
		    version = version + 1, updated_at = $8
		WHERE id = $9 AND version = $10`

	result, err := s.db.ExecContext(ctx, query,
		attrs, embedding, item.WearCount, nullableTime(item.LastWornAt),
		string(item.Status), item.FreshnessScore, string(item.WashPreference),
		now, item.ID, item.Version)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		// Distinguish a missing row from a lost race.
		var exists bool
		checkErr := s.db.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM clothing_items WHERE id = $1)", item.ID).Scan(&exists)
		if checkErr != nil {
			return MapError(checkErr)
		}
		if !exists {
			return store.ErrItemNotFound
		}
		s.logger.DebugContext(ctx, "version conflict on clothing item update",
			slog.String("item_id", item.ID.String()),
			slog.Int64("expected_version", item.Version))
		return store.ErrVersionConflict
	}

	item.Version++
	item.UpdatedAt = now
	return nil
}

// Delete implements store.ClothingItemStore.Delete
func (s *PostgresClothingItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM clothing_items WHERE id = $1", id)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrItemNotFound
	}
	return nil
}

// WithTx implements store.ClothingItemStore.WithTx
func (s *PostgresClothingItemStore) WithTx(tx *sql.Tx) store.ClothingItemStore {
	return &PostgresClothingItemStore{db: tx, logger: s.logger}
}

// scanner abstracts *sql.Row and *sql.Rows for scanItem.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row scanner) (*domain.ClothingItem, error) {
	var (
		item       domain.ClothingItem
		attrs      []byte
		embedding  []byte
		lastWornAt sql.NullTime
		status     string
		pref       string
	)

	err := row.Scan(&item.ID, &item.OwnerID, &attrs, &embedding, &item.WearCount,
		&lastWornAt, &status, &item.FreshnessScore, &pref, &item.Version,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(attrs, &item.Attributes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item attributes: %w", err)
	}
	if len(embedding) > 0 {
		if err := json.Unmarshal(embedding, &item.Embedding); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item embedding: %w", err)
		}
	}
	if lastWornAt.Valid {
		item.LastWornAt = lastWornAt.Time
	}
	item.Status = domain.CleanlinessStatus(status)
	item.WashPreference = domain.WashPreference(pref)

	return &item, nil
}

func marshalItemJSON(item *domain.ClothingItem) (attrs, embedding []byte, err error) {
	attrs, err = json.Marshal(item.Attributes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal item attributes: %w", err)
	}
	embedding, err = json.Marshal(item.Embedding)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal item embedding: %w", err)
	}
	return attrs, embedding, nil
}

func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
