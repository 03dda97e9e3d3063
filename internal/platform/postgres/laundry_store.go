package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// PostgresLaundryEntryStore implements the store.LaundryEntryStore interface
// using a PostgreSQL database as the storage backend. A partial unique index
// on (clothing_item_id) WHERE closed_at IS NULL enforces the one-active-entry
// invariant at the database level.
type PostgresLaundryEntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLaundryEntryStore creates a new PostgreSQL implementation of
// the LaundryEntryStore interface.
func NewPostgresLaundryEntryStore(db store.DBTX, logger *slog.Logger) *PostgresLaundryEntryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLaundryEntryStore{
		db:     db,
		logger: logger.With(slog.String("component", "laundry_entry_store")),
	}
}

// Ensure PostgresLaundryEntryStore implements store.LaundryEntryStore interface
var _ store.LaundryEntryStore = (*PostgresLaundryEntryStore)(nil)

// Create implements store.LaundryEntryStore.Create
func (s *PostgresLaundryEntryStore) Create(ctx context.Context, entry *domain.LaundryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO laundry_entries
			(id, clothing_item_id, status, added_at, expected_return, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.ClothingItemID, string(entry.Status), entry.AddedAt,
		nullableTime(entry.ExpectedReturn), nullableTime(entry.ClosedAt))
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrDuplicateLaundryEntry
		}
		s.logger.ErrorContext(ctx, "failed to create laundry entry",
			slog.String("item_id", entry.ClothingItemID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetActiveByItem implements store.LaundryEntryStore.GetActiveByItem
func (s *PostgresLaundryEntryStore) GetActiveByItem(ctx context.Context, itemID uuid.UUID) (*domain.LaundryEntry, error) {
	query := `
		SELECT id, clothing_item_id, status, added_at, expected_return, closed_at
		FROM laundry_entries
		WHERE clothing_item_id = $1 AND closed_at IS NULL`

	entry, err := scanLaundryEntry(s.db.QueryRowContext(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLaundryEntryNotFound
		}
		return nil, MapError(err)
	}
	return entry, nil
}

// Update implements store.LaundryEntryStore.Update
func (s *PostgresLaundryEntryStore) Update(ctx context.Context, entry *domain.LaundryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE laundry_entries
		SET status = $1, expected_return = $2, closed_at = $3
		WHERE id = $4`

	result, err := s.db.ExecContext(ctx, query,
		string(entry.Status), nullableTime(entry.ExpectedReturn),
		nullableTime(entry.ClosedAt), entry.ID)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrLaundryEntryNotFound
	}
	return nil
}

// Delete implements store.LaundryEntryStore.Delete
func (s *PostgresLaundryEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM laundry_entries WHERE id = $1", id)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrLaundryEntryNotFound
	}
	return nil
}

// WithTx implements store.LaundryEntryStore.WithTx
func (s *PostgresLaundryEntryStore) WithTx(tx *sql.Tx) store.LaundryEntryStore {
	return &PostgresLaundryEntryStore{db: tx, logger: s.logger}
}

func scanLaundryEntry(row scanner) (*domain.LaundryEntry, error) {
	var (
		entry          domain.LaundryEntry
		status         string
		expectedReturn sql.NullTime
		closedAt       sql.NullTime
	)

	err := row.Scan(&entry.ID, &entry.ClothingItemID, &status, &entry.AddedAt,
		&expectedReturn, &closedAt)
	if err != nil {
		return nil, err
	}

	entry.Status = domain.LaundryEntryStatus(status)
	if expectedReturn.Valid {
		entry.ExpectedReturn = expectedReturn.Time
	}
	if closedAt.Valid {
		entry.ClosedAt = closedAt.Time
	}
	return &entry, nil
}
