package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
)

// WashDecisionStore defines the interface for the append-only wash
// decision log. Records are never updated or deleted.
type WashDecisionStore interface {
	// Append adds one decision record to the log.
	Append(ctx context.Context, record *domain.WashDecisionRecord) error

	// ListByUser retrieves a user's decision records in chronological order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WashDecisionRecord, error)

	// WithTx returns a new WashDecisionStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) WashDecisionStore
}
