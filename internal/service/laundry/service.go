// Package laundry implements the laundry suggestion workflow: generating
// ranked wash suggestions from freshness state and the learned per-category
// dismiss rates, and recording the user's responses to them.
package laundry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	domainlaundry "github.com/closetpilot/wardrobe-api/internal/domain/laundry"
)

// LaundryService provides laundry suggestions and decision recording.
type LaundryService interface {
	// Suggestions evaluates the user's wardrobe and returns the items due
	// for a wash, dirtiest first. A malformed item never aborts the batch;
	// it is skipped and logged.
	Suggestions(ctx context.Context, userID uuid.UUID) ([]domainlaundry.Suggestion, error)

	// RecordDecision appends the user's response to a suggestion to the
	// decision log, feeding the dismiss-rate learner. A moved_to_laundry
	// decision also drives the item's add-to-laundry transition.
	RecordDecision(
		ctx context.Context,
		userID, itemID uuid.UUID,
		decision domain.WashDecision,
		itemType string,
	) (*domain.WashDecisionRecord, error)
}

// ItemMover drives the add-to-laundry transition for accepted suggestions.
// The wardrobe service satisfies this.
type ItemMover interface {
	AddToLaundry(ctx context.Context, userID, itemID uuid.UUID, expectedReturn time.Time) (*domain.ClothingItem, error)
}

// Common error types for LaundryService
var (
	// ErrItemNotFound indicates that the clothing item does not exist.
	ErrItemNotFound = errors.New("clothing item not found")

	// ErrItemNotOwned indicates that the user does not own the item.
	ErrItemNotOwned = errors.New("unauthorized access: item not owned by user")
)
