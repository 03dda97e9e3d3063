package api

import (
	"errors"
	"net/http"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/service/feedback"
	"github.com/closetpilot/wardrobe-api/internal/service/laundry"
	"github.com/closetpilot/wardrobe-api/internal/service/recommendation"
	"github.com/closetpilot/wardrobe-api/internal/service/wardrobe"
	"github.com/closetpilot/wardrobe-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Keeping
// the mapping in one place prevents handlers from leaking internal error
// types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authorization errors
	case errors.Is(err, wardrobe.ErrItemNotOwned),
		errors.Is(err, laundry.ErrItemNotOwned),
		errors.Is(err, feedback.ErrRecommendationNotOwned),
		errors.Is(err, recommendation.ErrRecommendationNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, wardrobe.ErrItemNotFound),
		errors.Is(err, laundry.ErrItemNotFound),
		errors.Is(err, feedback.ErrRecommendationNotFound),
		errors.Is(err, recommendation.ErrRecommendationNotFound),
		errors.Is(err, recommendation.ErrNoEligibleItems),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors: duplicates, exhausted optimistic retries and
	// state-machine violations all describe a request that clashes with
	// the item's current state rather than a malformed one.
	case errors.Is(err, feedback.ErrDuplicateFeedback),
		errors.Is(err, wardrobe.ErrTransitionConflict),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrVersionConflict):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidDecision),
		errors.Is(err, domain.ErrInvalidWashPreference),
		errors.Is(err, domain.ErrInvalidCleanlinessStatus),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Internal details stay in the logs.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, wardrobe.ErrItemNotOwned),
		errors.Is(err, laundry.ErrItemNotOwned):
		return "You do not own this item"

	case errors.Is(err, feedback.ErrRecommendationNotOwned),
		errors.Is(err, recommendation.ErrRecommendationNotOwned):
		return "You do not own this recommendation"

	case errors.Is(err, wardrobe.ErrItemNotFound),
		errors.Is(err, laundry.ErrItemNotFound),
		errors.Is(err, store.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, feedback.ErrRecommendationNotFound),
		errors.Is(err, recommendation.ErrRecommendationNotFound),
		errors.Is(err, store.ErrRecommendationNotFound):
		return "Recommendation not found"

	case errors.Is(err, recommendation.ErrNoEligibleItems):
		return "No wearable items available"

	case errors.Is(err, feedback.ErrDuplicateFeedback):
		return "Feedback already submitted for this recommendation"

	case errors.Is(err, wardrobe.ErrTransitionConflict),
		errors.Is(err, store.ErrVersionConflict):
		return "Item was modified concurrently, please retry"

	case errors.Is(err, domain.ErrInvalidTransition):
		return "Item state does not allow this operation"

	case errors.Is(err, domain.ErrInvalidRating):
		return "Rating must be between 1 and 5"

	case errors.Is(err, domain.ErrInvalidDecision):
		return "Invalid wash decision"

	case errors.Is(err, domain.ErrInvalidWashPreference):
		return "Invalid wash preference"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}
