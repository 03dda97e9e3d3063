// Package api provides HTTP handlers for the API.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/api/shared"
	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/platform/logger"
	"github.com/closetpilot/wardrobe-api/internal/redact"
	"github.com/closetpilot/wardrobe-api/internal/service/wardrobe"
)

// ItemHandler handles clothing item HTTP requests.
type ItemHandler struct {
	wardrobeService wardrobe.WardrobeService
	logger          *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(wardrobeService wardrobe.WardrobeService, logger *slog.Logger) *ItemHandler {
	if wardrobeService == nil {
		panic("wardrobeService cannot be nil for ItemHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ItemHandler")
	}
	return &ItemHandler{
		wardrobeService: wardrobeService,
		logger:          logger.With(slog.String("component", "item_handler")),
	}
}

// CreateItemRequest is the payload for registering a new clothing item.
// The embedding is optional; when omitted the server derives one from the
// item's attributes.
type CreateItemRequest struct {
	UserID         string                `json:"userId"         validate:"required,uuid"`
	Attributes     ItemAttributesPayload `json:"attributes"     validate:"required"`
	Embedding      []float64             `json:"embedding,omitempty"`
	WashPreference string                `json:"washPreference" validate:"required"`
}

// CreateItem handles POST /api/items requests.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	item, err := h.wardrobeService.CreateItem(r.Context(), userID,
		req.Attributes.toDomain(), req.Embedding, domain.WashPreference(req.WashPreference))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("clothing item created",
		slog.String("item_id", item.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, itemToResponse(item))
}

// ListItems handles GET /api/items?user_id= requests.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromQuery(w, r)
	if !ok {
		return
	}

	items, err := h.wardrobeService.ListItems(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"items": itemsToResponse(items),
		"count": len(items),
	})
}

// DeleteItem handles DELETE /api/items/{id}?user_id= requests.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := userIDFromQuery(w, r)
	if !ok {
		return
	}

	if err := h.wardrobeService.DeleteItem(r.Context(), userID, itemID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateWashPreferenceRequest is the payload for changing an item's wash
// preference.
type UpdateWashPreferenceRequest struct {
	UserID     string `json:"userId"     validate:"required,uuid"`
	Preference string `json:"preference" validate:"required"`
}

// UpdateWashPreference handles PUT /api/items/{id}/wash-preference requests.
func (h *ItemHandler) UpdateWashPreference(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req UpdateWashPreferenceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	item, err := h.wardrobeService.UpdateWashPreference(r.Context(), userID, itemID,
		domain.WashPreference(req.Preference))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// itemActionRequest is the payload shared by the worn/washed/ready state
// transition endpoints.
type itemActionRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

// AddToLaundryRequest is the payload for moving an item into the laundry.
type AddToLaundryRequest struct {
	UserID         string     `json:"userId" validate:"required,uuid"`
	ExpectedReturn *time.Time `json:"expectedReturn,omitempty"`
}

// RecordWear handles POST /api/items/{id}/worn requests.
func (h *ItemHandler) RecordWear(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.wardrobeService.RecordWear)
}

// MarkWashed handles POST /api/items/{id}/washed requests.
func (h *ItemHandler) MarkWashed(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.wardrobeService.MarkWashed)
}

// ReturnToRotation handles POST /api/items/{id}/ready requests.
func (h *ItemHandler) ReturnToRotation(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.wardrobeService.ReturnToRotation)
}

// AddToLaundry handles POST /api/items/{id}/laundry requests.
func (h *ItemHandler) AddToLaundry(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req AddToLaundryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var expectedReturn time.Time
	if req.ExpectedReturn != nil {
		expectedReturn = *req.ExpectedReturn
	}

	item, err := h.wardrobeService.AddToLaundry(r.Context(), userID, itemID, expectedReturn)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// RemoveFromLaundry handles DELETE /api/items/{id}/laundry?user_id=
// requests. The item leaves the pipeline unwashed and its status reverts
// to whatever its freshness score implies.
func (h *ItemHandler) RemoveFromLaundry(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := userIDFromQuery(w, r)
	if !ok {
		return
	}

	item, err := h.wardrobeService.RemoveFromLaundry(r.Context(), userID, itemID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// transition runs a single-item state transition endpoint: parse the item
// ID from the path and the user ID from the body, call op, respond with
// the updated item.
func (h *ItemHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID, itemID uuid.UUID) (*domain.ClothingItem, error),
) {
	itemID, ok := itemIDFromPath(w, r)
	if !ok {
		return
	}

	var req itemActionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request data")
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	item, err := op(r.Context(), userID, itemID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// itemIDFromPath extracts and parses the {id} path parameter, responding
// with 400 on failure.
func itemIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Item ID is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID format")
		return uuid.Nil, false
	}
	return id, true
}

// userIDFromQuery extracts and parses the user_id query parameter,
// responding with 400 on failure.
func userIDFromQuery(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "user_id query parameter is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}
