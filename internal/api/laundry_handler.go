package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/api/shared"
	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/platform/logger"
	"github.com/closetpilot/wardrobe-api/internal/redact"
	"github.com/closetpilot/wardrobe-api/internal/service/laundry"
)

// LaundryHandler handles laundry suggestion and decision HTTP requests.
type LaundryHandler struct {
	laundryService laundry.LaundryService
	logger         *slog.Logger
}

// NewLaundryHandler creates a new LaundryHandler.
func NewLaundryHandler(laundryService laundry.LaundryService, logger *slog.Logger) *LaundryHandler {
	if laundryService == nil {
		panic("laundryService cannot be nil for LaundryHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for LaundryHandler")
	}
	return &LaundryHandler{
		laundryService: laundryService,
		logger:         logger.With(slog.String("component", "laundry_handler")),
	}
}

// GetSuggestions handles GET /api/laundry/suggestions?user_id= requests.
// Suggestions come back ordered dirtiest-first.
func (h *LaundryHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromQuery(w, r)
	if !ok {
		return
	}

	suggestions, err := h.laundryService.Suggestions(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]SuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		responses = append(responses, suggestionToResponse(s))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"suggestions": responses,
		"count":       len(responses),
	})
}

// DecisionRequest is the payload for recording the user's response to a
// laundry suggestion.
type DecisionRequest struct {
	UserID     string `json:"userId"     validate:"required,uuid"`
	ClothingID string `json:"clothingId" validate:"required,uuid"`
	Decision   string `json:"decision"   validate:"required"`
	ItemType   string `json:"itemType,omitempty"`
}

// DecisionResponse confirms a logged wash decision.
type DecisionResponse struct {
	ID       string `json:"id"`
	Decision string `json:"decision"`
	ItemType string `json:"itemType"`
}

// RecordDecision handles POST /api/laundry/decisions requests.
func (h *LaundryHandler) RecordDecision(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req DecisionRequest
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
	itemID, err := uuid.Parse(req.ClothingID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid clothing ID format")
		return
	}

	record, err := h.laundryService.RecordDecision(r.Context(), userID, itemID,
		domain.WashDecision(req.Decision), req.ItemType)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("wash decision recorded",
		slog.String("record_id", record.ID.String()),
		slog.String("decision", string(record.Decision)))
	shared.RespondWithJSON(w, r, http.StatusCreated, DecisionResponse{
		ID:       record.ID.String(),
		Decision: string(record.Decision),
		ItemType: record.ItemType,
	})
}
