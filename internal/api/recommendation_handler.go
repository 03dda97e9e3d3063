package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/closetpilot/wardrobe-api/internal/api/shared"
	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/platform/logger"
	"github.com/closetpilot/wardrobe-api/internal/redact"
	"github.com/closetpilot/wardrobe-api/internal/service/feedback"
	"github.com/closetpilot/wardrobe-api/internal/service/recommendation"
	"github.com/closetpilot/wardrobe-api/internal/weather"
)

// RecommendationHandler handles outfit recommendation HTTP requests.
type RecommendationHandler struct {
	recommendationService recommendation.RecommendationService
	feedbackService       feedback.FeedbackService
	logger                *slog.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(
	recommendationService recommendation.RecommendationService,
	feedbackService feedback.FeedbackService,
	logger *slog.Logger,
) *RecommendationHandler {
	if recommendationService == nil {
		panic("recommendationService cannot be nil for RecommendationHandler")
	}
	if feedbackService == nil {
		panic("feedbackService cannot be nil for RecommendationHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for RecommendationHandler")
	}
	return &RecommendationHandler{
		recommendationService: recommendationService,
		feedbackService:       feedbackService,
		logger:                logger.With(slog.String("component", "recommendation_handler")),
	}
}

// RecommendRequest is the payload for composing a recommendation. All
// context fields are optional; coordinates enable the weather advisory.
type RecommendRequest struct {
	UserID    string   `json:"userId" validate:"required,uuid"`
	Query     string   `json:"query,omitempty"`
	Occasion  string   `json:"occasion,omitempty"`
	Weather   string   `json:"weather,omitempty"`
	Season    string   `json:"season,omitempty"`
	Formality string   `json:"formality,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"  validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// RecommendResponse is the composed recommendation. Weather is nil when no
// coordinates were given or the provider was unavailable; AISuggestion is
// empty when narrative generation failed or timed out.
type RecommendResponse struct {
	RecommendationID string                          `json:"recommendationId"`
	ItemsByCategory  map[string][]RankedItemResponse `json:"itemsByCategory"`
	TotalItems       int                             `json:"totalItems"`
	Weather          *weather.Advisory               `json:"weather,omitempty"`
	AISuggestion     string                          `json:"aiSuggestion,omitempty"`
}

// CreateRecommendation handles POST /api/recommendations requests.
func (h *RecommendationHandler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RecommendRequest
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

	outcome, err := h.recommendationService.Recommend(r.Context(), userID, domain.RecommendationContext{
		Occasion:  req.Occasion,
		Weather:   req.Weather,
		Season:    req.Season,
		Formality: req.Formality,
		Query:     req.Query,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	result := outcome.Result
	itemsByCategory := make(map[string][]RankedItemResponse, len(result.ItemsByCategory))
	for category, ranked := range result.ItemsByCategory {
		for _, item := range ranked {
			itemsByCategory[category] = append(itemsByCategory[category], RankedItemResponse{
				ItemID:     item.ItemID.String(),
				Similarity: item.Similarity,
			})
		}
	}

	log.Debug("recommendation created",
		slog.String("recommendation_id", result.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, RecommendResponse{
		RecommendationID: result.ID.String(),
		ItemsByCategory:  itemsByCategory,
		TotalItems:       result.TotalItems(),
		Weather:          outcome.Advisory,
		AISuggestion:     result.Narrative,
	})
}

// markWornRequest is the payload for marking a recommendation as worn.
type markWornRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

// MarkWorn handles POST /api/recommendations/{id}/worn requests. Every
// item of the recommendation gets a worn-event; items deleted since the
// recommendation was composed are skipped.
func (h *RecommendationHandler) MarkWorn(w http.ResponseWriter, r *http.Request) {
	recommendationID, ok := recommendationIDFromPath(w, r)
	if !ok {
		return
	}

	var req markWornRequest
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

	updated, err := h.recommendationService.MarkWorn(r.Context(), userID, recommendationID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"items":        itemsToResponse(updated),
		"itemsUpdated": len(updated),
	})
}

// FeedbackRequest is the payload for rating a recommendation.
type FeedbackRequest struct {
	UserID          string         `json:"userId" validate:"required,uuid"`
	Rating          int            `json:"rating" validate:"required,gte=1,lte=5"`
	Comment         string         `json:"comment,omitempty"`
	SpecificAspects map[string]int `json:"specificAspects,omitempty"`
	WouldWearAgain  bool           `json:"wouldWearAgain"`
}

// FeedbackResponse confirms a stored feedback submission.
type FeedbackResponse struct {
	ID               string `json:"id"`
	RecommendationID string `json:"recommendationId"`
	Rating           int    `json:"rating"`
	WouldWearAgain   bool   `json:"wouldWearAgain"`
}

// SubmitFeedback handles POST /api/recommendations/{id}/feedback requests.
// A second submission for the same recommendation returns 409.
func (h *RecommendationHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	recommendationID, ok := recommendationIDFromPath(w, r)
	if !ok {
		return
	}

	var req FeedbackRequest
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

	fb, err := h.feedbackService.SubmitFeedback(r.Context(), userID, recommendationID,
		req.Rating, req.Comment, req.SpecificAspects, req.WouldWearAgain)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("feedback submitted",
		slog.String("feedback_id", fb.ID.String()),
		slog.String("recommendation_id", recommendationID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, FeedbackResponse{
		ID:               fb.ID.String(),
		RecommendationID: fb.RecommendationID.String(),
		Rating:           fb.Rating,
		WouldWearAgain:   fb.WouldWearAgain,
	})
}

// recommendationIDFromPath extracts and parses the {id} path parameter,
// responding with 400 on failure.
func recommendationIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Recommendation ID is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid recommendation ID format")
		return uuid.Nil, false
	}
	return id, true
}
