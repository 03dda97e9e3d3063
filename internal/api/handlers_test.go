package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/closetpilot/wardrobe-api/internal/domain"
	"github.com/closetpilot/wardrobe-api/internal/domain/freshness"
	"github.com/closetpilot/wardrobe-api/internal/platform/hashenc"
	"github.com/closetpilot/wardrobe-api/internal/platform/memory"
	"github.com/closetpilot/wardrobe-api/internal/service/feedback"
	"github.com/closetpilot/wardrobe-api/internal/service/laundry"
	"github.com/closetpilot/wardrobe-api/internal/service/recommendation"
	"github.com/closetpilot/wardrobe-api/internal/service/wardrobe"
	"github.com/closetpilot/wardrobe-api/internal/weather"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// stubWeatherProvider serves a fixed observation, mild unless overridden.
type stubWeatherProvider struct {
	observation weather.Observation
}

func (p *stubWeatherProvider) Fetch(ctx context.Context, lat, lon float64) (*weather.Observation, error) {
	obs := p.observation
	return &obs, nil
}

// testEnv hosts the full handler stack on in-memory stores, with routes
// mirroring the server router.
type testEnv struct {
	router http.Handler
	items  *memory.ClothingItemStore
	cache  *weather.Cache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := testLogger()
	items := memory.NewClothingItemStore()
	entries := memory.NewLaundryEntryStore()
	decisions := memory.NewWashDecisionStore()
	recommendations := memory.NewRecommendationStore()
	feedbacks := memory.NewFeedbackStore()

	freshnessService := freshness.NewDefaultService()
	encoder := hashenc.NewEncoder(16)

	wardrobeService := wardrobe.NewWardrobeService(items, entries, nil, freshnessService, encoder, 3, log)
	laundryService := laundry.NewLaundryService(items, decisions, freshnessService, wardrobeService, nil, log)
	feedbackService := feedback.NewFeedbackService(feedbacks, recommendations, log)

	cache := weather.NewCache(&stubWeatherProvider{
		observation: weather.Observation{TemperatureC: 15, ConditionCode: 0},
	}, time.Hour, 2, log)

	recommendationService := recommendation.NewRecommendationService(
		items, recommendations, cache, encoder, feedbackService, nil,
		wardrobeService, nil, time.Second, log)

	itemHandler := NewItemHandler(wardrobeService, log)
	laundryHandler := NewLaundryHandler(laundryService, log)
	recommendationHandler := NewRecommendationHandler(recommendationService, feedbackService, log)
	weatherHandler := NewWeatherHandler(cache, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/items", itemHandler.CreateItem)
		r.Get("/items", itemHandler.ListItems)
		r.Delete("/items/{id}", itemHandler.DeleteItem)
		r.Put("/items/{id}/wash-preference", itemHandler.UpdateWashPreference)
		r.Post("/items/{id}/worn", itemHandler.RecordWear)
		r.Post("/items/{id}/laundry", itemHandler.AddToLaundry)
		r.Delete("/items/{id}/laundry", itemHandler.RemoveFromLaundry)
		r.Post("/items/{id}/washed", itemHandler.MarkWashed)
		r.Post("/items/{id}/ready", itemHandler.ReturnToRotation)
		r.Get("/laundry/suggestions", laundryHandler.GetSuggestions)
		r.Post("/laundry/decisions", laundryHandler.RecordDecision)
		r.Post("/recommendations", recommendationHandler.CreateRecommendation)
		r.Post("/recommendations/{id}/worn", recommendationHandler.MarkWorn)
		r.Post("/recommendations/{id}/feedback", recommendationHandler.SubmitFeedback)
		r.Get("/weather/cache/stats", weatherHandler.GetCacheStats)
		r.Get("/weather/cache/entries", weatherHandler.GetCacheEntries)
		r.Delete("/weather/cache", weatherHandler.ClearCache)
		r.Delete("/weather/cache/expired", weatherHandler.ClearExpired)
	})

	return &testEnv{router: r, items: items, cache: cache}
}

// do sends a request with an optional JSON body and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the recorded response body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// createItem registers an item through the API and returns its response.
func (e *testEnv) createItem(t *testing.T, userID uuid.UUID, category string, pref domain.WashPreference) ItemResponse {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/items", CreateItemRequest{
		UserID:         userID.String(),
		Attributes:     ItemAttributesPayload{Category: category},
		WashPreference: string(pref),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp ItemResponse
	decode(t, rec, &resp)
	return resp
}
