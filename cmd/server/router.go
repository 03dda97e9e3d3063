package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/closetpilot/wardrobe-api/internal/api"
	apiMiddleware "github.com/closetpilot/wardrobe-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and
// middleware registered.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	itemHandler := api.NewItemHandler(app.wardrobeService, app.logger)
	laundryHandler := api.NewLaundryHandler(app.laundryService, app.logger)
	recommendationHandler := api.NewRecommendationHandler(
		app.recommendationService, app.feedbackService, app.logger)
	weatherHandler := api.NewWeatherHandler(app.weatherCache, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Wardrobe management
		r.Post("/items", itemHandler.CreateItem)
		r.Get("/items", itemHandler.ListItems)
		r.Delete("/items/{id}", itemHandler.DeleteItem)
		r.Put("/items/{id}/wash-preference", itemHandler.UpdateWashPreference)
		r.Post("/items/{id}/worn", itemHandler.RecordWear)
		r.Post("/items/{id}/laundry", itemHandler.AddToLaundry)
		r.Delete("/items/{id}/laundry", itemHandler.RemoveFromLaundry)
		r.Post("/items/{id}/washed", itemHandler.MarkWashed)
		r.Post("/items/{id}/ready", itemHandler.ReturnToRotation)

		// Laundry suggestions and decisions
		r.Get("/laundry/suggestions", laundryHandler.GetSuggestions)
		r.Post("/laundry/decisions", laundryHandler.RecordDecision)

		// Outfit recommendations
		r.Post("/recommendations", recommendationHandler.CreateRecommendation)
		r.Post("/recommendations/{id}/worn", recommendationHandler.MarkWorn)
		r.Post("/recommendations/{id}/feedback", recommendationHandler.SubmitFeedback)

		// Weather cache administration
		r.Get("/weather/cache/stats", weatherHandler.GetCacheStats)
		r.Get("/weather/cache/entries", weatherHandler.GetCacheEntries)
		r.Delete("/weather/cache", weatherHandler.ClearCache)
		r.Delete("/weather/cache/expired", weatherHandler.ClearExpired)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
