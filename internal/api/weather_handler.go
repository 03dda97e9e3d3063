package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/closetpilot/wardrobe-api/internal/api/shared"
	"github.com/closetpilot/wardrobe-api/internal/platform/logger"
	"github.com/closetpilot/wardrobe-api/internal/weather"
)

// WeatherHandler exposes administrative views of the weather advisory
// cache: hit/miss statistics, the live entries and manual invalidation.
type WeatherHandler struct {
	cache  *weather.Cache
	logger *slog.Logger
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(cache *weather.Cache, logger *slog.Logger) *WeatherHandler {
	if cache == nil {
		panic("cache cannot be nil for WeatherHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for WeatherHandler")
	}
	return &WeatherHandler{
		cache:  cache,
		logger: logger.With(slog.String("component", "weather_handler")),
	}
}

// GetCacheStats handles GET /api/weather/cache/stats requests.
func (h *WeatherHandler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.cache.Stats())
}

// GetCacheEntries handles GET /api/weather/cache/entries requests.
func (h *WeatherHandler) GetCacheEntries(w http.ResponseWriter, r *http.Request) {
	entries := h.cache.Entries()
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// ClearCache handles DELETE /api/weather/cache requests.
func (h *WeatherHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cleared := h.cache.ClearAll()
	log.Info("weather cache cleared", slog.Int("entries_removed", cleared))
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]int{"cleared": cleared})
}

// ClearExpired handles DELETE /api/weather/cache/expired requests.
func (h *WeatherHandler) ClearExpired(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cleared := h.cache.ClearExpired(time.Now().UTC())
	log.Info("expired weather cache entries cleared", slog.Int("entries_removed", cleared))
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]int{"cleared": cleared})
}
