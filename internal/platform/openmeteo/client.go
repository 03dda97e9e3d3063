// Package openmeteo implements the weather.Provider interface against the
// Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/closetpilot/wardrobe-api/internal/weather"
)

// Client fetches current weather observations from Open-Meteo. The API is
// unauthenticated; only the base URL and a request timeout are configured.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo client. It panics on nil logger or an
// empty base URL since those indicate wiring errors.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "openmeteo_client")),
	}
}

// currentWeather mirrors the current_weather object in the Open-Meteo
// response.
type currentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
}

type forecastResponse struct {
	CurrentWeather currentWeather `json:"current_weather"`
}

// Fetch implements weather.Provider.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (*weather.Observation, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	query.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	query.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrProviderUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "failed to close response body",
				slog.String("error", closeErr.Error()))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status %d", weather.ErrProviderUnavailable, resp.StatusCode)
	}

	var parsed forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", weather.ErrProviderUnavailable, err)
	}

	return &weather.Observation{
		TemperatureC:  parsed.CurrentWeather.Temperature,
		ConditionCode: parsed.CurrentWeather.WeatherCode,
		WindSpeedKmh:  parsed.CurrentWeather.WindSpeed,
	}, nil
}
