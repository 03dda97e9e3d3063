// Package weather memoizes weather lookups and the clothing advisories
// derived from them.
package weather

import (
	"context"
	"errors"
)

// Common errors returned by the weather package
var (
	// ErrProviderUnavailable is returned when the external weather fetch
	// fails or times out. Callers degrade gracefully rather than failing
	// the surrounding request.
	ErrProviderUnavailable = errors.New("weather provider unavailable")
)

// Observation is one raw weather reading from the external provider.
// ConditionCode follows the WMO weather interpretation codes.
type Observation struct {
	TemperatureC  float64 `json:"temperature_c"`
	ConditionCode int     `json:"condition_code"`
	WindSpeedKmh  float64 `json:"wind_speed_kmh"`
	Humidity      float64 `json:"humidity"`
}

// Provider fetches current weather for a coordinate pair. Implementations
// wrap external services; the cache is the only caller.
type Provider interface {
	Fetch(ctx context.Context, lat, lon float64) (*Observation, error)
}
