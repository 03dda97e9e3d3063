package weather

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Entry is one cached advisory together with the observation it was derived
// from and its expiry bookkeeping.
type Entry struct {
	Key         string      `json:"key"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Observation Observation `json:"observation"`
	Advisory    Advisory    `json:"advisory"`
	FetchedAt   time.Time   `json:"fetched_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// Stats reports cache effectiveness counters and the current entry count.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// Cache memoizes weather advisories keyed by rounded coordinates and the
// hour of the lookup. Concurrent lookups for the same key are collapsed
// into a single provider fetch.
type Cache struct {
	provider  Provider
	ttl       time.Duration
	precision int
	logger    *slog.Logger

	mu      sync.Mutex
	entries map[string]*Entry
	hits    int64
	misses  int64

	group singleflight.Group
}

// NewCache creates a Cache backed by the given provider. It panics if the
// provider is nil or ttl is not positive, since those indicate a programming
// error in service initialization.
func NewCache(provider Provider, ttl time.Duration, precision int, logger *slog.Logger) *Cache {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if ttl <= 0 {
		panic("ttl must be positive")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Cache{
		provider:  provider,
		ttl:       ttl,
		precision: precision,
		logger:    logger.With(slog.String("component", "weather_cache")),
		entries:   make(map[string]*Entry),
	}
}

// Key builds the cache key for a coordinate pair at a moment in time:
// latitude and longitude rounded to the configured precision plus the
// lookup hour truncated to UTC.
func (c *Cache) Key(lat, lon float64, now time.Time) string {
	return fmt.Sprintf("%s,%s@%s",
		roundCoordinate(lat, c.precision),
		roundCoordinate(lon, c.precision),
		now.UTC().Truncate(time.Hour).Format("2006-01-02T15"))
}

func roundCoordinate(v float64, precision int) string {
	scale := math.Pow10(precision)
	return strconv.FormatFloat(math.Round(v*scale)/scale, 'f', precision, 64)
}

// Lookup returns the cached advisory for the coordinates, fetching from the
// provider on a miss. The caller supplies now so expiry is deterministic.
// Concurrent lookups that miss on the same key share one provider fetch and
// the miss is counted once.
func (c *Cache) Lookup(ctx context.Context, lat, lon float64, now time.Time) (*Entry, error) {
	key := c.Key(lat, lon, now)

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		if now.Before(entry.ExpiresAt) {
			c.hits++
			c.mu.Unlock()
			return entry, nil
		}
		// Lazy expiry: stale entries are evicted on access.
		delete(c.entries, key)
	}
	c.mu.Unlock()

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()

		obs, err := c.provider.Fetch(ctx, lat, lon)
		if err != nil {
			c.logger.WarnContext(ctx, "weather fetch failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}

		entry := &Entry{
			Key:         key,
			Latitude:    lat,
			Longitude:   lon,
			Observation: *obs,
			Advisory:    DeriveAdvisory(obs),
			FetchedAt:   now,
			ExpiresAt:   now.Add(c.ttl),
		}

		c.mu.Lock()
		c.entries[key] = entry
		c.mu.Unlock()

		c.logger.DebugContext(ctx, "weather advisory cached",
			slog.String("key", key),
			slog.String("band", entry.Advisory.Band))
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Entry), nil
}

// Stats returns the current hit/miss counters and entry count.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}

// Entries returns a snapshot of all cached entries, expired ones included.
func (c *Cache) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	return out
}

// ClearAll removes every cached entry and returns how many were removed.
// Counters are left intact.
func (c *Cache) ClearAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]*Entry)
	return n
}

// ClearExpired removes entries whose expiry has passed as of now and
// returns how many were removed.
func (c *Cache) ClearExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// StartSweep runs a periodic expired-entry sweep until ctx is cancelled.
// It blocks, so callers run it in a goroutine.
func (c *Cache) StartSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := c.ClearExpired(now); removed > 0 {
				c.logger.DebugContext(ctx, "swept expired weather entries",
					slog.Int("removed", removed))
			}
		}
	}
}
