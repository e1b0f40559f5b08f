// Package cache keeps rendered seating charts in Redis so repeated chart
// reads skip the engine lock.  Entries are keyed by the flight's check-in
// generation and the superseded one is dropped when a check-in commits.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/flight-checkin/internal/config"
)

// ChartCache stores chart response bodies keyed by flight number.  A nil
// client or a disabled config turns every call into a miss / no-op, so the
// API keeps working without Redis.
type ChartCache struct {
	rdb     *redis.Client
	prefix  string
	ttl     time.Duration
	maxBody int
}

// NewChartCache builds a cache on top of rdb.
func NewChartCache(cfg config.CacheConfig, rdb *redis.Client) *ChartCache {
	if !cfg.Enabled {
		rdb = nil
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "cache"
	}
	return &ChartCache{rdb: rdb, prefix: prefix, ttl: ttl, maxBody: cfg.MaxBodyBytes}
}

// Enabled reports whether the cache talks to Redis.
func (c *ChartCache) Enabled() bool { return c != nil && c.rdb != nil }

// key names the chart of one generation of a flight.  A chart built before
// a check-in lives under an older generation than any read after it.
func (c *ChartCache) key(flight string, gen uint64) string {
	return fmt.Sprintf("%s:chart:%s:%d", c.prefix, flight, gen)
}

// Get returns the chart body cached for generation gen of a flight.
func (c *ChartCache) Get(ctx context.Context, flight string, gen uint64) ([]byte, bool, error) {
	if !c.Enabled() {
		return nil, false, nil
	}
	body, err := c.rdb.Get(ctx, c.key(flight, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("chart cache get %s: %w", flight, err)
	}
	return body, true, nil
}

// Set stores the chart body built at generation gen.  Bodies larger than the
// configured limit are not cached.
func (c *ChartCache) Set(ctx context.Context, flight string, gen uint64, body []byte) error {
	if !c.Enabled() {
		return nil
	}
	if c.maxBody > 0 && len(body) > c.maxBody {
		return nil
	}
	if err := c.rdb.Set(ctx, c.key(flight, gen), body, c.ttl).Err(); err != nil {
		return fmt.Errorf("chart cache set %s: %w", flight, err)
	}
	return nil
}

// Invalidate drops the chart cached for generation gen of a flight.
func (c *ChartCache) Invalidate(ctx context.Context, flight string, gen uint64) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.rdb.Del(ctx, c.key(flight, gen)).Err(); err != nil {
		return fmt.Errorf("chart cache invalidate %s: %w", flight, err)
	}
	return nil
}
