package config

import "time"

// CacheConfig defines settings for the seating chart cache.  When Enabled is
// false or no Redis client is configured, charts are always rebuilt from the
// engine.  Prefix namespaces the keys and MaxBodyBytes caps the size of a
// cached chart.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads CHART_CACHE_* variables.  Defaults are used when
// variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CHART_CACHE_ENABLED", true),
		TTL:          envDur("CHART_CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CHART_CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CHART_CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
