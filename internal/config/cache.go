package config

import "time"

// CacheConfig controls the response cache placed in front of the public
// action catalog.  The catalog changes rarely (admin edits only), so even a
// short TTL absorbs the dashboard's repeated reads.  Caching is disabled
// when Enabled is false or no Redis client is configured.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration // lifetime of cache entries
	Prefix       string        // Redis key namespace
	MaxBodyBytes int           // responses larger than this are not cached
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       getenv("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
