package config

import (
	"strings"
	"time"
)

// CacheConfig drives the response cache in front of the public catalog
// routes.  Caching is off when Enabled is false or Redis is unreachable.
type CacheConfig struct {
	Enabled      bool            // CACHE_ENABLED
	Methods      map[string]bool // CACHE_METHODS, comma separated
	TTL          time.Duration   // CACHE_TTL
	KeyStrategy  string          // CACHE_KEY_STRATEGY: route | route_query
	Prefix       string          // CACHE_PREFIX
	MaxBodyBytes int             // CACHE_MAX_BODY_BYTES
}

func LoadCacheConfig() CacheConfig {
	c := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr("CACHE_PREFIX", "fixtures-cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
	if c.TTL <= 0 {
		c.TTL = time.Second
	}
	return c
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(strings.ToUpper(p)); p != "" {
			m[p] = true
		}
	}
	return m
}
