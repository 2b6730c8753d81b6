package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/florencehealth/ai-nurse-florence/internal/domain/providers"
)

// Cache TTLs per upstream source, in seconds. Reference data changes
// slowly; trial recruitment status changes daily.
const (
	diseaseCacheTTL     = 3600
	drugCacheTTL        = 3600
	trialsCacheTTL      = 1800
	literatureCacheTTL  = 3600
	healthTopicCacheTTL = 86400
)

// cacheKey builds a namespaced cache key from lowercased parts.
func cacheKey(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(normalized, ":")
}

// cacheFetch looks up key in the cache and unmarshals into dest. Returns
// false on any miss or error; caching is best-effort and a broken cache
// must never break a lookup.
func cacheFetch(ctx context.Context, cache providers.CacheProvider, key string, dest interface{}) bool {
	if cache == nil {
		return false
	}
	data, err := cache.Get(ctx, key)
	if err != nil || data == nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("discarding unreadable cache entry")
		return false
	}
	return true
}

// cacheStore marshals value and stores it under key, logging failures.
func cacheStore(ctx context.Context, cache providers.CacheProvider, key string, value interface{}, ttlSeconds int) {
	if cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to marshal cache entry")
		return
	}
	if err := cache.Set(ctx, key, data, ttlSeconds); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to store cache entry")
	}
}

func limitKey(limit int) string {
	return fmt.Sprintf("%d", limit)
}
