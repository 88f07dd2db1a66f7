package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/gridcarbon/internal/contract"
	"github.com/huangsam/gridcarbon/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cachedFetchMonth returns the daily records of one month, consulting the response cache first.
func cachedFetchMonth(ctx context.Context, cfg *contract.Config, client contract.IntensityClient, store contract.CacheStore, w MonthWindow) ([]schema.DailyRecord, error) {
	if store == nil {
		// Fallback to direct request
		return client.GetStats(ctx, w.From, w.To, schema.DailyBlockHours)
	}

	key := generateCacheKey(cfg.BaseURL, w)

	// Check for cache hit
	if records, ok := checkCacheHit(store, key, cfg.CacheTTL); ok {
		return records, nil
	}

	// Cache miss: fetch and store
	return fetchAndStore(ctx, client, store, key, w, time.Now())
}

// checkCacheHit attempts to retrieve and validate a cached month
func checkCacheHit(store contract.CacheStore, key string, ttl time.Duration) ([]schema.DailyRecord, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil, false // Cache miss
	}
	if ttl <= 0 {
		ttl = contract.DefaultCacheTTL
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= ttl {
			var records []schema.DailyRecord
			if err := json.Unmarshal(data, &records); err == nil {
				return records, true // Cache hit
			}
		}
	}

	return nil, false // Cache miss (stale or version mismatch)
}

// fetchAndStore requests the month and stores it in cache once the month has closed
func fetchAndStore(ctx context.Context, client contract.IntensityClient, store contract.CacheStore, key string, w MonthWindow, now time.Time) ([]schema.DailyRecord, error) {
	records, err := client.GetStats(ctx, w.From, w.To, schema.DailyBlockHours)
	if err != nil {
		return nil, err
	}

	// A month still in progress keeps publishing new days
	if !w.To.Before(now) {
		return records, nil
	}

	data, err := json.Marshal(records)
	if err == nil {
		err = store.Set(key, data, currentCacheVersion, now.Unix())
	}
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Cannot cache %s %d", w.Month(), w.From.Year()), err)
	}

	return records, nil
}

// generateCacheKey creates a unique key for a month window of an upstream
func generateCacheKey(baseURL string, w MonthWindow) string {
	key := fmt.Sprintf("%s|%s|%s|%d",
		baseURL,
		w.From.Format(contract.APITimeLayout),
		w.To.Format(contract.APITimeLayout),
		schema.DailyBlockHours,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
