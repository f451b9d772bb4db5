package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cached search results for the public verified-listings endpoint. Role
// checks never touch this cache; only the search payloads do. A nil client
// disables caching everywhere.

func searchCacheKey(search, sortTok string) string {
	sum := sha256.Sum256([]byte(search + "|" + sortTok))
	return "verified:" + hex.EncodeToString(sum[:])
}

// invalidateListingCache drops every cached search result. Called after any
// property mutation, before the response is written, so the next search
// never serves stale listings.
func invalidateListingCache(redisClient *redis.Client) {
	if redisClient == nil {
		return
	}

	ctx := context.Background()
	const scanPattern = "verified:*"
	const scanCount = 100

	var keysToDelete []string
	var cursor uint64
	var err error

	for {
		var currentKeys []string
		currentKeys, cursor, err = redisClient.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			zap.S().Errorf("Error during Redis SCAN for pattern %q: %v", scanPattern, err)
			return
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := redisClient.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		zap.S().Errorf("Error deleting %d listing cache keys: %v", len(keysToDelete), err)
		return
	}
	zap.S().Infof("Listing cache invalidated, %d keys deleted", len(keysToDelete))
}
