package config

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedis connects to the cache used for verified-listing search results.
// An empty addr disables caching; callers get a nil client and every search
// goes straight to the store.
func InitRedis(addr, password string) *redis.Client {
	if addr == "" {
		zap.S().Info("Redis not configured, search caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		zap.S().Fatalf("Failed to connect to Redis: %v", err)
	}
	zap.S().Info("Connected to Redis")
	return client
}
