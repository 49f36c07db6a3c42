// Package cache holds the optional Redis layer. The application degrades
// gracefully: when Redis is unreachable at startup the client is nil and
// callers skip caching entirely.
package cache

import (
	"context"
	"time"

	"jobhub_backend/internal/config"
	"jobhub_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis using the loaded configuration. Returns nil
// when Redis is not configured or the ping fails.
func NewClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis not configured, caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("Redis unreachable, caching disabled", "addr", cfg.Redis.Addr)
		return nil
	}

	logger.Info("Connected to Redis", "addr", cfg.Redis.Addr)
	return client
}
