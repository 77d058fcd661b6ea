package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/config"
)

// ErrRedisDisabled is returned when REDIS_URL is not configured
var ErrRedisDisabled = errors.New("redis is not configured")

// NewRedisClient connects to the Redis instance named by cfg.RedisURL
// (redis://[:password@]host:port/db) and verifies it with a ping.
func NewRedisClient(cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, ErrRedisDisabled
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	logger.Info("🔌 [Redis] Connecting to Redis...",
		"addr", opts.Addr,
		"db", opts.DB,
	)

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [Redis] Redis connection established")

	return client, nil
}
