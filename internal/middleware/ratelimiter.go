package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTooManyAttempts is returned once an email has used up its failed logins
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// LoginLimiter throttles failed logins per email address using a fixed
// window that starts at the first failure.
type LoginLimiter interface {
	// Allow reports whether another login attempt is permitted for key
	Allow(ctx context.Context, key string) (bool, error)

	// RecordFailure counts a failed attempt for key
	RecordFailure(ctx context.Context, key string) error

	// Reset clears the counter after a successful login
	Reset(ctx context.Context, key string) error

	// Close releases the underlying connection
	Close() error
}

type redisLoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
	logger      *slog.Logger
}

// NewLoginLimiter creates a Redis backed login limiter
func NewLoginLimiter(client *redis.Client, maxAttempts int64, window time.Duration, logger *slog.Logger) LoginLimiter {
	logger.Info("✅ [LoginLimiter] Using Redis login throttling",
		"max_attempts", maxAttempts,
		"window", window,
	)
	return &redisLoginLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
		logger:      logger,
	}
}

// attemptsKey generates the Redis key for failed login counts
// Format: login:attempts:{email}
func attemptsKey(key string) string {
	return fmt.Sprintf("login:attempts:%s", key)
}

func (r *redisLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Get(ctx, attemptsKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		r.logger.Error("❌ [LoginLimiter] Failed to get attempt count", "error", err)
		// On error, allow the attempt but log it
		return true, err
	}

	return count < r.maxAttempts, nil
}

func (r *redisLoginLimiter) RecordFailure(ctx context.Context, key string) error {
	k := attemptsKey(key)

	count, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		r.logger.Error("❌ [LoginLimiter] Failed to increment attempt count", "error", err)
		return err
	}

	// the window starts with the first failure
	if count == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			r.logger.Error("❌ [LoginLimiter] Failed to set attempt window", "error", err)
			return err
		}
	}

	if count >= r.maxAttempts {
		r.logger.Warn("⚠️ [LoginLimiter] Login attempts exhausted", "attempts", count)
	}
	return nil
}

func (r *redisLoginLimiter) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, attemptsKey(key)).Err()
}

func (r *redisLoginLimiter) Close() error {
	return r.client.Close()
}

// NoOpLoginLimiter is a login limiter that always allows requests
// Used when Redis is not configured
type NoOpLoginLimiter struct{}

// NewNoOpLoginLimiter creates a no-op login limiter
func NewNoOpLoginLimiter(logger *slog.Logger) LoginLimiter {
	logger.Warn("⚠️ [LoginLimiter] Using no-op login limiter - login throttling is disabled")
	return &NoOpLoginLimiter{}
}

func (r *NoOpLoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}

func (r *NoOpLoginLimiter) RecordFailure(ctx context.Context, key string) error {
	return nil
}

func (r *NoOpLoginLimiter) Reset(ctx context.Context, key string) error {
	return nil
}

func (r *NoOpLoginLimiter) Close() error {
	return nil
}
