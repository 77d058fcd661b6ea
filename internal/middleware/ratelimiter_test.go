package middleware_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/middleware"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/testutil"
)

func setupLimiter(t *testing.T, maxAttempts int64) (middleware.LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := middleware.NewLoginLimiter(client, maxAttempts, 15*time.Minute, testutil.TestLogger())
	t.Cleanup(func() { limiter.Close() })
	return limiter, mr
}

func TestLoginLimiter_BlocksAfterMaxFailures(t *testing.T) {
	limiter, mr := setupLimiter(t, 3)
	ctx := context.Background()
	email := "alice@example.com"

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, email)
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d should be allowed", i+1)
		require.NoError(t, limiter.RecordFailure(ctx, email))
	}

	allowed, err := limiter.Allow(ctx, email)
	require.NoError(t, err)
	assert.False(t, allowed)

	// other addresses are unaffected
	allowed, err = limiter.Allow(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)

	assert.Equal(t, 15*time.Minute, mr.TTL("login:attempts:"+email))
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	limiter, mr := setupLimiter(t, 1)
	ctx := context.Background()

	require.NoError(t, limiter.RecordFailure(ctx, "alice@example.com"))
	allowed, err := limiter.Allow(ctx, "alice@example.com")
	require.NoError(t, err)
	require.False(t, allowed)

	mr.FastForward(16 * time.Minute)

	allowed, err = limiter.Allow(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLoginLimiter_WindowStartsAtFirstFailure(t *testing.T) {
	limiter, mr := setupLimiter(t, 5)
	ctx := context.Background()
	key := "login:attempts:alice@example.com"

	require.NoError(t, limiter.RecordFailure(ctx, "alice@example.com"))
	mr.FastForward(10 * time.Minute)
	require.NoError(t, limiter.RecordFailure(ctx, "alice@example.com"))

	assert.Equal(t, 5*time.Minute, mr.TTL(key))
}

func TestLoginLimiter_Reset(t *testing.T) {
	limiter, mr := setupLimiter(t, 1)
	ctx := context.Background()

	require.NoError(t, limiter.RecordFailure(ctx, "alice@example.com"))
	require.NoError(t, limiter.Reset(ctx, "alice@example.com"))

	assert.False(t, mr.Exists("login:attempts:alice@example.com"))
	allowed, err := limiter.Allow(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLoginLimiter_AllowsWhenRedisIsDown(t *testing.T) {
	limiter, mr := setupLimiter(t, 1)
	mr.Close()

	allowed, err := limiter.Allow(context.Background(), "alice@example.com")

	assert.Error(t, err)
	assert.True(t, allowed)
}

func TestNoOpLoginLimiter(t *testing.T) {
	limiter := middleware.NewNoOpLoginLimiter(testutil.TestLogger())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, limiter.RecordFailure(ctx, "alice@example.com"))
	}

	allowed, err := limiter.Allow(ctx, "alice@example.com")
	assert.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, limiter.Reset(ctx, "alice@example.com"))
	assert.NoError(t, limiter.Close())
}
