package testutil

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/config"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database"
)

const TestJWTSecret = "test-secret-at-least-16-chars!!"

// TestConfig returns a configuration for an isolated in-memory database
func TestConfig() *config.Config {
	return &config.Config{
		AppEnv:                "test",
		LogLevel:              slog.LevelError,
		ApiServicePort:        "0",
		DatabaseURL:           "sqlite://:memory:",
		AutoMigrate:           true,
		DBMaxOpenConns:        1,
		DBMaxIdleConns:        1,
		DBConnectRetries:      1,
		JWTSecret:             TestJWTSecret,
		JWTIssuer:             "bookmarks-api-test",
		AccessTokenExpiration: 1800,
		BcryptCost:            bcrypt.MinCost,
		CORSAllowedOrigins:    []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		LoginMaxAttempts:      5,
		LoginAttemptWindow:    15 * time.Minute,
		ShutdownTimeout:       time.Second,
	}
}

// TestLogger returns a logger that drops everything
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// NewTestDB opens a fresh in-memory SQLite database with all migrations applied
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := TestConfig()
	db, err := database.Open(cfg, TestLogger())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, TestLogger()))

	t.Cleanup(func() {
		database.Close(db)
	})

	return db
}

// Clock is a manually advanced clock for services that take a time source
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start.UTC()}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
