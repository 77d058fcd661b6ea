package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultJWTSecret is only meant for local development.
const DefaultJWTSecret = "bookmarks_dev_secret_change_me"

type Config struct {
	AppEnv         string
	LogLevel       slog.Level
	ApiServicePort string

	DatabaseURL         string
	AutoMigrate         bool
	DBMaxOpenConns      int
	DBMaxIdleConns      int
	DBConnMaxIdleTime   time.Duration
	DBConnectRetries    int
	DBConnectRetryDelay time.Duration

	JWTSecret             string
	JWTIssuer             string
	AccessTokenExpiration int64 // seconds
	BcryptCost            int

	CORSAllowedOrigins []string

	RedisURL           string
	LoginMaxAttempts   int64
	LoginAttemptWindow time.Duration

	ShutdownTimeout time.Duration
}

// intDefaults holds the numeric settings; unparsable or non-positive values
// fall back to these.
var intDefaults = map[string]int{
	"DB_MAX_OPEN_CONNS":       10,
	"DB_MAX_IDLE_CONNS":       5,
	"DB_CONN_MAX_IDLE_TIME":   300, // seconds
	"DB_CONNECT_RETRIES":      10,
	"DB_CONNECT_RETRY_DELAY":  2,    // seconds
	"ACCESS_TOKEN_EXPIRATION": 1800, // 30 minutes
	"BCRYPT_COST":             10,
	"LOGIN_MAX_ATTEMPTS":      5,
	"LOGIN_ATTEMPT_WINDOW":    900, // seconds
	"SHUTDOWN_TIMEOUT":        30,  // seconds
}

func LoadConfig() *Config {
	v := viper.New()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("API_SERVICE_PORT", "8000")
	v.SetDefault("DATABASE_URL", "sqlite://./local.db")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "bookmarks-api")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("REDIS_URL", "")
	for key, value := range intDefaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	return &Config{
		AppEnv:                v.GetString("APP_ENV"),
		LogLevel:              parseLogLevel(v.GetString("LOG_LEVEL")),
		ApiServicePort:        v.GetString("API_SERVICE_PORT"),
		DatabaseURL:           v.GetString("DATABASE_URL"),
		AutoMigrate:           v.GetBool("AUTO_MIGRATE"),
		DBMaxOpenConns:        positiveInt(v, "DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:        positiveInt(v, "DB_MAX_IDLE_CONNS"),
		DBConnMaxIdleTime:     seconds(v, "DB_CONN_MAX_IDLE_TIME"),
		DBConnectRetries:      positiveInt(v, "DB_CONNECT_RETRIES"),
		DBConnectRetryDelay:   seconds(v, "DB_CONNECT_RETRY_DELAY"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		JWTIssuer:             v.GetString("JWT_ISSUER"),
		AccessTokenExpiration: int64(positiveInt(v, "ACCESS_TOKEN_EXPIRATION")),
		BcryptCost:            positiveInt(v, "BCRYPT_COST"),
		CORSAllowedOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RedisURL:              v.GetString("REDIS_URL"),
		LoginMaxAttempts:      int64(positiveInt(v, "LOGIN_MAX_ATTEMPTS")),
		LoginAttemptWindow:    seconds(v, "LOGIN_ATTEMPT_WINDOW"),
		ShutdownTimeout:       seconds(v, "SHUTDOWN_TIMEOUT"),
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func positiveInt(v *viper.Viper, key string) int {
	if n := v.GetInt(key); n > 0 {
		return n
	}
	return intDefaults[key]
}

func seconds(v *viper.Viper, key string) time.Duration {
	return time.Duration(positiveInt(v, key)) * time.Second
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
