package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/api"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/config"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/repository"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/service"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/handler"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/logger"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/middleware"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting Bookmarks API...",
		"environment", cfg.AppEnv,
		"port", cfg.ApiServicePort,
	)

	if cfg.JWTSecret == config.DefaultJWTSecret && cfg.AppEnv != "development" {
		appLogger.Warn("⚠️ JWT_SECRET is the development default, set a real secret")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Connect to Database
	db, err := database.Open(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		return err
	}
	defer database.Close(db)

	if cfg.AutoMigrate {
		if err := database.Migrate(db, appLogger); err != nil {
			appLogger.Error("❌ Failed to run migrations", "error", err)
			return err
		}
	}

	// 4. Initialize Repositories
	store := repository.NewStore(db)

	// 5. Initialize Login Limiter
	var limiter middleware.LoginLimiter
	redisClient, err := database.NewRedisClient(cfg, appLogger)
	switch {
	case err == nil:
		limiter = middleware.NewLoginLimiter(redisClient, cfg.LoginMaxAttempts, cfg.LoginAttemptWindow, appLogger)
	case errors.Is(err, database.ErrRedisDisabled):
		limiter = middleware.NewNoOpLoginLimiter(appLogger)
	default:
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op login limiter", "error", err)
		limiter = middleware.NewNoOpLoginLimiter(appLogger)
	}
	defer limiter.Close()

	// 6. Initialize Services
	authService := service.NewAuthService(store, cfg, appLogger)
	tagService := service.NewTagService(store, appLogger)
	bookmarkService := service.NewBookmarkService(store, appLogger)

	// 7. Initialize Handlers & Middleware
	r := api.SetupRouter(api.Handlers{
		Users:     handler.NewUserHandler(authService, limiter, appLogger),
		Tags:      handler.NewTagHandler(tagService, appLogger),
		Bookmarks: handler.NewBookmarkHandler(bookmarkService, appLogger),
		Auth:      middleware.NewAuthMiddleware(authService, appLogger),
	}, cfg.CORSAllowedOrigins, appLogger)

	// 8. Start HTTP Server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ApiServicePort),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		appLogger.Error("❌ HTTP Server failed", "error", err)
		return err
	case <-ctx.Done():
		appLogger.Info("🛑 [Go] Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("❌ Server forced to shutdown", "error", err)
	}

	appLogger.Info("👋 [Go] Server exited")
	return nil
}
