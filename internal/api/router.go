package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/dto"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/handler"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/middleware"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Users     *handler.UserHandler
	Tags      *handler.TagHandler
	Bookmarks *handler.BookmarkHandler
	Auth      *middleware.AuthMiddleware
}

func SetupRouter(h Handlers, allowedOrigins []string, logger *slog.Logger) *gin.Engine {
	dto.RegisterValidator()

	r := gin.New()
	r.SetTrustedProxies(nil)

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("💥 [HTTP] Panic recovered",
			"panic", recovered,
			"request_id", middleware.RequestIDFromContext(c),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "internal server error"})
	}))
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(CORSConfig(allowedOrigins)))

	// Public routes
	r.GET("/healthz", HealthHandler)

	users := r.Group("/users")
	{
		users.POST("", h.Users.Signup)
		users.POST("/login", h.Users.Login)
		users.GET("/me", h.Auth.RequireAuth(), h.Users.Me)
	}

	// Protected API routes
	tags := r.Group("/tags")
	tags.Use(h.Auth.RequireAuth())
	{
		tags.GET("", h.Tags.List)
		tags.POST("", h.Tags.Create)
		tags.DELETE("/:id", h.Tags.Delete)
	}

	bookmarks := r.Group("/bookmarks")
	bookmarks.Use(h.Auth.RequireAuth())
	{
		bookmarks.GET("", h.Bookmarks.List)
		bookmarks.POST("", h.Bookmarks.Create)
		bookmarks.GET("/code/:code", h.Bookmarks.GetByCode)
		bookmarks.GET("/:id", h.Bookmarks.Get)
		bookmarks.PATCH("/:id", h.Bookmarks.Update)
		bookmarks.DELETE("/:id", h.Bookmarks.Delete)
	}

	return r
}

// CORSConfig allows the configured origins with credentials. A "*" entry
// allows any origin, which rules out credentials.
func CORSConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range allowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}

	if len(allowedOrigins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return false }
		return cfg
	}

	cfg.AllowOrigins = allowedOrigins
	cfg.AllowCredentials = true
	return cfg
}
