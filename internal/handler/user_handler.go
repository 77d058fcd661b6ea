package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/service"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/dto"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/middleware"
)

// UserHandler handles HTTP requests for accounts and authentication
type UserHandler struct {
	service service.AuthService
	limiter middleware.LoginLimiter
	logger  *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(service service.AuthService, limiter middleware.LoginLimiter, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		limiter: limiter,
		logger:  logger,
	}
}

// Signup handles account creation
func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, h.logger, err)
		return
	}

	user, err := h.service.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserOut(user))
}

// Login exchanges credentials for an access token. Accepts JSON or form
// encoded bodies.
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondValidation(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	key := service.NormalizeEmail(req.Email)

	allowed, err := h.limiter.Allow(ctx, key)
	if err != nil {
		h.logger.Warn("⚠️ [Handler] Login limiter unavailable", "error", err)
	}
	if !allowed {
		respondError(c, h.logger, middleware.ErrTooManyAttempts)
		return
	}

	token, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if lerr := h.limiter.RecordFailure(ctx, key); lerr != nil {
				h.logger.Warn("⚠️ [Handler] Failed to record login failure", "error", lerr)
			}
		}
		respondError(c, h.logger, err)
		return
	}

	if err := h.limiter.Reset(ctx, key); err != nil {
		h.logger.Warn("⚠️ [Handler] Failed to reset login attempts", "error", err)
	}

	c.JSON(http.StatusOK, dto.ToToken(token))
}

// Me returns the authenticated user
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserOut(user))
}
