package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/service"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/dto"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/middleware"
)

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationResponse(err))
	case errors.Is(err, service.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Detail: "Email already registered"})
	case errors.Is(err, service.ErrCodeTaken):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Detail: "Code already used by another bookmark"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: "Incorrect email or password"})
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrUserNotFound):
		middleware.Unauthorized(c, "Could not validate credentials")
	case errors.Is(err, service.ErrTagNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: "Tag not found"})
	case errors.Is(err, service.ErrBookmarkNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: "Bookmark not found"})
	case errors.Is(err, middleware.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Detail: "Too many failed login attempts, try again later"})
	default:
		logger.Error("❌ [Handler] Internal server error",
			"error", err,
			"request_id", middleware.RequestIDFromContext(c),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "internal server error"})
	}
}

// respondValidation writes a 422 for a failed bind
func respondValidation(c *gin.Context, logger *slog.Logger, err error) {
	logger.Debug("⚠️ [Handler] Invalid request", "error", err)
	c.JSON(http.StatusUnprocessableEntity, dto.NewValidationResponse(err))
}

// currentUser returns the authenticated user's id, aborting with 401 if absent
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok || userID == 0 {
		middleware.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// pathID parses a numeric path parameter; anything else is a 422
func pathID(c *gin.Context, logger *slog.Logger, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		logger.Debug("⚠️ [Handler] Invalid path parameter", "param", name, "value", c.Param(name))
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Detail: name + " must be a positive integer",
			Errors: []dto.FieldError{{Field: name, Message: name + " must be a positive integer"}},
		})
		return 0, false
	}
	return uint(id), true
}
