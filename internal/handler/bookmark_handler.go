package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/service"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/dto"
)

// BookmarkHandler handles HTTP requests for bookmarks
type BookmarkHandler struct {
	service service.BookmarkService
	logger  *slog.Logger
}

// NewBookmarkHandler creates a new bookmark handler
func NewBookmarkHandler(service service.BookmarkService, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		service: service,
		logger:  logger,
	}
}

// List returns a page of the caller's bookmarks, newest first
func (h *BookmarkHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q dto.BookmarkListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, h.logger, err)
		return
	}

	bookmarks, total, err := h.service.List(c.Request.Context(), userID, q.Filter(), q.Offset(), q.PageSize())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBookmarkPage(bookmarks, total, q.PageQuery))
}

func (h *BookmarkHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.BookmarkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, h.logger, err)
		return
	}

	bookmark, err := h.service.Create(c.Request.Context(), userID, req.URL, req.Tags)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookmarkOut(bookmark))
}

func (h *BookmarkHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	bookmarkID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	bookmark, err := h.service.Get(c.Request.Context(), userID, bookmarkID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookmarkOut(bookmark))
}

// GetByCode looks a bookmark up by its short code
func (h *BookmarkHandler) GetByCode(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	bookmark, err := h.service.GetByCode(c.Request.Context(), userID, c.Param("code"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookmarkOut(bookmark))
}

// Update applies a partial update; supplied tags replace the whole set
func (h *BookmarkHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	bookmarkID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	var req dto.BookmarkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, h.logger, err)
		return
	}

	bookmark, err := h.service.Update(c.Request.Context(), userID, bookmarkID, req.Patch())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookmarkOut(bookmark))
}

func (h *BookmarkHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	bookmarkID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, bookmarkID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
