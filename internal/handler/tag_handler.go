package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/service"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/dto"
)

// TagHandler handles HTTP requests for tags
type TagHandler struct {
	service service.TagService
	logger  *slog.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(service service.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		service: service,
		logger:  logger,
	}
}

// List returns a page of the caller's tags
func (h *TagHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, h.logger, err)
		return
	}

	tags, total, err := h.service.List(c.Request.Context(), userID, q.Offset(), q.PageSize())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTagPage(tags, total, q))
}

// Create returns 201 for a new tag and 200 when the name already exists
func (h *TagHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, h.logger, err)
		return
	}

	tag, created, err := h.service.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToTagOut(tag))
}

// Delete removes a tag from the caller's bookmarks and deletes it
func (h *TagHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tagID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, tagID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
