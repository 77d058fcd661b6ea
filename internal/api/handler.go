package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/dto"
)

// HealthHandler: GET /healthz. Unauthenticated and touches no state.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthOut{Status: "ok"})
}
