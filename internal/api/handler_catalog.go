package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repair-workshop-backend/internal/catalog"
	"repair-workshop-backend/internal/model"
)

// GetPartCatalog handles GET /api/catalog/parts: the static reference lists
// the intake forms use for part types and their subtypes.
func (h *Handler) GetPartCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"types":    model.PartTypes,
		"subtypes": catalog.All(),
	})
}
