package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repair-workshop-backend/internal/model"
)

// GetDocument handles GET /api/devices/:id/documents/:kind, where kind is
// one of receipt, act or seal.
func (h *Handler) GetDocument(c *gin.Context) {
	device, found, err := h.facade.FindDevice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve device"})
		return
	}
	if !found {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	}

	kind := c.Param("kind")
	var build func(model.Device) ([]byte, error)
	switch kind {
	case "receipt":
		build = h.docs.BuildReceipt
	case "act":
		build = h.docs.BuildCompletionAct
	case "seal":
		build = h.docs.BuildSealLabel
	default:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown document kind"})
		return
	}

	data, err := build(device)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to build document"})
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+kind+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
