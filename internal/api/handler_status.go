package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repair-workshop-backend/internal/store"
)

// GetStatus handles GET /api/status: the persistent Online/Offline mode
// indicator, fixed once at startup.
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mode":    h.facade.Mode(),
		"offline": h.facade.Mode() == store.ModeOffline,
	})
}
