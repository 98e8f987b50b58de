package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type adviceRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// GetAdvice handles POST /api/advice. The advice client absorbs its own
// failures, so this endpoint always answers 200 with some text.
func (h *Handler) GetAdvice(c *gin.Context) {
	var req adviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"advice": h.advice.Generate(c.Request.Context(), req.Prompt)})
}
