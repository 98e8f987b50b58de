package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"repair-workshop-backend/internal/docs"
	"repair-workshop-backend/internal/model"
)

type partRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	// Pointer distinguishes "omitted" from an explicit zero: intake
	// defaults the quantity to 1, edits may set it to 0.
	Quantity *int  `json:"quantity"`
	InStock  *bool `json:"inStock"`
}

func (r *partRequest) toModel(id string) model.SparePart {
	part := model.SparePart{
		ID:       id,
		Name:     r.Name,
		Type:     model.PartType(r.Type),
		Subtype:  r.Subtype,
		Quantity: 1,
		InStock:  true,
	}
	if r.Quantity != nil {
		part.Quantity = *r.Quantity
	}
	if r.InStock != nil {
		part.InStock = *r.InStock
	}
	return part
}

// ListParts handles GET /api/parts.
func (h *Handler) ListParts(c *gin.Context) {
	parts, err := h.facade.ListParts(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve parts"})
		return
	}
	c.JSON(http.StatusOK, parts)
}

// CreatePart handles POST /api/parts.
func (h *Handler) CreatePart(c *gin.Context) {
	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.facade.SavePart(c.Request.Context(), req.toModel(""))
	if err != nil {
		h.writeSaveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UpdatePart handles PUT /api/parts/:id.
func (h *Handler) UpdatePart(c *gin.Context) {
	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.facade.SavePart(c.Request.Context(), req.toModel(c.Param("id")))
	if err != nil {
		h.writeSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeletePart handles DELETE /api/parts/:id.
func (h *Handler) DeletePart(c *gin.Context) {
	if err := h.facade.DeletePart(c.Request.Context(), c.Param("id")); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete part"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportParts handles GET /api/parts/export, returning the inventory as a
// spreadsheet.
func (h *Handler) ExportParts(c *gin.Context) {
	parts, err := h.facade.ListParts(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve parts"})
		return
	}

	data, err := docs.BuildPartsXLSX(parts)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
