package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"repair-workshop-backend/internal/model"
)

type deviceRequest struct {
	ClientName       string `json:"clientName"`
	DeviceModel      string `json:"deviceModel"`
	IssueDescription string `json:"issueDescription"`
	Status           string `json:"status"`
	Urgency          string `json:"urgency"`
	IsPlanned        bool   `json:"isPlanned"`
	Notes            string `json:"notes"`
}

func (r *deviceRequest) toModel(id string) model.Device {
	return model.Device{
		ID:               id,
		ClientName:       r.ClientName,
		DeviceModel:      r.DeviceModel,
		IssueDescription: r.IssueDescription,
		Status:           model.DeviceStatus(r.Status),
		Urgency:          model.Urgency(r.Urgency),
		IsPlanned:        r.IsPlanned,
		Notes:            r.Notes,
	}
}

// ListDevices handles GET /api/devices.
func (h *Handler) ListDevices(c *gin.Context) {
	devices, err := h.facade.ListDevices(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve devices"})
		return
	}
	c.JSON(http.StatusOK, devices)
}

// CreateDevice handles POST /api/devices, the intake action.
func (h *Handler) CreateDevice(c *gin.Context) {
	var req deviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.facade.SaveDevice(c.Request.Context(), req.toModel(""))
	if err != nil {
		h.writeSaveError(c, err)
		return
	}

	h.maybeNotifyReady(model.Device{}, saved)
	c.JSON(http.StatusCreated, saved)
}

// UpdateDevice handles PUT /api/devices/:id. The save is an upsert by id;
// last write wins.
func (h *Handler) UpdateDevice(c *gin.Context) {
	var req deviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	previous, _, err := h.facade.FindDevice(c.Request.Context(), id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve device"})
		return
	}

	saved, err := h.facade.SaveDevice(c.Request.Context(), req.toModel(id))
	if err != nil {
		h.writeSaveError(c, err)
		return
	}

	h.maybeNotifyReady(previous, saved)
	c.JSON(http.StatusOK, saved)
}

// DeleteDevice handles DELETE /api/devices/:id. Deleting an absent id is a
// no-op, not an error.
func (h *Handler) DeleteDevice(c *gin.Context) {
	if err := h.facade.DeleteDevice(c.Request.Context(), c.Param("id")); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete device"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeSaveError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrInvalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// maybeNotifyReady dispatches a push notification when a save moved the
// device into the Ready status.
func (h *Handler) maybeNotifyReady(previous, saved model.Device) {
	if h.pool == nil {
		return
	}
	if saved.Status == model.StatusReady && previous.Status != model.StatusReady {
		h.pool.Dispatch(saved.ID)
	}
}
