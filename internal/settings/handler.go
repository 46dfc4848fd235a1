package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coverletter-gen/internal/shared/server/respond"
	"coverletter-gen/internal/state"
)

// Handler exposes preferences over HTTP.
type Handler struct {
	Service *Service
}

type updateRequest struct {
	state.Settings
	// APIKey is accepted write-only and never echoed back.
	APIKey string `json:"apiKey,omitempty"`
}

// Get handles GET /settings.
func (h *Handler) Get(c *gin.Context) {
	respond.OK(c, h.Service.Get())
}

// Update handles PUT /settings.
func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	saved, err := h.Service.Update(req.Settings, req.APIKey)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save settings", nil)
		return
	}
	respond.OK(c, saved)
}
