package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coverletter-gen/internal/shared/server/respond"
	"coverletter-gen/internal/state"
)

const maxUploadBytes = 5 << 20

// Handler exposes document selection over HTTP.
type Handler struct {
	Service *Service
}

// Upload handles POST /documents/:slot with a multipart "file" field.
func (h *Handler) Upload(c *gin.Context) {
	slot := state.Slot(c.Param("slot"))

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds size limit", nil)
		return
	}

	doc, err := h.Service.Store(c.Request.Context(), slot, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrUnreadable):
			respond.Error(c, http.StatusUnprocessableEntity, "FILE_READ_ERROR", "file unreadable or unsupported format", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, doc)
}

// Current handles GET /documents and reports both selections.
func (h *Handler) Current(c *gin.Context) {
	payload := gin.H{"resume": nil, "sample": nil}
	if doc, ok := h.Service.Resume(); ok {
		payload["resume"] = doc
	}
	if doc, ok := h.Service.Sample(); ok {
		payload["sample"] = doc
	}
	respond.OK(c, payload)
}
