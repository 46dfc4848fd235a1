package letters

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"coverletter-gen/internal/shared/server/respond"
)

// Handler exposes letter generation over HTTP.
type Handler struct {
	Service *Service
}

// Generate handles POST /letters. The body may carry the pasted job
// description; when absent the service reads the system clipboard.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Service.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, result)
}

type openRequest struct {
	Path string `json:"path"`
}

// Open handles POST /letters/open and launches the platform viewer.
func (h *Handler) Open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Path == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "path is required", nil)
		return
	}
	if err := h.Service.Open(req.Path); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "OPEN_FAILED", err.Error(), nil)
		return
	}
	respond.OK(c, gin.H{"opened": req.Path})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var apiErr *APIError
	var writeErr *FileWriteError
	switch {
	case errors.Is(err, ErrMissingResume), errors.Is(err, ErrMissingJobDescription):
		respond.Error(c, http.StatusBadRequest, ErrorCodeMissingInput, err.Error(), nil)
	case errors.Is(err, ErrGenerationInFlight):
		respond.Error(c, http.StatusConflict, ErrorCodeConflict, err.Error(), nil)
	case errors.As(err, &apiErr):
		respond.Error(c, http.StatusBadGateway, ErrorCodeAPI, "generation API request failed", nil)
	case errors.As(err, &writeErr):
		respond.Error(c, http.StatusInternalServerError, ErrorCodeFileWrite, "failed to write PDF", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "generation failed", nil)
	}
}
