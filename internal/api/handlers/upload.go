package handlers

import (
	"net/http"

	"github.com/trampo-app/trampo/internal/api/dto"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/utils"
	"github.com/trampo-app/trampo/internal/services"
)

// multipartOverhead allows for form boundaries around the file part
const multipartOverhead = 64 << 10

// UploadHandler handles file uploads
type UploadHandler struct {
	uploads *services.UploadService
	logger  *logger.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploads *services.UploadService, log *logger.Logger) *UploadHandler {
	return &UploadHandler{uploads: uploads, logger: log}
}

// Upload stores an image
// @Summary Upload an image
// @Description JPEG, PNG or WebP up to 5 MiB in the multipart field "file"
// @Tags Uploads
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse "Storage not configured"
// @Router /uploads [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.uploads.MaxBytes()+multipartOverhead)
	file, _, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, errors.FieldError("file", "a file up to 5 MiB is required"))
		return
	}
	defer file.Close()

	url, err := h.uploads.Upload(r.Context(), id, file)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, dto.UploadResponse{URL: url})
}
