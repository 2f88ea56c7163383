package services

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/storage"
)

// sniffLen is the number of bytes content type detection looks at
const sniffLen = 512

// UploadService stores user images in object storage
type UploadService struct {
	store    storage.Store
	maxBytes int64
	logger   *logger.Logger
}

// NewUploadService creates a new upload service. store may be nil when
// storage is not configured.
func NewUploadService(store storage.Store, maxBytes int64, log *logger.Logger) *UploadService {
	return &UploadService{store: store, maxBytes: maxBytes, logger: log}
}

// MaxBytes is the largest accepted upload
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload validates an image and stores it under uploads/{userID}/. It
// returns the public URL.
func (s *UploadService) Upload(ctx context.Context, userID string, r io.Reader) (string, error) {
	if s.store == nil {
		return "", errors.NotConfigured("File storage")
	}

	// Buffered so the object body is seekable for request signing
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", errors.BadRequest("Failed to read upload")
	}
	if len(data) == 0 {
		return "", errors.FieldError("file", "is empty")
	}
	if int64(len(data)) > s.maxBytes {
		return "", errors.FieldError("file", fmt.Sprintf("must be at most %d bytes", s.maxBytes))
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	contentType, ext, err := storage.SniffImage(head)
	if err != nil {
		return "", errors.FieldError("file", "must be a JPEG, PNG or WebP image")
	}

	key := fmt.Sprintf("uploads/%s/%s.%s", userID, uuid.NewString(), ext)
	url, err := s.store.Put(ctx, key, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to store upload")
		return "", errors.ServiceUnavailable("Failed to store file")
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"key":     key,
		"size":    len(data),
	}).Info("File uploaded")

	return url, nil
}
