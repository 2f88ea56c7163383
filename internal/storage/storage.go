package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
)

// ErrNotConfigured is returned when no bucket is configured
var ErrNotConfigured = errors.New("object storage is not configured")

// ErrUnsupportedType is returned for uploads that are not an accepted image type
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrTooLarge is returned for uploads over the size limit
var ErrTooLarge = errors.New("file too large")

// Store saves objects and returns their public URL
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// SniffImage detects the content type of an upload from its first bytes and
// returns the content type and file extension. Client supplied content types
// are ignored.
func SniffImage(head []byte) (contentType, ext string, err error) {
	contentType = http.DetectContentType(head)
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", "", ErrUnsupportedType
	}
	return contentType, ext, nil
}
