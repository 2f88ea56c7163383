package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/trampo-app/trampo/internal/config"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestSniffImage(t *testing.T) {
	tests := []struct {
		name    string
		head    []byte
		wantExt string
		wantErr error
	}{
		{"png", pngHeader, "png", nil},
		{"jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), "jpg", nil},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "webp", nil},
		{"text", []byte("hello world"), "", ErrUnsupportedType},
		{"pdf", []byte("%PDF-1.7\n"), "", ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ext, err := SniffImage(tt.head)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SniffImage() error = %v, want %v", err, tt.wantErr)
			}
			if ext != tt.wantExt {
				t.Errorf("ext = %q, want %q", ext, tt.wantExt)
			}
		})
	}
}

func TestNewS3StoreNotConfigured(t *testing.T) {
	if _, err := NewS3Store(context.Background(), config.StorageConfig{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestS3StorePut(t *testing.T) {
	var gotPath, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewS3Store(context.Background(), config.StorageConfig{
		Endpoint:        srv.URL,
		Region:          "auto",
		Bucket:          "trampo",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		PublicURL:       "https://cdn.trampo.app/",
	})
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}

	url, err := store.Put(context.Background(), "uploads/u1/a.png", "image/png", strings.NewReader("data"), 4)
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if url != "https://cdn.trampo.app/uploads/u1/a.png" {
		t.Errorf("url = %q", url)
	}
	if gotPath != "/trampo/uploads/u1/a.png" {
		t.Errorf("path = %q, want path-style bucket addressing", gotPath)
	}
	if gotType != "image/png" {
		t.Errorf("content type = %q", gotType)
	}
}

func TestPublicURLFallback(t *testing.T) {
	s := newS3Store(nil, config.StorageConfig{Bucket: "media"})
	if got := s.URL("/x.jpg"); got != "https://media.r2.dev/x.jpg" {
		t.Errorf("URL() = %q", got)
	}
}
