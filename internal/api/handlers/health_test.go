package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/trampo-app/trampo/internal/pkg/logger"
)

func TestReadyz(t *testing.T) {
	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return stderrors.New("connection refused") }

	tests := []struct {
		name     string
		checks   []ReadinessCheck
		status   int
		contains string
	}{
		{
			name:     "all up",
			checks:   []ReadinessCheck{{Name: "database", Required: true, Check: ok}, {Name: "redis", Check: ok}},
			status:   http.StatusOK,
			contains: `"redis":"connected"`,
		},
		{
			name:     "optional dependency down",
			checks:   []ReadinessCheck{{Name: "database", Required: true, Check: ok}, {Name: "redis", Check: fail}},
			status:   http.StatusOK,
			contains: `"redis":"unavailable"`,
		},
		{
			name:     "database down",
			checks:   []ReadinessCheck{{Name: "database", Required: true, Check: fail}},
			status:   http.StatusServiceUnavailable,
			contains: `"database":"unavailable"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(logger.Nop(), tt.checks...)
			rec := httptest.NewRecorder()
			h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body %s does not contain %s", rec.Body.String(), tt.contains)
			}
			if strings.Contains(rec.Body.String(), "connection refused") {
				t.Errorf("body leaks the check error: %s", rec.Body.String())
			}
		})
	}
}
