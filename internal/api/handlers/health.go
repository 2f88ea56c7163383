package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/utils"
)

// readinessTimeout bounds all dependency checks of one probe
const readinessTimeout = 2 * time.Second

// ReadinessCheck is one dependency probed by /readyz. A failing required
// check makes the service unready; an optional one is only reported, since
// the service degrades gracefully without it (rate limiting falls back).
type ReadinessCheck struct {
	Name     string
	Required bool
	Check    func(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	checks []ReadinessCheck
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(log *logger.Logger, checks ...ReadinessCheck) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: log,
	}
}

// Healthz handles liveness probe
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is alive"
// @Router /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readyz handles readiness probe
// @Summary Readiness probe
// @Description Check the database and optional dependencies
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is ready"
// @Failure 503 {object} utils.ErrorResponse "A required dependency is down"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := map[string]string{"status": "ready"}
	var down []string
	for _, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			h.logger.Ctx(r.Context()).WithError(err).With("dependency", c.Name).Warn("Readiness check failed")
			status[c.Name] = "unavailable"
			if c.Required {
				down = append(down, c.Name)
			}
			continue
		}
		status[c.Name] = "connected"
	}

	if len(down) > 0 {
		utils.WriteError(w, errors.ServiceUnavailable("Dependency unavailable").WithDetails(status))
		return
	}
	utils.WriteSuccess(w, http.StatusOK, status)
}
