package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	version string
	started time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		version: version,
		started: time.Now(),
	}
}

// HealthCheck returns the overall health status
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "healthy",
		"version": h.version,
		"uptime":  time.Since(h.started).String(),
	})
}

// LivenessCheck indicates the process is running
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "alive"})
}

// ReadinessCheck indicates the service can handle requests
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ready"})
}

// Version returns build information
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"version": h.version})
}
