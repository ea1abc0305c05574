package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides HTTP health check endpoints for the fraud service.
type HealthHandler struct {
	logger    *slog.Logger
	startTime time.Time
	ready     func() bool
	metrics   http.Handler
}

// NewHealthHandler creates a new health check handler. ready reports whether
// the gRPC server is accepting calls; metrics may be nil.
func NewHealthHandler(logger *slog.Logger, ready func() bool, metrics http.Handler) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		startTime: time.Now(),
		ready:     ready,
		metrics:   metrics,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers health and metrics endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics)
	}
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "fraud-service",
		Uptime:  time.Since(h.startTime).String(),
	})
}

// Readyz handles readiness probe requests.
func (h *HealthHandler) Readyz(w http.ResponseWriter, _ *http.Request) {
	if h.ready == nil || !h.ready() {
		h.logger.Warn("readiness check failed", slog.String("grpc", "not serving"))
		writeJSON(w, http.StatusServiceUnavailable, ReadinessResponse{
			Status:  "not ready",
			Service: "fraud-service",
			Checks:  map[string]string{"grpc": "not serving"},
		})
		return
	}

	writeJSON(w, http.StatusOK, ReadinessResponse{
		Status:  "ready",
		Service: "fraud-service",
		Checks:  map[string]string{"grpc": "ok"},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
