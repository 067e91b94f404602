package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/mindscan/internal/domain/behavior"
	"github.com/okian/mindscan/pkg/metrics"
)

// HealthHandler serves liveness metrics.
type HealthHandler struct {
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz by exposing the service registry.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

// ModelStater reports the behavior model lifecycle.
type ModelStater interface {
	ModelState() behavior.ModelState
}

// ReadyHandler reports whether the behavior model can serve predictions.
type ReadyHandler struct {
	model ModelStater
}

// NewReadyHandler creates a readiness handler.
func NewReadyHandler(m ModelStater) *ReadyHandler {
	return &ReadyHandler{model: m}
}

type readyResponse struct {
	Status     string `json:"status"`
	ModelState string `json:"model_state"`
}

// HandleReady handles GET /readyz. It answers 503 until the model is trained.
func (h *ReadyHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	state := h.model.ModelState()
	if state != behavior.StateReady {
		writeJSON(w, http.StatusServiceUnavailable, readyResponse{Status: "not_ready", ModelState: state.String()})
		return
	}
	writeJSON(w, http.StatusOK, readyResponse{Status: "ready", ModelState: state.String()})
}
