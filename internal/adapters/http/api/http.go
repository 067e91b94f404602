// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/pkg/logger"
)

const defaultMaxUploadBytes = 10 << 20

// Error codes returned in JSON error bodies.
const (
	codeBadRequest      = "bad_request"
	codePayloadTooLarge = "payload_too_large"
	codeInternal        = "internal_error"
	codeMethod          = "method_not_allowed"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	ModelStater
	StatsProvider

	// Assess runs one assessment.
	Assess(ctx context.Context, req model.Request) (model.Assessment, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	readyHandler   *ReadyHandler
	statsHandler   *StatsHandler
	predictHandler *PredictHandler
	logger         logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	maxUploadBytes int64
	logger         logger.Logger
}

// WithMaxUploadBytes bounds the /predict request body.
func WithMaxUploadBytes(n int64) ServerOption {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxUploadBytes = n
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) ServerOption {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	o := serverOptions{maxUploadBytes: defaultMaxUploadBytes}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Named("api")
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		readyHandler:   NewReadyHandler(deps),
		statsHandler:   NewStatsHandler(deps),
		predictHandler: NewPredictHandler(deps, o.maxUploadBytes, o.logger),
		logger:         o.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/readyz", MetricsMiddleware(s.readyHandler.HandleReady, "readyz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/predict", MetricsMiddleware(s.predictHandler.HandlePredict, "predict"))
}

// Handler wraps h with panic recovery and CORS.
func (s *Server) Handler(h http.Handler) http.Handler {
	return CORSMiddleware(RecoverMiddleware(s.logger, h))
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, codeMethod, "")
}
