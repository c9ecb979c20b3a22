// Package http exposes the dialogue, weather, and trip APIs.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"

	"tripflow/internal/observability"
	"tripflow/internal/planner"
	"tripflow/internal/storage"
	"tripflow/internal/weather"
)

type apiError struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeErr(w http.ResponseWriter, code int, msg string, detail string) {
	if detail != "" {
		s.logger.Warn("request failed", "status", code, "error", msg, "detail", detail)
	} else {
		s.logger.Warn("request failed", "status", code, "error", msg)
	}
	// Report 5xx errors to Sentry
	if code >= 500 {
		sentry.CaptureMessage(fmt.Sprintf("HTTP %d: %s (detail: %s)", code, msg, detail))
	}
	writeJSON(w, code, apiError{Error: msg, Detail: detail})
}

// Server holds handler dependencies and registers routes on a ServeMux.
type Server struct {
	mux     *http.ServeMux
	planner *planner.Service
	weather *weather.Service
	trips   storage.TripStore
	logger  observability.Logger
	metrics *observability.Metrics
}

// NewServer wires the handlers. weatherSvc may be nil, which disables the
// weather endpoint.
func NewServer(mux *http.ServeMux, plannerSvc *planner.Service, weatherSvc *weather.Service, trips storage.TripStore, logger observability.Logger, metrics *observability.Metrics) *Server {
	if logger == nil {
		logger = observability.Discard()
	}
	return &Server{
		mux:     mux,
		planner: plannerSvc,
		weather: weatherSvc,
		trips:   trips,
		logger:  logger.WithComponent("http"),
		metrics: metrics,
	}
}

// RegisterRoutes attaches all handlers to the mux.
func (s *Server) RegisterRoutes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/session/start", s.handleSessionStart)
	s.mux.HandleFunc("/session/turn", s.handleSessionTurn)
	s.mux.HandleFunc("/weather/", s.handleWeather)
	s.mux.HandleFunc("/api/v1/trips", s.handleTrips)
	s.mux.HandleFunc("/api/v1/trips/", s.handleTripsSubroutes)
	if s.metrics != nil {
		s.mux.Handle("/metrics", s.metrics.Handler())
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErr(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	status := map[string]string{"status": "ok"}
	if hc, ok := s.trips.(storage.HealthCheck); ok {
		if err := hc.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["store"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
	}
	writeJSON(w, http.StatusOK, status)
}
