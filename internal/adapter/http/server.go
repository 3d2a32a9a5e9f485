// Package http exposes the jacket load service over REST, plus the health,
// readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/jacket-load-service/internal/domain"
	"github.com/couchcryptid/jacket-load-service/internal/register"
)

// RegisterService is the application surface the HTTP layer calls into.
type RegisterService interface {
	Evaluate(jacketID string, c domain.Case, pressures map[domain.Leg]float64) (register.Assessment, error)
	Save(ctx context.Context, jacketID string, c domain.Case, pressures map[domain.Leg]float64) (domain.Reading, register.Assessment, error)
	History(ctx context.Context) ([]domain.Reading, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the REST API and the health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	service    RegisterService
	logger     *slog.Logger
}

// NewServer creates an HTTP server for the register service.
func NewServer(addr string, service RegisterService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/jackets", s.handleListJackets)
	mux.HandleFunc("GET /api/v1/jackets/{id}/targets", s.handleGetTargets)
	mux.HandleFunc("POST /api/v1/assessments", s.handleAssess)
	mux.HandleFunc("POST /api/v1/readings", s.handleSaveReading)
	mux.HandleFunc("GET /api/v1/readings", s.handleHistory)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.service.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleListJackets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"jackets": domain.JacketIDs(),
		"cases":   domain.Cases(),
	})
}

func (s *Server) handleGetTargets(w http.ResponseWriter, r *http.Request) {
	jacketID := r.PathValue("id")
	c, err := domain.ParseCase(r.URL.Query().Get("case"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	targets, err := domain.Targets(jacketID, c)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"jacket_id": jacketID,
		"case":      c,
		"targets":   targets,
	})
}

// readingRequest is the body of both the assessment and save endpoints.
type readingRequest struct {
	JacketID  string                 `json:"jacket_id"`
	Case      string                 `json:"case"`
	Pressures map[domain.Leg]float64 `json:"pressures"`
}

// assessmentResponse decorates an assessment with the operator advisory
// shown when legs fall below minimum.
type assessmentResponse struct {
	register.Assessment
	Advice string `json:"advice,omitempty"`
}

func newAssessmentResponse(a register.Assessment) assessmentResponse {
	resp := assessmentResponse{Assessment: a}
	if !a.Pass {
		resp.Advice = domain.RelevelAdvice
	}
	return resp
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	req, c, ok := s.decodeReadingRequest(w, r)
	if !ok {
		return
	}

	assessment, err := s.service.Evaluate(req.JacketID, c, req.Pressures)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newAssessmentResponse(assessment))
}

func (s *Server) handleSaveReading(w http.ResponseWriter, r *http.Request) {
	req, c, ok := s.decodeReadingRequest(w, r)
	if !ok {
		return
	}

	reading, assessment, err := s.service.Save(r.Context(), req.JacketID, c, req.Pressures)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"reading":    reading,
		"assessment": newAssessmentResponse(assessment),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	readings, err := s.service.History(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"readings": readings,
		"count":    len(readings),
	})
}

func (s *Server) decodeReadingRequest(w http.ResponseWriter, r *http.Request) (readingRequest, domain.Case, bool) {
	var req readingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return readingRequest{}, "", false
	}

	c, err := domain.ParseCase(req.Case)
	if err != nil {
		s.writeError(w, err)
		return readingRequest{}, "", false
	}
	return req, c, true
}

// writeError maps domain sentinels onto HTTP status codes: unknown jacket or
// case → 404, invalid pressures → 400, storage failure → 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrStorage):
		s.logger.Error("register storage failure", "error", err)
		status = http.StatusInternalServerError
	default:
		s.logger.Error("unexpected error", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
