// Package api provides the HTTP API for scan capture and event management.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Server is the HTTP API server.
type Server struct {
	mux     *http.ServeMux
	server  *http.Server
	logger  *slog.Logger
	handler *Handler
	health  http.Handler
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new API server. The health handler may be nil, in
// which case a plain liveness response is served.
func NewServer(cfg ServerConfig, handler *Handler, health http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	s := &Server{
		mux:     mux,
		logger:  logger,
		handler: handler,
		health:  health,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	// Health check
	if s.health != nil {
		s.mux.Handle("GET /health", s.health)
	} else {
		s.mux.HandleFunc("GET /health", s.handleHealth)
	}

	// Scans
	s.mux.HandleFunc("POST /api/v1/scan", s.handler.RecordScan)
	s.mux.HandleFunc("POST /api/v1/checkpoint-scan", s.handler.CheckpointScan)

	// Events
	s.mux.HandleFunc("POST /api/v1/events", s.handler.CreateEvent)
	s.mux.HandleFunc("GET /api/v1/events", s.handler.ListEvents)
	s.mux.HandleFunc("GET /api/v1/events/{qrCode}", s.handler.GetEvent)
	s.mux.HandleFunc("GET /api/v1/events/{qrCode}/checkpoints", s.handler.ListCheckpoints)
	s.mux.HandleFunc("POST /api/v1/events/{eventID}/deactivate", s.handler.DeactivateEvent)
	s.mux.HandleFunc("POST /api/v1/events/{eventID}/qrcode", s.handler.RenewQRCode)
	s.mux.HandleFunc("GET /api/v1/events/{eventID}/report", s.handler.AttendanceReport)
	s.mux.HandleFunc("GET /api/v1/events/{eventID}/records", s.handler.ListOccurrenceRecords)

	// Checkpoints
	s.mux.HandleFunc("POST /api/v1/checkpoints", s.handler.CreateCheckpoint)

	// Attendees
	s.mux.HandleFunc("POST /api/v1/attendees", s.handler.RegisterAttendee)
	s.mux.HandleFunc("POST /api/v1/attendees/import", s.handler.ImportAttendees)
	s.mux.HandleFunc("POST /api/v1/attendees/validate", s.handler.ValidateAttendee)
	s.mux.HandleFunc("GET /api/v1/attendees", s.handler.ListAttendees)
	s.mux.HandleFunc("GET /api/v1/attendees/{attendeeID}/records", s.handler.ListAttendeeRecords)
}

// handleHealth handles health check requests when no registry is wired.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
