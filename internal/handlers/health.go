package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint
var Version = "1.0.0"

// SessionCounter reports resident sessions
type SessionCounter interface {
	Len() int
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	sessions SessionCounter
	logger   *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sessions SessionCounter, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Sessions  int       `json:"sessions"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	}
	if h.sessions != nil {
		response.Sessions = h.sessions.Len()
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
