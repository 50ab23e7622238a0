package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dhanvarsha/backend/internal/config"
	"github.com/dhanvarsha/backend/internal/database"
	"github.com/dhanvarsha/backend/internal/email"
	"github.com/dhanvarsha/backend/internal/push"
	"github.com/dhanvarsha/backend/internal/realtime"
)

// Server is the main struct for the API. It holds all dependencies required
// by the HTTP handlers: configuration, the database service, the push
// dispatcher, the SSE broker and the email service. Everything is injected
// at construction time; there is no ambient global state.
type Server struct {
	config *config.Config
	db     *database.Service
	push   *push.Dispatcher
	broker *realtime.Broker
	email  *email.EmailService
}

// NewServer creates a new instance of the API server with its dependencies
// wired in.
func NewServer(cfg *config.Config, db *database.Service, dispatcher *push.Dispatcher, broker *realtime.Broker, emailService *email.EmailService) *Server {
	return &Server{
		config: cfg,
		db:     db,
		push:   dispatcher,
		broker: broker,
		email:  emailService,
	}
}

// envelope is a custom map type used for creating structured JSON responses,
// e.g. `envelope{"message": "..."}`.
type envelope map[string]interface{}

// writeJSON is a helper method for sending JSON responses. It centralizes
// response logic so every endpoint answers with the same shape and headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	js, err := json.Marshal(data)
	if err != nil {
		// If marshaling fails we can't trust our own JSON error format,
		// so fall back to a plain text response.
		http.Error(w, "Internal Server Error: Failed to marshal JSON", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
}

// errorJSON sends a standardized `{"error": "message"}` response. Defaults
// to 500 when no status is given.
func (s *Server) errorJSON(w http.ResponseWriter, err error, status ...int) {
	statusCode := http.StatusInternalServerError
	if len(status) > 0 {
		statusCode = status[0]
	}

	s.writeJSON(w, statusCode, envelope{"error": err.Error()})
}

// handleHealth is a trivial liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, envelope{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
