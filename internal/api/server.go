package api

import (
	"encoding/json"
	"net/http"

	"github.com/wodboard/wodboard/internal/config"
	"github.com/wodboard/wodboard/internal/database"
	"github.com/wodboard/wodboard/internal/realtime"
)

// Server is the main struct for the API. It holds all dependencies required
// by the HTTP handlers: the application configuration, the database service
// and the realtime broker. Injecting them here keeps handlers testable.
type Server struct {
	config *config.Config
	db     *database.Service
	broker *realtime.Broker
}

// NewServer wires the application's dependencies into a new API server.
func NewServer(cfg *config.Config, db *database.Service, broker *realtime.Broker) *Server {
	return &Server{
		config: cfg,
		db:     db,
		broker: broker,
	}
}

// envelope is a custom map type used for creating structured JSON
// responses, e.g. `envelope{"leaderboard": rows}`.
type envelope map[string]interface{}

// writeJSON sends a JSON response with the given status code. Marshaling
// with indentation keeps responses easy to read while debugging; the
// volumes involved here are far too small for that to matter.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}, headers ...http.Header) {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		http.Error(w, "Internal Server Error: Failed to marshal JSON", http.StatusInternalServerError)
		return
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
}

// errorJSON sends a standardized `{"error": "message"}` response so every
// API error has a predictable shape. Defaults to 500 when no status is
// given.
func (s *Server) errorJSON(w http.ResponseWriter, err error, status ...int) {
	statusCode := http.StatusInternalServerError
	if len(status) > 0 {
		statusCode = status[0]
	}

	s.writeJSON(w, statusCode, envelope{"error": err.Error()})
}
