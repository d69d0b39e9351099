package api

import (
	"fmt"
	"net/http"
)

// handleStream is the handler for Server-Sent Events. Connected clients
// receive a broadcast whenever any athlete submits a score, so open
// leaderboard views can refetch without polling.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if _, err := s.getAthleteIDFromContext(r); err != nil {
		s.errorJSON(w, err, http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", s.config.ParsedFrontendURL.String())

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.errorJSON(w, fmt.Errorf("streaming unsupported"), http.StatusInternalServerError)
		return
	}

	clientID, clientChan := s.broker.Subscribe()
	defer s.broker.Unsubscribe(clientID)

	for {
		select {
		case message, open := <-clientChan:
			if !open {
				return
			}
			// SSE wire format: "data: {...}\n\n".
			fmt.Fprintf(w, "data: %s\n\n", message)
			flusher.Flush()
		case <-r.Context().Done():
			// Client disconnected; the deferred Unsubscribe cleans up.
			return
		}
	}
}
