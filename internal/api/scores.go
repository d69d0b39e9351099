package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wodboard/wodboard/internal/database"
	"github.com/wodboard/wodboard/internal/realtime"
	"github.com/wodboard/wodboard/internal/scoring"
)

// submitScorePayload is the JSON body for a score submission. The raw
// string is stored as submitted; normalization is recomputed on every read.
type submitScorePayload struct {
	RawScore string `json:"rawScore"`
}

// timecapOf extracts an event's cap as plain seconds, 0 when it has none.
func timecapOf(e *database.Event) int {
	if e.TimecapSeconds.Valid {
		return int(e.TimecapSeconds.Int64)
	}
	return 0
}

// handleSubmitScore upserts the logged-in athlete's score for one event.
// The raw string is validated against the event's score grammar before
// anything is persisted, so an invalid submission is rejected with the
// format hint instead of silently landing in storage and vanishing from
// the leaderboard later.
func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	athleteID, err := s.getAthleteIDFromContext(r)
	if err != nil {
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	eventID := chi.URLParam(r, "eventID")
	event, err := s.db.GetEventByID(s.db.DB(), eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.errorJSON(w, fmt.Errorf("unknown event %q", eventID), http.StatusNotFound)
			return
		}
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	var payload submitScorePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorJSON(w, errors.New("bad request: could not decode JSON"), http.StatusBadRequest)
		return
	}

	if _, err := scoring.Normalize(payload.RawScore, scoring.Kind(event.Kind), timecapOf(event)); err != nil {
		var invalid *scoring.InvalidScoreError
		if errors.As(err, &invalid) {
			s.errorJSON(w, fmt.Errorf("%s: %s", invalid.Reason, formatHint(event)), http.StatusBadRequest)
			return
		}
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	submittedAt := time.Now().UTC()
	err = s.db.Write(func(tx *sql.Tx) error {
		return s.db.UpsertScore(tx, athleteID, eventID, payload.RawScore, submittedAt)
	})
	if err != nil {
		s.errorJSON(w, errors.New("could not record score"), http.StatusInternalServerError)
		return
	}

	// Let open leaderboard views know they should refetch.
	s.broker.Broadcast(realtime.Message{
		Type:    "score_submitted",
		Payload: map[string]string{"eventId": eventID},
	})

	s.writeJSON(w, http.StatusOK, envelope{"message": "Score recorded successfully"})
}

// handleGetMyScore returns the logged-in athlete's current submission for
// one event, so the entry form can show what a resubmission would replace.
func (s *Server) handleGetMyScore(w http.ResponseWriter, r *http.Request) {
	athleteID, err := s.getAthleteIDFromContext(r)
	if err != nil {
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	eventID := chi.URLParam(r, "eventID")
	score, err := s.db.GetScore(s.db.DB(), athleteID, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.errorJSON(w, errors.New("no score submitted for this event"), http.StatusNotFound)
			return
		}
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"score": toScoreResponse(score)})
}

// formatHint names the score grammar for an event kind, for 400 responses.
func formatHint(e *database.Event) string {
	if e.Kind == string(scoring.KindTime) {
		if e.TimecapSeconds.Valid {
			return "use 'MM:SS' or, if you hit the time cap, 'CAP:XX'"
		}
		return "use 'MM:SS' or 'HH:MM:SS'"
	}
	return "enter your total repetition count as a whole number"
}
