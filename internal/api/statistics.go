package api

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wodboard/wodboard/internal/scoring"
)

// handleEventStatistics returns the score distribution for one event,
// split by sex across all divisions: percentile series, means, completion
// rate under the cap (capped time events) and the participation breakdown.
// Invalid submissions are excluded from every figure, never coerced to
// zero or to the cap value.
func (s *Server) handleEventStatistics(w http.ResponseWriter, r *http.Request) {
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

	rows, err := s.db.GetScoreRowsByEvent(s.db.DB(), eventID)
	if err != nil {
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	samples := make([]scoring.Sample, 0, len(rows))
	for _, row := range rows {
		value, err := scoring.Normalize(row.RawScore, scoring.Kind(event.Kind), timecapOf(event))
		if err != nil {
			log.Printf("WARN: excluding unparseable score for athlete %d on event %s: %v", row.AthleteID, event.ID, err)
			continue
		}
		samples = append(samples, scoring.Sample{
			Sex:      row.Sex,
			Division: row.Division,
			Value:    value,
		})
	}

	stats := scoring.Statistics(scoring.Kind(event.Kind), timecapOf(event), samples)

	s.writeJSON(w, http.StatusOK, envelope{"statistics": toStatisticsResponse(eventID, stats)})
}
