package api

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wodboard/wodboard/internal/database"
	"github.com/wodboard/wodboard/internal/scoring"
)

// cohortParams reads and validates the ?sex=&division= query parameters
// that select the cohort to rank.
func cohortParams(r *http.Request) (sex, division string, err error) {
	sex = r.URL.Query().Get("sex")
	division = r.URL.Query().Get("division")
	if !validSexes[sex] {
		return "", "", errors.New("query parameter 'sex' must be 'male' or 'female'")
	}
	if !validDivisions[division] {
		return "", "", errors.New("query parameter 'division' must be 'rx', 'scaled' or 'coach'")
	}
	return sex, division, nil
}

// cohortRanking loads one event's submissions for one cohort, normalizes
// them, and ranks the valid entries. Rows that fail to parse are excluded
// and logged; one bad row never prevents the rest of the leaderboard from
// rendering. A missing event record, by contrast, is a configuration fault
// in the seed data and is surfaced loudly rather than skipped.
func (s *Server) cohortRanking(event *database.Event, sex, division string) ([]scoring.Placement, error) {
	rows, err := s.db.GetScoreRowsByCohort(s.db.DB(), event.ID, sex, division)
	if err != nil {
		return nil, err
	}

	entries := make([]scoring.Entry, 0, len(rows))
	for _, row := range rows {
		value, err := scoring.Normalize(row.RawScore, scoring.Kind(event.Kind), timecapOf(event))
		if err != nil {
			log.Printf("WARN: excluding unparseable score for athlete %d on event %s: %v", row.AthleteID, event.ID, err)
			continue
		}
		entries = append(entries, scoring.Entry{
			AthleteID:   row.AthleteID,
			Name:        row.Name,
			Raw:         row.RawScore,
			Value:       value,
			SubmittedAt: row.SubmittedAt,
		})
	}

	return scoring.Rank(entries, scoring.Kind(event.Kind)), nil
}

// handleEventLeaderboard returns the ranking for one (event, sex, division)
// cohort. An empty cohort yields an empty leaderboard, not an error.
func (s *Server) handleEventLeaderboard(w http.ResponseWriter, r *http.Request) {
	sex, division, err := cohortParams(r)
	if err != nil {
		s.errorJSON(w, err, http.StatusBadRequest)
		return
	}

	eventID := chi.URLParam(r, "eventID")
	event, err := s.db.GetEventByID(s.db.DB(), eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Scores referencing an event with no metadata would be a
			// data-integrity problem; an unknown ID in the URL is just a
			// client error.
			s.errorJSON(w, fmt.Errorf("unknown event %q", eventID), http.StatusNotFound)
			return
		}
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	ranking, err := s.cohortRanking(event, sex, division)
	if err != nil {
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{
		"event":       toEventResponse(event),
		"leaderboard": toLeaderboardResponse(ranking),
	})
}

// handleOverallLeaderboard returns the cumulative standing for one cohort
// across the full event roster, using placement points (1st place = 1
// point, lowest total wins). An athlete who skipped an event earns no
// points for it; no worst-case placement is imputed.
func (s *Server) handleOverallLeaderboard(w http.ResponseWriter, r *http.Request) {
	sex, division, err := cohortParams(r)
	if err != nil {
		s.errorJSON(w, err, http.StatusBadRequest)
		return
	}

	events, err := s.db.ListEvents(s.db.DB())
	if err != nil {
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	roster := make([]string, 0, len(events))
	rankings := make(map[string][]scoring.Placement, len(events))
	for _, event := range events {
		ranking, err := s.cohortRanking(event, sex, division)
		if err != nil {
			s.errorJSON(w, err, http.StatusInternalServerError)
			return
		}
		roster = append(roster, event.ID)
		rankings[event.ID] = ranking
	}

	standing := scoring.Overall(roster, rankings)

	s.writeJSON(w, http.StatusOK, envelope{
		"events":   roster,
		"standing": toOverallResponse(standing),
	})
}
