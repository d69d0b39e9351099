package api

import (
	"net/http"
)

// handleListEvents returns the competition's event catalog: workout
// descriptions, scoring kinds, time caps and score-entry instructions.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.db.ListEvents(s.db.DB())
	if err != nil {
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"events": toEventResponseList(events)})
}
