package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wodboard/wodboard/internal/auth"
)

// handleGetMyProfile returns the profile of the logged-in athlete.
func (s *Server) handleGetMyProfile(w http.ResponseWriter, r *http.Request) {
	athleteID, err := s.getAthleteIDFromContext(r)
	if err != nil {
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	athlete, err := s.db.GetAthleteByID(s.db.DB(), athleteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A valid token for a deleted account.
			s.errorJSON(w, errors.New("athlete not found"), http.StatusNotFound)
			return
		}
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"athlete": toAthleteResponse(athlete)})
}

// handleUpdateMyProfile handles password changes. Cohort attributes (sex,
// division, birth year) are fixed at registration: changing them mid-season
// would silently move past scores between cohorts.
func (s *Server) handleUpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	athleteID, err := s.getAthleteIDFromContext(r)
	if err != nil {
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	var payload struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorJSON(w, errors.New("bad request: could not decode JSON"), http.StatusBadRequest)
		return
	}

	if payload.NewPassword == "" {
		s.errorJSON(w, errors.New("no changes provided"), http.StatusBadRequest)
		return
	}
	if payload.OldPassword == "" {
		s.errorJSON(w, errors.New("old password is required to set a new one"), http.StatusBadRequest)
		return
	}
	if len(payload.NewPassword) < 8 {
		s.errorJSON(w, errors.New("new password must be at least 8 characters"), http.StatusBadRequest)
		return
	}

	athlete, err := s.db.GetAthleteByID(s.db.DB(), athleteID)
	if err != nil {
		s.errorJSON(w, errors.New("athlete not found"), http.StatusNotFound)
		return
	}

	if !auth.CheckPasswordHash(payload.OldPassword, athlete.PasswordHash) {
		s.errorJSON(w, errors.New("incorrect old password"), http.StatusUnauthorized)
		return
	}

	hashedPassword, err := auth.HashPassword(payload.NewPassword)
	if err != nil {
		s.errorJSON(w, errors.New("failed to hash new password"), http.StatusInternalServerError)
		return
	}

	err = s.db.Write(func(tx *sql.Tx) error {
		return s.db.UpdateAthletePassword(tx, athleteID, hashedPassword)
	})
	if err != nil {
		s.errorJSON(w, errors.New("failed to update profile"), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"message": "Profile updated successfully"})
}

// handleDeleteMyProfile deletes the athlete's own account. The foreign key
// cascade removes their score submissions with it.
func (s *Server) handleDeleteMyProfile(w http.ResponseWriter, r *http.Request) {
	athleteID, err := s.getAthleteIDFromContext(r)
	if err != nil {
		s.errorJSON(w, err, http.StatusInternalServerError)
		return
	}

	err = s.db.Write(func(tx *sql.Tx) error {
		return s.db.DeleteAthlete(tx, athleteID)
	})
	if err != nil {
		s.errorJSON(w, errors.New("failed to delete profile"), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"message": "Profile deleted successfully"})
}
