package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/wodboard/wodboard/internal/auth"
	"github.com/wodboard/wodboard/internal/database"
)

// registerAthletePayload is the JSON body expected for registration. Unlike
// a bare account signup, registration here collects the cohort attributes
// the ranking core needs: sex, birth year and division.
type registerAthletePayload struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Sex       string `json:"sex"`
	BirthYear int    `json:"birthYear"`
	Division  string `json:"division"`
}

// loginAthletePayload is the JSON body expected for login.
type loginAthletePayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var (
	validSexes     = map[string]bool{"male": true, "female": true}
	validDivisions = map[string]bool{"rx": true, "scaled": true, "coach": true}
)

// ageCategory derives an athlete's age and age category from their birth
// year. It runs exactly once, at registration, against the configured
// competition year; the stored category is never recomputed afterwards.
func ageCategory(birthYear, competitionYear int) (age int, category string) {
	age = competitionYear - birthYear
	switch {
	case age <= 17:
		category = "Teenager"
	case age < 35:
		category = "Elite"
	default:
		category = "Masters"
	}
	return age, category
}

// handleRegisterAthlete creates a new athlete account.
func (s *Server) handleRegisterAthlete(w http.ResponseWriter, r *http.Request) {
	var payload registerAthletePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorJSON(w, errors.New("bad request: could not decode JSON"), http.StatusBadRequest)
		return
	}

	if payload.Name == "" || payload.Email == "" || payload.Password == "" || payload.BirthYear == 0 {
		s.errorJSON(w, errors.New("name, email, password and birthYear are required"), http.StatusBadRequest)
		return
	}
	if len(payload.Password) < 8 {
		s.errorJSON(w, errors.New("password must be at least 8 characters long"), http.StatusBadRequest)
		return
	}
	if !validSexes[payload.Sex] {
		s.errorJSON(w, errors.New("sex must be 'male' or 'female'"), http.StatusBadRequest)
		return
	}
	if !validDivisions[payload.Division] {
		s.errorJSON(w, errors.New("division must be 'rx', 'scaled' or 'coach'"), http.StatusBadRequest)
		return
	}
	if payload.BirthYear < 1900 || payload.BirthYear > s.config.CompetitionYear {
		s.errorJSON(w, errors.New("birthYear is out of range"), http.StatusBadRequest)
		return
	}

	_, err := s.db.GetAthleteByEmail(s.db.DB(), payload.Email)
	if err == nil {
		s.errorJSON(w, errors.New("an athlete with this email address already exists"), http.StatusConflict)
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		s.errorJSON(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}

	hashedPassword, err := auth.HashPassword(payload.Password)
	if err != nil {
		s.errorJSON(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}

	age, category := ageCategory(payload.BirthYear, s.config.CompetitionYear)

	var created *database.Athlete
	err = s.db.Write(func(tx *sql.Tx) error {
		var createErr error
		created, createErr = s.db.CreateAthlete(tx, &database.Athlete{
			Email:        payload.Email,
			Name:         payload.Name,
			PasswordHash: hashedPassword,
			Sex:          payload.Sex,
			BirthYear:    payload.BirthYear,
			Division:     payload.Division,
			Category:     category,
			Age:          age,
		})
		return createErr
	})
	if err != nil {
		s.errorJSON(w, errors.New("could not create athlete"), http.StatusInternalServerError)
		return
	}

	// Issue a session token right away so registration doubles as login.
	tokenString, err := auth.GenerateToken(created.ID, s.config.JwtSecret)
	if err != nil {
		s.errorJSON(w, errors.New("could not generate token"), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusCreated, envelope{
		"message": fmt.Sprintf("welcome %s, you are categorized as %s", created.Name, created.Category),
		"token":   tokenString,
		"athlete": toAthleteResponse(created),
	})
}

// handleLoginAthlete authenticates an existing athlete via email/password.
func (s *Server) handleLoginAthlete(w http.ResponseWriter, r *http.Request) {
	var payload loginAthletePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorJSON(w, errors.New("bad request: could not decode JSON"), http.StatusBadRequest)
		return
	}

	if payload.Email == "" || payload.Password == "" {
		s.errorJSON(w, errors.New("email and password are required"), http.StatusBadRequest)
		return
	}

	athlete, err := s.db.GetAthleteByEmail(s.db.DB(), payload.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.errorJSON(w, errors.New("invalid email or password"), http.StatusUnauthorized)
			return
		}
		s.errorJSON(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}

	if !auth.CheckPasswordHash(payload.Password, athlete.PasswordHash) {
		s.errorJSON(w, errors.New("invalid email or password"), http.StatusUnauthorized)
		return
	}

	tokenString, err := auth.GenerateToken(athlete.ID, s.config.JwtSecret)
	if err != nil {
		s.errorJSON(w, errors.New("could not generate token"), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{
		"token":   tokenString,
		"athlete": toAthleteResponse(athlete),
	})
}
