package database

import (
	"database/sql"
	"errors"
	"time"
)

// DBorTx is an interface that allows functions to accept either a `*sql.DB`
// for single queries or a `*sql.Tx` for operations within a transaction.
type DBorTx interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// --- Athlete queries ---

func (s *Service) CreateAthlete(db DBorTx, a *Athlete) (*Athlete, error) {
	query := `
		INSERT INTO athletes (email, name, password_hash, sex, birth_year, division, category, age)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);`
	res, err := db.Exec(query, a.Email, a.Name, a.PasswordHash, a.Sex, a.BirthYear, a.Division, a.Category, a.Age)
	if err != nil {
		return nil, err
	}
	id, _ := res.LastInsertId()
	return s.GetAthleteByID(db, id)
}

func (s *Service) GetAthleteByEmail(db DBorTx, email string) (*Athlete, error) {
	query := `
		SELECT id, email, name, password_hash, sex, birth_year, division, category, age, created_at
		FROM athletes WHERE email = ?;`
	return scanAthlete(db.QueryRow(query, email))
}

func (s *Service) GetAthleteByID(db DBorTx, id int64) (*Athlete, error) {
	query := `
		SELECT id, email, name, password_hash, sex, birth_year, division, category, age, created_at
		FROM athletes WHERE id = ?;`
	return scanAthlete(db.QueryRow(query, id))
}

func scanAthlete(row *sql.Row) (*Athlete, error) {
	a := &Athlete{}
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.PasswordHash,
		&a.Sex,
		&a.BirthYear,
		&a.Division,
		&a.Category,
		&a.Age,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err // Returns sql.ErrNoRows if not found
	}
	return a, nil
}

// UpdateAthletePassword replaces the stored password hash for one athlete.
func (s *Service) UpdateAthletePassword(db DBorTx, athleteID int64, passwordHash string) error {
	res, err := db.Exec(`UPDATE athletes SET password_hash = ? WHERE id = ?;`, passwordHash, athleteID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return errors.New("athlete not found")
	}
	return nil
}

// DeleteAthlete removes an account. The scores foreign key cascades, so the
// athlete's submissions disappear with it.
func (s *Service) DeleteAthlete(db DBorTx, athleteID int64) error {
	_, err := db.Exec(`DELETE FROM athletes WHERE id = ?;`, athleteID)
	return err
}

// --- Event queries ---

// GetEventByID looks up one event's metadata. A sql.ErrNoRows here for an
// event that has scores recorded against it is a configuration fault in the
// seed data; callers surface it loudly instead of skipping the event.
func (s *Service) GetEventByID(db DBorTx, id string) (*Event, error) {
	query := `SELECT id, label, kind, timecap_seconds, description, instructions FROM events WHERE id = ?;`
	e := &Event{}
	err := db.QueryRow(query, id).Scan(&e.ID, &e.Label, &e.Kind, &e.TimecapSeconds, &e.Description, &e.Instructions)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListEvents returns the full roster in identifier order. The overall
// standing iterates this roster, so the order is stable by construction.
func (s *Service) ListEvents(db DBorTx) ([]*Event, error) {
	query := `SELECT id, label, kind, timecap_seconds, description, instructions FROM events ORDER BY id;`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.Label, &e.Kind, &e.TimecapSeconds, &e.Description, &e.Instructions); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// --- Score queries ---

// UpsertScore records a submission with insert-or-replace semantics keyed
// on the (athlete, event) pair: a resubmission overwrites the raw score and
// refreshes the submission time, it never creates a second row.
func (s *Service) UpsertScore(db DBorTx, athleteID int64, eventID, rawScore string, submittedAt time.Time) error {
	query := `
		INSERT INTO scores (athlete_id, event_id, raw_score, submitted_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (athlete_id, event_id)
		DO UPDATE SET raw_score = excluded.raw_score, submitted_at = excluded.submitted_at;`
	_, err := db.Exec(query, athleteID, eventID, rawScore, submittedAt)
	return err
}

// GetScore fetches one athlete's current submission for one event.
func (s *Service) GetScore(db DBorTx, athleteID int64, eventID string) (*Score, error) {
	query := `
		SELECT id, athlete_id, event_id, raw_score, submitted_at
		FROM scores WHERE athlete_id = ? AND event_id = ?;`
	sc := &Score{}
	err := db.QueryRow(query, athleteID, eventID).Scan(&sc.ID, &sc.AthleteID, &sc.EventID, &sc.RawScore, &sc.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// GetScoreRowsByCohort returns the (athlete, raw score) tuples for one
// event restricted to one (sex, division) cohort, ready for ranking.
func (s *Service) GetScoreRowsByCohort(db DBorTx, eventID, sex, division string) ([]ScoreRow, error) {
	query := `
		SELECT a.id, a.name, a.sex, a.division, sc.raw_score, sc.submitted_at
		FROM scores sc
		JOIN athletes a ON a.id = sc.athlete_id
		WHERE sc.event_id = ? AND a.sex = ? AND a.division = ?
		ORDER BY sc.submitted_at, a.id;`
	return s.queryScoreRows(db, query, eventID, sex, division)
}

// GetScoreRowsByEvent returns every submission for one event across all
// cohorts; the statistics engine partitions the result itself.
func (s *Service) GetScoreRowsByEvent(db DBorTx, eventID string) ([]ScoreRow, error) {
	query := `
		SELECT a.id, a.name, a.sex, a.division, sc.raw_score, sc.submitted_at
		FROM scores sc
		JOIN athletes a ON a.id = sc.athlete_id
		WHERE sc.event_id = ?
		ORDER BY sc.submitted_at, a.id;`
	return s.queryScoreRows(db, query, eventID)
}

func (s *Service) queryScoreRows(db DBorTx, query string, args ...interface{}) ([]ScoreRow, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScoreRow
	for rows.Next() {
		var r ScoreRow
		if err := rows.Scan(&r.AthleteID, &r.Name, &r.Sex, &r.Division, &r.RawScore, &r.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
