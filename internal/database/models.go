package database

import (
	"database/sql"
	"time"
)

// Athlete represents a record in the 'athletes' table. The PasswordHash is
// never serialized; API responses go through a dedicated DTO instead.
type Athlete struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Sex          string // 'male' or 'female'
	BirthYear    int
	Division     string // 'rx', 'scaled' or 'coach'
	Category     string // age category, fixed at registration
	Age          int
	CreatedAt    time.Time
}

// Event represents one scored workout of the competition. TimecapSeconds is
// NULL unless the event is time-scored with capped completion.
type Event struct {
	ID             string // e.g. "26.1"
	Label          string
	Kind           string // 'time' or 'reps'
	TimecapSeconds sql.NullInt64
	Description    string
	Instructions   string
}

// Score represents one athlete's raw submission for one event. The raw
// string is stored untouched; normalization happens on every read so a
// corrected time cap immediately changes how CAP entries rank.
type Score struct {
	ID          int64
	AthleteID   int64
	EventID     string
	RawScore    string
	SubmittedAt time.Time
}

// ScoreRow is the joined (athlete, score) tuple the ranking and statistics
// reads consume. It carries exactly what the scoring core needs: identity,
// cohort attributes, the raw string and the submission time used for
// deterministic tie-breaking.
type ScoreRow struct {
	AthleteID   int64
	Name        string
	Sex         string
	Division    string
	RawScore    string
	SubmittedAt time.Time
}
