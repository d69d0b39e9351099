package database

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite" // The pure Go SQLite driver
)

// Service manages the competition database. All athletes, events and scores
// live in one shared SQLite file; writes are serialized through a mutex and
// wrapped in a transaction so a score submission's read-then-upsert is
// atomic from the application's point of view.
type Service struct {
	path string

	db      *sql.DB
	writeMu sync.Mutex
}

// NewService opens the competition database and verifies the connection.
// Foreign keys must be switched on so deleting an athlete cascades to
// their scores.
func NewService(path string) (*Service, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", path, err)
	}

	return &Service{path: path, db: db}, nil
}

// Write executes a write operation (INSERT, UPDATE, DELETE) within a
// transaction, protected by the service's mutex to ensure serial access.
func (s *Service) Write(writeFunc func(tx *sql.Tx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := writeFunc(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// DB provides a direct connection for read queries. Leaderboard and
// statistics reads go straight through here; every view recomputes from raw
// rows, nothing derived is cached across requests.
func (s *Service) DB() *sql.DB {
	return s.db
}

// Close closes the database connection when the application shuts down.
func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		log.Printf("WARN: error closing database %s: %v", s.path, err)
		return
	}
	log.Printf("Database connection to %s closed.", s.path)
}

// Init creates the schema if it does not exist and seeds the competition's
// event catalog. It is idempotent and safe to run on every start.
func (s *Service) Init() error {
	return s.Write(func(tx *sql.Tx) error {
		// Athletes table. Age and category are computed once at
		// registration and stored; they are never recomputed afterwards.
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS athletes (
				id INTEGER PRIMARY KEY,
				email TEXT UNIQUE NOT NULL,
				name TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				sex TEXT NOT NULL,
				birth_year INTEGER NOT NULL,
				division TEXT NOT NULL,
				category TEXT NOT NULL,
				age INTEGER NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);`)
		if err != nil {
			return err
		}

		// Events table. timecap_seconds is NULL for open-ended events
		// (rep counts, uncapped time).
		_, err = tx.Exec(`
			CREATE TABLE IF NOT EXISTS events (
				id TEXT PRIMARY KEY,
				label TEXT NOT NULL,
				kind TEXT NOT NULL, -- 'time' or 'reps'
				timecap_seconds INTEGER,
				description TEXT NOT NULL DEFAULT '',
				instructions TEXT NOT NULL DEFAULT ''
			);`)
		if err != nil {
			return err
		}

		// Scores table. The unique pair enforces "one submission per
		// athlete per event"; resubmission replaces, never duplicates.
		_, err = tx.Exec(`
			CREATE TABLE IF NOT EXISTS scores (
				id INTEGER PRIMARY KEY,
				athlete_id INTEGER NOT NULL,
				event_id TEXT NOT NULL,
				raw_score TEXT NOT NULL,
				submitted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UNIQUE (athlete_id, event_id),
				FOREIGN KEY (athlete_id) REFERENCES athletes (id) ON DELETE CASCADE,
				FOREIGN KEY (event_id) REFERENCES events (id) ON DELETE CASCADE
			);`)
		if err != nil {
			return err
		}

		// Indexes backing the cohort and per-athlete lookups.
		if _, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_scores_event ON scores (event_id);`); err != nil {
			return err
		}
		if _, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_athletes_sex_division ON athletes (sex, division);`); err != nil {
			return err
		}

		return seedEvents(tx)
	})
}

// seedEvents inserts the competition's event roster. INSERT OR IGNORE keeps
// it idempotent across restarts.
func seedEvents(tx *sql.Tx) error {
	for _, e := range seedCatalog {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO events (id, label, kind, timecap_seconds, description, instructions)
			VALUES (?, ?, ?, ?, ?, ?);`,
			e.ID, e.Label, e.Kind, e.TimecapSeconds, e.Description, e.Instructions,
		)
		if err != nil {
			return fmt.Errorf("seeding event %s: %w", e.ID, err)
		}
	}
	return nil
}
