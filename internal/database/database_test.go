package database

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	t.Cleanup(svc.Close)
	if err := svc.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return svc
}

func createTestAthlete(t *testing.T, svc *Service, email string) *Athlete {
	t.Helper()
	var created *Athlete
	err := svc.Write(func(tx *sql.Tx) error {
		var err error
		created, err = svc.CreateAthlete(tx, &Athlete{
			Email:        email,
			Name:         "Test Athlete",
			PasswordHash: "$argon2id$irrelevant",
			Sex:          "female",
			BirthYear:    1995,
			Division:     "rx",
			Category:     "Elite",
			Age:          31,
		})
		return err
	})
	if err != nil {
		t.Fatalf("CreateAthlete: %v", err)
	}
	return created
}

func TestInitSeedsEventCatalogIdempotently(t *testing.T) {
	svc := newTestService(t)

	// A second Init must not duplicate or error.
	if err := svc.Init(); err != nil {
		t.Fatalf("second Init: %v", err)
	}

	events, err := svc.ListEvents(svc.DB())
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 seeded events, got %d", len(events))
	}

	wantIDs := []string{"26.1", "26.2", "26.3"}
	for i, e := range events {
		if e.ID != wantIDs[i] {
			t.Errorf("event %d = %s, want %s", i, e.ID, wantIDs[i])
		}
	}

	e262, err := svc.GetEventByID(svc.DB(), "26.2")
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	if e262.Kind != "time" || !e262.TimecapSeconds.Valid || e262.TimecapSeconds.Int64 != 720 {
		t.Errorf("26.2 = kind %s cap %+v, want time event capped at 720s", e262.Kind, e262.TimecapSeconds)
	}

	e261, err := svc.GetEventByID(svc.DB(), "26.1")
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	if e261.Kind != "reps" || e261.TimecapSeconds.Valid {
		t.Errorf("26.1 should be an uncapped reps event, got kind %s cap %+v", e261.Kind, e261.TimecapSeconds)
	}
}

func TestUpsertScoreReplacesNotDuplicates(t *testing.T) {
	svc := newTestService(t)
	athlete := createTestAthlete(t, svc, "upsert@example.com")

	first := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	err := svc.Write(func(tx *sql.Tx) error {
		return svc.UpsertScore(tx, athlete.ID, "26.2", "10:00", first)
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	err = svc.Write(func(tx *sql.Tx) error {
		return svc.UpsertScore(tx, athlete.ID, "26.2", "09:45", first.Add(time.Hour))
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rows, err := svc.GetScoreRowsByEvent(svc.DB(), "26.2")
	if err != nil {
		t.Fatalf("GetScoreRowsByEvent: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("resubmission must replace, not duplicate: got %d rows", len(rows))
	}
	if rows[0].RawScore != "09:45" {
		t.Errorf("raw score = %q, want the replacing submission %q", rows[0].RawScore, "09:45")
	}

	score, err := svc.GetScore(svc.DB(), athlete.ID, "26.2")
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if !score.SubmittedAt.Equal(first.Add(time.Hour)) {
		t.Errorf("submitted_at = %v, want refreshed to %v", score.SubmittedAt, first.Add(time.Hour))
	}
}

func TestGetScoreRowsByCohortFilters(t *testing.T) {
	svc := newTestService(t)

	rx := createTestAthlete(t, svc, "rx@example.com")
	scaled := createTestAthlete(t, svc, "scaled@example.com")
	err := svc.Write(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`UPDATE athletes SET division = 'scaled' WHERE id = ?;`, scaled.ID); err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := svc.UpsertScore(tx, rx.ID, "26.1", "150", now); err != nil {
			return err
		}
		return svc.UpsertScore(tx, scaled.ID, "26.1", "120", now)
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	rows, err := svc.GetScoreRowsByCohort(svc.DB(), "26.1", "female", "rx")
	if err != nil {
		t.Fatalf("GetScoreRowsByCohort: %v", err)
	}
	if len(rows) != 1 || rows[0].AthleteID != rx.ID {
		t.Fatalf("cohort query should return only the rx athlete, got %+v", rows)
	}
}

func TestDeleteAthleteCascadesToScores(t *testing.T) {
	svc := newTestService(t)
	athlete := createTestAthlete(t, svc, "cascade@example.com")

	err := svc.Write(func(tx *sql.Tx) error {
		return svc.UpsertScore(tx, athlete.ID, "26.1", "100", time.Now().UTC())
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	err = svc.Write(func(tx *sql.Tx) error {
		return svc.DeleteAthlete(tx, athlete.ID)
	})
	if err != nil {
		t.Fatalf("DeleteAthlete: %v", err)
	}

	rows, err := svc.GetScoreRowsByEvent(svc.DB(), "26.1")
	if err != nil {
		t.Fatalf("GetScoreRowsByEvent: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("deleting an athlete should cascade to their scores, got %d rows", len(rows))
	}
}
