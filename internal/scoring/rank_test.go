package scoring

import (
	"reflect"
	"testing"
	"time"
)

func entry(id int64, name, raw string, value float64, submittedAt time.Time) Entry {
	return Entry{AthleteID: id, Name: name, Raw: raw, Value: value, SubmittedAt: submittedAt}
}

func places(ranking []Placement) map[int64]int {
	out := make(map[int64]int, len(ranking))
	for _, p := range ranking {
		out[p.AthleteID] = p.Place
	}
	return out
}

func TestRankTimeAscending(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	// Submission order: 10:00, 09:30, 11:00 -> placements 2, 1, 3.
	entries := []Entry{
		entry(1, "ana", "10:00", 600, base),
		entry(2, "bo", "09:30", 570, base.Add(time.Minute)),
		entry(3, "cam", "11:00", 660, base.Add(2*time.Minute)),
	}

	got := places(Rank(entries, KindTime))
	want := map[int64]int{1: 2, 2: 1, 3: 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("time ranking placements = %v, want %v", got, want)
	}
}

func TestRankRepsDescendingWithDistinctTiePlacements(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	// Two athletes tie on 100 reps. They still receive distinct successive
	// placements: the earlier submission takes the better one.
	entries := []Entry{
		entry(1, "ana", "100", 100, base),
		entry(2, "bo", "150", 150, base.Add(time.Minute)),
		entry(3, "cam", "100", 100, base.Add(2*time.Minute)),
	}

	ranking := Rank(entries, KindReps)
	got := places(ranking)
	want := map[int64]int{1: 2, 2: 1, 3: 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reps ranking placements = %v, want %v", got, want)
	}

	for i, p := range ranking {
		if p.Place != i+1 {
			t.Errorf("placement at index %d = %d, want dense gapless %d", i, p.Place, i+1)
		}
	}
}

func TestRankDeterministic(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	entries := []Entry{
		entry(5, "e", "200", 200, base),
		entry(1, "a", "200", 200, base),
		entry(3, "c", "200", 200, base.Add(-time.Hour)),
	}

	first := Rank(entries, KindReps)
	second := Rank(entries, KindReps)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("ranking not reproducible: %v vs %v", first, second)
	}

	// Equal value and equal timestamp fall back to athlete ID; the earlier
	// timestamp beats both.
	wantOrder := []int64{3, 1, 5}
	for i, p := range first {
		if p.AthleteID != wantOrder[i] {
			t.Fatalf("tie-break order = %v at %d, want athlete %d", p.AthleteID, i, wantOrder[i])
		}
	}
}

func TestRankEmptyCohort(t *testing.T) {
	if got := Rank(nil, KindTime); len(got) != 0 {
		t.Fatalf("empty cohort should yield an empty ranking, got %v", got)
	}
	if got := Rank([]Entry{}, KindReps); len(got) != 0 {
		t.Fatalf("empty cohort should yield an empty ranking, got %v", got)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	entries := []Entry{
		entry(1, "ana", "10:00", 600, base),
		entry(2, "bo", "09:30", 570, base),
	}
	snapshot := append([]Entry(nil), entries...)

	Rank(entries, KindTime)
	if !reflect.DeepEqual(entries, snapshot) {
		t.Fatalf("Rank mutated its input: %v", entries)
	}
}
