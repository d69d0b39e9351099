package scoring

import (
	"sort"
	"time"
)

// Entry is one athlete's normalized result within a single cohort. Entries
// handed to Rank must already be filtered to one (event, sex, division)
// cohort and must all carry valid normalized values; invalid submissions
// are excluded upstream.
type Entry struct {
	AthleteID   int64
	Name        string
	Raw         string
	Value       float64
	SubmittedAt time.Time
}

// Placement is one row of a cohort ranking. Place is 1-based, dense and
// gapless.
type Placement struct {
	AthleteID int64
	Name      string
	Raw       string
	Value     float64
	Place     int
}

// Rank orders one cohort's entries and assigns placements. Time events
// rank ascending (lower seconds win), reps events descending (higher count
// wins).
//
// Ties on the normalized value are broken by submission time (earlier
// submission takes the better placement), then by athlete ID, so the output
// is stable and reproducible across runs for identical input. Tied entries
// still receive distinct successive placements rather than sharing one;
// that matches the system this replaces, and the points awarded downstream
// depend on it.
//
// An empty cohort yields an empty ranking, not an error.
func Rank(entries []Entry, kind Kind) []Placement {
	if len(entries) == 0 {
		return []Placement{}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			if kind == KindReps {
				return sorted[i].Value > sorted[j].Value
			}
			return sorted[i].Value < sorted[j].Value
		}
		if !sorted[i].SubmittedAt.Equal(sorted[j].SubmittedAt) {
			return sorted[i].SubmittedAt.Before(sorted[j].SubmittedAt)
		}
		return sorted[i].AthleteID < sorted[j].AthleteID
	})

	out := make([]Placement, len(sorted))
	for i, e := range sorted {
		out[i] = Placement{
			AthleteID: e.AthleteID,
			Name:      e.Name,
			Raw:       e.Raw,
			Value:     e.Value,
			Place:     i + 1,
		}
	}
	return out
}
