package scoring

import "sort"

// OverallRow is one athlete's cumulative standing across the competition's
// event roster. Scores maps event ID to the raw submitted string for
// display; events the athlete skipped are simply absent from the map.
type OverallRow struct {
	AthleteID int64
	Name      string
	Scores    map[string]string
	Points    int
	Place     int
}

// Overall combines per-event cohort rankings into one cumulative standing.
// events is the fixed roster considered "overall"; rankings maps event ID
// to that event's ranking for the same cohort.
//
// Each placement an athlete earned contributes its place number as points
// (1 point for 1st, lower total is better). An athlete absent from an
// event's ranking contributes nothing for that event; skipping an event is
// not penalized with a worst-case placement.
//
// The final order is ascending total points, ties broken by athlete ID so
// the standing is reproducible.
func Overall(events []string, rankings map[string][]Placement) []OverallRow {
	byAthlete := make(map[int64]*OverallRow)
	for _, eventID := range events {
		for _, p := range rankings[eventID] {
			row, ok := byAthlete[p.AthleteID]
			if !ok {
				row = &OverallRow{
					AthleteID: p.AthleteID,
					Name:      p.Name,
					Scores:    make(map[string]string),
				}
				byAthlete[p.AthleteID] = row
			}
			row.Points += p.Place
			row.Scores[eventID] = p.Raw
		}
	}

	out := make([]OverallRow, 0, len(byAthlete))
	for _, row := range byAthlete {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points < out[j].Points
		}
		return out[i].AthleteID < out[j].AthleteID
	})
	for i := range out {
		out[i].Place = i + 1
	}
	return out
}
