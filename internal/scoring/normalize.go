// Package scoring implements the leaderboard core: normalization of raw
// score strings into one comparable numeric domain, per-cohort ranking,
// overall placement-points aggregation, and distribution statistics.
//
// Everything in this package is a pure computation over in-memory data.
// Callers fetch score rows from storage, normalize them here, and render
// the ordered results; nothing is cached between requests.
package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the scoring kind of an event. It decides both the score grammar
// and the ordering direction when ranking.
type Kind string

const (
	// KindTime scores are elapsed durations; lower is better.
	KindTime Kind = "time"
	// KindReps scores are repetition counts; higher is better.
	KindReps Kind = "reps"
)

// InvalidScoreError reports a raw score string that does not parse under
// its event's grammar. It is a per-entry condition: ranking and statistics
// exclude the entry and carry on, they never abort the whole computation.
type InvalidScoreError struct {
	Raw    string
	Reason string
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("invalid score %q: %s", e.Raw, e.Reason)
}

// capPattern matches the capped-completion shorthand "CAP:NN", where NN is
// the number of penalty seconds beyond the event's time cap (one second per
// missing repetition).
var capPattern = regexp.MustCompile(`^CAP:(\d{1,3})$`)

// Normalize converts a raw score string into the canonical comparable unit
// for the event's scoring kind: total seconds for time events, repetition
// count for reps events. A value that does not parse yields a typed
// *InvalidScoreError, never a silently substituted number, so callers can
// distinguish "invalid" from a genuine zero.
//
// timecapSeconds is the event's time cap, or 0 when the event has none.
// A "CAP:NN" entry on an event without a cap therefore normalizes to just
// the penalty seconds; seed data never produces that state because capped
// events always carry a cap.
func Normalize(raw string, kind Kind, timecapSeconds int) (float64, error) {
	switch kind {
	case KindReps:
		return normalizeReps(raw)
	case KindTime:
		return normalizeTime(raw, timecapSeconds)
	default:
		return 0, &InvalidScoreError{Raw: raw, Reason: fmt.Sprintf("unknown scoring kind %q", kind)}
	}
}

func normalizeReps(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &InvalidScoreError{Raw: raw, Reason: "empty"}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &InvalidScoreError{Raw: raw, Reason: "not an integer repetition count"}
	}
	if n < 0 {
		return 0, &InvalidScoreError{Raw: raw, Reason: "negative repetition count"}
	}
	return float64(n), nil
}

func normalizeTime(raw string, timecapSeconds int) (float64, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return 0, &InvalidScoreError{Raw: raw, Reason: "empty"}
	}

	if m := capPattern.FindStringSubmatch(s); m != nil {
		over, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, &InvalidScoreError{Raw: raw, Reason: "bad CAP penalty"}
		}
		return float64(timecapSeconds + over), nil
	}

	// Plain duration: "MM:SS" or "HH:MM:SS". Parsing is tolerant: each
	// colon-delimited group must be a non-negative integer, but minute and
	// second groups are not clamped to 0-59.
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, &InvalidScoreError{Raw: raw, Reason: "expected MM:SS, HH:MM:SS or CAP:NN"}
	}
	groups := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, &InvalidScoreError{Raw: raw, Reason: "expected MM:SS, HH:MM:SS or CAP:NN"}
		}
		groups[i] = n
	}
	if len(groups) == 2 {
		return float64(groups[0]*60 + groups[1]), nil
	}
	return float64(groups[0]*3600 + groups[1]*60 + groups[2]), nil
}

// FormatSeconds renders a whole number of seconds back into the duration
// grammar accepted by Normalize: "MM:SS" under an hour, "HH:MM:SS" above.
// Round-tripping a valid duration through Normalize and FormatSeconds is
// stable ("12:05" -> 725 -> "12:05").
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
