package scoring

import (
	"math"
	"sort"
)

// percentileSteps are the fixed steps at which distribution values are
// reported.
var percentileSteps = []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// knownSexes fixes the pair of curves every distribution view renders.
// A sex with no entrants still gets a series, so both lines always plot.
var knownSexes = []string{"female", "male"}

// Sample is one valid normalized score feeding the statistics engine.
// Invalid submissions never become samples; they are excluded upstream so
// means and percentiles cover valid entries only.
type Sample struct {
	Sex      string
	Division string
	Value    float64
}

// ParticipationCount is the number of entrants for one (sex, division)
// pair, driving the participation breakdown view.
type ParticipationCount struct {
	Sex      string
	Division string
	Count    int
}

// Stats describes the score distribution for one event, split by sex.
// SeriesBySex holds the value at each step of Percentiles; once the event
// has any valid entries, a sex with none gets an all-zero series (and a
// zero mean and completion rate), mirroring an empty curve rather than a
// missing one. An event with no valid entries at all reports empty maps.
type Stats struct {
	Kind            Kind
	Percentiles     []int
	SeriesBySex     map[string][]float64
	MeanBySex       map[string]float64
	CompletionBySex map[string]float64
	Participation   []ParticipationCount
}

// Statistics computes the distribution of one event's valid normalized
// scores. timecapSeconds is the event's cap, or 0 when it has none;
// CompletionBySex (the fraction of entrants finishing strictly under the
// cap) is only populated for capped time events.
//
// For time events the percentile direction is inverted: the value reported
// at step p is the (100-p)th percentile of the raw seconds, so that the top
// of the curve always means the best performance. Reps events are reported
// uninverted. Implementations swapping in a generic percentile routine must
// invert the percentile argument, not the output values.
func Statistics(kind Kind, timecapSeconds int, samples []Sample) Stats {
	bySex := make(map[string][]float64)
	counts := make(map[ParticipationCount]int)
	for _, s := range samples {
		bySex[s.Sex] = append(bySex[s.Sex], s.Value)
		counts[ParticipationCount{Sex: s.Sex, Division: s.Division}]++
	}
	if len(samples) > 0 {
		for _, sex := range knownSexes {
			if _, ok := bySex[sex]; !ok {
				bySex[sex] = nil
			}
		}
	}

	stats := Stats{
		Kind:            kind,
		Percentiles:     append([]int(nil), percentileSteps...),
		SeriesBySex:     make(map[string][]float64),
		MeanBySex:       make(map[string]float64),
		CompletionBySex: make(map[string]float64),
	}

	for sex, values := range bySex {
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		series := make([]float64, len(percentileSteps))
		for i, p := range percentileSteps {
			q := float64(p)
			if kind == KindTime {
				q = float64(100 - p)
			}
			series[i] = percentile(sorted, q)
		}
		stats.SeriesBySex[sex] = series
		stats.MeanBySex[sex] = mean(values)

		if kind == KindTime && timecapSeconds > 0 {
			rate := 0.0
			if len(values) > 0 {
				under := 0
				for _, v := range values {
					if v < float64(timecapSeconds) {
						under++
					}
				}
				rate = float64(under) / float64(len(values))
			}
			stats.CompletionBySex[sex] = rate
		}
	}

	for key, n := range counts {
		key.Count = n
		stats.Participation = append(stats.Participation, key)
	}
	sort.Slice(stats.Participation, func(i, j int) bool {
		a, b := stats.Participation[i], stats.Participation[j]
		if a.Sex != b.Sex {
			return a.Sex < b.Sex
		}
		return a.Division < b.Division
	})

	return stats
}

// percentile returns the q-th percentile (0-100) of an ascending-sorted
// slice using linear interpolation between the two closest ranks, the same
// scheme the original statistics view used. An empty slice yields 0.
func percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	rank := q / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
