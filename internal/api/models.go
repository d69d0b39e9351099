package api

import (
	"math"
	"time"

	"github.com/wodboard/wodboard/internal/database"
	"github.com/wodboard/wodboard/internal/scoring"
)

// AthleteResponse is the DTO for an athlete's profile. The password hash
// never leaves the database layer.
type AthleteResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Sex       string    `json:"sex"`
	BirthYear int       `json:"birthYear"`
	Division  string    `json:"division"`
	Category  string    `json:"category"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAthleteResponse(a *database.Athlete) AthleteResponse {
	return AthleteResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Sex:       a.Sex,
		BirthYear: a.BirthYear,
		Division:  a.Division,
		Category:  a.Category,
		Age:       a.Age,
		CreatedAt: a.CreatedAt,
	}
}

// EventResponse is the DTO for one catalog entry. TimecapSeconds is a
// pointer so uncapped events serialize as `null` rather than 0.
type EventResponse struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	Kind           string `json:"kind"`
	TimecapSeconds *int64 `json:"timecapSeconds"`
	Description    string `json:"description"`
	Instructions   string `json:"instructions"`
}

func toEventResponse(e *database.Event) EventResponse {
	var timecap *int64
	if e.TimecapSeconds.Valid {
		timecap = &e.TimecapSeconds.Int64
	}

	return EventResponse{
		ID:             e.ID,
		Label:          e.Label,
		Kind:           e.Kind,
		TimecapSeconds: timecap,
		Description:    e.Description,
		Instructions:   e.Instructions,
	}
}

func toEventResponseList(events []*database.Event) []EventResponse {
	responseList := make([]EventResponse, len(events))
	for i, e := range events {
		responseList[i] = toEventResponse(e)
	}
	return responseList
}

// ScoreResponse is the DTO for an athlete's own submission.
type ScoreResponse struct {
	EventID     string    `json:"eventId"`
	RawScore    string    `json:"rawScore"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func toScoreResponse(sc *database.Score) ScoreResponse {
	return ScoreResponse{
		EventID:     sc.EventID,
		RawScore:    sc.RawScore,
		SubmittedAt: sc.SubmittedAt,
	}
}

// LeaderboardRowResponse is one row of a per-event cohort leaderboard.
// Points equals Place by the competition's "placement = points" rule.
type LeaderboardRowResponse struct {
	Place  int    `json:"place"`
	Name   string `json:"name"`
	Score  string `json:"score"`
	Points int    `json:"points"`
}

func toLeaderboardResponse(ranking []scoring.Placement) []LeaderboardRowResponse {
	rows := make([]LeaderboardRowResponse, len(ranking))
	for i, p := range ranking {
		rows[i] = LeaderboardRowResponse{
			Place:  p.Place,
			Name:   p.Name,
			Score:  p.Raw,
			Points: p.Place,
		}
	}
	return rows
}

// OverallRowResponse is one row of the overall standing. Scores maps event
// ID to the raw submitted string; skipped events are absent.
type OverallRowResponse struct {
	Place       int               `json:"place"`
	Name        string            `json:"name"`
	Scores      map[string]string `json:"scores"`
	TotalPoints int               `json:"totalPoints"`
}

func toOverallResponse(rows []scoring.OverallRow) []OverallRowResponse {
	out := make([]OverallRowResponse, len(rows))
	for i, r := range rows {
		out[i] = OverallRowResponse{
			Place:       r.Place,
			Name:        r.Name,
			Scores:      r.Scores,
			TotalPoints: r.Points,
		}
	}
	return out
}

// StatisticsResponse carries the numeric series behind the two statistics
// views: the percentile-by-sex curve and the participation breakdown.
// MeanDisplayBySex is only set for time events, formatting the mean back
// into the MM:SS grammar.
type StatisticsResponse struct {
	EventID          string                  `json:"eventId"`
	Kind             string                  `json:"kind"`
	Percentiles      []int                   `json:"percentiles"`
	SeriesBySex      map[string][]float64    `json:"seriesBySex"`
	MeanBySex        map[string]float64      `json:"meanBySex"`
	MeanDisplayBySex map[string]string       `json:"meanDisplayBySex,omitempty"`
	CompletionBySex  map[string]float64      `json:"completionBySex,omitempty"`
	Participation    []ParticipationResponse `json:"participation"`
}

// ParticipationResponse is one bar of the participation breakdown.
type ParticipationResponse struct {
	Sex      string `json:"sex"`
	Division string `json:"division"`
	Count    int    `json:"count"`
}

func toStatisticsResponse(eventID string, stats scoring.Stats) StatisticsResponse {
	participation := make([]ParticipationResponse, len(stats.Participation))
	for i, p := range stats.Participation {
		participation[i] = ParticipationResponse{Sex: p.Sex, Division: p.Division, Count: p.Count}
	}

	resp := StatisticsResponse{
		EventID:       eventID,
		Kind:          string(stats.Kind),
		Percentiles:   stats.Percentiles,
		SeriesBySex:   stats.SeriesBySex,
		MeanBySex:     stats.MeanBySex,
		Participation: participation,
	}
	if len(stats.CompletionBySex) > 0 {
		resp.CompletionBySex = stats.CompletionBySex
	}
	if stats.Kind == scoring.KindTime {
		resp.MeanDisplayBySex = make(map[string]string, len(stats.MeanBySex))
		for sex, m := range stats.MeanBySex {
			resp.MeanDisplayBySex[sex] = scoring.FormatSeconds(int(math.Round(m)))
		}
	}
	return resp
}
