package domain

import "time"

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled GameStatus = "SCHEDULED"
	StatusFinal     GameStatus = "FINAL"
	StatusFinalOT   GameStatus = "FINAL_OT"
	StatusFinalSO   GameStatus = "FINAL_SO"
	StatusPostponed GameStatus = "POSTPONED"
	StatusUnknown   GameStatus = "UNKNOWN"
)

// Completed reports whether the status marks a finished game.
func (s GameStatus) Completed() bool {
	switch s {
	case StatusFinal, StatusFinalOT, StatusFinalSO:
		return true
	default:
		return false
	}
}

// Game is the canonical schedule entry exposed by the service.
// Scores are either both set or both nil; they are only set when
// Status reports a completed game.
type Game struct {
	ID        string     `json:"id"`
	SeasonID  int        `json:"seasonId"`
	Date      time.Time  `json:"date"`
	AwayTeam  string     `json:"awayTeam"`
	HomeTeam  string     `json:"homeTeam"`
	AwayScore *int       `json:"awayScore,omitempty"`
	HomeScore *int       `json:"homeScore,omitempty"`
	Status    GameStatus `json:"status"`
	Venue     string     `json:"venue,omitempty"`
}

// HasScores reports whether both score fields are populated.
func (g Game) HasScores() bool {
	return g.AwayScore != nil && g.HomeScore != nil
}
