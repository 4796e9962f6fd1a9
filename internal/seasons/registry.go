package seasons

import (
	"errors"
	"fmt"
)

// Phase distinguishes the two halves of a league year.
type Phase string

const (
	PhaseRegular  Phase = "REGULAR"
	PhasePlayoffs Phase = "PLAYOFFS"
)

// Season describes one schedule the upstream feed can serve.
// StartYear is the first calendar year of the span; a season labeled
// 2024/25 starts in 2024 and finishes in 2025.
type Season struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	Phase     Phase  `json:"phase"`
	StartYear int    `json:"startYear"`
}

// Name returns the display name, e.g. "2024/25 Regular Season".
func (s Season) Name() string {
	switch s.Phase {
	case PhasePlayoffs:
		return s.Label + " Playoffs"
	default:
		return s.Label + " Regular Season"
	}
}

// UnknownSeasonError reports a season identifier the registry does not know.
type UnknownSeasonError struct {
	ID int
}

func (e *UnknownSeasonError) Error() string {
	return fmt.Sprintf("unknown season id %d", e.ID)
}

// AsUnknownSeason attempts to unwrap an error into an UnknownSeasonError.
func AsUnknownSeason(err error) (*UnknownSeasonError, bool) {
	var usErr *UnknownSeasonError
	if errors.As(err, &usErr) {
		return usErr, true
	}
	return nil, false
}

// The identifiers are assigned by the feed operator and only grow as new
// seasons are announced; there is no endpoint to discover them.
var known = []Season{
	{ID: 1, Label: "2023/24", Phase: PhaseRegular, StartYear: 2023},
	{ID: 3, Label: "2023/24", Phase: PhasePlayoffs, StartYear: 2023},
	{ID: 5, Label: "2024/25", Phase: PhaseRegular, StartYear: 2024},
	{ID: 6, Label: "2024/25", Phase: PhasePlayoffs, StartYear: 2024},
	{ID: 8, Label: "2025/26", Phase: PhaseRegular, StartYear: 2025},
}

var byID = func() map[int]Season {
	m := make(map[int]Season, len(known))
	for _, s := range known {
		m[s.ID] = s
	}
	return m
}()

// Resolve looks up a season by its feed identifier.
func Resolve(id int) (Season, error) {
	s, ok := byID[id]
	if !ok {
		return Season{}, &UnknownSeasonError{ID: id}
	}
	return s, nil
}

// List returns every known season in ascending identifier order.
func List() []Season {
	out := make([]Season, len(known))
	copy(out, known)
	return out
}
