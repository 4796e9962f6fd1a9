package filter

import (
	"strings"
	"time"

	"pwhl-schedule-service/internal/domain"
)

// Criteria is a conjunction of optional predicates. A nil/empty field means
// no constraint on that dimension. Criteria values are stateless; applying
// them never mutates the input collection.
type Criteria struct {
	SeasonID *int
	// Month matches on calendar month regardless of year. A season spans a
	// year boundary, so month filtering alone can mix years; that is the
	// documented behavior, not a defect.
	Month *time.Month
	// Team is a case-insensitive exact match against either side.
	Team string
	// Status is a category: "final" matches the whole FINAL* family;
	// "scheduled", "postponed", and "unknown" match their single status.
	Status string
}

// IsZero reports whether no predicate is set.
func (c Criteria) IsZero() bool {
	return c.SeasonID == nil && c.Month == nil && c.Team == "" && c.Status == ""
}

// Matches reports whether the game satisfies every set predicate.
func (c Criteria) Matches(g domain.Game) bool {
	if c.SeasonID != nil && g.SeasonID != *c.SeasonID {
		return false
	}
	if c.Month != nil && g.Date.Month() != *c.Month {
		return false
	}
	if c.Team != "" && !strings.EqualFold(c.Team, g.AwayTeam) && !strings.EqualFold(c.Team, g.HomeTeam) {
		return false
	}
	if c.Status != "" && !matchesStatus(g.Status, c.Status) {
		return false
	}
	return true
}

func matchesStatus(status domain.GameStatus, category string) bool {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "final":
		return status.Completed()
	case "scheduled":
		return status == domain.StatusScheduled
	case "postponed":
		return status == domain.StatusPostponed
	case "unknown":
		return status == domain.StatusUnknown
	default:
		return false
	}
}

// Apply returns the subsequence of games matching the criteria, preserving
// input order. Empty criteria returns the input unchanged.
func Apply(games []domain.Game, c Criteria) []domain.Game {
	if c.IsZero() {
		return games
	}
	out := make([]domain.Game, 0, len(games))
	for _, g := range games {
		if c.Matches(g) {
			out = append(out, g)
		}
	}
	return out
}

// Summary holds aggregate statistics over a filtered collection. It is
// derived on demand and never cached.
type Summary struct {
	Total                int     `json:"totalGames"`
	Completed            int     `json:"completedGames"`
	Pending              int     `json:"pendingGames"`
	AverageCombinedScore float64 `json:"averageCombinedScore"`
}

// Summarize computes aggregate statistics. With no completed games the
// average combined score is 0 rather than a division by zero.
func Summarize(games []domain.Game) Summary {
	s := Summary{Total: len(games)}

	combined := 0
	for _, g := range games {
		if !g.Status.Completed() {
			continue
		}
		s.Completed++
		if g.HasScores() {
			combined += *g.AwayScore + *g.HomeScore
		}
	}
	s.Pending = s.Total - s.Completed

	if s.Completed > 0 {
		s.AverageCombinedScore = float64(combined) / float64(s.Completed)
	}
	return s
}
