package testutil

import (
	"time"

	"pwhl-schedule-service/internal/domain"
)

// ScheduledGame returns a minimal scheduled game fixture.
func ScheduledGame(id string, seasonID int, date time.Time) domain.Game {
	return domain.Game{
		ID:       id,
		SeasonID: seasonID,
		Date:     date,
		AwayTeam: "Toronto",
		HomeTeam: "Montreal",
		Status:   domain.StatusScheduled,
	}
}

// FinalGame returns a completed game fixture with both scores set.
func FinalGame(id string, seasonID int, date time.Time, away, home int) domain.Game {
	g := ScheduledGame(id, seasonID, date)
	g.Status = domain.StatusFinal
	g.AwayScore = &away
	g.HomeScore = &home
	return g
}

// Date builds a UTC midnight date, the canonical game date shape.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
