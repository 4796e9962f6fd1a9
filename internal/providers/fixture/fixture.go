package fixture

import (
	"context"
	"time"

	"pwhl-schedule-service/internal/domain"
	"pwhl-schedule-service/internal/seasons"
)

// Provider returns a static schedule useful for local development and tests
// when the real feed is unreachable or should not be hit.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// FetchSchedule returns a deterministic schedule for any registry season:
// two completed games and two scheduled ones, dated inside the season span.
func (p *Provider) FetchSchedule(ctx context.Context, seasonID int) ([]domain.Game, error) {
	_ = ctx

	season, err := seasons.Resolve(seasonID)
	if err != nil {
		return nil, err
	}

	three, two, one := 3, 2, 1
	games := []domain.Game{
		{
			ID:        "fixture-1",
			SeasonID:  season.ID,
			Date:      time.Date(season.StartYear, time.November, 30, 0, 0, 0, 0, time.UTC),
			AwayTeam:  "Toronto",
			HomeTeam:  "Montreal",
			AwayScore: &two,
			HomeScore: &three,
			Status:    domain.StatusFinal,
			Venue:     "Place Bell",
		},
		{
			ID:        "fixture-2",
			SeasonID:  season.ID,
			Date:      time.Date(season.StartYear, time.December, 14, 0, 0, 0, 0, time.UTC),
			AwayTeam:  "Boston",
			HomeTeam:  "Minnesota",
			AwayScore: &one,
			HomeScore: &two,
			Status:    domain.StatusFinalOT,
			Venue:     "Xcel Energy Center",
		},
		{
			ID:       "fixture-3",
			SeasonID: season.ID,
			Date:     time.Date(season.StartYear+1, time.February, 2, 0, 0, 0, 0, time.UTC),
			AwayTeam: "New York",
			HomeTeam: "Ottawa",
			Status:   domain.StatusScheduled,
			Venue:    "TD Place",
		},
		{
			ID:       "fixture-4",
			SeasonID: season.ID,
			Date:     time.Date(season.StartYear+1, time.March, 8, 0, 0, 0, 0, time.UTC),
			AwayTeam: "Minnesota",
			HomeTeam: "Toronto",
			Status:   domain.StatusScheduled,
			Venue:    "Coca-Cola Coliseum",
		},
	}

	return games, nil
}
