package leaguestat

import (
	"context"
	"log/slog"

	"pwhl-schedule-service/internal/domain"
)

// Provider wires the feed client and the normalizer into a
// providers.ScheduleProvider.
type Provider struct {
	client     *Client
	normalizer *Normalizer
}

// NewProvider constructs a leaguestat-backed schedule provider.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	return &Provider{
		client:     NewClient(cfg),
		normalizer: NewNormalizer(logger),
	}
}

// FetchSchedule fetches and normalizes one season's schedule.
func (p *Provider) FetchSchedule(ctx context.Context, seasonID int) ([]domain.Game, error) {
	entries, err := p.client.FetchSchedule(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return p.normalizer.Normalize(seasonID, entries)
}
