package providers

import (
	"context"
	"log/slog"
	"time"

	"pwhl-schedule-service/internal/domain"
	"pwhl-schedule-service/internal/logging"
	"pwhl-schedule-service/internal/metrics"
)

// instrumentedProvider records attempt counts, latency, and outcomes for
// every upstream fetch.
type instrumentedProvider struct {
	inner   ScheduleProvider
	logger  *slog.Logger
	metrics *metrics.Recorder
	name    string
}

// NewInstrumentedProvider wraps a provider with metrics and structured logging.
func NewInstrumentedProvider(inner ScheduleProvider, logger *slog.Logger, recorder *metrics.Recorder, name string) ScheduleProvider {
	return &instrumentedProvider{
		inner:   inner,
		logger:  logger,
		metrics: recorder,
		name:    name,
	}
}

func (p *instrumentedProvider) FetchSchedule(ctx context.Context, seasonID int) ([]domain.Game, error) {
	start := time.Now()
	games, err := p.inner.FetchSchedule(ctx, seasonID)
	duration := time.Since(start)

	if p.metrics != nil {
		p.metrics.RecordProviderAttempt(p.name, duration, err)
	}

	if err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "schedule fetch error",
			slog.Int(logging.FieldSeason, seasonID),
			slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
			"error", err,
		)
		return nil, err
	}

	logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, "schedule fetched",
		slog.Int(logging.FieldSeason, seasonID),
		slog.Int(logging.FieldCount, len(games)),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)
	return games, nil
}
