package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"pwhl-schedule-service/internal/domain"
	"pwhl-schedule-service/internal/logging"
)

const (
	defaultInitialBackoff = 200 * time.Millisecond
	defaultMaxElapsed     = 20 * time.Second
)

// retryingProvider wraps a ScheduleProvider with exponential backoff on
// transient upstream failures. Unknown seasons and malformed responses are
// permanent and return immediately.
type retryingProvider struct {
	inner      ScheduleProvider
	logger     *slog.Logger
	name       string
	maxElapsed time.Duration
}

// NewRetryingProvider wraps the given provider with retries. A non-positive
// maxElapsed falls back to the default window.
func NewRetryingProvider(inner ScheduleProvider, logger *slog.Logger, name string, maxElapsed time.Duration) ScheduleProvider {
	if maxElapsed <= 0 {
		maxElapsed = defaultMaxElapsed
	}
	return &retryingProvider{
		inner:      inner,
		logger:     logger,
		name:       name,
		maxElapsed: maxElapsed,
	}
}

func (r *retryingProvider) FetchSchedule(ctx context.Context, seasonID int) ([]domain.Game, error) {
	var games []domain.Game
	attempt := 0

	operation := func() error {
		attempt++
		fetched, err := r.inner.FetchSchedule(ctx, seasonID)
		if err == nil {
			games = fetched
			return nil
		}
		if _, transient := AsUpstreamUnavailable(err); !transient {
			return backoff.Permanent(err)
		}
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "schedule fetch retry",
			slog.Int(logging.FieldSeason, seasonID),
			slog.Int("attempt", attempt),
			"error", err,
		)
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = defaultInitialBackoff
	policy.MaxElapsedTime = r.maxElapsed

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "schedule fetch failed",
			slog.Int(logging.FieldSeason, seasonID),
			slog.Int("attempts", attempt),
			"error", err,
		)
		return nil, err
	}
	return games, nil
}
