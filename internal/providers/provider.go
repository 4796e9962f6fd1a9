package providers

import (
	"context"

	"pwhl-schedule-service/internal/domain"
)

// ScheduleProvider defines how one season's schedule is fetched and
// normalized into canonical game records. Implementations must validate the
// season identifier before touching the network and must not retain state
// between calls.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, seasonID int) ([]domain.Game, error)
}
