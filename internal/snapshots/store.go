package snapshots

import (
	"errors"
	"time"

	"pwhl-schedule-service/internal/domain"
)

// ErrNotFound reports that no snapshot exists for the requested season.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one season's normalized schedule at a point in time. It is
// what the cache persists after a successful refresh and what warms the
// cache at boot.
type Snapshot struct {
	SeasonID    int           `json:"seasonId"`
	Label       string        `json:"label"`
	RefreshedAt time.Time     `json:"refreshedAt"`
	Games       []domain.Game `json:"games"`
}

// Store persists per-season snapshots.
type Store interface {
	Load(seasonID int) (Snapshot, error)
	Save(snapshot Snapshot) error
}
