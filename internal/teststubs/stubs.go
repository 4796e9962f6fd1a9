package teststubs

import (
	"context"
	"sync/atomic"

	"pwhl-schedule-service/internal/domain"
	"pwhl-schedule-service/internal/snapshots"
)

// StubProvider is a test double for providers.ScheduleProvider.
type StubProvider struct {
	Games  map[int][]domain.Game
	Err    error
	Calls  atomic.Int32
	// Block, when set, makes FetchSchedule wait until the channel is
	// closed; used to hold a refresh in flight.
	Block chan struct{}
}

// FetchSchedule returns the configured games and error while tracking calls.
func (s *StubProvider) FetchSchedule(ctx context.Context, seasonID int) ([]domain.Game, error) {
	s.Calls.Add(1)
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Games[seasonID], nil
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Snapshots map[int]snapshots.Snapshot
	LoadErr   error
	SaveErr   error
	Saved     []snapshots.Snapshot
}

// Load returns the snapshot for the season if present.
func (s *StubSnapshotStore) Load(seasonID int) (snapshots.Snapshot, error) {
	if s.LoadErr != nil {
		return snapshots.Snapshot{}, s.LoadErr
	}
	snap, ok := s.Snapshots[seasonID]
	if !ok {
		return snapshots.Snapshot{}, snapshots.ErrNotFound
	}
	return snap, nil
}

// Save records the snapshot for verification in tests.
func (s *StubSnapshotStore) Save(snapshot snapshots.Snapshot) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saved = append(s.Saved, snapshot)
	return nil
}
