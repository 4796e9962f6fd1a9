package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pwhl-schedule-service/internal/domain"
	"pwhl-schedule-service/internal/metrics"
	"pwhl-schedule-service/internal/providers"
	"pwhl-schedule-service/internal/teststubs"
	"pwhl-schedule-service/internal/testutil"
)

func seasonGames() map[int][]domain.Game {
	return map[int][]domain.Game{
		5: {
			testutil.FinalGame("1", 5, testutil.Date(2024, time.November, 30), 2, 3),
			testutil.ScheduledGame("2", 5, testutil.Date(2025, time.February, 2)),
		},
		8: {
			testutil.ScheduledGame("3", 8, testutil.Date(2025, time.November, 21)),
		},
	}
}

func TestGetFetchesOnMissAndServesFromCache(t *testing.T) {
	provider := &teststubs.StubProvider{Games: seasonGames()}
	recorder := metrics.NewRecorder()
	c := New(Options{Provider: provider, TTL: time.Minute, Metrics: recorder})

	games, err := c.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if provider.Calls.Load() != 1 {
		t.Fatalf("expected 1 fetch, got %d", provider.Calls.Load())
	}

	if _, err := c.Get(context.Background(), 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if provider.Calls.Load() != 1 {
		t.Fatalf("expected cached serve without fetch, got %d calls", provider.Calls.Load())
	}
	if recorder.CacheHits() != 1 || recorder.CacheMisses() != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d and %d", recorder.CacheHits(), recorder.CacheMisses())
	}
}

func TestGetRefreshesExpiredEntry(t *testing.T) {
	provider := &teststubs.StubProvider{Games: seasonGames()}
	c := New(Options{Provider: provider, TTL: time.Minute})

	base := time.Now()
	c.now = func() time.Time { return base }
	if _, err := c.Get(context.Background(), 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := c.Get(context.Background(), 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if provider.Calls.Load() != 2 {
		t.Fatalf("expected expired entry to refetch, got %d calls", provider.Calls.Load())
	}
}

func TestConcurrentGetsShareOneRefresh(t *testing.T) {
	provider := &teststubs.StubProvider{Games: seasonGames(), Block: make(chan struct{})}
	c := New(Options{Provider: provider, TTL: time.Minute})

	const waiters = 8
	var wg sync.WaitGroup
	errs := make([]error, waiters)
	counts := make([]int, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			games, err := c.Get(context.Background(), 5)
			errs[i] = err
			counts[i] = len(games)
		}(i)
	}

	// Give every goroutine time to join the in-flight refresh, then
	// release the provider.
	time.Sleep(50 * time.Millisecond)
	close(provider.Block)
	wg.Wait()

	for i := 0; i < waiters; i++ {
		if errs[i] != nil {
			t.Fatalf("waiter %d: expected no error, got %v", i, errs[i])
		}
		if counts[i] != 2 {
			t.Fatalf("waiter %d: expected 2 games, got %d", i, counts[i])
		}
	}
	if provider.Calls.Load() != 1 {
		t.Fatalf("expected exactly 1 upstream fetch, got %d", provider.Calls.Load())
	}
}

func TestDistinctSeasonsRefreshIndependently(t *testing.T) {
	provider := &teststubs.StubProvider{Games: seasonGames()}
	c := New(Options{Provider: provider, TTL: time.Minute})

	if _, err := c.Get(context.Background(), 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := c.Get(context.Background(), 8); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if provider.Calls.Load() != 2 {
		t.Fatalf("expected one fetch per season, got %d", provider.Calls.Load())
	}
}

func TestGetServesStaleOnRefreshFailure(t *testing.T) {
	provider := &teststubs.StubProvider{Games: seasonGames()}
	recorder := metrics.NewRecorder()
	logger, buf := testutil.NewBufferLogger()
	c := New(Options{Provider: provider, TTL: time.Minute, Logger: logger, Metrics: recorder})

	base := time.Now()
	c.now = func() time.Time { return base }
	if _, err := c.Get(context.Background(), 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	provider.Err = &providers.UpstreamUnavailableError{Provider: "test", StatusCode: 503}

	games, err := c.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected stale serve, got error %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 stale games, got %d", len(games))
	}
	if recorder.StaleServes() != 1 {
		t.Fatalf("expected 1 stale serve recorded, got %d", recorder.StaleServes())
	}
	if buf.Len() == 0 {
		t.Fatalf("expected a stale-serve warning to be logged")
	}

	// The entry stays stale, so the next lookup tries upstream again.
	provider.Err = nil
	if _, err := c.Get(context.Background(), 5); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if provider.Calls.Load() != 3 {
		t.Fatalf("expected 3 fetches, got %d", provider.Calls.Load())
	}
}

func TestGetPropagatesFailureWithoutStaleEntry(t *testing.T) {
	wantErr := &providers.UpstreamUnavailableError{Provider: "test", StatusCode: 502}
	provider := &teststubs.StubProvider{Err: wantErr}
	c := New(Options{Provider: provider, TTL: time.Minute})

	_, err := c.Get(context.Background(), 5)
	if _, ok := providers.AsUpstreamUnavailable(err); !ok {
		t.Fatalf("expected upstream unavailable error, got %v", err)
	}
}

func TestGetHonorsCallerCancellation(t *testing.T) {
	provider := &teststubs.StubProvider{Games: seasonGames(), Block: make(chan struct{})}
	defer close(provider.Block)
	c := New(Options{Provider: provider, TTL: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Get(ctx, 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	provider := &teststubs.StubProvider{Games: seasonGames()}
	c := New(Options{Provider: provider, TTL: time.Hour})

	if _, err := c.Get(context.Background(), 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	c.Invalidate(5)
	if _, err := c.Get(context.Background(), 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if provider.Calls.Load() != 2 {
		t.Fatalf("expected refetch after invalidate, got %d calls", provider.Calls.Load())
	}
}

func TestWarmAdmitsSnapshotEntry(t *testing.T) {
	provider := &teststubs.StubProvider{Games: seasonGames()}
	c := New(Options{Provider: provider, TTL: time.Hour})

	c.Warm(5, seasonGames()[5], time.Now())
	games, err := c.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if provider.Calls.Load() != 0 {
		t.Fatalf("expected warmed entry to avoid fetching, got %d calls", provider.Calls.Load())
	}
}

func TestWarmWithOldTimestampIsImmediatelyStale(t *testing.T) {
	provider := &teststubs.StubProvider{Games: seasonGames()}
	c := New(Options{Provider: provider, TTL: time.Minute})

	c.Warm(5, seasonGames()[5], time.Now().Add(-time.Hour))
	if _, err := c.Get(context.Background(), 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if provider.Calls.Load() != 1 {
		t.Fatalf("expected stale warmed entry to refetch, got %d calls", provider.Calls.Load())
	}
}

func TestRefreshPersistsSnapshot(t *testing.T) {
	provider := &teststubs.StubProvider{Games: seasonGames()}
	store := &teststubs.StubSnapshotStore{}
	c := New(Options{Provider: provider, TTL: time.Minute, Snapshots: store})

	if _, err := c.Get(context.Background(), 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(store.Saved) != 1 {
		t.Fatalf("expected 1 snapshot saved, got %d", len(store.Saved))
	}
	snap := store.Saved[0]
	if snap.SeasonID != 5 || snap.Label != "2024/25" {
		t.Fatalf("expected season 5 labeled 2024/25, got %d %q", snap.SeasonID, snap.Label)
	}
	if len(snap.Games) != 2 {
		t.Fatalf("expected 2 games in snapshot, got %d", len(snap.Games))
	}
}

func TestSnapshotSaveFailureDoesNotFailGet(t *testing.T) {
	provider := &teststubs.StubProvider{Games: seasonGames()}
	store := &teststubs.StubSnapshotStore{SaveErr: errors.New("disk full")}
	logger, buf := testutil.NewBufferLogger()
	c := New(Options{Provider: provider, TTL: time.Minute, Logger: logger, Snapshots: store})

	if _, err := c.Get(context.Background(), 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected a snapshot failure warning to be logged")
	}
}

func TestGetReturnsCopies(t *testing.T) {
	provider := &teststubs.StubProvider{Games: seasonGames()}
	c := New(Options{Provider: provider, TTL: time.Hour})

	first, err := c.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	first[0].AwayTeam = "mutated"

	second, err := c.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second[0].AwayTeam == "mutated" {
		t.Fatalf("expected cache to be insulated from caller mutation")
	}
}
