package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pwhl-schedule-service/internal/domain"
	"pwhl-schedule-service/internal/logging"
	"pwhl-schedule-service/internal/metrics"
	"pwhl-schedule-service/internal/providers"
	"pwhl-schedule-service/internal/seasons"
	"pwhl-schedule-service/internal/snapshots"
)

const defaultTTL = 30 * time.Minute

// entry is one season's stored schedule.
type entry struct {
	games       []domain.Game
	refreshedAt time.Time
}

// refresh is the in-flight handle concurrent callers share. The owner fills
// games/err and closes done; waiters select on done against their own ctx.
type refresh struct {
	done  chan struct{}
	games []domain.Game
	err   error
}

// Options configures a Cache.
type Options struct {
	Provider providers.ScheduleProvider
	TTL      time.Duration
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
	// Snapshots, when set, receives a best-effort save after every
	// successful refresh.
	Snapshots snapshots.Store
}

// Cache stores normalized schedules per season with a TTL. Concurrent Gets
// for the same stale season collapse into a single upstream refresh;
// distinct seasons refresh in parallel. When a refresh fails and a stale
// entry exists, the stale entry is served and the failure is surfaced as a
// warning instead of an error.
type Cache struct {
	provider providers.ScheduleProvider
	ttl      time.Duration
	logger   *slog.Logger
	metrics  *metrics.Recorder
	snaps    snapshots.Store
	now      func() time.Time

	mu       sync.Mutex
	entries  map[int]*entry
	inflight map[int]*refresh
}

// New constructs a Cache. A non-positive TTL falls back to the default.
func New(opts Options) *Cache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		provider: opts.Provider,
		ttl:      ttl,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		snaps:    opts.Snapshots,
		now:      time.Now,
		entries:  make(map[int]*entry),
		inflight: make(map[int]*refresh),
	}
}

// Get returns the season's schedule, refreshing through the provider when
// the stored entry is missing or older than the TTL. The returned slice is
// a copy; callers may not mutate cache state through it.
func (c *Cache) Get(ctx context.Context, seasonID int) ([]domain.Game, error) {
	c.mu.Lock()

	if e, ok := c.entries[seasonID]; ok && c.now().Sub(e.refreshedAt) < c.ttl {
		games := copyGames(e.games)
		c.mu.Unlock()
		c.metrics.RecordCacheHit(seasonID)
		return games, nil
	}

	r, owned := c.inflight[seasonID]
	if !owned {
		r = &refresh{done: make(chan struct{})}
		c.inflight[seasonID] = r
		c.metrics.RecordCacheMiss(seasonID)
		// The refresh runs detached from the caller's cancellation so an
		// abandoned wait still completes and updates the cache.
		go c.runRefresh(context.WithoutCancel(ctx), seasonID, r)
	}
	c.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.done:
	}

	if r.err != nil {
		if stale, ok := c.staleEntry(seasonID); ok {
			c.metrics.RecordStaleServe(seasonID)
			logging.Warn(c.logger, "serving stale schedule after failed refresh",
				slog.Int(logging.FieldSeason, seasonID),
				"error", r.err,
			)
			return stale, nil
		}
		return nil, r.err
	}
	return copyGames(r.games), nil
}

// Invalidate clears a season's entry, forcing the next Get to refresh. An
// in-flight refresh is unaffected and will still store its result.
func (c *Cache) Invalidate(seasonID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, seasonID)
}

// InvalidateAll clears every stored entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]*entry)
}

// Warm pre-populates a season's entry, typically from a snapshot at boot.
// TTL math uses the supplied refresh time, so an old snapshot is admitted
// but immediately considered stale.
func (c *Cache) Warm(seasonID int, games []domain.Game, refreshedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[seasonID] = &entry{games: copyGames(games), refreshedAt: refreshedAt}
}

func (c *Cache) runRefresh(ctx context.Context, seasonID int, r *refresh) {
	games, err := c.provider.FetchSchedule(ctx, seasonID)

	c.mu.Lock()
	if err == nil {
		c.entries[seasonID] = &entry{games: copyGames(games), refreshedAt: c.now()}
	}
	delete(c.inflight, seasonID)
	c.mu.Unlock()

	if err == nil {
		c.persistSnapshot(seasonID, games)
	}

	r.games = games
	r.err = err
	close(r.done)
}

// persistSnapshot saves the refreshed schedule best-effort; a failing
// snapshot backend never fails the refresh.
func (c *Cache) persistSnapshot(seasonID int, games []domain.Game) {
	if c.snaps == nil {
		return
	}
	snap := snapshots.Snapshot{
		SeasonID:    seasonID,
		RefreshedAt: c.now(),
		Games:       games,
	}
	if season, err := seasons.Resolve(seasonID); err == nil {
		snap.Label = season.Label
	}
	if err := c.snaps.Save(snap); err != nil {
		logging.Warn(c.logger, "snapshot save failed",
			slog.Int(logging.FieldSeason, seasonID),
			"error", err,
		)
	}
}

// staleEntry returns a copy of the stored entry regardless of age.
func (c *Cache) staleEntry(seasonID int) ([]domain.Game, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[seasonID]; ok {
		return copyGames(e.games), true
	}
	return nil, false
}

func copyGames(games []domain.Game) []domain.Game {
	out := make([]domain.Game, len(games))
	copy(out, games)
	return out
}
