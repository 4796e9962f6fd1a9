package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pwhl-schedule-service/internal/domain"
	"pwhl-schedule-service/internal/logging"
	"pwhl-schedule-service/internal/metrics"
	"pwhl-schedule-service/internal/seasons"
)

const (
	defaultInterval    = 15 * time.Minute
	defaultSeasonDelay = 2 * time.Second
)

// Cache is the slice of cache behavior the poller needs.
type Cache interface {
	Get(ctx context.Context, seasonID int) ([]domain.Game, error)
}

// Poller sweeps every registry season on an interval, keeping the cache
// warm so user requests rarely wait on the upstream feed. Sweeps go through
// the cache and therefore share its single-flight refresh with user traffic.
type Poller struct {
	cache       Cache
	logger      *slog.Logger
	metrics     *metrics.Recorder
	interval    time.Duration
	seasonDelay time.Duration
	now         func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(cache Cache, logger *slog.Logger, recorder *metrics.Recorder, interval, seasonDelay time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if seasonDelay < 0 {
		seasonDelay = defaultSeasonDelay
	}
	return &Poller{
		cache:       cache,
		logger:      logger,
		metrics:     recorder,
		interval:    interval,
		seasonDelay: seasonDelay,
		now:         time.Now,
		done:        make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial sweep to warm every season on boot.
		p.sweep(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				p.sweep(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// sweep refreshes every known season, pacing successive fetches to stay
// polite to the feed. A sweep succeeds when at least one season loads.
func (p *Poller) sweep(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(start)

	var (
		loaded  int
		total   int
		lastErr error
	)
	all := seasons.List()
	for i, season := range all {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		default:
		}

		games, err := p.cache.Get(ctx, season.ID)
		if err != nil {
			lastErr = err
			p.logError("poller season refresh failed", err, slog.Int(logging.FieldSeason, season.ID))
		} else {
			loaded++
			total += len(games)
		}

		if i < len(all)-1 {
			p.sleep(ctx, p.seasonDelay)
		}
	}

	if p.metrics != nil {
		p.metrics.RecordPollerCycle(time.Since(start), lastErr)
	}
	if loaded == 0 {
		p.recordFailure(lastErr, start)
		return
	}
	p.recordSuccess(start)
	p.logInfo("poller swept schedule",
		slog.Int("seasons", loaded),
		slog.Int(logging.FieldCount, total),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}

func (p *Poller) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-p.done:
	case <-timer.C:
	}
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
