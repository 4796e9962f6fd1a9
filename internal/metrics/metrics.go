package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type cacheStats struct {
	hits        int
	misses      int
	staleServes int
}

// Recorder captures lightweight, in-memory metrics about provider calls and
// cache behavior, and forwards them to OpenTelemetry when configured. The
// in-memory counters keep assertions cheap in tests.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	cache cacheStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for an upstream fetch and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordCacheHit tracks a lookup served from a fresh cached entry.
func (r *Recorder) RecordCacheHit(seasonID int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.hits++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheLookup(seasonID, OutcomeHit)
	}
}

// RecordCacheMiss tracks a lookup that triggered a refresh.
func (r *Recorder) RecordCacheMiss(seasonID int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.misses++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheLookup(seasonID, OutcomeMiss)
	}
}

// RecordStaleServe tracks a lookup answered with a stale entry after a failed refresh.
func (r *Recorder) RecordStaleServe(seasonID int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cache.staleServes++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCacheLookup(seasonID, OutcomeStaleServe)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// CacheHits returns the number of fresh cache hits recorded.
func (r *Recorder) CacheHits() int {
	return r.cacheSnapshot().hits
}

// CacheMisses returns the number of cache misses recorded.
func (r *Recorder) CacheMisses() int {
	return r.cacheSnapshot().misses
}

// StaleServes returns the number of stale-serve events recorded.
func (r *Recorder) StaleServes() int {
	return r.cacheSnapshot().staleServes
}

// Snapshot is a copy of the current stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return Snapshot{
			Calls:           stats.calls,
			Errors:          stats.errors,
			LastCallLatency: stats.lastCallLatency,
		}
	}
	return Snapshot{}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller sweeps and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) cacheSnapshot() cacheStats {
	if r == nil {
		return cacheStats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache
}
