package server

import (
	"log/slog"
	"net/http"

	"pwhl-schedule-service/internal/config"
	"pwhl-schedule-service/internal/metrics"
	"pwhl-schedule-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers
// (instrumentation + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.ScheduleProvider {
	base := selectProvider(cfg, f.logger)
	name := normalizeProviderName(cfg.Provider)
	instrumented := providers.NewInstrumentedProvider(base, f.logger, f.metrics, name)
	return providers.NewRetryingProvider(instrumented, f.logger, name, 0)
}

func leaguestatHTTPClient(cfg config.Config) *http.Client {
	timeout := cfg.Leaguestat.Timeout
	if timeout <= 0 {
		return nil
	}
	return &http.Client{Timeout: timeout}
}
