package server

import (
	"log/slog"

	"pwhl-schedule-service/internal/config"
	"pwhl-schedule-service/internal/providers"
	"pwhl-schedule-service/internal/providers/fixture"
	"pwhl-schedule-service/internal/providers/leaguestat"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.ScheduleProvider {
	switch normalizeProviderName(cfg.Provider) {
	case "fixture":
		return fixture.New()
	case "leaguestat":
		return leaguestat.NewProvider(leaguestat.Config{
			BaseURL:    cfg.Leaguestat.BaseURL,
			Key:        cfg.Leaguestat.Key,
			ClientCode: cfg.Leaguestat.ClientCode,
			HTTPClient: leaguestatHTTPClient(cfg),
		}, logger)
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
