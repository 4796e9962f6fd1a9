package config

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	Provider        string
	PollInterval    Duration
	PollSeasonDelay Duration
	CacheTTL        Duration
	AdminToken      string
	CORSOrigins     []string
	Leaguestat      LeaguestatConfig
	Snapshots       SnapshotsConfig
	Metrics         MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		Provider:        envOrDefault(envProvider, defaultProvider),
		PollInterval:    durationEnvOrDefault(envPollInterval, defaultPollInterval),
		PollSeasonDelay: durationEnvOrDefault(envPollSeasonDelay, defaultPollSeasonDelay),
		CacheTTL:        durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
		AdminToken:      envOrDefault(envAdminToken, ""),
		CORSOrigins:     stringSliceEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		Leaguestat:      loadLeaguestat(),
		Snapshots:       loadSnapshots(),
		Metrics:         loadMetrics(),
	}
}
