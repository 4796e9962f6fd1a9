package config

import "time"

const (
	envPort            = "PORT"
	envProvider        = "PROVIDER"
	envPollInterval    = "POLL_INTERVAL"
	envPollSeasonDelay = "POLL_SEASON_DELAY"
	envCacheTTL        = "CACHE_TTL"
	envAdminToken      = "ADMIN_TOKEN"
	envCORSOrigins     = "CORS_ALLOWED_ORIGINS"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	envLeaguestatBaseURL    = "LEAGUESTAT_BASE_URL"
	envLeaguestatKey        = "LEAGUESTAT_KEY"
	envLeaguestatClientCode = "LEAGUESTAT_CLIENT_CODE"
	envLeaguestatTimeout    = "LEAGUESTAT_TIMEOUT"

	envSnapshotBackend  = "SNAPSHOT_BACKEND"
	envSnapshotDir      = "SNAPSHOT_DIR"
	envRedisAddr        = "REDIS_ADDR"
	envRedisPassword    = "REDIS_PASSWORD"
	envRedisDB          = "REDIS_DB"
	envRedisSnapshotTTL = "REDIS_SNAPSHOT_TTL"

	defaultPort     = "4000"
	defaultProvider = "leaguestat"
	// The schedule only moves when games finish or get rescheduled; a 15 minute
	// sweep stays polite to the feed while keeping game nights current.
	defaultPollInterval = 15 * Duration(time.Minute)
	// Delay between per-season fetches inside one sweep.
	defaultPollSeasonDelay = 2 * Duration(time.Second)
	defaultCacheTTL        = 30 * Duration(time.Minute)
	defaultMetricsPort     = "9090"
	defaultCORSOrigins     = "*"
	defaultServiceName     = "pwhl-schedule-service"

	defaultLeaguestatBaseURL    = "https://lscluster.hockeytech.com/feed/index.php"
	defaultLeaguestatKey        = "446521baf8c38984"
	defaultLeaguestatClientCode = "pwhl"
	defaultLeaguestatTimeout    = 10 * Duration(time.Second)

	defaultSnapshotBackend  = "fs"
	defaultSnapshotDir      = "data/snapshots"
	defaultRedisAddr        = "localhost:6379"
	defaultRedisSnapshotTTL = 7 * 24 * Duration(time.Hour)
)
