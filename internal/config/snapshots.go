package config

// SnapshotsConfig selects and configures the snapshot persistence backend.
type SnapshotsConfig struct {
	Backend string
	Dir     string
	Redis   RedisConfig
}

// RedisConfig carries connection settings for the Redis snapshot backend.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	SnapshotTTL Duration
}

func loadSnapshots() SnapshotsConfig {
	return SnapshotsConfig{
		Backend: envOrDefault(envSnapshotBackend, defaultSnapshotBackend),
		Dir:     envOrDefault(envSnapshotDir, defaultSnapshotDir),
		Redis: RedisConfig{
			Addr:        envOrDefault(envRedisAddr, defaultRedisAddr),
			Password:    envOrDefault(envRedisPassword, ""),
			DB:          intEnvOrDefault(envRedisDB, 0),
			SnapshotTTL: durationEnvOrDefault(envRedisSnapshotTTL, defaultRedisSnapshotTTL),
		},
	}
}
