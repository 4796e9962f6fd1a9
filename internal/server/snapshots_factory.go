package server

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"pwhl-schedule-service/internal/config"
	"pwhl-schedule-service/internal/snapshots"
)

// buildSnapshotStore selects the snapshot backend. Returns nil when
// snapshots are disabled; the cache treats a nil store as "no persistence".
func buildSnapshotStore(cfg config.Config, logger *slog.Logger) snapshots.Store {
	switch cfg.Snapshots.Backend {
	case "off":
		return nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Snapshots.Redis.Addr,
			Password: cfg.Snapshots.Redis.Password,
			DB:       cfg.Snapshots.Redis.DB,
		})
		return snapshots.NewRedisStore(client, cfg.Snapshots.Redis.SnapshotTTL)
	case "fs":
		return snapshots.NewFSStore(cfg.Snapshots.Dir)
	default:
		if logger != nil {
			logger.Warn("unknown snapshot backend, falling back to fs", slog.String("backend", cfg.Snapshots.Backend))
		}
		return snapshots.NewFSStore(cfg.Snapshots.Dir)
	}
}
