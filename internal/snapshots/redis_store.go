package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 5 * time.Second

// RedisStore persists season snapshots as JSON values in Redis. Entries
// expire after the configured TTL so an abandoned deployment does not leave
// stale schedules behind forever.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore constructs a Redis-backed snapshot store. A non-positive
// ttl stores entries without expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisSnapshotKey(seasonID int) string {
	return fmt.Sprintf("schedule:snapshot:season:%d", seasonID)
}

// Load reads a season's snapshot from Redis.
func (s *RedisStore) Load(seasonID int) (Snapshot, error) {
	if s == nil || s.client == nil {
		return Snapshot{}, errors.New("snapshot store not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, redisSnapshotKey(seasonID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Save writes a season's snapshot to Redis with the configured TTL.
func (s *RedisStore) Save(snapshot Snapshot) error {
	if s == nil || s.client == nil {
		return errors.New("snapshot store not configured")
	}
	if snapshot.SeasonID == 0 {
		return fmt.Errorf("snapshot season id required")
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	return s.client.Set(ctx, redisSnapshotKey(snapshot.SeasonID), data, s.ttl).Err()
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
