package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/turn-authority/pkg/world"
)

// ErrWorldNotFound is returned when no snapshot is stored under an id.
var ErrWorldNotFound = errors.New("world snapshot not found")

// RedisWorldStore persists world snapshots between turns.
type RedisWorldStore struct {
	client *Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisWorldStore(client *Client, ttl time.Duration, logger *slog.Logger) *RedisWorldStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisWorldStore{client: client, ttl: ttl, logger: logger}
}

func worldKey(id uuid.UUID) string {
	return "world:" + id.String()
}

func (s *RedisWorldStore) Save(ctx context.Context, id uuid.UUID, snap world.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("Failed to marshal world", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal world: %w", err)
	}
	if err := s.client.rdb.Set(ctx, worldKey(id), data, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to save world", "uuid", id, "error", err)
		return fmt.Errorf("failed to save world: %w", err)
	}
	return nil
}

func (s *RedisWorldStore) Load(ctx context.Context, id uuid.UUID) (world.Snapshot, error) {
	data, err := s.client.rdb.Get(ctx, worldKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return world.Snapshot{}, ErrWorldNotFound
	}
	if err != nil {
		s.logger.Error("Failed to load world", "uuid", id, "error", err)
		return world.Snapshot{}, fmt.Errorf("failed to load world: %w", err)
	}
	var snap world.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return world.Snapshot{}, fmt.Errorf("failed to unmarshal world: %w", err)
	}
	return snap, nil
}

func (s *RedisWorldStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.rdb.Del(ctx, worldKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete world: %w", err)
	}
	return nil
}
