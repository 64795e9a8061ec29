package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/turn-authority/pkg/complication"
)

const historyKeyPrefix = "complications:"

// RedisHistory keeps complication records in one Redis list per session.
type RedisHistory struct {
	client *Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ complication.History = (*RedisHistory)(nil)

// NewRedisHistory stores records with the given TTL, refreshed on every
// append. A zero ttl keeps them forever.
func NewRedisHistory(client *Client, ttl time.Duration, logger *slog.Logger) *RedisHistory {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisHistory{client: client, ttl: ttl, logger: logger}
}

func historyKey(sessionID string) string {
	return historyKeyPrefix + sessionID
}

func (h *RedisHistory) Append(ctx context.Context, rec complication.Record) error {
	if rec.SessionID == "" {
		return errors.New("record has no session id")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal complication record: %w", err)
	}

	key := historyKey(rec.SessionID)
	pipe := h.client.rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	if h.ttl > 0 {
		pipe.Expire(ctx, key, h.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		h.logger.Error("Failed to append complication", "session_id", rec.SessionID, "error", err)
		return fmt.Errorf("failed to append complication: %w", err)
	}
	return nil
}

func (h *RedisHistory) Latest(ctx context.Context, sessionID string) (complication.Record, bool, error) {
	data, err := h.client.rdb.LIndex(ctx, historyKey(sessionID), -1).Result()
	if errors.Is(err, redis.Nil) {
		return complication.Record{}, false, nil
	}
	if err != nil {
		return complication.Record{}, false, fmt.Errorf("failed to read latest complication: %w", err)
	}
	var rec complication.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return complication.Record{}, false, fmt.Errorf("failed to unmarshal complication record: %w", err)
	}
	return rec, true, nil
}

func (h *RedisHistory) List(ctx context.Context, sessionID string) ([]complication.Record, error) {
	rows, err := h.client.rdb.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list complications: %w", err)
	}
	out := make([]complication.Record, 0, len(rows))
	for _, row := range rows {
		var rec complication.Record
		if err := json.Unmarshal([]byte(row), &rec); err != nil {
			h.logger.Warn("Skipping corrupt complication record", "session_id", sessionID, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
