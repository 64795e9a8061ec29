package storage

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/turn-authority/internal/config"
	"github.com/jwebster45206/turn-authority/pkg/complication"
)

// HistoryTTL bounds how long Redis keeps a session's complications.
const HistoryTTL = 7 * 24 * time.Hour

// NewHistory opens the backend selected by cfg. The returned close func
// releases it.
func NewHistory(cfg *config.Config, logger *slog.Logger) (complication.History, func() error, error) {
	switch cfg.HistoryBackend {
	case config.HistoryRedis:
		client, err := NewClient(cfg.RedisURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisHistory(client, HistoryTTL, logger), client.Close, nil
	case config.HistorySQLite:
		h, err := OpenSQLiteHistory(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return h, h.Close, nil
	case config.HistoryMemory, "":
		return complication.NewMemoryHistory(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
	}
}
