package complication

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Record is one persisted complication. Rows are append-only and carry
// enough to rebuild cooldown after a restart.
type Record struct {
	SessionID   string    `json:"session_id"`
	Turn        int       `json:"turn"`
	Kind        Kind      `json:"kind"`
	Description string    `json:"description"`
	Effects     []Effect  `json:"effects,omitempty"`
	Probability float64   `json:"probability"`
	RiskTags    []string  `json:"risk_tags,omitempty"`
	ArcKey      string    `json:"arc_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// History stores complication records per session.
type History interface {
	Append(ctx context.Context, rec Record) error
	// Latest returns the most recent record; ok is false when there is none.
	Latest(ctx context.Context, sessionID string) (rec Record, ok bool, err error)
	List(ctx context.Context, sessionID string) ([]Record, error)
}

// TurnsSince returns how many turns have passed since the last recorded
// complication, or NoHistory.
func TurnsSince(ctx context.Context, h History, sessionID string, turn int) (int, error) {
	if h == nil {
		return NoHistory, nil
	}
	rec, ok, err := h.Latest(ctx, sessionID)
	if err != nil {
		return NoHistory, err
	}
	if !ok {
		return NoHistory, nil
	}
	return max(turn-rec.Turn, 0), nil
}

// MemoryHistory keeps records in process memory.
type MemoryHistory struct {
	mu      sync.RWMutex
	records map[string][]Record
}

// NewMemoryHistory creates an empty history.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{records: make(map[string][]Record)}
}

func (m *MemoryHistory) Append(ctx context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.Effects = slices.Clone(rec.Effects)
	rec.RiskTags = slices.Clone(rec.RiskTags)
	m.records[rec.SessionID] = append(m.records[rec.SessionID], rec)
	return nil
}

func (m *MemoryHistory) Latest(ctx context.Context, sessionID string) (Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := m.records[sessionID]
	if len(recs) == 0 {
		return Record{}, false, nil
	}
	return recs[len(recs)-1], true, nil
}

func (m *MemoryHistory) List(ctx context.Context, sessionID string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.records[sessionID]), nil
}
