package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jwebster45206/turn-authority/pkg/complication"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS complication_history (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT    NOT NULL,
	turn        INTEGER NOT NULL,
	kind        TEXT    NOT NULL,
	description TEXT    NOT NULL,
	effects     TEXT    NOT NULL,
	probability REAL    NOT NULL,
	risk_tags   TEXT    NOT NULL,
	arc_key     TEXT    NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_complication_history_session ON complication_history (session_id, id);
`

// SQLiteHistory keeps complication records in an append-only table.
type SQLiteHistory struct {
	db *sql.DB
}

var _ complication.History = (*SQLiteHistory)(nil)

// OpenSQLiteHistory opens the database at path and creates the table.
func OpenSQLiteHistory(path string) (*SQLiteHistory, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}
	return &SQLiteHistory{db: db}, nil
}

func (s *SQLiteHistory) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteHistory) Append(ctx context.Context, rec complication.Record) error {
	if rec.SessionID == "" {
		return errors.New("record has no session id")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	effects, err := json.Marshal(rec.Effects)
	if err != nil {
		return fmt.Errorf("failed to marshal effects: %w", err)
	}
	tags, err := json.Marshal(rec.RiskTags)
	if err != nil {
		return fmt.Errorf("failed to marshal risk tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO complication_history (
		   session_id, turn, kind, description, effects, probability, risk_tags, arc_key, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.Turn,
		string(rec.Kind),
		rec.Description,
		string(effects),
		rec.Probability,
		string(tags),
		rec.ArcKey,
		rec.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert complication: %w", err)
	}
	return nil
}

const historyColumns = `session_id, turn, kind, description, effects, probability, risk_tags, arc_key, created_at`

func (s *SQLiteHistory) Latest(ctx context.Context, sessionID string) (complication.Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+historyColumns+` FROM complication_history WHERE session_id = ? ORDER BY id DESC LIMIT 1`,
		sessionID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return complication.Record{}, false, nil
	}
	if err != nil {
		return complication.Record{}, false, fmt.Errorf("failed to read latest complication: %w", err)
	}
	return rec, true, nil
}

func (s *SQLiteHistory) List(ctx context.Context, sessionID string) ([]complication.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+historyColumns+` FROM complication_history WHERE session_id = ? ORDER BY id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list complications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []complication.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan complication: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list complications: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (complication.Record, error) {
	var (
		rec       complication.Record
		kind      string
		effects   string
		tags      string
		createdAt int64
	)
	if err := row.Scan(&rec.SessionID, &rec.Turn, &kind, &rec.Description, &effects, &rec.Probability, &tags, &rec.ArcKey, &createdAt); err != nil {
		return complication.Record{}, err
	}
	rec.Kind = complication.Kind(kind)
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	if err := json.Unmarshal([]byte(effects), &rec.Effects); err != nil {
		return complication.Record{}, fmt.Errorf("failed to unmarshal effects: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &rec.RiskTags); err != nil {
		return complication.Record{}, fmt.Errorf("failed to unmarshal risk tags: %w", err)
	}
	return rec, nil
}
