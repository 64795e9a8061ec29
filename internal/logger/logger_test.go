package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/turn-authority/internal/config"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)

	WithSession(l, "s1", 4).Info("Processed chain", "steps", 2)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Processed chain", line["msg"])
	assert.Equal(t, "s1", line["session_id"])
	assert.EqualValues(t, 4, line["turn"])
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&config.Config{Environment: "development", LogLevel: slog.LevelWarn}, &buf)

	l.Info("quiet")
	assert.Empty(t, buf.String())

	WithError(l, errors.New("boom")).Warn("loud")
	assert.Contains(t, buf.String(), "error=boom")
}
