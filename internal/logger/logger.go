package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/jwebster45206/turn-authority/internal/config"
)

// Setup configures the global slog logger based on environment. Output goes
// to stderr so that command output on stdout stays clean.
func Setup(cfg *config.Config) *slog.Logger {
	return New(cfg, os.Stderr)
}

// New builds a logger writing to w and installs it as the default.
func New(cfg *config.Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	if cfg.Environment == "production" {
		// JSON format for production
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithSession scopes a logger to one play session.
func WithSession(logger *slog.Logger, sessionID string, turn int) *slog.Logger {
	return logger.With("session_id", sessionID, "turn", turn)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
