package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"pr-toolkit/internal/config"
)

// Setup initializes the default logger for an action run and returns it.
// Logs go to stderr; stdout carries dry-run output.
func Setup(cfg *config.Common) *slog.Logger {
	return setup(os.Stderr, cfg)
}

func setup(w io.Writer, cfg *config.Common) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	default: // "text" or empty (already validated in config.go)
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	logger := slog.New(handler).With("repository", cfg.Repository)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level
// Note: Input is validated in config.go, so only valid values reach this function
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default: // "info" or empty
		return slog.LevelInfo
	}
}
