// Package logging configures structured logging with tint.
//
// Usage:
//
//	slog.SetDefault(logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")))
//
// Levels: debug, info, warn, error (default: info).
// Formats: text (colored, default) or json.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// New builds a logger writing to stderr. Format "json" emits one JSON object
// per line; anything else uses the colored tint handler.
func New(level, format string) *slog.Logger {
	return slog.New(newHandler(os.Stderr, ParseLevel(level), format))
}

func newHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
