package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/querycloud/internal/config"
)

// NewLogger logs to stderr and installs the logger as the slog default.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	return NewLoggerTo(os.Stderr, cfg)
}

// NewLoggerTo is NewLogger with an explicit destination; the terminal client
// cannot log to stderr while the UI owns the screen.
func NewLoggerTo(w io.Writer, cfg config.LogConfig) *slog.Logger {
	logger := slog.New(newHandler(w, cfg))
	slog.SetDefault(logger)
	return logger
}

// newHandler picks JSON for "json" and text with source locations otherwise.
func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	text := !strings.EqualFold(cfg.Format, "json")
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level), AddSource: text}
	if text {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// parseLevel accepts slog level names in any case; anything else is info.
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
