package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/appraisal-annotator/internal/config"
)

// NewLogger builds the process logger from cfg, writes to os.Stderr and
// installs it as the slog default.
//
// Format "json" is meant for production, "text" adds source locations for
// local runs. Level is debug, info, warn or error (case-insensitive) and
// falls back to info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := slog.New(newLogHandler(os.Stderr, cfg))
	slog.SetDefault(logger)
	return logger
}

func newLogHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
