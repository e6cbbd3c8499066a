package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup initializes the global slog logger with JSON output to stdout and
// returns the stdout handler so it can be combined with other sinks later.
func Setup(level string) slog.Handler {
	handler := NewJSONHandler(os.Stdout, level)
	slog.SetDefault(slog.New(handler))
	return handler
}

func NewJSONHandler(w io.Writer, level string) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(s string) slog.Level {
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
