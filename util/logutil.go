package util

import (
	"log/slog"
	"os"
	"strings"
)

// InitSlog configures slog based on the LOG_LEVEL environment variable.
// Supported levels: debug, info, warn, error. When LOG_LEVEL is unset the
// default logger is left alone; debug traces from the translator then stay
// silent. slog output goes to stderr so it never mixes with the dump.
func InitSlog() {
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		return
	}

	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
