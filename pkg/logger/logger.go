// Package logger owns the process-wide slog configuration for the
// newsinsight commands and carries request-scoped loggers through context.
package logger

import (
	"log/slog"
	"os"
)

var root *slog.Logger

// handlerFor picks the output format for an environment: JSON at info level
// for production, human-readable text at debug level everywhere else.
func handlerFor(env string) slog.Handler {
	if env == "production" {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// Init configures the root logger for the given environment and installs it
// as the slog default so library code logs through the same handler.
func Init(env string) {
	root = slog.New(handlerFor(env))
	slog.SetDefault(root)
}

// LoggerWrapper returns the root logger, initializing a development one on
// first use so callers never see a nil logger.
func LoggerWrapper() *slog.Logger {
	if root == nil {
		Init("development")
	}
	return root
}
