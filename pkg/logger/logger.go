// Package logger wraps log/slog behind package-level helpers so call sites
// stay terse. Init must run once at startup before anything logs.
package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

func init() {
	// sane default so early calls before Init never panic
	log = slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// Init configures the process logger. Production gets JSON at info level,
// everything else gets human-readable text at debug level.
func Init(environment string) {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	log = slog.New(handler)
}

func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	log.Error(msg, args...)
}

// Fatal logs at error level and exits the process.
func Fatal(msg string, args ...any) {
	log.Error(msg, args...)
	os.Exit(1)
}
