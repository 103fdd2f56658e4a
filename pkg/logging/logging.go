package logging

import (
	"log/slog"
	"os"
	"strings"
)

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug

	case "warn":
		return slog.LevelWarn

	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

/*
Setup installs a JSON logger as the default slog logger. Every record
carries the app name and version.
*/
func Setup(appName, version, level string) *slog.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})

	logger := slog.New(h).With(
		slog.String("app", appName),
		slog.String("version", version),
	)

	slog.SetDefault(logger)
	return logger
}
