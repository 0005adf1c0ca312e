package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a JSON slog logger on stdout. Development builds log at debug
// level.
func New(environment string) *slog.Logger {
	return NewWithWriter(os.Stdout, environment)
}

func NewWithWriter(w io.Writer, environment string) *slog.Logger {
	level := slog.LevelInfo
	if environment != "production" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).
		With("service", "partyhub")
}
