package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a JSON logger when format is "json" and a text logger otherwise.
func New(format string) *slog.Logger {
	return NewWithWriter(os.Stdout, format, slog.LevelInfo)
}

func NewWithWriter(w io.Writer, format string, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true, Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
