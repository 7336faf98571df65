package cli

import (
	"io"
	"log/slog"
)

// newLogger returns a text logger on w. Verbose mode logs every step at
// debug level; otherwise only warnings and errors are shown, since the
// command output already reports each step.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
