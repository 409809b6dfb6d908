// Package logging builds the zerolog logger used by the game. The terminal
// belongs to the UI, so records go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Disabled reports whether path turns logging off.
func Disabled(path string) bool {
	return path == "" || path == "-"
}

// New opens path for appending and returns a logger writing to it at level.
// The returned Closer releases the file.
func New(path, level string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	if Disabled(path) {
		return zerolog.Nop(), nopCloser{}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("opening log file: %w", err)
	}
	return NewWriter(f, lvl), f, nil
}

// NewWriter returns a timestamped logger on w.
func NewWriter(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("app", "go-tetris").Logger()
}
