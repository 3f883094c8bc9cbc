// Package logging configures the runtime logger shared by the binaries.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// StateDir returns ~/.local/state/marquee, or "" when the home directory is
// unknown.
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "marquee")
}

// Open returns a logger appending to <StateDir>/<name>.log. When the file
// cannot be opened the logger falls back to stderr. The returned func closes
// the file.
func Open(name string, debug bool) (zerolog.Logger, func()) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	w, cleanup := openFile(name)
	log := New(w, level).With().Str("bin", name).Logger()
	return log, cleanup
}

// New builds a timestamped logger on w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func openFile(name string) (io.Writer, func()) {
	dir := StateDir()
	if dir == "" {
		return os.Stderr, func() {}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return os.Stderr, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, name+".log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return os.Stderr, func() {}
	}
	return f, func() { _ = f.Close() }
}
