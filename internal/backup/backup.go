// Package backup keeps rolling local snapshots of the testimonial store.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultInterval = 6 * time.Hour
	defaultKeep     = 24

	filePrefix = "testimonials-"
	fileSuffix = ".duckdb"
	stampFmt   = "20060102-150405"
)

// ErrDisabled is returned by New when snapshots are turned off.
var ErrDisabled = errors.New("backup: disabled")

// Config controls snapshot cadence and retention.
type Config struct {
	Enabled  bool          `mapstructure:"backup-enabled"`
	Interval time.Duration `mapstructure:"backup-interval"`
	Dir      string        `mapstructure:"backup-dir"`
	Keep     int           `mapstructure:"backup-keep"`
}

// Snapshotter copies a consistent view of the store to a file.
type Snapshotter interface {
	DBPath() string
	SnapshotTo(ctx context.Context, dstPath string) error
}

// Manager takes a snapshot at startup and then every Interval.
type Manager struct {
	store Snapshotter
	cfg   Config
	log   zerolog.Logger
	now   func() time.Time
}

// New validates cfg and prepares the backup directory.
func New(store Snapshotter, cfg Config, log zerolog.Logger) (*Manager, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if store == nil || strings.TrimSpace(store.DBPath()) == "" {
		return nil, errors.New("backup: store has no database file")
	}
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, errors.New("backup: backup-dir is required when backups are enabled")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.Keep <= 0 {
		cfg.Keep = defaultKeep
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("backup: create backup-dir: %w", err)
	}
	return &Manager{store: store, cfg: cfg, log: log, now: time.Now}, nil
}

// Run snapshots until ctx is done. Failures are logged, not returned.
func (m *Manager) Run(ctx context.Context) error {
	m.snapshot(ctx)

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.snapshot(ctx)
		}
	}
}

func (m *Manager) snapshot(ctx context.Context) {
	path, err := m.RunOnce(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("backup: snapshot failed")
		return
	}
	m.log.Info().Str("path", path).Msg("backup: snapshot written")
}

// RunOnce writes one snapshot and prunes old ones. It returns the new path.
func (m *Manager) RunOnce(ctx context.Context) (string, error) {
	name := filePrefix + m.now().UTC().Format(stampFmt) + fileSuffix
	path := filepath.Join(m.cfg.Dir, name)
	if err := m.store.SnapshotTo(ctx, path); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	if err := prune(m.cfg.Dir, m.cfg.Keep); err != nil {
		return path, fmt.Errorf("prune: %w", err)
	}
	return path, nil
}

// List returns snapshot paths, newest first.
func List(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return nil, err
	}
	// The embedded timestamp sorts lexically.
	slices.Sort(matches)
	slices.Reverse(matches)
	return matches, nil
}

func prune(dir string, keep int) error {
	matches, err := List(dir)
	if err != nil || len(matches) <= keep {
		return err
	}
	for _, old := range matches[keep:] {
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
