package duckdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrInMemoryStore is returned when snapshotting a store with no file.
var ErrInMemoryStore = errors.New("duckdb: in-memory store cannot be snapshotted")

// SnapshotTo checkpoints the database and copies its file to dstPath. The
// checkpoint holds the write lock; the copy does not.
func (s *Store) SnapshotTo(ctx context.Context, dstPath string) error {
	if s.dbPath == "" {
		return ErrInMemoryStore
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	s.mu.Lock()
	_, err := s.db.ExecContext(qctx, "CHECKPOINT")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}

	if err := copyAtomic(s.dbPath, dstPath); err != nil {
		return fmt.Errorf("copy database file: %w", err)
	}
	return nil
}

// copyAtomic writes dst via a temp file and rename so readers never see a
// partial snapshot.
func copyAtomic(srcPath, dstPath string) (err error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	tmp := dstPath + ".tmp"
	dst, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			dst.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = io.Copy(dst, src); err != nil {
		return err
	}
	if err = dst.Sync(); err != nil {
		return err
	}
	if err = dst.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, dstPath)
}
