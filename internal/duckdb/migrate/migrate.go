// Package migrate applies the embedded, versioned schema migrations of the
// testimonial store.
package migrate

import (
	"cmp"
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migration files are named <version>_<name>.sql.
const migrationGlob = "migrations/*.sql"

// Runner applies versioned SQL migrations to a DuckDB database.
type Runner struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRunner creates a migration runner for db.
func NewRunner(db *sql.DB, log zerolog.Logger) *Runner {
	return &Runner{db: db, log: log}
}

type migration struct {
	version int
	name    string
	sql     string
}

func loadMigrations() ([]migration, error) {
	files, err := fs.Glob(migrations, migrationGlob)
	if err != nil {
		return nil, fmt.Errorf("listing embedded migrations: %w", err)
	}

	migs := make([]migration, 0, len(files))
	for _, file := range files {
		name := path.Base(file)
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		ver, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("parsing version from %s: %w", name, err)
		}
		data, err := migrations.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		migs = append(migs, migration{version: ver, name: name, sql: string(data)})
	}

	slices.SortFunc(migs, func(a, b migration) int { return cmp.Compare(a.version, b.version) })
	return migs, nil
}

func (r *Runner) bootstrap(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       VARCHAR NOT NULL,
		applied_at TIMESTAMP DEFAULT current_timestamp
	)`)
	if err != nil {
		return fmt.Errorf("bootstrap schema_migrations: %w", err)
	}
	return nil
}

func (r *Runner) appliedVersion(ctx context.Context) (int, error) {
	var v sql.NullInt64
	if err := r.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading applied version: %w", err)
	}
	return int(v.Int64), nil
}

// pending returns the applied version and the migrations above it.
func (r *Runner) pending(ctx context.Context) (int, []migration, error) {
	if err := r.bootstrap(ctx); err != nil {
		return 0, nil, err
	}
	current, err := r.appliedVersion(ctx)
	if err != nil {
		return 0, nil, err
	}
	migs, err := loadMigrations()
	if err != nil {
		return 0, nil, err
	}
	i, _ := slices.BinarySearchFunc(migs, current+1, func(m migration, v int) int { return cmp.Compare(m.version, v) })
	return current, migs[i:], nil
}

// Run applies all pending migrations in order, each in its own transaction.
func (r *Runner) Run(ctx context.Context) error {
	current, todo, err := r.pending(ctx)
	if err != nil {
		return err
	}
	if len(todo) == 0 {
		r.log.Debug().Int("version", current).Msg("migrate: schema up to date")
		return nil
	}
	for _, m := range todo {
		if err := r.apply(ctx, m); err != nil {
			return err
		}
		r.log.Info().Int("version", m.version).Str("name", m.name).Msg("migrate: applied")
	}
	return nil
}

func (r *Runner) apply(ctx context.Context, m migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for %s: %w", m.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		return fmt.Errorf("executing %s: %w", m.name, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.version, m.name); err != nil {
		return fmt.Errorf("recording %s: %w", m.name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", m.name, err)
	}
	return nil
}

// Status returns the applied version and the number of pending migrations.
func (r *Runner) Status(ctx context.Context) (int, int, error) {
	current, todo, err := r.pending(ctx)
	if err != nil {
		return 0, 0, err
	}
	return current, len(todo), nil
}
