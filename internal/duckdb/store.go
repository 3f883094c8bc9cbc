package duckdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/marquee/internal/duckdb/migrate"
	"github.com/tinytelemetry/marquee/internal/model"
)

// Store manages the DuckDB database connection and provides testimonial
// queries.
type Store struct {
	db           *sql.DB
	mu           sync.RWMutex
	dbPath       string
	QueryTimeout time.Duration
}

var _ model.TestimonialStore = (*Store)(nil)

// NewStore opens or creates a DuckDB database and migrates it.
// If dbPath is empty, an in-memory database is used.
// An optional queryTimeout can be passed; it defaults to 30s and also bounds
// the migrations.
func NewStore(ctx context.Context, dbPath string, log zerolog.Logger, queryTimeout ...time.Duration) (*Store, error) {
	dsn := ""
	if dbPath != "" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		dsn = dbPath
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, err
	}

	qt := 30 * time.Second
	if len(queryTimeout) > 0 && queryTimeout[0] > 0 {
		qt = queryTimeout[0]
	}

	mctx, cancel := context.WithTimeout(ctx, qt)
	defer cancel()
	if err := migrate.NewRunner(db, log).Run(mctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:           db,
		dbPath:       dbPath,
		QueryTimeout: qt,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DBPath returns the configured path. Empty means in-memory.
func (s *Store) DBPath() string {
	return s.dbPath
}

// queryCtx bounds ctx by the store's query timeout.
func (s *Store) queryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.QueryTimeout)
}
