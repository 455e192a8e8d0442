package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/asaidimu/go-dml/core/persistence"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"
)

// DriverName is the database/sql driver name registered by go-sqlite3.
const DriverName = "sqlite3"

// Options configures an SQLite connection.
type Options struct {
	// MaxOpenConns bounds the pool. Every connection to ":memory:" is a separate
	// database, so in-memory databases need exactly one.
	MaxOpenConns int
	// BusyTimeout is how long a statement waits on a locked database. Zero keeps
	// the driver default.
	BusyTimeout time.Duration
	// ForeignKeys enables foreign key enforcement on every connection.
	ForeignKeys bool
}

// DefaultOptions returns a set of sensible default options for an SQLite connection.
func DefaultOptions() *Options {
	return &Options{
		MaxOpenConns: 1,
		BusyTimeout:  5 * time.Second,
		ForeignKeys:  true,
	}
}

// dsn appends the driver parameters opts asks for to path.
func (o *Options) dsn(path string) string {
	var params []string
	if o.BusyTimeout > 0 {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", o.BusyTimeout.Milliseconds()))
	}
	if o.ForeignKeys {
		params = append(params, "_foreign_keys=1")
	}
	if len(params) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

// Open opens and pings the SQLite database at path. A nil opts selects
// DefaultOptions.
func Open(ctx context.Context, path string, opts *Options, logger *zap.Logger) (*persistence.DB, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open(DriverName, opts.dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	logger.Debug("Opened sqlite database", zap.String("path", path))
	return OpenDB(db, opts, logger), nil
}

// OpenDB wraps an existing *sql.DB speaking SQLite.
func OpenDB(db *sql.DB, opts *Options, logger *zap.Logger) *persistence.DB {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.MaxOpenConns > 0 && db != nil {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	return persistence.NewDB(db, Dialect{}, Escape, logger)
}
