package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asaidimu/go-dml/core/persistence"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Options configures a PostgreSQL connection.
type Options struct {
	// MaxOpenConns bounds the pool; zero leaves it unlimited.
	MaxOpenConns int
}

// DefaultOptions returns a set of sensible default options for a PostgreSQL connection.
func DefaultOptions() *Options {
	return &Options{MaxOpenConns: 10}
}

// Open opens and pings the server dsn points at. Both URL and key=value DSNs
// are accepted.
func Open(ctx context.Context, dsn string, opts *Options, logger *zap.Logger) (*persistence.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}

	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	logger.Debug("Opened postgres connection")
	return OpenDB(db, opts, logger), nil
}

// OpenDB wraps an existing *sql.DB speaking PostgreSQL.
func OpenDB(db *sql.DB, opts *Options, logger *zap.Logger) *persistence.DB {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.MaxOpenConns > 0 && db != nil {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	return persistence.NewDB(db, Dialect{}, Escape, logger)
}
