package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asaidimu/go-dml/core/persistence"
	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// Options configures a MySQL connection.
type Options struct {
	// NoBackslashEscapes must match the server's NO_BACKSLASH_ESCAPES SQL mode.
	NoBackslashEscapes bool
	// MaxOpenConns bounds the pool; zero leaves it unlimited.
	MaxOpenConns int
}

// DefaultOptions returns the options for a server in the default SQL mode.
func DefaultOptions() *Options {
	return &Options{
		NoBackslashEscapes: false,
		MaxOpenConns:       10,
	}
}

func (o *Options) escapeFunc() persistence.EscapeFunc {
	if o.NoBackslashEscapes {
		return EscapeNoBackslash
	}
	return Escape
}

// ParseDSN validates dsn and returns the driver configuration for it.
func ParseDSN(dsn string) (*mysqldriver.Config, error) {
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	return cfg, nil
}

// Open opens and pings the MySQL server dsn points at. A nil opts selects
// DefaultOptions.
func Open(ctx context.Context, dsn string, opts *Options, logger *zap.Logger) (*persistence.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	connector, err := mysqldriver.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create mysql connector: %w", err)
	}

	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	logger.Debug("Opened mysql connection", zap.String("addr", cfg.Addr), zap.String("database", cfg.DBName))
	return OpenDB(db, opts, logger), nil
}

// OpenDB wraps an existing *sql.DB speaking MySQL.
func OpenDB(db *sql.DB, opts *Options, logger *zap.Logger) *persistence.DB {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.MaxOpenConns > 0 && db != nil {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	return persistence.NewDB(db, Dialect{}, opts.escapeFunc(), logger)
}
