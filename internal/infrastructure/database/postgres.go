package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Config carries the connection options for the shared pool
type Config struct {
	// ConnString is a postgres URL or key/value DSN. Required.
	ConnString string
	// MaxConns bounds the pool. Zero selects DefaultMaxConns.
	MaxConns int
	// SSLMode overrides sslmode when the DSN does not set one
	// ("disable", "require", "verify-full", ...).
	SSLMode string
}

// DefaultMaxConns is the pool bound used when none is configured
const DefaultMaxConns = 10

// Connection wraps the shared *sql.DB pool.
// Note: sql.DB is already thread-safe and manages its own bounded
// connection pool; no additional locking is layered on top.
type Connection struct {
	db *sql.DB
}

// Open dials the database and verifies the connection with a ping
func Open(cfg Config) (*Connection, error) {
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}

	db, err := sql.Open("postgres", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// MaxIdleConns matches MaxOpenConns so connections stay alive
	// instead of being churned under load
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Connection{db: db}, nil
}

// buildDSN applies the configured sslmode unless the connection string
// already carries one. SSL is off unless asked for; the driver's own
// default is require.
func buildDSN(cfg Config) string {
	dsn := cfg.ConnString
	if strings.Contains(dsn, "sslmode=") {
		return dsn
	}

	mode := cfg.SSLMode
	if mode == "" {
		mode = "disable"
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "sslmode=" + mode
	}

	return dsn + " sslmode=" + mode
}

// DB returns the underlying *sql.DB pool
func (c *Connection) DB() *sql.DB {
	return c.db
}

// Conn borrows one dedicated connection from the pool. The caller must
// release it with Close exactly once.
func (c *Connection) Conn(ctx context.Context) (*sql.Conn, error) {
	return c.db.Conn(ctx)
}

// QueryContext executes a SELECT through the pool
func (c *Connection) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement through the pool
func (c *Connection) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.db.ExecContext(ctx, query, args...)
}

// Close closes the pool
func (c *Connection) Close() error {
	return c.db.Close()
}
