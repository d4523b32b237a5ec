package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"userhub/internal/config"
	"userhub/internal/logging"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Client owns the connection pool. It is opened once on startup, injected into
// the repositories that need it and closed on shutdown.
type Client struct {
	driver *entsql.Driver
	db     *sql.DB
	logger logging.Logger
}

// NewClient opens a database/sql pool using the pgx driver and wraps it with
// an ent dialect driver used to run the repository statements.
func NewClient(ctx context.Context, cfg config.PostgresConfig, logger logging.Logger) (*Client, error) {
	dsn := cfg.EffectiveDSN()

	dbStd, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		dbStd.SetMaxOpenConns(cfg.MaxOpenConns)
		dbStd.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	dbStd.SetConnMaxLifetime(30 * time.Minute)

	// Verify connectivity
	if err := dbStd.PingContext(ctx); err != nil {
		_ = dbStd.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	logger.Info("database connected",
		"host", cfg.Host,
		"database", cfg.DBName,
		"max_open_conns", cfg.MaxOpenConns,
	)

	return NewFromDB(dbStd, logger), nil
}

// NewFromDB wraps an already opened pool. Tests use it with sqlmock.
func NewFromDB(dbStd *sql.DB, logger logging.Logger) *Client {
	return &Client{
		driver: entsql.OpenDB(dialect.Postgres, dbStd),
		db:     dbStd,
		logger: logger.With("component", "db_client"),
	}
}

// Driver returns the ent dialect driver bound to the pool.
func (c *Client) Driver() *entsql.Driver {
	return c.driver
}

// Close closes the underlying DB pool.
func (c *Client) Close() error {
	c.logger.Info("closing database pool")
	return c.db.Close()
}

// Ping is used by health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
