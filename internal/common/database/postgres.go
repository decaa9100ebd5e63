package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pfhr-workers/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresClient owns the assessment store connection pool.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a lib/pq pool. It does not dial; call Ping to verify connectivity.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// EnsureSchema creates the PFHR tables on this connection.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	return EnsureSchema(ctx, c.DB)
}

// GetDB returns the pool for handlers that take *sql.DB.
func (c *PostgresClient) GetDB() *sql.DB {
	return c.DB
}
