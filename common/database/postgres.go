package database

import (
	"context"
	"database/sql"
	"fmt"

	"clinic-etl/common/config"

	_ "github.com/lib/pq"
)

// NewPostgresDB opens a connection pool and checks it is reachable. A batch
// writes from a single goroutine, so the pool holds one connection.
func NewPostgresDB(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Database, err)
	}
	return db, nil
}
