package database

import (
	"context"
	"fmt"

	"github.com/alexivanou/skycast/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver for database/sql
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// DriverName picks the database/sql driver for the gazetteer backend
func DriverName(cfg config.DBConfig) string {
	if cfg.IsMemory() {
		return "sqlite3"
	}
	return "pgx"
}

// Connect opens and pings the gazetteer database
func Connect(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, DriverName(cfg), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.IsMemory() {
		// A shared-cache memory database lives only while a connection is
		// open, so keep idle connections around.
		db.SetMaxIdleConns(4)
		db.SetConnMaxIdleTime(0)

		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return db, nil
}
