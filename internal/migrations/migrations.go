// Package migrations embeds the gazetteer schema for sqlite and postgres.
package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/alexivanou/skycast/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// New builds a migrate instance on an open connection. Closing the returned
// instance closes db as well.
func New(db *sqlx.DB, dbType config.DBType) (*migrate.Migrate, error) {
	dir := "sqlite"
	var (
		driver database.Driver
		err    error
	)

	if dbType == config.DBTypePostgreSQL {
		dir = "postgres"
		driver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	} else {
		// Use driver instance directly to avoid DSN parsing issues with in-memory SQLite
		driver, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("could not create %s driver: %w", dir, err)
	}
	return withDriver(dir, driver)
}

func withDriver(dir string, driver database.Driver) (*migrate.Migrate, error) {
	source, err := iofs.New(files, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dir, driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// Up applies all pending migrations. An up-to-date schema is not an error.
// db stays open afterwards.
func Up(ctx context.Context, db *sqlx.DB, dbType config.DBType) error {
	if dbType != config.DBTypePostgreSQL {
		// the sqlite driver holds no connection of its own
		m, err := New(db, dbType)
		if err != nil {
			return err
		}
		return apply(m)
	}

	// postgres.WithInstance keeps a pooled connection until Close, and its
	// Close shuts db. A pinned connection is released on its own.
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("could not acquire migration connection: %w", err)
	}
	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		conn.Close()
		return fmt.Errorf("could not create postgres driver: %w", err)
	}
	m, err := withDriver("postgres", driver)
	if err != nil {
		driver.Close()
		return err
	}
	defer m.Close()

	return apply(m)
}

func apply(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
