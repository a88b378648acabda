package app

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/floorsheet/config"
	"github.com/guttosm/floorsheet/internal/storage"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// migrator applies the schema; overridden in tests that use sqlmock.
var migrator = storage.Migrate

// InitPostgres opens a connection pool from cfg.Postgres and pings it.
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("failed to connect: %v", err)
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	db, err := sqlOpener("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

// OpenStore connects to Postgres and brings the report schema up to date.
func OpenStore(cfg config.Config) (*sql.DB, error) {
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, err
	}
	if err := migrator(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}

// postgresOpener is an indirection used by OpenStore; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres
