package app

import (
	"database/sql"
	"fmt"

	goose "github.com/pressly/goose/v3"

	"github.com/guttosm/spimexpulse/config"
	"github.com/guttosm/spimexpulse/db/migrations"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitPostgres opens a PostgreSQL pool from cfg.Postgres and pings it.
//
// Returns:
//   - *sql.DB: an open database connection pool (safe for concurrent use).
//   - error: if opening or pinging the database fails.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	db, err := sqlOpener("postgres", config.DSN(cfg.Postgres))
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// postgresOpener is an indirection used by InitializeApp; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres

// Migrate applies the embedded goose migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// migrator is swapped in tests; sqlmock cannot follow goose's queries.
var migrator = Migrate

// openDatabase connects and, when enabled, migrates.
func openDatabase(cfg config.Config) (*sql.DB, error) {
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	if cfg.Postgres.AutoMigrate {
		if err := migrator(db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}
