// Package db persists user settings, per-product field overrides, and
// loaded schedule versions in a local SQLite database. The engine never
// touches this package; the api layer calls it after a calculation returns.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"resale-radar/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

func dbPath() string {
	// Prefer working directory so the DB is stable across go run / go build.
	// Fall back to executable directory for deployed builds.
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "radar.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "radar.db")
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open() (*DB, error) {
	path := dbPath()
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS config (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS field_overrides (
				product_id TEXT NOT NULL,
				field      TEXT NOT NULL,
				value      REAL NOT NULL,
				updated_at TEXT NOT NULL,
				PRIMARY KEY (product_id, field)
			);

			CREATE TABLE IF NOT EXISTS schedules (
				id        INTEGER PRIMARY KEY AUTOINCREMENT,
				version   TEXT NOT NULL,
				loaded_at TEXT NOT NULL,
				payload   TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_schedules_loaded ON schedules(loaded_at);

			INSERT INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}
	return nil
}
