package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"eve-routes/internal/logger"
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
		return filepath.Join(wd, "routes.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "routes.db")
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

			CREATE TABLE IF NOT EXISTS search_history (
				id           INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp    TEXT NOT NULL,
				from_station TEXT NOT NULL,
				to_station   TEXT NOT NULL,
				total_found  INTEGER NOT NULL,
				top_profit   REAL NOT NULL,
				query_time   REAL NOT NULL,
				cached       INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_search_history_ts ON search_history(timestamp);

			CREATE TABLE IF NOT EXISTS search_opportunities (
				id              INTEGER PRIMARY KEY AUTOINCREMENT,
				search_id       INTEGER NOT NULL REFERENCES search_history(id),
				item_id         INTEGER,
				item_name       TEXT,
				buy_price       REAL,
				sell_price      REAL,
				profit_per_unit REAL,
				profit_margin   REAL,
				max_units       INTEGER,
				total_weight    REAL,
				total_profit    REAL,
				investment      REAL
			);
			CREATE INDEX IF NOT EXISTS idx_search_opps_search ON search_opportunities(search_id);

			INSERT OR REPLACE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return err
		}
	}
	return nil
}
