package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The foreign_keys pragma is per connection and an in-memory database
	// exists only on the connection that opened it.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Facilities table
CREATE TABLE IF NOT EXISTS facilities (
    facility_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    address TEXT NOT NULL,
    setting TEXT NOT NULL
);

-- Outbreaks table
CREATE TABLE IF NOT EXISTS outbreaks (
    outbreak_id INTEGER PRIMARY KEY AUTOINCREMENT,
    facility_id INTEGER NOT NULL,
    outbreak_type TEXT NOT NULL,
    causative_agent_1 TEXT,
    causative_agent_2 TEXT,
    date_began TEXT NOT NULL,
    date_declared_over TEXT,
    is_active INTEGER NOT NULL DEFAULT 1,
    FOREIGN KEY (facility_id) REFERENCES facilities(facility_id)
);
CREATE INDEX IF NOT EXISTS idx_facility_outbreaks ON outbreaks(facility_id);
CREATE INDEX IF NOT EXISTS idx_active_outbreaks ON outbreaks(is_active);

-- Case statistics table
CREATE TABLE IF NOT EXISTS case_stats (
    case_stat_id INTEGER PRIMARY KEY AUTOINCREMENT,
    outbreak_id INTEGER NOT NULL,
    resident_cases INTEGER NOT NULL DEFAULT 0 CHECK(resident_cases >= 0),
    staff_cases INTEGER NOT NULL DEFAULT 0 CHECK(staff_cases >= 0),
    deaths INTEGER NOT NULL DEFAULT 0 CHECK(deaths >= 0),
    FOREIGN KEY (outbreak_id) REFERENCES outbreaks(outbreak_id)
);
CREATE INDEX IF NOT EXISTS idx_outbreak_case_stats ON case_stats(outbreak_id);

-- API keys for authentication
CREATE TABLE IF NOT EXISTS api_keys (
    key_hash TEXT PRIMARY KEY,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_used TIMESTAMP,
    description TEXT
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
