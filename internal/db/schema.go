package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for the route ledger store.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Store tests
// load it through GetSchemaSQL() instead of declaring tables themselves.
//
// Rows are scoped by run_id so concurrent runs sharing a database never see
// each other's ledgers. seq is the insertion position inside one route's
// ledger; timestamps are not required to be ordered.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	route_count INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS route_changes (
	run_id TEXT NOT NULL,
	route INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	timestamp INTEGER NOT NULL,
	capacity INTEGER NOT NULL,
	PRIMARY KEY (run_id, route, seq),
	FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

// InitSchema creates the tables if they do not exist.
func InitSchema(database *sql.DB) error {
	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema.
func GetSchemaSQL() string {
	return SchemaSQL
}
