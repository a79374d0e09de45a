// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// Use setupTestDB() instead of declaring tables in test files.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/routesim/internal/adapters/sqlite"
	"github.com/example/routesim/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every new connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	if err := db.InitSchema(testDB); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedStore opens a store for runID and initializes it with capacities.
func seedStore(t *testing.T, testDB *sql.DB, runID string, capacities ...int64) *sqlite.RouteStore {
	t.Helper()
	store := sqlite.NewRouteStore(testDB, runID)
	if err := store.Initialize(context.Background(), len(capacities), capacities); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	return store
}

// countRows returns the number of route_changes rows for runID.
func countRows(t *testing.T, testDB *sql.DB, runID string) int {
	t.Helper()
	var n int
	if err := testDB.QueryRow("SELECT COUNT(*) FROM route_changes WHERE run_id = ?", runID).Scan(&n); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}
