// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/routesim/internal/core/route"
	"github.com/example/routesim/internal/ports/secondary"
)

// RouteStoreProvider opens run-scoped stores on a shared database.
type RouteStoreProvider struct {
	db *sql.DB
}

// NewRouteStoreProvider creates a new SQLite store provider.
func NewRouteStoreProvider(db *sql.DB) *RouteStoreProvider {
	return &RouteStoreProvider{db: db}
}

// Open returns an uninitialized store scoped to runID.
func (p *RouteStoreProvider) Open(ctx context.Context, runID string) (secondary.RouteStore, error) {
	if runID == "" {
		return nil, fmt.Errorf("run id is required")
	}
	return NewRouteStore(p.db, runID), nil
}

// RouteStore implements secondary.RouteStore with SQLite.
// Each route's ledger is the ordered set of route_changes rows for (run_id, route).
type RouteStore struct {
	db         *sql.DB
	runID      string
	routeCount int
	nextSeq    []int64
}

// NewRouteStore creates a new SQLite route store for one run.
func NewRouteStore(db *sql.DB, runID string) *RouteStore {
	return &RouteStore{db: db, runID: runID}
}

// Initialize registers the run and inserts one seed row per route.
func (s *RouteStore) Initialize(ctx context.Context, declaredRoutes int, capacities []int64) error {
	if s.nextSeq != nil {
		return fmt.Errorf("route store already initialized")
	}
	if err := route.CanInitialize(route.InitContext{DeclaredRoutes: declaredRoutes, Capacities: capacities}).Error(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, route_count) VALUES (?, ?)",
		s.runID, len(capacities),
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO route_changes (run_id, route, seq, timestamp, capacity) VALUES (?, ?, 0, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare seed insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range capacities {
		seed := route.Seed(c)
		if _, err := stmt.ExecContext(ctx, s.runID, i+1, seed.Timestamp, seed.Capacity); err != nil {
			return fmt.Errorf("failed to seed route %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seeds: %w", err)
	}

	s.routeCount = len(capacities)
	s.nextSeq = make([]int64, len(capacities))
	for i := range s.nextSeq {
		s.nextSeq[i] = 1
	}
	return nil
}

// AppendChange inserts rec as the next row of the route's ledger.
func (s *RouteStore) AppendChange(ctx context.Context, routeIndex int64, rec route.ChangeRecord) error {
	if err := route.CanAccessRoute(route.IndexContext{RouteIndex: routeIndex, RouteCount: s.routeCount}).Error(); err != nil {
		return fmt.Errorf("failed to append change: %w", err)
	}

	seq := s.nextSeq[routeIndex-1]
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO route_changes (run_id, route, seq, timestamp, capacity) VALUES (?, ?, ?, ?, ?)",
		s.runID, routeIndex, seq, rec.Timestamp, rec.Capacity,
	)
	if err != nil {
		return fmt.Errorf("failed to append change to route %d: %w", routeIndex, err)
	}

	s.nextSeq[routeIndex-1] = seq + 1
	return nil
}

// LedgerOf reads the route's ledger in insertion order.
func (s *RouteStore) LedgerOf(ctx context.Context, routeIndex int64) ([]route.ChangeRecord, error) {
	if err := route.CanAccessRoute(route.IndexContext{RouteIndex: routeIndex, RouteCount: s.routeCount}).Error(); err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT timestamp, capacity FROM route_changes WHERE run_id = ? AND route = ? ORDER BY seq ASC",
		s.runID, routeIndex,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger of route %d: %w", routeIndex, err)
	}
	defer rows.Close()

	ledger := make([]route.ChangeRecord, 0, s.nextSeq[routeIndex-1])
	for rows.Next() {
		var rec route.ChangeRecord
		if err := rows.Scan(&rec.Timestamp, &rec.Capacity); err != nil {
			return nil, fmt.Errorf("failed to scan change record: %w", err)
		}
		ledger = append(ledger, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger of route %d: %w", routeIndex, err)
	}

	return ledger, nil
}

// RouteCount returns the number of initialized routes.
func (s *RouteStore) RouteCount() int {
	return s.routeCount
}

// Close deletes the run's rows. The database itself stays open.
func (s *RouteStore) Close() error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE id = ?", s.runID); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", s.runID, err)
	}
	return nil
}

// Ensure the SQLite types implement the interfaces
var (
	_ secondary.RouteStore         = (*RouteStore)(nil)
	_ secondary.RouteStoreProvider = (*RouteStoreProvider)(nil)
)
