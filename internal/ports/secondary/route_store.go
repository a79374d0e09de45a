// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/routesim/internal/core/route"
)

// RouteStoreProvider opens a fresh, empty RouteStore for one simulation run.
// Stores from different runs never share ledgers.
type RouteStoreProvider interface {
	// Open returns an uninitialized store scoped to runID.
	Open(ctx context.Context, runID string) (RouteStore, error)
}

// RouteStore defines the secondary port for route ledgers.
// Routes are addressed by 1-based index; ledgers are append-only.
type RouteStore interface {
	// Initialize creates one route per capacity, each seeded with (0, capacity).
	// Fails if len(capacities) != declaredRoutes.
	Initialize(ctx context.Context, declaredRoutes int, capacities []int64) error

	// AppendChange appends rec to the ledger of routeIndex.
	// Fails if routeIndex is outside [1, RouteCount()].
	AppendChange(ctx context.Context, routeIndex int64, rec route.ChangeRecord) error

	// LedgerOf returns the ledger of routeIndex in insertion order.
	// The returned slice must not be modified by the caller.
	LedgerOf(ctx context.Context, routeIndex int64) ([]route.ChangeRecord, error)

	// RouteCount returns the number of initialized routes.
	RouteCount() int

	// Close releases resources held by the store.
	Close() error
}
