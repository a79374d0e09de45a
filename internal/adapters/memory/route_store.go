// Package memory contains in-memory implementations of repository interfaces.
package memory

import (
	"context"
	"fmt"

	"github.com/example/routesim/internal/core/route"
	"github.com/example/routesim/internal/ports/secondary"
)

// RouteStoreProvider hands out independent in-memory stores.
type RouteStoreProvider struct{}

// NewRouteStoreProvider creates a new in-memory store provider.
func NewRouteStoreProvider() *RouteStoreProvider {
	return &RouteStoreProvider{}
}

// Open returns a new empty RouteStore. runID is unused; each store is private.
func (p *RouteStoreProvider) Open(ctx context.Context, runID string) (secondary.RouteStore, error) {
	return NewRouteStore(), nil
}

// RouteStore implements secondary.RouteStore with one slice per route.
type RouteStore struct {
	ledgers [][]route.ChangeRecord
}

// NewRouteStore creates an uninitialized in-memory route store.
func NewRouteStore() *RouteStore {
	return &RouteStore{}
}

// Initialize seeds one ledger per capacity.
func (s *RouteStore) Initialize(ctx context.Context, declaredRoutes int, capacities []int64) error {
	if s.ledgers != nil {
		return fmt.Errorf("route store already initialized")
	}
	if err := route.CanInitialize(route.InitContext{DeclaredRoutes: declaredRoutes, Capacities: capacities}).Error(); err != nil {
		return err
	}

	s.ledgers = make([][]route.ChangeRecord, len(capacities))
	for i, c := range capacities {
		s.ledgers[i] = []route.ChangeRecord{route.Seed(c)}
	}
	return nil
}

// AppendChange appends rec to the ledger at routeIndex.
func (s *RouteStore) AppendChange(ctx context.Context, routeIndex int64, rec route.ChangeRecord) error {
	if err := route.CanAccessRoute(route.IndexContext{RouteIndex: routeIndex, RouteCount: len(s.ledgers)}).Error(); err != nil {
		return fmt.Errorf("failed to append change: %w", err)
	}
	s.ledgers[routeIndex-1] = append(s.ledgers[routeIndex-1], rec)
	return nil
}

// LedgerOf returns the ledger at routeIndex without copying.
func (s *RouteStore) LedgerOf(ctx context.Context, routeIndex int64) ([]route.ChangeRecord, error) {
	if err := route.CanAccessRoute(route.IndexContext{RouteIndex: routeIndex, RouteCount: len(s.ledgers)}).Error(); err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	return s.ledgers[routeIndex-1], nil
}

// RouteCount returns the number of routes.
func (s *RouteStore) RouteCount() int {
	return len(s.ledgers)
}

// Close is a no-op.
func (s *RouteStore) Close() error {
	return nil
}

// Ensure the in-memory types implement the interfaces
var (
	_ secondary.RouteStore         = (*RouteStore)(nil)
	_ secondary.RouteStoreProvider = (*RouteStoreProvider)(nil)
)
