package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/routesim/internal/core/command"
	"github.com/example/routesim/internal/core/route"
	"github.com/example/routesim/internal/ctxutil"
	"github.com/example/routesim/internal/ports/primary"
	"github.com/example/routesim/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockRouteStore implements secondary.RouteStore for testing.
type mockRouteStore struct {
	ledgers   [][]route.ChangeRecord
	appendErr error
	ledgerErr error
	closed    bool
	reads     int
}

func (m *mockRouteStore) Initialize(ctx context.Context, declaredRoutes int, capacities []int64) error {
	if err := route.CanInitialize(route.InitContext{DeclaredRoutes: declaredRoutes, Capacities: capacities}).Error(); err != nil {
		return err
	}
	m.ledgers = make([][]route.ChangeRecord, len(capacities))
	for i, c := range capacities {
		m.ledgers[i] = []route.ChangeRecord{route.Seed(c)}
	}
	return nil
}

func (m *mockRouteStore) AppendChange(ctx context.Context, routeIndex int64, rec route.ChangeRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	if err := route.CanAccessRoute(route.IndexContext{RouteIndex: routeIndex, RouteCount: len(m.ledgers)}).Error(); err != nil {
		return err
	}
	m.ledgers[routeIndex-1] = append(m.ledgers[routeIndex-1], rec)
	return nil
}

func (m *mockRouteStore) LedgerOf(ctx context.Context, routeIndex int64) ([]route.ChangeRecord, error) {
	m.reads++
	if m.ledgerErr != nil {
		return nil, m.ledgerErr
	}
	if err := route.CanAccessRoute(route.IndexContext{RouteIndex: routeIndex, RouteCount: len(m.ledgers)}).Error(); err != nil {
		return nil, err
	}
	return m.ledgers[routeIndex-1], nil
}

func (m *mockRouteStore) RouteCount() int { return len(m.ledgers) }

func (m *mockRouteStore) Close() error {
	m.closed = true
	return nil
}

// mockRouteStoreProvider hands out a preconfigured store.
type mockRouteStoreProvider struct {
	store   *mockRouteStore
	openErr error
	runIDs  []string
}

func (m *mockRouteStoreProvider) Open(ctx context.Context, runID string) (secondary.RouteStore, error) {
	m.runIDs = append(m.runIDs, runID)
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.store, nil
}

// ============================================================================
// Test Helper
// ============================================================================

func newTestSimulationService() (*SimulationServiceImpl, *mockRouteStoreProvider) {
	provider := &mockRouteStoreProvider{store: &mockRouteStore{}}
	return NewSimulationService(provider, nil), provider
}

func runScript(t *testing.T, capacities []int64, cmds ...command.Command) []int64 {
	t.Helper()
	service, _ := newTestSimulationService()
	result, err := service.Run(context.Background(), primary.SimulationRequest{
		DeclaredRoutes: len(capacities),
		Capacities:     capacities,
		Commands:       cmds,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return result.Results
}

func assertResults(t *testing.T, got, want []int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("results = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("results[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// ============================================================================
// Run Tests
// ============================================================================

func TestRun_EndToEndScenario(t *testing.T) {
	got := runScript(t, []int64{3, 5},
		command.Add{Route: 1, Capacity: 10, At: 5},
		command.Query{From: 1, To: 1, At: 8},
		command.Cancel{Route: 1, At: 6},
		command.Query{From: 1, To: 1, At: 8},
	)
	assertResults(t, got, []int64{45, 0})
}

func TestRun_SeedOnlyRoutes(t *testing.T) {
	got := runScript(t, []int64{4, 0, 2},
		command.Query{From: 1, To: 3, At: 10},
		command.Query{From: 2, To: 2, At: 10},
	)
	assertResults(t, got, []int64{40 + 0 + 20, 0})
}

func TestRun_CancelZeroesRouteRegardlessOfHistory(t *testing.T) {
	got := runScript(t, []int64{6},
		command.Add{Route: 1, Capacity: 8, At: 2},
		command.Plus{Route: 1, Capacity: 3, At: 4},
		command.Cancel{Route: 1, At: 5},
		command.Query{From: 1, To: 1, At: 5},
		command.Query{From: 1, To: 1, At: 50},
	)
	assertResults(t, got, []int64{0, 0})
}

func TestRun_PlusMatchesAdd(t *testing.T) {
	withAdd := runScript(t, []int64{2}, command.Add{Route: 1, Capacity: 7, At: 3}, command.Query{From: 1, To: 1, At: 9})
	withPlus := runScript(t, []int64{2}, command.Plus{Route: 1, Capacity: 7, At: 3}, command.Query{From: 1, To: 1, At: 9})
	assertResults(t, withPlus, withAdd)
}

func TestRun_QueryIsIdempotent(t *testing.T) {
	got := runScript(t, []int64{3, 5},
		command.Add{Route: 2, Capacity: 1, At: 4},
		command.Query{From: 1, To: 2, At: 9},
		command.Query{From: 1, To: 2, At: 9},
	)
	if got[0] != got[1] {
		t.Errorf("repeated query differs: %d vs %d", got[0], got[1])
	}
}

func TestRun_RangeEqualsSumOfSingles(t *testing.T) {
	caps := []int64{3, 0, 7, 2}
	history := []command.Command{
		command.Add{Route: 1, Capacity: 4, At: 2},
		command.Cancel{Route: 3, At: 3},
		command.Plus{Route: 3, Capacity: 9, At: 5},
		command.Add{Route: 2, Capacity: 6, At: 1},
	}

	queries := []command.Command{command.Query{From: 1, To: 4, At: 12}}
	for i := int64(1); i <= 4; i++ {
		queries = append(queries, command.Query{From: i, To: i, At: 12})
	}

	got := runScript(t, caps, append(history, queries...)...)
	var sum int64
	for _, v := range got[1:] {
		sum += v
	}
	if got[0] != sum {
		t.Errorf("range total = %d, sum of singles = %d", got[0], sum)
	}
}

func TestRun_ReversedRangeIsEmpty(t *testing.T) {
	got := runScript(t, []int64{3, 5}, command.Query{From: 2, To: 1, At: 8})
	assertResults(t, got, []int64{0})
}

func TestRun_NegativeDeltaIsNotClamped(t *testing.T) {
	got := runScript(t, []int64{2},
		command.Add{Route: 1, Capacity: 3, At: 10},
		command.Query{From: 1, To: 1, At: 4},
	)
	assertResults(t, got, []int64{2})
}

func TestRun_CountsAndRunID(t *testing.T) {
	service, provider := newTestSimulationService()
	ctx := ctxutil.WithRunID(context.Background(), "RUN-TEST")

	result, err := service.Run(ctx, primary.SimulationRequest{
		DeclaredRoutes: 1,
		Capacities:     []int64{1},
		Commands: []command.Command{
			command.Add{Route: 1, Capacity: 2, At: 1},
			command.Query{From: 1, To: 1, At: 2},
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.RunID != "RUN-TEST" {
		t.Errorf("RunID = %q, want RUN-TEST", result.RunID)
	}
	if len(provider.runIDs) != 1 || provider.runIDs[0] != "RUN-TEST" {
		t.Errorf("store opened with %v", provider.runIDs)
	}
	if result.CommandsApplied != 2 || result.Queries != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", result.CommandsApplied, result.Queries)
	}
	if !provider.store.closed {
		t.Error("store was not closed")
	}
	if result.Ledgers != nil {
		t.Error("ledgers returned without being requested")
	}
}

func TestRun_GeneratesRunID(t *testing.T) {
	service, provider := newTestSimulationService()
	result, err := service.Run(context.Background(), primary.SimulationRequest{DeclaredRoutes: 1, Capacities: []int64{1}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.RunID == "" || provider.runIDs[0] != result.RunID {
		t.Errorf("RunID = %q, opened with %v", result.RunID, provider.runIDs)
	}
	if result.Results == nil {
		t.Error("Results should be empty, not nil")
	}
}

func TestRun_IncludeLedgers(t *testing.T) {
	service, _ := newTestSimulationService()
	result, err := service.Run(context.Background(), primary.SimulationRequest{
		DeclaredRoutes: 2,
		Capacities:     []int64{3, 5},
		Commands:       []command.Command{command.Cancel{Route: 2, At: 4}},
		IncludeLedgers: true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Ledgers) != 2 {
		t.Fatalf("got %d ledgers, want 2", len(result.Ledgers))
	}
	if len(result.Ledgers[1]) != 2 || !result.Ledgers[1][1].IsCancellation() {
		t.Errorf("route 2 ledger = %+v", result.Ledgers[1])
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(p *mockRouteStoreProvider)
		req     primary.SimulationRequest
		wantErr string
	}{
		{
			name:    "open fails",
			setup:   func(p *mockRouteStoreProvider) { p.openErr = errors.New("disk gone") },
			req:     primary.SimulationRequest{DeclaredRoutes: 1, Capacities: []int64{1}},
			wantErr: "failed to open route store: disk gone",
		},
		{
			name:    "route count mismatch",
			req:     primary.SimulationRequest{DeclaredRoutes: 2, Capacities: []int64{1}},
			wantErr: "route count mismatch",
		},
		{
			name: "mutation out of range",
			req: primary.SimulationRequest{
				DeclaredRoutes: 1,
				Capacities:     []int64{1},
				Commands:       []command.Command{command.Add{Route: 2, Capacity: 1, At: 1}},
			},
			wantErr: "command 1 (A): route 2 out of range [1, 1]",
		},
		{
			name: "query out of range",
			req: primary.SimulationRequest{
				DeclaredRoutes: 2,
				Capacities:     []int64{1, 1},
				Commands: []command.Command{
					command.Query{From: 1, To: 1, At: 1},
					command.Query{From: 1, To: 3, At: 1},
				},
			},
			wantErr: "command 2 (Q): query end route 3 out of range [1, 2]",
		},
		{
			name:  "store read fails",
			setup: func(p *mockRouteStoreProvider) { p.store.ledgerErr = errors.New("read failed") },
			req: primary.SimulationRequest{
				DeclaredRoutes: 1,
				Capacities:     []int64{1},
				Commands:       []command.Command{command.Query{From: 1, To: 1, At: 1}},
			},
			wantErr: "read failed",
		},
		{
			name:  "store append fails",
			setup: func(p *mockRouteStoreProvider) { p.store.appendErr = errors.New("append failed") },
			req: primary.SimulationRequest{
				DeclaredRoutes: 1,
				Capacities:     []int64{1},
				Commands:       []command.Command{command.Cancel{Route: 1, At: 1}},
			},
			wantErr: "append failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, provider := newTestSimulationService()
			if tt.setup != nil {
				tt.setup(provider)
			}

			result, err := service.Run(context.Background(), tt.req)
			if err == nil {
				t.Fatalf("expected error, got %+v", result)
			}
			if result != nil {
				t.Errorf("expected no result on error, got %+v", result)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRun_CanceledContext(t *testing.T) {
	service, _ := newTestSimulationService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Run(ctx, primary.SimulationRequest{
		DeclaredRoutes: 1,
		Capacities:     []int64{1},
		Commands:       []command.Command{command.Query{From: 1, To: 1, At: 1}},
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
