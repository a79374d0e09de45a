package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/example/routesim/internal/core/command"
	"github.com/example/routesim/internal/core/route"
	"github.com/example/routesim/internal/ctxutil"
	"github.com/example/routesim/internal/ports/primary"
	"github.com/example/routesim/internal/ports/secondary"
)

// SimulationServiceImpl implements the SimulationService interface.
// Each Run gets its own store; nothing is shared between runs.
type SimulationServiceImpl struct {
	stores secondary.RouteStoreProvider
	logger *slog.Logger
}

// NewSimulationService creates a new SimulationService with injected dependencies.
func NewSimulationService(stores secondary.RouteStoreProvider, logger *slog.Logger) *SimulationServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulationServiceImpl{
		stores: stores,
		logger: logger,
	}
}

// Run applies the commands strictly in order against a fresh store.
func (s *SimulationServiceImpl) Run(ctx context.Context, req primary.SimulationRequest) (*primary.SimulationResult, error) {
	runID := ctxutil.RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = ctxutil.WithRunID(ctx, runID)
	}
	log := s.logger.With("run_id", runID)

	store, err := s.stores.Open(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to open route store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Warn("failed to close route store", "err", cerr)
		}
	}()

	if err := store.Initialize(ctx, req.DeclaredRoutes, req.Capacities); err != nil {
		return nil, fmt.Errorf("failed to initialize routes: %w", err)
	}
	log.Debug("routes initialized", "routes", store.RouteCount())

	result := &primary.SimulationResult{RunID: runID, Results: []int64{}}
	for i, cmd := range req.Commands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch c := cmd.(type) {
		case command.Query:
			total, err := s.evaluateQuery(ctx, store, c)
			if err != nil {
				return nil, fmt.Errorf("command %d (%c): %w", i+1, c.Kind(), err)
			}
			result.Results = append(result.Results, total)
			result.Queries++
		case command.Mutation:
			routeIndex, rec := c.Change()
			if err := store.AppendChange(ctx, routeIndex, rec); err != nil {
				return nil, fmt.Errorf("command %d (%c): %w", i+1, c.Kind(), err)
			}
		default:
			return nil, fmt.Errorf("command %d: unsupported command %T", i+1, cmd)
		}
		result.CommandsApplied++
	}

	if req.IncludeLedgers {
		ledgers, err := s.snapshotLedgers(ctx, store)
		if err != nil {
			return nil, err
		}
		result.Ledgers = ledgers
	}

	log.Debug("simulation complete",
		"routes", store.RouteCount(),
		"commands", result.CommandsApplied,
		"queries", result.Queries,
	)
	return result, nil
}

// evaluateQuery sums the exposure of every route in [From, To] at time At.
func (s *SimulationServiceImpl) evaluateQuery(ctx context.Context, store secondary.RouteStore, q command.Query) (int64, error) {
	guard := route.CanQueryRange(route.RangeContext{
		FromRoute:  q.From,
		ToRoute:    q.To,
		RouteCount: store.RouteCount(),
	})
	if err := guard.Error(); err != nil {
		return 0, err
	}

	var total int64
	for r := q.From; r <= q.To; r++ {
		ledger, err := store.LedgerOf(ctx, r)
		if err != nil {
			return 0, err
		}
		total += route.Exposure(ledger, q.At)
	}
	return total, nil
}

func (s *SimulationServiceImpl) snapshotLedgers(ctx context.Context, store secondary.RouteStore) ([][]route.ChangeRecord, error) {
	ledgers := make([][]route.ChangeRecord, store.RouteCount())
	for i := range ledgers {
		ledger, err := store.LedgerOf(ctx, int64(i+1))
		if err != nil {
			return nil, fmt.Errorf("failed to snapshot ledgers: %w", err)
		}
		ledgers[i] = append([]route.ChangeRecord(nil), ledger...)
	}
	return ledgers, nil
}

// Ensure SimulationServiceImpl implements the interface
var _ primary.SimulationService = (*SimulationServiceImpl)(nil)
