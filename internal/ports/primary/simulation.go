// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the CLI drives the simulation.
package primary

import (
	"context"

	"github.com/example/routesim/internal/core/command"
	"github.com/example/routesim/internal/core/route"
)

// SimulationService defines the primary port for running a route simulation.
type SimulationService interface {
	// Run applies the commands in order against a fresh route store and
	// returns one result per Query. On error no results are returned.
	Run(ctx context.Context, req SimulationRequest) (*SimulationResult, error)
}

// SimulationRequest contains a validated simulation script.
type SimulationRequest struct {
	DeclaredRoutes int
	Capacities     []int64
	Commands       []command.Command
	IncludeLedgers bool // Return every route's final ledger in the result
}

// SimulationResult contains the outcome of a completed run.
type SimulationResult struct {
	RunID           string
	Results         []int64 // One per Query, in command order
	CommandsApplied int
	Queries         int
	Ledgers         [][]route.ChangeRecord // Indexed by route-1; nil unless requested
}
