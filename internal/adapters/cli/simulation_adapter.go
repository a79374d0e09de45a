// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// the simulation itself to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/example/routesim/internal/ports/primary"
)

// Job is one independent simulation, named for output headers.
type Job struct {
	Name    string
	Request primary.SimulationRequest
}

// SimulationAdapter is a thin adapter that translates CLI operations to SimulationService calls.
type SimulationAdapter struct {
	service  primary.SimulationService
	out      io.Writer
	useColor bool
}

// NewSimulationAdapter creates a new SimulationAdapter with the given service.
func NewSimulationAdapter(service primary.SimulationService, out io.Writer, useColor bool) *SimulationAdapter {
	return &SimulationAdapter{
		service:  service,
		out:      out,
		useColor: useColor,
	}
}

// Run executes every job and prints their query results.
// Jobs run concurrently but each job's commands stay strictly sequential.
// Nothing is printed unless every job succeeds; with more than one job each
// block of results is preceded by a "==> name <==" header, in job order.
func (a *SimulationAdapter) Run(ctx context.Context, jobs []Job) error {
	results, err := a.runAll(ctx, jobs)
	if err != nil {
		return err
	}

	for i, res := range results {
		if len(jobs) > 1 {
			if i > 0 {
				fmt.Fprintln(a.out)
			}
			fmt.Fprintf(a.out, "==> %s <==\n", jobs[i].Name)
		}
		for _, v := range res.Results {
			fmt.Fprintln(a.out, strconv.FormatInt(v, 10))
		}
	}
	return nil
}

// Check executes every job and prints a one-line summary per job instead of results.
func (a *SimulationAdapter) Check(ctx context.Context, jobs []Job) error {
	results, err := a.runAll(ctx, jobs)
	if err != nil {
		return err
	}

	for i, res := range results {
		fmt.Fprintf(a.out, "✓ %s: %d routes, %d commands, %d queries\n",
			jobs[i].Name, jobs[i].Request.DeclaredRoutes, res.CommandsApplied, res.Queries)
	}
	return nil
}

// Ledgers executes a single job and prints every route's final ledger.
func (a *SimulationAdapter) Ledgers(ctx context.Context, job Job) error {
	job.Request.IncludeLedgers = true
	res, err := a.service.Run(ctx, job.Request)
	if err != nil {
		return err
	}

	header := a.paint(color.New(color.Bold))
	cancelled := a.paint(color.New(color.FgRed))
	seed := a.paint(color.New(color.FgHiBlack))

	fmt.Fprintf(a.out, "\n%-8s %-6s %-12s %s\n", header.Sprint("ROUTE"), header.Sprint("SEQ"), header.Sprint("TIME"), header.Sprint("CAPACITY"))
	fmt.Fprintln(a.out, "────────────────────────────────────────────")
	for r, ledger := range res.Ledgers {
		for seq, rec := range ledger {
			capText := strconv.FormatInt(rec.Capacity, 10)
			switch {
			case rec.IsCancellation():
				capText = cancelled.Sprint("0 (cancelled)")
			case seq == 0:
				capText = seed.Sprintf("%s (seed)", capText)
			}
			fmt.Fprintf(a.out, "%-8d %-6d %-12d %s\n", r+1, seq, rec.Timestamp, capText)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

// runAll runs jobs concurrently and returns results in job order.
// The first failure cancels the remaining jobs.
func (a *SimulationAdapter) runAll(ctx context.Context, jobs []Job) ([]*primary.SimulationResult, error) {
	results := make([]*primary.SimulationResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			res, err := a.service.Run(gctx, job.Request)
			if err != nil {
				if len(jobs) > 1 {
					return fmt.Errorf("%s: %w", job.Name, err)
				}
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *SimulationAdapter) paint(c *color.Color) *color.Color {
	if !a.useColor {
		c.DisableColor()
	}
	return c
}
