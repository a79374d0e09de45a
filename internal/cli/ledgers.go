package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/routesim/internal/adapters/cli"
)

// LedgersCmd returns the ledgers command
func LedgersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledgers [script]",
		Short: "Show every route's capacity ledger after a script runs",
		Long: `Run a script and print the final capacity ledger of every route,
in insertion order. Cancellations and seed records are marked.

Examples:
  routesim ledgers input.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJobs(cmd, args, func(adapter *cliadapter.SimulationAdapter, jobs []cliadapter.Job) error {
				return adapter.Ledgers(cmd.Context(), jobs[0])
			})
		},
	}

	addReadModeFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive(flagReadAll, flagLimited)

	return cmd
}
