package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/routesim/internal/adapters/cli"
)

// RunCmd returns the run command
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [script...]",
		Short: "Run simulation scripts and print query results",
		Long: `Run one or more route simulation scripts and print one integer per query.

A script is a header line "<routes> <actions>", a line of initial route
capacities, then one command per line:
  Q <from-route> <to-route> <time>   sum time-weighted capacity over the range
  A <route> <capacity> <time>        record a capacity change
  P <route> <capacity> <time>        same as A
  C <route> <time>                   cancel the route from <time>

With no script, or "-", the script is read from stdin and at most <actions>
commands are read. Files are read to EOF. Several scripts run as independent
simulations; their results are printed in argument order under a header.
Nothing is printed if any script fails.

Examples:
  routesim run < input.txt
  routesim run day1.txt day2.txt
  routesim run --store sqlite --read-all input.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJobs(cmd, args, func(adapter *cliadapter.SimulationAdapter, jobs []cliadapter.Job) error {
				return adapter.Run(cmd.Context(), jobs)
			})
		},
	}

	addReadModeFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive(flagReadAll, flagLimited)

	return cmd
}

// withJobs wires services, parses every script in args, then calls fn.
func withJobs(cmd *cobra.Command, args []string, fn func(*cliadapter.SimulationAdapter, []cliadapter.Job) error) error {
	container, cfg, err := newContainer(cmd)
	if err != nil {
		return err
	}
	defer container.Close()

	jobs, err := loadJobs(args, cmd.InOrStdin(), cfg)
	if err != nil {
		return err
	}
	container.Logger().Debug("scripts loaded", "count", len(jobs), "store", cfg.Store)

	return fn(container.SimulationAdapter(cmd.OutOrStdout()), jobs)
}
