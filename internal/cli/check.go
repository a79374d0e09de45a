package cli

import (
	"github.com/spf13/cobra"

	cliadapter "github.com/example/routesim/internal/adapters/cli"
)

// CheckCmd returns the check command
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [script...]",
		Short: "Validate and simulate scripts without printing results",
		Long: `Parse and simulate scripts, then print a one-line summary per script.

Fails on the same inputs as run (malformed lines, out-of-range routes),
so it can gate scripts before they are fed to other tools.

Examples:
  routesim check input.txt
  routesim check < input.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJobs(cmd, args, func(adapter *cliadapter.SimulationAdapter, jobs []cliadapter.Job) error {
				return adapter.Check(cmd.Context(), jobs)
			})
		},
	}

	addReadModeFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive(flagReadAll, flagLimited)

	return cmd
}
