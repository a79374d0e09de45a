package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/routesim/internal/version"
)

// RootCmd returns the routesim root command with every subcommand attached.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "routesim",
		Short:   "routesim - route capacity ledger simulator",
		Version: version.String(),
		Long: `routesim replays route capacity scripts and answers time-weighted
exposure queries over ranges of routes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(RunCmd())
	rootCmd.AddCommand(CheckCmd())
	rootCmd.AddCommand(LedgersCmd())
	rootCmd.AddCommand(ConfigCmd())

	return rootCmd
}
