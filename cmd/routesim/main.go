package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/routesim/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.RootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
