// Command tilesketch draws hand-sketched grid art. See internal/cli for the
// subcommands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilesketch/internal/cli"
)

// exitInterrupted is what shells report for a SIGINT-terminated process.
const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := execute(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		os.Exit(exitInterrupted)
	default:
		fmt.Fprintln(os.Stderr, "tilesketch:", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context) error {
	app := cli.New(os.Stderr, cli.LogInfo)
	root := app.RootCommand()

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug details")

	// The level is only known once flags are parsed, so it is applied in a
	// hook that runs before the root's own context setup.
	attach := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			app.SetLogLevel(cli.LogDebug)
		}
		return attach(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
