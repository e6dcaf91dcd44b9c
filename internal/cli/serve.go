package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilesketch/internal/server"
)

const defaultAddr = ":8080"

// serveFlags holds flags for the serve command.
type serveFlags struct {
	sketchFlags
	cacheFlags
	addr string
}

// serveCommand creates the serve command. Flags and the config file set the
// base options every request starts from; query parameters override them.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sketches over HTTP",
		Example: `  tilesketch serve --addr :9000
  curl 'localhost:8080/sketch.svg?seed=random&rows=8'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &flags)
		},
	}

	flags.sketchFlags.register(cmd)
	flags.cacheFlags.register(cmd)
	cmd.Flags().StringVar(&flags.addr, "addr", defaultAddr, "listen address")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, flags *serveFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	base, err := flags.options(cmd)
	if err != nil {
		return err
	}
	check := base.Clone()
	if err := check.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.cacheFlags)
	if err != nil {
		return err
	}
	defer runner.Close()

	emit(StyleTitle.Render("tilesketch server"))
	printKeyValue("Listening", flags.addr)
	printKeyValue("Sketch", "/sketch.{svg,png,json}")
	printKeyValue("Layout", "/layout.json")
	printKeyValue("Health", "/healthz")
	printNewline()

	return server.New(runner, base, logger).ListenAndServe(ctx, flags.addr)
}

func formatSeed(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}
