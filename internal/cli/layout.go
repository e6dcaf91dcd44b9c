package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilesketch/pkg/errors"
	"github.com/matzehuels/tilesketch/pkg/pipeline"
)

const defaultLayoutOutput = "sketch.layout.json"

// layoutFlags holds flags for the layout command.
type layoutFlags struct {
	sketchFlags
	cacheFlags
	output string
}

// layoutCommand creates the layout command, which writes the merged grid
// without painting it.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a grid layout and write it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, &flags)
		},
	}

	flags.sketchFlags.register(cmd)
	flags.cacheFlags.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultLayoutOutput, "output file")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, flags *layoutFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := errors.ValidateOutputPath(flags.output); err != nil {
		return err
	}
	opts, err := flags.options(cmd)
	if err != nil {
		return err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.cacheFlags)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	l, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}
	for _, n := range l.Notes {
		printWarning("%s", n)
	}

	data, err := pipeline.MarshalLayout(l)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	if err := os.WriteFile(flags.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", flags.output)
	}

	printSuccess("Layout computed")
	printFile(flags.output)
	printStats(l.Len(), opts.Seed, hit)
	printNextStep("Render it", "tilesketch render --seed "+formatSeed(opts.Seed))
	prog.done("Done")
	return nil
}
