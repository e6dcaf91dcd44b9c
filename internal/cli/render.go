package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilesketch/pkg/errors"
	"github.com/matzehuels/tilesketch/pkg/pipeline"
)

const defaultOutputBase = "sketch"

// renderFlags holds flags for the render command.
type renderFlags struct {
	sketchFlags
	cacheFlags
	formats string
	output  string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generate a sketch and write it to disk",
		Long: `Generate a grid layout, paint it with rough strokes and write the result.

Settings come from built-in defaults, then the --config file, then flags.`,
		Example: `  tilesketch render --seed 7 -f svg,png -o out/poster
  tilesketch render --config sketch.toml --palette auto:6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, &flags)
		},
	}

	flags.sketchFlags.register(cmd)
	flags.cacheFlags.register(cmd)
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output formats: svg, png, json (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path or base name (default "+defaultOutputBase+")")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, flags *renderFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts, err := flags.options(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
		if opts.Formats, err = pipeline.ParseFormats(flags.formats); err != nil {
			return err
		}
	}
	if flags.output != "" {
		if err := errors.ValidateOutputPath(flags.output); err != nil {
			return err
		}
	}
	paths := outputPaths(flags.output, opts.Formats)

	runner, err := c.newRunner(ctx, flags.cacheFlags)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Sketching...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	for _, format := range opts.Formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
	}

	printSuccess("Rendered %d %s", len(opts.Formats), plural(len(opts.Formats), "file", "files"))
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats.Items, opts.Seed, result.CacheInfo.RenderHit)
	prog.done("Done")
	return nil
}

// outputPaths maps each format to its file. A single format with an output
// that already carries an extension is written there verbatim; otherwise
// the format is appended to the base name.
func outputPaths(output string, formats []string) map[string]string {
	base := output
	if base == "" {
		base = defaultOutputBase
	}
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && filepath.Ext(base) != "" {
		paths[formats[0]] = base
		return paths
	}
	for _, f := range formats {
		paths[f] = base + "." + strings.ToLower(f)
	}
	return paths
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
