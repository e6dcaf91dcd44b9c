package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilesketch/pkg/buildinfo"
	"github.com/matzehuels/tilesketch/pkg/cache"
	"github.com/matzehuels/tilesketch/pkg/errors"
	"github.com/matzehuels/tilesketch/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "tilesketch"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "tilesketch draws hand-sketched generative grid art",
		Long: `tilesketch lays out a grid of squares, circles and triangles, merges runs of
squares into wide panels and draws every shape with a rough, hand-drawn pen.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cf cacheFlags) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, cf, c.Logger)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// newCache picks the backend: none, redis when a URL is given, otherwise
// the local file cache. An unusable cache directory disables caching.
func newCache(ctx context.Context, cf cacheFlags, logger *log.Logger) (cache.Cache, error) {
	if cf.noCache {
		return cache.NewNullCache(), nil
	}
	if cf.url != "" {
		if err := errors.ValidateCacheURL(cf.url); err != nil {
			return nil, err
		}
		rc, err := cache.NewRedisCache(ctx, cf.url)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "connect to shared cache")
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debug("cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/tilesketch/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
