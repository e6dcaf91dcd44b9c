package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilesketch/pkg/colors"
	"github.com/matzehuels/tilesketch/pkg/config"
	"github.com/matzehuels/tilesketch/pkg/pipeline"
	"github.com/matzehuels/tilesketch/pkg/rough"
)

// sketchFlags holds the flags shared by every command that builds a sketch.
type sketchFlags struct {
	config     string
	width      float64
	height     float64
	padding    int
	rows       int
	cols       int
	gap        int
	noMerge    bool
	seed       uint64
	palette    string
	fillStyles string
	background string
	roughness  float64
	tolerance  float64
	grid       float64
	scale      float64
	title      string
}

// cacheFlags selects the cache backend.
type cacheFlags struct {
	noCache bool
	url     string
}

func (f *sketchFlags) register(cmd *cobra.Command) {
	d := pipeline.DefaultOptions()
	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "TOML file with [canvas] [layout] [style] [render] sections")
	fs.Float64Var(&f.width, "width", d.Width, "canvas width")
	fs.Float64Var(&f.height, "height", d.Height, "canvas height")
	fs.IntVar(&f.padding, "padding", d.Layout.PagePadding, "page padding")
	fs.IntVar(&f.rows, "rows", d.Layout.Rows, "grid rows")
	fs.IntVar(&f.cols, "cols", d.Layout.Cols, "grid columns")
	fs.IntVar(&f.gap, "gap", d.Layout.Gap, "inset around each shape")
	fs.BoolVar(&f.noMerge, "no-merge", false, "keep adjacent squares separate")
	fs.Uint64Var(&f.seed, "seed", d.Seed, "random seed")
	fs.StringVar(&f.palette, "palette", "", `comma-separated colors or "auto:N" (default built-in palette)`)
	fs.StringVar(&f.fillStyles, "fill-styles", "", "comma-separated fill styles: "+fillStyleNames()+" (default all)")
	fs.StringVar(&f.background, "background", d.Background, "background color")
	fs.Float64Var(&f.roughness, "roughness", d.Rough.Roughness, "pen roughness, 0 draws clean lines")
	fs.Float64Var(&f.tolerance, "tolerance", d.Tolerance, "curve flattening tolerance")
	fs.Float64Var(&f.grid, "grid", 0, "draw a debug grid every N units")
	fs.Float64Var(&f.scale, "scale", d.Scale, "PNG scale factor")
	fs.StringVar(&f.title, "title", "", "SVG document title")
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.url, "cache-url", "", "shared redis cache, e.g. redis://localhost:6379/0")
}

// options resolves defaults, then the config file, then explicitly set flags.
func (f *sketchFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if f.config != "" {
		file, err := config.Load(f.config)
		if err != nil {
			return opts, err
		}
		if err := file.Apply(&opts); err != nil {
			return opts, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("padding") {
		opts.Layout.PagePadding = f.padding
	}
	if changed("rows") {
		opts.Layout.Rows = f.rows
	}
	if changed("cols") {
		opts.Layout.Cols = f.cols
	}
	if changed("gap") {
		opts.Layout.Gap = f.gap
	}
	if changed("no-merge") {
		opts.Layout.NoMerge = f.noMerge
	}
	if changed("seed") {
		opts.Seed = f.seed
	}
	if changed("palette") {
		p, err := colors.ParsePalette(f.palette)
		if err != nil {
			return opts, err
		}
		opts.Palette = p
	}
	if changed("fill-styles") {
		opts.FillStyles = splitList(f.fillStyles)
	}
	if changed("background") {
		opts.Background = f.background
	}
	if changed("roughness") {
		opts.Rough.Roughness = f.roughness
	}
	if changed("tolerance") {
		opts.Tolerance = f.tolerance
	}
	if changed("grid") {
		opts.Grid = f.grid
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("title") {
		opts.Title = f.title
	}
	return opts, nil
}

func fillStyleNames() string {
	names := make([]string, len(rough.FillStyles))
	for i, s := range rough.FillStyles {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
