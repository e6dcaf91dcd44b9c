// Package pipeline runs the layout → paint → render pipeline shared by the
// CLI and the preview server.
//
// # Stages
//
//  1. Layout: clamp the grid configuration and place shapes
//  2. Paint: pick colors and fill styles and build rough op sets
//  3. Render: encode the painted frame as SVG, PNG or JSON
//
// Layouts and artifacts are cached through [cache.Cache]; painting is cheap
// and always recomputed.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Seed = 7
//	opts.Formats = []string{pipeline.FormatSVG}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilesketch/pkg/cache"
	"github.com/matzehuels/tilesketch/pkg/colors"
	"github.com/matzehuels/tilesketch/pkg/errors"
	"github.com/matzehuels/tilesketch/pkg/flatten"
	"github.com/matzehuels/tilesketch/pkg/layout"
	"github.com/matzehuels/tilesketch/pkg/rough"
	"github.com/matzehuels/tilesketch/pkg/sketch"
)

const (
	// DefaultWidth is the default canvas width in canvas units.
	DefaultWidth = 450.0

	// DefaultHeight is the default canvas height in canvas units.
	DefaultHeight = 600.0

	// DefaultSeed replaces a zero seed so output is reproducible by default.
	DefaultSeed = uint64(42)

	// DefaultScale is the PNG pixel density.
	DefaultScale = 2.0

	// DefaultBackground is the canvas color.
	DefaultBackground = "#ffffff"

	// MinTolerance is the finest curve tolerance accepted from users. PNG
	// output divides it by the scale, which stays above
	// flatten.MinTolerance for every accepted scale.
	MinTolerance = 0.01

	// MaxScale bounds the PNG scale factor.
	MaxScale = 8.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// paintSalt decorrelates the paint stream from the shape stream when both
// derive from the same user seed.
const paintSalt = 0x9e3779b97f4a7c15

// Options contains all configuration for a pipeline run.
type Options struct {
	// Layout options
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Layout layout.Config `json:"layout"`
	Seed   uint64        `json:"seed"`

	// Paint options
	Palette    []string      `json:"palette,omitempty"`
	FillStyles []string      `json:"fill_styles,omitempty"`
	Rough      rough.Options `json:"rough"`
	Background string        `json:"background,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Tolerance float64  `json:"tolerance,omitempty"`
	Grid      float64  `json:"grid,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Title     string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	styles    []rough.FillStyle
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Layout layout.Layout

	// Frame is the painted layout. It is empty when every artifact came
	// from the cache.
	Frame sketch.Frame

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items          int
	Notes          int
	ColorFallbacks int
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// DefaultOptions returns the options a fresh sketch starts with.
func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Layout:     layout.DefaultConfig(),
		Seed:       DefaultSeed,
		Palette:    slices.Clone(colors.DefaultPalette),
		Rough:      rough.DefaultOptions(),
		Background: DefaultBackground,
		Formats:    []string{FormatSVG},
		Tolerance:  flatten.DefaultTolerance,
		Scale:      DefaultScale,
	}
}

// Clone returns a deep copy of o that must be validated again.
func (o Options) Clone() Options {
	o.Palette = slices.Clone(o.Palette)
	o.FillStyles = slices.Clone(o.FillStyles)
	o.Formats = slices.Clone(o.Formats)
	o.styles = nil
	o.validated = false
	return o
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates. An empty string yields svg.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		out = []string{FormatSVG}
	}
	return out, nil
}

// ParseFillStyles parses fill style names. An empty list means all styles.
func ParseFillStyles(names []string) ([]rough.FillStyle, error) {
	if len(names) == 0 {
		return slices.Clone(rough.FillStyles), nil
	}
	out := make([]rough.FillStyle, 0, len(names))
	for _, n := range names {
		s, err := rough.ParseFillStyle(strings.TrimSpace(n))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ValidateAndSetDefaults checks the options and fills zero values that have
// no meaning of their own. Layout spacing is left as given: a zero gap or
// padding is valid. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if !(o.Scale > 0) || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be in (0, %g], got %v", MaxScale, o.Scale)
	}
	if !(o.Tolerance >= MinTolerance) || math.IsInf(o.Tolerance, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "tolerance must be at least %g, got %v", MinTolerance, o.Tolerance)
	}
	styles, err := ParseFillStyles(o.FillStyles)
	if err != nil {
		return err
	}
	o.styles = styles
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for painting and rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if len(o.Palette) == 0 {
		o.Palette = slices.Clone(colors.DefaultPalette)
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Tolerance <= 0 {
		o.Tolerance = flatten.DefaultTolerance
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Params returns the paint parameters for these options.
func (o *Options) Params() sketch.Params {
	styles := o.styles
	if styles == nil {
		styles, _ = ParseFillStyles(o.FillStyles)
	}
	return sketch.Params{
		Seed:       o.Seed ^ paintSalt,
		Palette:    colors.Palette(o.Palette),
		FillStyles: styles,
		Options:    o.Rough,
		Background: o.Background,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	w := o.Layout.Weights
	return cache.LayoutKeyOpts{
		Width:       o.Width,
		Height:      o.Height,
		PagePadding: o.Layout.PagePadding,
		Rows:        o.Layout.Rows,
		Cols:        o.Layout.Cols,
		Gap:         o.Layout.Gap,
		NoMerge:     o.Layout.NoMerge,
		Weights:     [3]int{w.Square, w.Circle, w.Triangle},
		Seed:        o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	roughData, _ := json.Marshal(o.Rough)
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Seed:       o.Seed,
		Palette:    o.Palette,
		FillStyles: o.FillStyles,
		Background: o.Background,
		Rough:      string(roughData),
		Tolerance:  o.Tolerance,
		Grid:       o.Grid,
		Title:      o.Title,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
