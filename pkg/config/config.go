// Package config loads sketch settings from a TOML file.
//
//	[canvas]
//	width = 450.0
//	height = 600.0
//	background = "#fdf6e3"
//
//	[layout]
//	page_padding = 30
//	rows = 15
//	cols = 14
//	gap = 1
//	merge = true
//	square_weight = 3
//
//	[style]
//	seed = 7
//	palette = ["#e63946", "#2a9d8f"]   # or "auto:6"
//	fill_styles = ["hachure", "dots"]
//	roughness = 1.5
//
//	[render]
//	formats = ["svg", "png"]
//	tolerance = 0.25
//	grid = 50.0
//	scale = 2.0
//
// Only keys present in the file are applied; everything else keeps the
// value already in [pipeline.Options].
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tilesketch/pkg/colors"
	"github.com/matzehuels/tilesketch/pkg/errors"
	"github.com/matzehuels/tilesketch/pkg/pipeline"
)

// File mirrors the TOML document. Pointer fields are nil when absent.
type File struct {
	Canvas Canvas `toml:"canvas"`
	Layout Layout `toml:"layout"`
	Style  Style  `toml:"style"`
	Render Render `toml:"render"`
}

type Canvas struct {
	Width      *float64 `toml:"width"`
	Height     *float64 `toml:"height"`
	Background *string  `toml:"background"`
}

type Layout struct {
	PagePadding    *int  `toml:"page_padding"`
	Rows           *int  `toml:"rows"`
	Cols           *int  `toml:"cols"`
	Gap            *int  `toml:"gap"`
	Merge          *bool `toml:"merge"`
	SquareWeight   *int  `toml:"square_weight"`
	CircleWeight   *int  `toml:"circle_weight"`
	TriangleWeight *int  `toml:"triangle_weight"`
}

type Style struct {
	Seed *uint64 `toml:"seed"`
	// Palette is either a palette string ("auto:6", "#fff,#000") or an
	// array of color strings.
	Palette      any      `toml:"palette"`
	FillStyles   []string `toml:"fill_styles"`
	Roughness    *float64 `toml:"roughness"`
	Bowing       *float64 `toml:"bowing"`
	StrokeWidth  *float64 `toml:"stroke_width"`
	HachureGap   *float64 `toml:"hachure_gap"`
	HachureAngle *float64 `toml:"hachure_angle"`
}

type Render struct {
	Formats   []string `toml:"formats"`
	Tolerance *float64 `toml:"tolerance"`
	Grid      *float64 `toml:"grid"`
	Scale     *float64 `toml:"scale"`
	Title     *string  `toml:"title"`
}

// Load reads and decodes the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(string(data))
}

// Parse decodes a TOML document. Unknown keys are rejected so typos do not
// pass silently.
func Parse(doc string) (*File, error) {
	var f File
	md, err := toml.Decode(doc, &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return &f, nil
}

// Apply overlays the keys present in f onto opts.
func (f *File) Apply(opts *pipeline.Options) error {
	setIf(&opts.Width, f.Canvas.Width)
	setIf(&opts.Height, f.Canvas.Height)
	setIf(&opts.Background, f.Canvas.Background)

	setIf(&opts.Layout.PagePadding, f.Layout.PagePadding)
	setIf(&opts.Layout.Rows, f.Layout.Rows)
	setIf(&opts.Layout.Cols, f.Layout.Cols)
	setIf(&opts.Layout.Gap, f.Layout.Gap)
	if f.Layout.Merge != nil {
		opts.Layout.NoMerge = !*f.Layout.Merge
	}
	setIf(&opts.Layout.Weights.Square, f.Layout.SquareWeight)
	setIf(&opts.Layout.Weights.Circle, f.Layout.CircleWeight)
	setIf(&opts.Layout.Weights.Triangle, f.Layout.TriangleWeight)

	setIf(&opts.Seed, f.Style.Seed)
	if f.Style.Palette != nil {
		p, err := decodePalette(f.Style.Palette)
		if err != nil {
			return err
		}
		opts.Palette = p
	}
	if f.Style.FillStyles != nil {
		if _, err := pipeline.ParseFillStyles(f.Style.FillStyles); err != nil {
			return err
		}
		opts.FillStyles = f.Style.FillStyles
	}
	setIf(&opts.Rough.Roughness, f.Style.Roughness)
	setIf(&opts.Rough.Bowing, f.Style.Bowing)
	setIf(&opts.Rough.StrokeWidth, f.Style.StrokeWidth)
	setIf(&opts.Rough.HachureGap, f.Style.HachureGap)
	setIf(&opts.Rough.HachureAngle, f.Style.HachureAngle)

	if f.Render.Formats != nil {
		formats, err := pipeline.ParseFormats(strings.Join(f.Render.Formats, ","))
		if err != nil {
			return err
		}
		opts.Formats = formats
	}
	setIf(&opts.Tolerance, f.Render.Tolerance)
	setIf(&opts.Grid, f.Render.Grid)
	setIf(&opts.Scale, f.Render.Scale)
	setIf(&opts.Title, f.Render.Title)
	return nil
}

func decodePalette(v any) ([]string, error) {
	switch p := v.(type) {
	case string:
		return colors.ParsePalette(p)
	case []any:
		out := make([]string, 0, len(p))
		for i, e := range p {
			s, ok := e.(string)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidConfig, "style.palette[%d] must be a string", i)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "style.palette must be a string or an array of strings")
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
