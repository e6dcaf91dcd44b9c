// Package sketch composes a frame: it walks a layout and renders every cell
// with a palette color, a fill style and its own seed.
package sketch

import (
	"image/color"
	"math/rand/v2"

	"github.com/matzehuels/tilesketch/pkg/colors"
	"github.com/matzehuels/tilesketch/pkg/geom"
	"github.com/matzehuels/tilesketch/pkg/layout"
	"github.com/matzehuels/tilesketch/pkg/rough"
)

// Params controls how a layout is painted.
type Params struct {
	// Seed drives color, fill style and per-cell seed selection.
	Seed       uint64
	Palette    colors.Palette
	FillStyles []rough.FillStyle
	Options    rough.Options
	// Background is a palette-style color string. Empty means white.
	Background string
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() Params {
	return Params{
		Palette:    colors.DefaultPalette,
		FillStyles: rough.FillStyles,
		Options:    rough.DefaultOptions(),
		Background: "#ffffff",
	}
}

// Cell is one painted layout item.
type Cell struct {
	Item     layout.Item    `json:"item"`
	Color    string         `json:"color"`
	Drawable rough.Drawable `json:"drawable"`
}

// Frame is a fully painted layout, ready for a sink.
type Frame struct {
	Canvas     geom.Rect   `json:"canvas"`
	Background color.NRGBA `json:"-"`
	Cells      []Cell      `json:"cells"`
	// ColorFallbacks counts cells whose palette entry failed to parse and
	// were filled with colors.Neutral instead.
	ColorFallbacks int `json:"color_fallbacks,omitempty"`
}

// Paint renders every item of l. Items are visited in layout order and
// unset shapes are skipped. The result depends only on l and p.
func Paint(l layout.Layout, p Params) Frame {
	palette := p.Palette
	if len(palette) == 0 {
		palette = colors.DefaultPalette
	}
	styles := p.FillStyles
	if len(styles) == 0 {
		styles = rough.FillStyles
	}

	bg := colors.FromUint32(0xffffff)
	if p.Background != "" {
		bg, _ = colors.Resolve(p.Background)
	}

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0xdeadbeef))
	gen := rough.New(p.Options)

	f := Frame{Canvas: l.Canvas, Background: bg, Cells: make([]Cell, 0, l.Len())}
	for it := range l.Items() {
		if it.Shape == geom.Unset {
			continue
		}
		entry := palette.Pick(rng)
		fill := styles[rng.IntN(len(styles))]
		seed := rng.Uint64()

		c, ok := colors.Resolve(entry)
		if !ok {
			f.ColorFallbacks++
		}
		f.Cells = append(f.Cells, Cell{
			Item:  it,
			Color: entry,
			Drawable: gen.RenderShape(it.Shape, it.Bounds, rough.Style{
				Seed:      seed,
				FillStyle: fill,
				FillColor: c,
			}),
		})
	}
	return f
}
