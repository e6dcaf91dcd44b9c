package sink

import (
	"encoding/json"

	"github.com/matzehuels/tilesketch/pkg/colors"
	"github.com/matzehuels/tilesketch/pkg/geom"
	"github.com/matzehuels/tilesketch/pkg/rough"
	"github.com/matzehuels/tilesketch/pkg/sketch"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	seed    uint64
	hasSeed bool
	omitOps bool
}

// WithJSONSeed records the frame seed so the output can be regenerated.
func WithJSONSeed(seed uint64) JSONOption {
	return func(r *jsonRenderer) { r.seed, r.hasSeed = seed, true }
}

// WithJSONSummary drops op sets and keeps only cell metadata.
func WithJSONSummary() JSONOption { return func(r *jsonRenderer) { r.omitOps = true } }

type jsonOutput struct {
	Width          float64    `json:"width"`
	Height         float64    `json:"height"`
	Background     string     `json:"background"`
	Seed           *uint64    `json:"seed,omitempty"`
	ColorFallbacks int        `json:"color_fallbacks,omitempty"`
	Cells          []jsonCell `json:"cells"`
}

type jsonCell struct {
	Shape   geom.ShapeKind `json:"shape"`
	Bounds  geom.Rect      `json:"bounds"`
	Color   string         `json:"color"`
	Style   rough.Style    `json:"style"`
	Options *rough.Options `json:"options,omitempty"`
	Sets    []rough.OpSet  `json:"sets,omitempty"`
}

// RenderJSON encodes f in canvas coordinates (y-up, centered on the origin).
func RenderJSON(f sketch.Frame, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:          f.Canvas.W,
		Height:         f.Canvas.H,
		Background:     colors.Hex(f.Background),
		ColorFallbacks: f.ColorFallbacks,
		Cells:          make([]jsonCell, 0, len(f.Cells)),
	}
	if r.hasSeed {
		out.Seed = &r.seed
	}
	for _, c := range f.Cells {
		jc := jsonCell{
			Shape:  c.Item.Shape,
			Bounds: c.Item.Bounds,
			Color:  c.Color,
			Style:  c.Drawable.Style,
		}
		if !r.omitOps {
			o := c.Drawable.Options
			jc.Options = &o
			jc.Sets = c.Drawable.Sets
		}
		out.Cells = append(out.Cells, jc)
	}
	return json.MarshalIndent(out, "", "  ")
}
