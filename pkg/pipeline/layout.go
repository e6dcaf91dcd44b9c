package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/tilesketch/pkg/geom"
	"github.com/matzehuels/tilesketch/pkg/layout"
)

// GenerateLayout places shapes on the canvas described by opts. Shapes are
// drawn from a weighted picker seeded with opts.Seed.
func GenerateLayout(opts Options) layout.Layout {
	canvas := geom.Canvas(opts.Width, opts.Height)
	picker := layout.NewRandomPicker(opts.Seed, opts.Layout.Weights)
	return layout.Generate(canvas, opts.Layout, picker)
}

// MarshalLayout serializes a layout for caching and the layout command.
func MarshalLayout(l layout.Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout is the inverse of MarshalLayout.
func UnmarshalLayout(data []byte) (layout.Layout, error) {
	var l layout.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return layout.Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if l.Rows == nil {
		l.Rows = [][]layout.Item{}
	}
	return l, nil
}
