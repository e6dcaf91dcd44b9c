package sink

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"

	"github.com/matzehuels/tilesketch/pkg/flatten"
	"github.com/matzehuels/tilesketch/pkg/sketch"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale     float64
	tolerance float64
	grid      float64
	logger    *log.Logger
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGTolerance sets the chord tolerance in canvas units.
func WithPNGTolerance(tol float64) PNGOption {
	return func(r *pngRenderer) { r.tolerance = tol }
}

// WithPNGGrid overlays the debug grid every step canvas units.
func WithPNGGrid(step float64) PNGOption {
	return func(r *pngRenderer) { r.grid = step }
}

// WithPNGLogger receives debug output about skipped sets.
func WithPNGLogger(l *log.Logger) PNGOption {
	return func(r *pngRenderer) { r.logger = l }
}

// RenderPNG rasterizes f with the software renderer.
func RenderPNG(f sketch.Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, tolerance: flatten.DefaultTolerance, logger: discardLogger()}
	for _, opt := range opts {
		opt(&r)
	}
	if !(r.scale > 0) {
		return nil, fmt.Errorf("png scale must be positive, got %v", r.scale)
	}

	w, h := pixels(f.Canvas.W*r.scale), pixels(f.Canvas.H*r.scale)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png canvas %dx%d is empty", w, h)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.ClearWithColor(gg.FromColor(f.Background))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for s := range strokes(f, r.tolerance/r.scale, r.logger) {
		if err := r.stroke(dc, s.lines, s.color, s.width); err != nil {
			return nil, fmt.Errorf("stroke cell %d: %w", s.cell, err)
		}
	}

	if grid, cross := gridLines(f.Canvas, r.grid); len(grid) > 0 {
		if err := r.stroke(dc, grid, gridColor, 0.5); err != nil {
			return nil, fmt.Errorf("stroke grid: %w", err)
		}
		if err := r.stroke(dc, cross, crosshairColor, 1); err != nil {
			return nil, fmt.Errorf("stroke crosshair: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) stroke(dc *gg.Context, lines []flatten.Polyline, c color.NRGBA, width float64) error {
	if len(lines) == 0 {
		return nil
	}
	for _, line := range lines {
		for i, p := range line {
			if i == 0 {
				dc.MoveTo(p.X*r.scale, p.Y*r.scale)
			} else {
				dc.LineTo(p.X*r.scale, p.Y*r.scale)
			}
		}
	}
	dc.SetColor(c)
	dc.SetLineWidth(width * r.scale)
	return dc.Stroke()
}
