package sink

import (
	"image/color"
	"io"
	"iter"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilesketch/pkg/flatten"
	"github.com/matzehuels/tilesketch/pkg/geom"
	"github.com/matzehuels/tilesketch/pkg/rough"
	"github.com/matzehuels/tilesketch/pkg/sketch"
)

var (
	gridColor      = color.NRGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
	crosshairColor = color.NRGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}
)

// stroke is one flattened op set with its pen.
type stroke struct {
	cell  int
	kind  rough.SetKind
	color color.NRGBA
	width float64
	lines []flatten.Polyline
}

// strokes yields every drawable set of f in paint order, flattened and
// mapped to image space.
func strokes(f sketch.Frame, tolerance float64, logger *log.Logger) iter.Seq[stroke] {
	return func(yield func(stroke) bool) {
		for i, c := range f.Cells {
			d := c.Drawable
			for _, set := range d.Sets {
				s := stroke{cell: i, kind: set.Kind}
				switch set.Kind {
				case rough.SetFill:
					s.color, s.width = d.Style.FillColor, d.Options.FillWeight
				case rough.SetStroke:
					s.color, s.width = rough.StrokeColor, d.Options.StrokeWidth
				default:
					logger.Debug("skipping op set", "cell", i, "kind", set.Kind)
					continue
				}
				for line := range flatten.FlattenSet(set, tolerance) {
					s.lines = append(s.lines, toImage(f.Canvas, line))
				}
				if !yield(s) {
					return
				}
			}
		}
	}
}

func toImage(canvas geom.Rect, line flatten.Polyline) flatten.Polyline {
	out := make(flatten.Polyline, len(line))
	for i, p := range line {
		out[i] = geom.Pt(p.X-canvas.Left(), canvas.Top()-p.Y)
	}
	return out
}

// gridLines returns image-space grid lines every step units, aligned so a
// line passes through the canvas center, followed by the two crosshair
// lines. Steps below one unit disable the grid.
func gridLines(canvas geom.Rect, step float64) (grid, cross []flatten.Polyline) {
	if !(step >= 1) || canvas.Empty() {
		return nil, nil
	}
	w, h := canvas.W, canvas.H
	for x := math.Mod(w/2, step); x <= w; x += step {
		grid = append(grid, flatten.Polyline{geom.Pt(x, 0), geom.Pt(x, h)})
	}
	for y := math.Mod(h/2, step); y <= h; y += step {
		grid = append(grid, flatten.Polyline{geom.Pt(0, y), geom.Pt(w, y)})
	}
	cross = []flatten.Polyline{
		{geom.Pt(w/2, 0), geom.Pt(w/2, h)},
		{geom.Pt(0, h/2), geom.Pt(w, h/2)},
	}
	return grid, cross
}

func pixels(v float64) int { return int(math.Ceil(v)) }

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
