package rough

import "github.com/matzehuels/tilesketch/pkg/geom"

// Generator renders shapes with a fixed set of options. It holds no mutable
// state and is safe for concurrent use.
type Generator struct {
	opts Options
}

// New returns a generator for opts, resolving derived values.
func New(opts Options) *Generator {
	return &Generator{opts: opts.resolve()}
}

// Options returns the resolved options.
func (g *Generator) Options() Options { return g.opts }

// RenderShape draws kind inside bounds. Squares fill the rectangle,
// circles are the inscribed ellipse, and triangles have their apex at the
// top center and their base along the bottom edge.
//
// Empty or non-finite bounds and unknown shapes yield a Drawable without
// sets.
func (g *Generator) RenderShape(kind geom.ShapeKind, bounds geom.Rect, style Style) Drawable {
	d := Drawable{Shape: kind, Bounds: bounds, Style: style, Options: g.opts}
	if bounds.Empty() || !bounds.Center().Finite() || !geom.Pt(bounds.W, bounds.H).Finite() {
		return d
	}

	p := newPen(g.opts, style.Seed)

	var (
		outline []Op
		region  []geom.Point
	)
	switch kind {
	case geom.Square:
		corners := bounds.Corners()
		region = corners[:]
		outline = p.linearPath(region, true)
	case geom.Triangle:
		region = TrianglePoints(bounds)
		outline = p.linearPath(region, true)
	case geom.Circle:
		outline, region = p.ellipse(bounds.Center(), p.ellipseFit(bounds.W, bounds.H))
	default:
		return d
	}

	d.Sets = append(p.fill(style.FillStyle, region), OpSet{Kind: SetStroke, Ops: outline})
	return d
}

// TrianglePoints returns the bottom-left, bottom-right and apex vertices of
// the triangle inscribed in r.
func TrianglePoints(r geom.Rect) []geom.Point {
	return []geom.Point{
		geom.Pt(r.Left(), r.Bottom()),
		geom.Pt(r.Right(), r.Bottom()),
		geom.Pt(r.X, r.Top()),
	}
}
