// Package geom holds the value types shared by the layout generator, the
// rough path generator and the sinks.
//
// Coordinates are y-up with the canvas centered on the origin: a 600x800
// canvas spans x in [-300, 300] and y in [-400, 400]. Sinks convert to
// y-down image space when they write pixels.
package geom

import "math"

// Point is a position in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p*s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Finite reports whether both coordinates are neither NaN nor infinite.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Rect is an axis-aligned rectangle stored as center and size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// FromXYWH builds a rectangle from its center and size.
func FromXYWH(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// FromEdges builds a rectangle from its edges. Swapped edges are reordered.
func FromEdges(left, right, bottom, top float64) Rect {
	if right < left {
		left, right = right, left
	}
	if top < bottom {
		bottom, top = top, bottom
	}
	return Rect{
		X: (left + right) / 2,
		Y: (bottom + top) / 2,
		W: right - left,
		H: top - bottom,
	}
}

// Canvas returns a w by h rectangle centered on the origin.
func Canvas(w, h float64) Rect { return Rect{W: w, H: h} }

// Left returns the smallest x.
func (r Rect) Left() float64 { return r.X - r.W/2 }

// Right returns the largest x.
func (r Rect) Right() float64 { return r.X + r.W/2 }

// Bottom returns the smallest y. The y axis points up.
func (r Rect) Bottom() float64 { return r.Y - r.H/2 }

// Top returns the largest y.
func (r Rect) Top() float64 { return r.Y + r.H/2 }

// Center returns the center point.
func (r Rect) Center() Point { return Point{r.X, r.Y} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return !(r.W > 0) || !(r.H > 0) }

// Pad shrinks the rectangle by v on every side, keeping the center. A pad
// larger than half an extent collapses that extent to zero rather than
// inverting it. Negative values grow the rectangle.
func (r Rect) Pad(v float64) Rect {
	r.W = max(r.W-2*v, 0)
	r.H = max(r.H-2*v, 0)
	return r
}

// StretchTo grows the rectangle so that p lies on or inside its edges.
func (r Rect) StretchTo(p Point) Rect {
	return FromEdges(
		min(r.Left(), p.X),
		max(r.Right(), p.X),
		min(r.Bottom(), p.Y),
		max(r.Top(), p.Y),
	)
}

// Contains reports whether p lies inside or on the edge of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Bottom() && p.Y <= r.Top()
}

// Corners returns the four corners counter-clockwise starting bottom-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.Left(), r.Bottom()},
		{r.Right(), r.Bottom()},
		{r.Right(), r.Top()},
		{r.Left(), r.Top()},
	}
}
