// Package flatten converts rough path ops into polylines.
//
// Cubic curves are split into uniform parameter steps. The step count is
// chosen from the curve's second differences so that every chord stays
// within the requested tolerance of the curve:
//
//	for line := range flatten.Flatten(set.Ops, 0.25) {
//	    draw(line)
//	}
//
// The returned sequences hold no state between iterations; ranging over
// the same sequence twice yields the same polylines.
package flatten

import (
	"iter"
	"math"
	"slices"

	"github.com/matzehuels/tilesketch/pkg/geom"
	"github.com/matzehuels/tilesketch/pkg/rough"
)

// DefaultTolerance is the chord tolerance used when a non-positive or
// non-finite tolerance is given, in canvas units.
const DefaultTolerance = 0.25

// MinTolerance is the smallest chord tolerance honoured. Smaller positive
// tolerances are raised to it.
const MinTolerance = 1e-3

// MaxSteps bounds the step count returned by CubicSteps. Only curves whose
// control points lie billions of units apart can reach it; below it every
// chord is within tolerance.
const MaxSteps = 1 << 20

// Polyline is an ordered list of connected points.
type Polyline []geom.Point

// Flatten walks ops and yields one polyline per subpath. A move starts a
// new polyline, a line appends its point and a curve appends its flattened
// chords starting from the previous point. Polylines with fewer than two
// points are dropped, as are ops carrying non-finite points. A move with a
// non-finite point drops the rest of its subpath.
func Flatten(ops []rough.Op, tolerance float64) iter.Seq[Polyline] {
	tolerance = normalize(tolerance)

	return func(yield func(Polyline) bool) {
		var cur Polyline
		skip := false
		flush := func() bool {
			line := cur
			cur = nil
			if len(line) < 2 {
				return true
			}
			return yield(line)
		}

		for _, op := range ops {
			switch op.Kind {
			case rough.OpMove:
				if !flush() {
					return
				}
				skip = len(op.Points) < 1 || !op.Points[0].Finite()
				if !skip {
					cur = Polyline{op.Points[0]}
				}
			case rough.OpLineTo:
				if skip || len(op.Points) < 1 || !op.Points[0].Finite() {
					continue
				}
				cur = appendPoint(cur, op.Points[0])
			case rough.OpCurveTo:
				if skip || len(op.Points) < 3 || !allFinite(op.Points[:3]) {
					continue
				}
				c1, c2, end := op.Points[0], op.Points[1], op.Points[2]
				if len(cur) == 0 {
					cur = Polyline{end}
					continue
				}
				cur = appendCubic(cur, cur[len(cur)-1], c1, c2, end, tolerance)
			}
		}
		flush()
	}
}

// FlattenSet flattens the ops of a single set.
func FlattenSet(set rough.OpSet, tolerance float64) iter.Seq[Polyline] {
	return Flatten(set.Ops, tolerance)
}

// Collect flattens ops into a slice.
func Collect(ops []rough.Op, tolerance float64) []Polyline {
	return slices.Collect(Flatten(ops, tolerance))
}

// CubicSteps returns the number of uniform steps needed to keep a cubic
// within tolerance of its chords.
//
// With step h the chord error is bounded by h²/8 times the largest second
// derivative, and for a cubic that maximum is 6 times the larger second
// difference of its control polygon.
func CubicSteps(p0, c1, c2, p3 geom.Point, tolerance float64) int {
	tolerance = normalize(tolerance)
	d1 := p0.Sub(c1.Scale(2)).Add(c2)
	d2 := c1.Sub(c2.Scale(2)).Add(p3)
	m := 6 * max(math.Hypot(d1.X, d1.Y), math.Hypot(d2.X, d2.Y))

	n := math.Ceil(math.Sqrt(m / (8 * tolerance)))
	if !(n >= 1) {
		return 1
	}
	return int(min(n, MaxSteps))
}

// Cubic evaluates the Bezier curve at t.
func Cubic(p0, c1, c2, p3 geom.Point, t float64) geom.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return geom.Pt(
		a*p0.X+b*c1.X+c*c2.X+d*p3.X,
		a*p0.Y+b*c1.Y+c*c2.Y+d*p3.Y,
	)
}

func appendCubic(line Polyline, p0, c1, c2, p3 geom.Point, tolerance float64) Polyline {
	if p0 == c1 && c1 == c2 && c2 == p3 {
		return line
	}
	n := CubicSteps(p0, c1, c2, p3, tolerance)
	for i := 1; i <= n; i++ {
		var p geom.Point
		if i == n {
			p = p3
		} else {
			p = Cubic(p0, c1, c2, p3, float64(i)/float64(n))
		}
		if p.Finite() {
			line = appendPoint(line, p)
		}
	}
	return line
}

// appendPoint adds p unless it repeats the last point.
func appendPoint(line Polyline, p geom.Point) Polyline {
	if len(line) > 0 && line[len(line)-1] == p {
		return line
	}
	return append(line, p)
}

func allFinite(pts []geom.Point) bool {
	for _, p := range pts {
		if !p.Finite() {
			return false
		}
	}
	return true
}

func normalize(tolerance float64) float64 {
	if !(tolerance > 0) || math.IsInf(tolerance, 0) {
		return DefaultTolerance
	}
	return max(tolerance, MinTolerance)
}
