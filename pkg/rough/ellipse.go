package rough

import (
	"math"

	"github.com/matzehuels/tilesketch/pkg/geom"
)

type ellipseParams struct {
	increment float64
	rx, ry    float64
}

// ellipseFit picks the angular step from a perimeter estimate and
// jitters the radii by the curve fitting slack.
func (p *pen) ellipseFit(w, h float64) ellipseParams {
	psq := math.Sqrt(2 * math.Pi * math.Sqrt((math.Pow(w/2, 2)+math.Pow(h/2, 2))/2))
	steps := math.Ceil(max(p.o.CurveStepCount, p.o.CurveStepCount/math.Sqrt(200)*psq))

	rx, ry := math.Abs(w/2), math.Abs(h/2)
	slack := 1 - p.o.CurveFitting
	rx += p.offsetOpt(rx*slack, 1)
	ry += p.offsetOpt(ry*slack, 1)

	return ellipseParams{increment: 2 * math.Pi / steps, rx: rx, ry: ry}
}

// ellipse returns the outline ops and the estimated boundary points used
// for hatching.
func (p *pen) ellipse(c geom.Point, ep ellipseParams) ([]Op, []geom.Point) {
	overlap := ep.increment * p.offset(0.1, p.offset(0.4, 1, 1), 1)
	all, core := p.ellipsePoints(c, ep, 1, overlap)
	ops := p.curve(all)
	if !p.o.DisableMultiStroke && p.o.Roughness != 0 {
		second, _ := p.ellipsePoints(c, ep, 1.5, 0)
		ops = append(ops, p.curve(second)...)
	}
	return ops, core
}

// ellipsePoints samples the ellipse. all carries extra lead-in and overlap
// points for curve fitting; core holds one point per step.
func (p *pen) ellipsePoints(c geom.Point, ep ellipseParams, offset, overlap float64) (all, core []geom.Point) {
	at := func(angle, scale, jitter float64) geom.Point {
		jx := 0.0
		jy := 0.0
		if jitter != 0 {
			jx = p.offsetOpt(jitter, 1)
			jy = p.offsetOpt(jitter, 1)
		}
		return geom.Pt(jx+c.X+scale*ep.rx*math.Cos(angle), jy+c.Y+scale*ep.ry*math.Sin(angle))
	}

	if p.o.Roughness == 0 {
		inc := ep.increment / 4
		all = append(all, at(-inc, 1, 0))
		for angle := 0.0; angle <= 2*math.Pi; angle += inc {
			pt := at(angle, 1, 0)
			core = append(core, pt)
			all = append(all, pt)
		}
		all = append(all, at(0, 1, 0), at(inc, 1, 0))
		return all, core
	}

	start := p.offsetOpt(0.5, 1) - math.Pi/2
	all = append(all, at(start-ep.increment, 0.9, offset))
	end := 2*math.Pi + start - 0.01
	for angle := start; angle < end; angle += ep.increment {
		pt := at(angle, 1, offset)
		core = append(core, pt)
		all = append(all, pt)
	}
	all = append(all,
		at(start+2*math.Pi+overlap*0.5, 1, offset),
		at(start+overlap, 0.98, offset),
		at(start+overlap*0.5, 0.9, offset),
	)
	return all, core
}

// curve fits cubic segments through points, skipping the first and last
// point which only steer the tangents.
func (p *pen) curve(points []geom.Point) []Op {
	n := len(points)
	switch {
	case n > 3:
		s := 1 - p.o.CurveTightness
		ops := make([]Op, 0, n-2)
		ops = append(ops, MoveTo(points[1]))
		for i := 1; i+2 < n; i++ {
			prev, cur, next, after := points[i-1], points[i], points[i+1], points[i+2]
			c1 := geom.Pt(cur.X+(s*next.X-s*prev.X)/6, cur.Y+(s*next.Y-s*prev.Y)/6)
			c2 := geom.Pt(next.X+(s*cur.X-s*after.X)/6, next.Y+(s*cur.Y-s*after.Y)/6)
			ops = append(ops, CurveTo(c1, c2, next))
		}
		return ops
	case n == 3:
		return []Op{MoveTo(points[1]), CurveTo(points[1], points[2], points[2])}
	case n == 2:
		return p.line(points[0], points[1], true, true)
	}
	return nil
}
