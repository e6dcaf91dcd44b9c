package rough

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/tilesketch/pkg/geom"
)

// pen draws rough primitives from one random source, so the sequence of
// draws is a function of the seed alone.
type pen struct {
	o   Options
	rng *rand.Rand
}

func newPen(o Options, seed uint64) *pen {
	return &pen{o: o, rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

func (p *pen) random() float64 { return p.rng.Float64() }

// offset returns a jitter in [lo, hi) scaled by roughness and gain.
func (p *pen) offset(lo, hi, gain float64) float64 {
	return p.o.Roughness * gain * (p.random()*(hi-lo) + lo)
}

func (p *pen) offsetOpt(x, gain float64) float64 { return p.offset(-x, x, gain) }

// roughnessGain damps jitter on long edges.
func roughnessGain(length float64) float64 {
	switch {
	case length < 200:
		return 1
	case length > 500:
		return 0.4
	default:
		return -0.0016668*length + 1.233334
	}
}

// line draws a single bowed cubic from a to b. The overlay pass uses half
// the jitter of the first pass.
func (p *pen) line(a, b geom.Point, move, overlay bool) []Op {
	lengthSq := (a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y)
	length := math.Sqrt(lengthSq)
	gain := roughnessGain(length)

	offset := p.o.MaxRandomnessOffset
	if offset*offset*100 > lengthSq {
		offset = length / 10
	}
	if overlay {
		offset /= 2
	}

	diverge := 0.2 + p.random()*0.2
	midX := p.offsetOpt(p.o.Bowing*p.o.MaxRandomnessOffset*(b.Y-a.Y)/200, gain)
	midY := p.offsetOpt(p.o.Bowing*p.o.MaxRandomnessOffset*(a.X-b.X)/200, gain)

	jitter := func() float64 { return p.offsetOpt(offset, gain) }
	vertex := func() float64 {
		if p.o.PreserveVertices {
			return 0
		}
		return jitter()
	}

	ops := make([]Op, 0, 2)
	if move {
		ops = append(ops, MoveTo(geom.Pt(a.X+vertex(), a.Y+vertex())))
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	c1 := geom.Pt(midX+a.X+dx*diverge+jitter(), midY+a.Y+dy*diverge+jitter())
	c2 := geom.Pt(midX+a.X+2*dx*diverge+jitter(), midY+a.Y+2*dy*diverge+jitter())
	end := geom.Pt(b.X+vertex(), b.Y+vertex())
	return append(ops, CurveTo(c1, c2, end))
}

// doubleLine draws a line twice with independent jitter unless multi-stroke
// is disabled for the current role.
func (p *pen) doubleLine(a, b geom.Point, filling bool) []Op {
	single := p.o.DisableMultiStroke
	if filling {
		single = p.o.DisableMultiStrokeFill
	}
	ops := p.line(a, b, true, false)
	if single {
		return ops
	}
	return append(ops, p.line(a, b, true, true)...)
}

// linearPath connects points with double lines, closing back to the first
// point when close is set.
func (p *pen) linearPath(points []geom.Point, close bool) []Op {
	n := len(points)
	switch {
	case n > 2:
		var ops []Op
		for i := 0; i < n-1; i++ {
			ops = append(ops, p.doubleLine(points[i], points[i+1], false)...)
		}
		if close {
			ops = append(ops, p.doubleLine(points[n-1], points[0], false)...)
		}
		return ops
	case n == 2:
		return p.doubleLine(points[0], points[1], false)
	}
	return nil
}
