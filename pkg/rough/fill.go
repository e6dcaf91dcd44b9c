package rough

import (
	"math"

	"github.com/matzehuels/tilesketch/pkg/geom"
)

// fill hatches polygon in the given style. Cross-hatch yields two sets,
// every other style one.
func (p *pen) fill(style FillStyle, polygon []geom.Point) []OpSet {
	polys := [][]geom.Point{polygon}
	set := func(ops []Op) OpSet { return OpSet{Kind: SetFill, Ops: ops} }

	switch style {
	case CrossHatch:
		first := p.hachure(polys, p.o.HachureAngle)
		second := p.hachure(polys, p.o.HachureAngle+90)
		return []OpSet{set(first), set(second)}
	case Dots:
		return []OpSet{set(p.dots(polys))}
	case Dashed:
		return []OpSet{set(p.dashed(polys))}
	case ZigZag:
		return []OpSet{set(p.zigzag(polys))}
	case ZigZagLine:
		return []OpSet{set(p.zigzagLine(polys))}
	default:
		return []OpSet{set(p.hachure(polys, p.o.HachureAngle))}
	}
}

func (p *pen) renderLines(lines []segment) []Op {
	var ops []Op
	for _, l := range lines {
		ops = append(ops, p.doubleLine(l[0], l[1], true)...)
	}
	return ops
}

func (p *pen) hachure(polys [][]geom.Point, angle float64) []Op {
	return p.renderLines(hachureLines(polys, angle, p.o.HachureGap))
}

// dots scatters small rough ellipses along vertical hatch lines.
func (p *pen) dots(polys [][]geom.Point) []Op {
	gap := p.o.HachureGap
	weight := p.o.FillWeight
	ro := gap / 4

	var ops []Op
	for _, l := range hachureLines(polys, 0, gap) {
		length := l.length()
		count := int(math.Ceil(length/gap)) - 1
		offset := length - float64(count)*gap
		x := (l[0].X+l[1].X)/2 - gap/4
		minY := min(l[0].Y, l[1].Y)
		for i := range count {
			y := minY + offset + float64(i)*gap
			cx := x - ro + p.random()*2*ro
			cy := y - ro + p.random()*2*ro
			dot, _ := p.ellipse(geom.Pt(cx, cy), p.ellipseFit(weight, weight))
			ops = append(ops, dot...)
		}
	}
	return ops
}

// orient returns the leftmost endpoint of l and the unit direction towards
// the other one.
func orient(l segment) (geom.Point, geom.Point) {
	a, b := l[0], l[1]
	if a.X > b.X {
		a, b = b, a
	}
	return a, b.Sub(a).Scale(1 / a.Dist(b))
}

// dashed breaks each hatch line into centered dashes.
func (p *pen) dashed(polys [][]geom.Point) []Op {
	dash, gap := p.o.DashOffset, p.o.DashGap

	var ops []Op
	for _, l := range hachureLines(polys, p.o.HachureAngle, p.o.HachureGap) {
		length := l.length()
		count := int(math.Floor(length / (dash + gap)))
		start := (length + gap - float64(count)*(dash+gap)) / 2
		a, dir := orient(l)
		for i := range count {
			from := start + float64(i)*(dash+gap)
			ops = append(ops, p.doubleLine(a.Add(dir.Scale(from)), a.Add(dir.Scale(from+dash)), true)...)
		}
	}
	return ops
}

// zigzag turns each hatch line into a V of two lines meeting at its end.
func (p *pen) zigzag(polys [][]geom.Point) []Op {
	gap := p.o.HachureGap
	s, c := math.Sincos(p.o.HachureAngle * math.Pi / 180)
	d := geom.Pt(gap*0.5*c, -gap*0.5*s)

	var lines []segment
	for _, l := range hachureLines(polys, p.o.HachureAngle, gap) {
		lines = append(lines,
			segment{l[0].Sub(d), l[1]},
			segment{l[0].Add(d), l[1]},
		)
	}
	return p.renderLines(lines)
}

// zigzagLine draws teeth along hatch lines spaced to leave room for them.
func (p *pen) zigzagLine(polys [][]geom.Point) []Op {
	zo := p.o.ZigzagOffset
	tooth := math.Sqrt(2 * zo * zo)

	var ops []Op
	for _, l := range hachureLines(polys, p.o.HachureAngle, p.o.HachureGap+zo) {
		count := int(math.Round(l.length() / (2 * zo)))
		a, dir := orient(l)
		peak := geom.Pt((dir.X-dir.Y)/math.Sqrt2, (dir.Y+dir.X)/math.Sqrt2).Scale(tooth)
		for i := range count {
			from := a.Add(dir.Scale(float64(i) * 2 * zo))
			to := a.Add(dir.Scale(float64(i+1) * 2 * zo))
			mid := from.Add(peak)
			ops = append(ops, p.doubleLine(from, mid, true)...)
			ops = append(ops, p.doubleLine(mid, to, true)...)
		}
	}
	return ops
}
