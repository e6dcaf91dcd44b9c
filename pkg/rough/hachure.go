package rough

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/tilesketch/pkg/geom"
)

type segment [2]geom.Point

func (s segment) length() float64 { return s[0].Dist(s[1]) }

// hachureLines fills polygons with parallel segments. The polygons are
// rotated so the hatch direction becomes horizontal, scanned, and the
// resulting segments rotated back.
func hachureLines(polygons [][]geom.Point, angleDeg, gap float64) []segment {
	rot := angleDeg + 90

	rotated := make([][]geom.Point, len(polygons))
	for i, poly := range polygons {
		rotated[i] = make([]geom.Point, len(poly))
		for j, pt := range poly {
			rotated[i][j] = rotate(pt, rot)
		}
	}

	lines := scanlines(rotated, gap)
	for i := range lines {
		lines[i][0] = rotate(lines[i][0], -rot)
		lines[i][1] = rotate(lines[i][1], -rot)
	}
	return lines
}

// rotate turns p about the origin by deg degrees.
func rotate(p geom.Point, deg float64) geom.Point {
	s, c := math.Sincos(deg * math.Pi / 180)
	return geom.Pt(p.X*c-p.Y*s, p.X*s+p.Y*c)
}

type edge struct {
	ymin, ymax float64
	x          float64
	islope     float64
}

// scanlines intersects polygons with horizontal lines gap apart using an
// active edge table. Inside spans are paired by even-odd rule.
func scanlines(polygons [][]geom.Point, gap float64) []segment {
	gap = max(gap, minHachureGap)

	var edges []edge
	for _, poly := range polygons {
		v := poly
		if len(v) > 0 && v[0] != v[len(v)-1] {
			v = append(slices.Clip(v), v[0])
		}
		if len(v) <= 2 {
			continue
		}
		for i := 0; i+1 < len(v); i++ {
			a, b := v[i], v[i+1]
			if !a.Finite() || !b.Finite() || a.Y == b.Y {
				continue
			}
			e := edge{
				ymin:   min(a.Y, b.Y),
				ymax:   max(a.Y, b.Y),
				islope: (b.X - a.X) / (b.Y - a.Y),
			}
			if e.ymin == a.Y {
				e.x = a.X
			} else {
				e.x = b.X
			}
			edges = append(edges, e)
		}
	}
	if len(edges) == 0 {
		return nil
	}

	slices.SortFunc(edges, func(a, b edge) int {
		return cmp.Or(cmp.Compare(a.ymin, b.ymin), cmp.Compare(a.x, b.x), cmp.Compare(a.ymax, b.ymax))
	})

	var (
		lines  []segment
		active []edge
		y      = edges[0].ymin
	)
	for len(active) > 0 || len(edges) > 0 {
		n := 0
		for n < len(edges) && edges[n].ymin <= y {
			n++
		}
		for _, e := range edges[:n] {
			e.x += (y - e.ymin) * e.islope
			active = append(active, e)
		}
		edges = edges[n:]

		active = slices.DeleteFunc(active, func(e edge) bool { return e.ymax <= y })
		slices.SortFunc(active, func(a, b edge) int { return cmp.Compare(a.x, b.x) })

		for i := 0; i+1 < len(active); i += 2 {
			s := segment{geom.Pt(active[i].x, y), geom.Pt(active[i+1].x, y)}
			if s.length() > 0 {
				lines = append(lines, s)
			}
		}

		y += gap
		for i := range active {
			active[i].x += gap * active[i].islope
		}
	}
	return lines
}
