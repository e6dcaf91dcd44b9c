package rough

import (
	"fmt"

	"github.com/matzehuels/tilesketch/pkg/geom"
)

// OpKind identifies a path operation.
type OpKind int

const (
	OpMove OpKind = iota
	OpLineTo
	OpCurveTo
)

var opKindNames = [...]string{OpMove: "move", OpLineTo: "line-to", OpCurveTo: "curve-to"}

func (k OpKind) String() string {
	if k >= 0 && int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k OpKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Op is a single path operation. Move and LineTo carry one point; CurveTo
// carries the first control point, the second control point and the end
// point of a cubic Bezier starting at the previous point.
type Op struct {
	Kind   OpKind       `json:"op"`
	Points []geom.Point `json:"points"`
}

// MoveTo starts a new subpath at p.
func MoveTo(p geom.Point) Op { return Op{Kind: OpMove, Points: []geom.Point{p}} }

// LineTo draws a straight segment to p.
func LineTo(p geom.Point) Op { return Op{Kind: OpLineTo, Points: []geom.Point{p}} }

// CurveTo draws a cubic Bezier to end.
func CurveTo(c1, c2, end geom.Point) Op {
	return Op{Kind: OpCurveTo, Points: []geom.Point{c1, c2, end}}
}

// End returns the point the op leaves the pen at.
func (o Op) End() (geom.Point, bool) {
	if len(o.Points) == 0 {
		return geom.Point{}, false
	}
	return o.Points[len(o.Points)-1], true
}

// SetKind tags the role of an OpSet.
type SetKind int

const (
	// SetStroke traces the shape outline.
	SetStroke SetKind = iota
	// SetFill holds hatch strokes drawn in the fill color.
	SetFill
	// SetFillRegion marks a solid fill boundary. Generators never emit it
	// and sinks skip it.
	SetFillRegion
)

var setKindNames = [...]string{SetStroke: "stroke", SetFill: "fill", SetFillRegion: "fill-region"}

func (k SetKind) String() string {
	if k >= 0 && int(k) < len(setKindNames) {
		return setKindNames[k]
	}
	return fmt.Sprintf("SetKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k SetKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// OpSet is an ordered op sequence with a role.
type OpSet struct {
	Kind SetKind `json:"kind"`
	Ops  []Op    `json:"ops"`
}

// Drawable is everything needed to draw one shape. Fill sets come first
// and the stroke set last, so outlines are painted over hatching.
type Drawable struct {
	Shape   geom.ShapeKind `json:"shape"`
	Bounds  geom.Rect      `json:"bounds"`
	Style   Style          `json:"style"`
	Options Options        `json:"options"`
	Sets    []OpSet        `json:"sets"`
}

// FillSets returns the sets drawn in the fill color.
func (d Drawable) FillSets() []OpSet {
	var out []OpSet
	for _, s := range d.Sets {
		if s.Kind == SetFill {
			out = append(out, s)
		}
	}
	return out
}

// Stroke returns the outline set, if any.
func (d Drawable) Stroke() (OpSet, bool) {
	for _, s := range d.Sets {
		if s.Kind == SetStroke {
			return s, true
		}
	}
	return OpSet{}, false
}
