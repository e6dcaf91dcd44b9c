package rough

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/tilesketch/pkg/geom"
)

var testBounds = geom.FromXYWH(10, -20, 120, 80)

func allPoints(sets []OpSet) []geom.Point {
	var pts []geom.Point
	for _, s := range sets {
		for _, op := range s.Ops {
			pts = append(pts, op.Points...)
		}
	}
	return pts
}

func TestRenderShapeDeterministic(t *testing.T) {
	g := New(DefaultOptions())
	for _, kind := range []geom.ShapeKind{geom.Square, geom.Circle, geom.Triangle} {
		for _, fs := range FillStyles {
			t.Run(kind.String()+"/"+fs.String(), func(t *testing.T) {
				style := Style{Seed: 42, FillStyle: fs}
				a := g.RenderShape(kind, testBounds, style)
				b := g.RenderShape(kind, testBounds, style)
				if !reflect.DeepEqual(a, b) {
					t.Error("same seed produced different drawables")
				}
			})
		}
	}
}

func TestRenderShapeSeedChangesOutput(t *testing.T) {
	g := New(DefaultOptions())
	a := g.RenderShape(geom.Square, testBounds, Style{Seed: 1})
	b := g.RenderShape(geom.Square, testBounds, Style{Seed: 2})
	if reflect.DeepEqual(a.Sets, b.Sets) {
		t.Error("different seeds produced identical ops")
	}
}

func TestRenderShapeSetLayout(t *testing.T) {
	g := New(DefaultOptions())
	tests := []struct {
		style     FillStyle
		wantFills int
	}{
		{Hachure, 1},
		{CrossHatch, 2},
		{Dots, 1},
		{Dashed, 1},
		{ZigZag, 1},
		{ZigZagLine, 1},
	}
	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			d := g.RenderShape(geom.Circle, testBounds, Style{Seed: 3, FillStyle: tt.style})
			if got := len(d.FillSets()); got != tt.wantFills {
				t.Errorf("fill sets = %d, want %d", got, tt.wantFills)
			}
			last := d.Sets[len(d.Sets)-1]
			if last.Kind != SetStroke {
				t.Errorf("last set kind = %v, want stroke", last.Kind)
			}
			for _, s := range d.FillSets() {
				if len(s.Ops) == 0 {
					t.Error("empty fill set")
				}
			}
			if d.Style.FillStyle != tt.style {
				t.Errorf("style = %v, want %v", d.Style.FillStyle, tt.style)
			}
		})
	}
}

func TestRenderShapeStaysNearBounds(t *testing.T) {
	g := New(DefaultOptions())
	// Jitter is bounded by a few units of max randomness offset and bowing.
	slack := testBounds.Pad(-12)
	for _, kind := range []geom.ShapeKind{geom.Square, geom.Circle, geom.Triangle} {
		d := g.RenderShape(kind, testBounds, Style{Seed: 9, FillStyle: CrossHatch})
		for _, p := range allPoints(d.Sets) {
			if !p.Finite() {
				t.Fatalf("%v: non-finite point %v", kind, p)
			}
			if !slack.Contains(p) {
				t.Errorf("%v: point %v far outside %+v", kind, p, testBounds)
			}
		}
	}
}

func TestRenderShapeOpsStartWithMove(t *testing.T) {
	g := New(DefaultOptions())
	for _, kind := range []geom.ShapeKind{geom.Square, geom.Circle, geom.Triangle} {
		d := g.RenderShape(kind, testBounds, Style{Seed: 5, FillStyle: Dots})
		for _, s := range d.Sets {
			if len(s.Ops) > 0 && s.Ops[0].Kind != OpMove {
				t.Errorf("%v %v set starts with %v", kind, s.Kind, s.Ops[0].Kind)
			}
		}
	}
}

func TestRenderShapeSmooth(t *testing.T) {
	opts := DefaultOptions()
	opts.Roughness = 0
	g := New(opts)

	d := g.RenderShape(geom.Square, testBounds, Style{Seed: 7})
	stroke, ok := d.Stroke()
	if !ok {
		t.Fatal("missing stroke set")
	}
	corners := testBounds.Corners()
	for _, op := range stroke.Ops {
		end, _ := op.End()
		found := false
		for _, c := range corners {
			if end.Dist(c) < 1e-9 {
				found = true
			}
		}
		if !found {
			t.Errorf("op %v ends at %v, not a corner", op.Kind, end)
		}
	}
}

func TestRenderShapeDegenerate(t *testing.T) {
	g := New(DefaultOptions())
	tests := []struct {
		name   string
		kind   geom.ShapeKind
		bounds geom.Rect
	}{
		{"zero width", geom.Square, geom.FromXYWH(0, 0, 0, 10)},
		{"nan center", geom.Circle, geom.FromXYWH(math.NaN(), 0, 10, 10)},
		{"infinite size", geom.Triangle, geom.FromXYWH(0, 0, math.Inf(1), 10)},
		{"unset shape", geom.Unset, testBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.RenderShape(tt.kind, tt.bounds, Style{})
			if len(d.Sets) != 0 {
				t.Errorf("sets = %d, want 0", len(d.Sets))
			}
		})
	}
}

func TestOptionsResolve(t *testing.T) {
	o := New(DefaultOptions()).Options()
	if o.FillWeight != 0.5 {
		t.Errorf("FillWeight = %v, want 0.5", o.FillWeight)
	}
	if o.HachureGap != 4 {
		t.Errorf("HachureGap = %v, want 4", o.HachureGap)
	}
	if o.DashOffset != 4 || o.DashGap != 4 || o.ZigzagOffset != 4 {
		t.Errorf("dash/zigzag = %v/%v/%v, want 4", o.DashOffset, o.DashGap, o.ZigzagOffset)
	}

	o = New(Options{StrokeWidth: -3, CurveStepCount: 0, CurveFitting: 2}).Options()
	if o.StrokeWidth != 1 || o.CurveStepCount != 9 || o.CurveFitting != 0.95 {
		t.Errorf("resolved = %+v", o)
	}
}

func TestParseFillStyle(t *testing.T) {
	for _, fs := range FillStyles {
		got, err := ParseFillStyle(fs.String())
		if err != nil || got != fs {
			t.Errorf("ParseFillStyle(%q) = %v, %v", fs.String(), got, err)
		}
	}
	if _, err := ParseFillStyle("solid"); err == nil {
		t.Error("ParseFillStyle(solid) succeeded, want error")
	}
}

func TestTrianglePoints(t *testing.T) {
	r := geom.FromXYWH(0, 0, 10, 20)
	got := TrianglePoints(r)
	want := []geom.Point{{X: -5, Y: -10}, {X: 5, Y: -10}, {X: 0, Y: 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TrianglePoints() = %v, want %v", got, want)
	}
}
