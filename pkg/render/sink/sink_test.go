package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/tilesketch/pkg/flatten"
	"github.com/matzehuels/tilesketch/pkg/geom"
	"github.com/matzehuels/tilesketch/pkg/layout"
	"github.com/matzehuels/tilesketch/pkg/rough"
	"github.com/matzehuels/tilesketch/pkg/sketch"
)

func testFrame(t *testing.T) sketch.Frame {
	t.Helper()
	l := layout.Generate(geom.Canvas(200, 100), layout.Config{Rows: 1, Cols: 2},
		layout.NewSequencePicker(geom.Circle, geom.Triangle))
	p := sketch.DefaultParams()
	p.Seed = 3
	p.FillStyles = []rough.FillStyle{rough.Hachure}
	f := sketch.Paint(l, p)
	if len(f.Cells) != 2 {
		t.Fatalf("cells = %d, want 2", len(f.Cells))
	}
	return f
}

func TestRenderSVG(t *testing.T) {
	f := testFrame(t)
	out := string(RenderSVG(f, WithTitle("demo")))

	for _, want := range []string{"<svg", `width="200"`, `height="100"`, "<title>demo</title>", `id="cell-0"`, `id="cell-1"`, "fill:#ffffff"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	// one hachure set plus one stroke set per cell
	if got := strings.Count(out, "<path"); got != 4 {
		t.Errorf("paths = %d, want 4", got)
	}
	if strings.Contains(out, "debug-grid") {
		t.Error("grid drawn without WithGrid")
	}
}

func TestRenderSVGGrid(t *testing.T) {
	out := string(RenderSVG(testFrame(t), WithGrid(50)))
	if !strings.Contains(out, `id="debug-grid"`) {
		t.Error("missing debug grid group")
	}
	if !strings.Contains(out, "stroke:#e04040") {
		t.Error("missing crosshair")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(testFrame(t))
	b := RenderSVG(testFrame(t))
	if !bytes.Equal(a, b) {
		t.Error("same frame rendered differently")
	}
}

func TestRenderSVGEmptyFrame(t *testing.T) {
	out := string(RenderSVG(sketch.Frame{Canvas: geom.Canvas(10, 10)}))
	if !strings.Contains(out, "<svg") || strings.Contains(out, "<path") {
		t.Errorf("unexpected empty frame output: %s", out)
	}
}

func TestPathData(t *testing.T) {
	lines := []flatten.Polyline{
		{geom.Pt(0, 0), geom.Pt(1.5, 2)},
		{geom.Pt(3, 4), geom.Pt(5, 6)},
	}
	want := "M0.00 0.00 L1.50 2.00 M3.00 4.00 L5.00 6.00"
	if got := pathData(lines); got != want {
		t.Errorf("pathData() = %q, want %q", got, want)
	}
	if got := pathData(nil); got != "" {
		t.Errorf("pathData(nil) = %q, want empty", got)
	}
}

func TestToImage(t *testing.T) {
	canvas := geom.Canvas(200, 100)
	got := toImage(canvas, flatten.Polyline{geom.Pt(-100, 50), geom.Pt(100, -50), geom.Pt(0, 0)})
	want := flatten.Polyline{geom.Pt(0, 0), geom.Pt(200, 100), geom.Pt(100, 50)}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGridLines(t *testing.T) {
	canvas := geom.Canvas(100, 100)
	grid, cross := gridLines(canvas, 25)
	// x = 0, 25, 50, 75, 100 and the same for y
	if len(grid) != 10 {
		t.Errorf("grid lines = %d, want 10", len(grid))
	}
	if len(cross) != 2 || cross[0][0] != geom.Pt(50, 0) {
		t.Errorf("crosshair = %v", cross)
	}
	if g, c := gridLines(canvas, 0.5); g != nil || c != nil {
		t.Error("sub-unit step should disable the grid")
	}
}

func TestStrokesSkipsFillRegion(t *testing.T) {
	f := testFrame(t)
	d := &f.Cells[0].Drawable
	d.Sets = append([]rough.OpSet{{Kind: rough.SetFillRegion, Ops: []rough.Op{
		rough.MoveTo(geom.Pt(0, 0)), rough.LineTo(geom.Pt(1, 1)),
	}}}, d.Sets...)

	for s := range strokes(f, flatten.DefaultTolerance, discardLogger()) {
		if s.kind == rough.SetFillRegion {
			t.Fatal("fill region was yielded")
		}
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testFrame(t), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if !bytes.HasPrefix(data, sig) {
		t.Errorf("output does not start with the PNG signature: % x", data[:min(8, len(data))])
	}
}

func TestRenderPNGInvalid(t *testing.T) {
	tests := []struct {
		name  string
		frame sketch.Frame
		opts  []PNGOption
	}{
		{"zero scale", sketch.Frame{Canvas: geom.Canvas(10, 10)}, []PNGOption{WithScale(0)}},
		{"empty canvas", sketch.Frame{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RenderPNG(tt.frame, tt.opts...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	f := testFrame(t)
	data, err := RenderJSON(f, WithJSONSeed(3))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var out struct {
		Width      float64 `json:"width"`
		Height     float64 `json:"height"`
		Background string  `json:"background"`
		Seed       *uint64 `json:"seed"`
		Cells      []struct {
			Shape string `json:"shape"`
			Style struct {
				FillStyle string `json:"fill_style"`
				FillColor string `json:"fill_color"`
			} `json:"style"`
			Sets []struct {
				Kind string `json:"kind"`
				Ops  []struct {
					Op string `json:"op"`
				} `json:"ops"`
			} `json:"sets"`
		} `json:"cells"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Width != 200 || out.Height != 100 {
		t.Errorf("size = %vx%v, want 200x100", out.Width, out.Height)
	}
	if out.Background != "#ffffff" {
		t.Errorf("background = %q, want #ffffff", out.Background)
	}
	if out.Seed == nil || *out.Seed != 3 {
		t.Errorf("seed = %v, want 3", out.Seed)
	}
	if len(out.Cells) != 2 {
		t.Fatalf("cells = %d, want 2", len(out.Cells))
	}
	if out.Cells[0].Shape != "circle" || out.Cells[1].Shape != "triangle" {
		t.Errorf("shapes = %q, %q", out.Cells[0].Shape, out.Cells[1].Shape)
	}
	for i, c := range out.Cells {
		if c.Style.FillStyle != "hachure" {
			t.Errorf("cell %d fill style = %q", i, c.Style.FillStyle)
		}
		if len(c.Sets) != 2 || c.Sets[len(c.Sets)-1].Kind != "stroke" {
			t.Errorf("cell %d sets malformed", i)
			continue
		}
		if c.Sets[1].Ops[0].Op != "move" {
			t.Errorf("cell %d stroke starts with %q, want move", i, c.Sets[1].Ops[0].Op)
		}
	}
}

func TestRenderJSONSummary(t *testing.T) {
	data, err := RenderJSON(testFrame(t), WithJSONSummary())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte(`"sets"`)) || bytes.Contains(data, []byte(`"seed"`)) {
		t.Errorf("summary output contains ops or seed:\n%s", data)
	}
}
