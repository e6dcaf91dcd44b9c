package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/tilesketch/pkg/geom"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestGenerateRowCount(t *testing.T) {
	cfg := DefaultConfig()
	l := Generate(geom.Canvas(450, 600), cfg, NewRandomPicker(7, cfg.Weights))

	if got := len(l.Rows); got != cfg.Rows {
		t.Fatalf("rows = %d, want %d", got, cfg.Rows)
	}
	for i, row := range l.Rows {
		if len(row) < 1 || len(row) > cfg.Cols {
			t.Errorf("row %d has %d items, want 1..%d", i, len(row), cfg.Cols)
		}
		for _, it := range row {
			if it.Bounds.Empty() {
				t.Errorf("row %d: empty bounds %+v", i, it.Bounds)
			}
		}
	}
}

func TestGenerateTwoByTwo(t *testing.T) {
	cfg := Config{Rows: 2, Cols: 2}
	l := Generate(geom.Canvas(600, 800), cfg, NewSequencePicker(geom.Circle))

	want := [][2]float64{{-150, -200}, {150, -200}, {-150, 200}, {150, 200}}
	var got []layoutCenter
	for it := range l.Items() {
		if !near(it.Bounds.W, 300) || !near(it.Bounds.H, 400) {
			t.Errorf("size = %vx%v, want 300x400", it.Bounds.W, it.Bounds.H)
		}
		got = append(got, layoutCenter{it.Bounds.X, it.Bounds.Y})
	}
	if len(got) != len(want) {
		t.Fatalf("items = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !near(got[i].x, want[i][0]) || !near(got[i].y, want[i][1]) {
			t.Errorf("item %d center = (%v, %v), want (%v, %v)", i, got[i].x, got[i].y, want[i][0], want[i][1])
		}
	}
}

type layoutCenter struct{ x, y float64 }

func TestGenerateRowsBottomToTop(t *testing.T) {
	l := Generate(geom.Canvas(100, 100), Config{Rows: 4, Cols: 1}, NewSequencePicker(geom.Triangle))
	for i := 1; i < len(l.Rows); i++ {
		if l.Rows[i][0].Bounds.Y <= l.Rows[i-1][0].Bounds.Y {
			t.Errorf("row %d at y=%v is not above row %d at y=%v", i, l.Rows[i][0].Bounds.Y, i-1, l.Rows[i-1][0].Bounds.Y)
		}
	}
}

func TestGenerateOffsetCanvas(t *testing.T) {
	canvas := geom.FromEdges(0, 200, 0, 100)
	l := Generate(canvas, Config{Rows: 1, Cols: 2}, NewSequencePicker(geom.Circle))
	row := l.Rows[0]
	if !near(row[0].Bounds.Left(), 0) || !near(row[1].Bounds.Right(), 200) {
		t.Errorf("row spans [%v, %v], want [0, 200]", row[0].Bounds.Left(), row[1].Bounds.Right())
	}
}

func TestGenerateAllSquaresMerge(t *testing.T) {
	l := Generate(geom.Canvas(300, 100), Config{Rows: 1, Cols: 3}, NewSequencePicker(geom.Square))
	if l.Len() != 1 {
		t.Fatalf("items = %d, want 1", l.Len())
	}
	b := l.Rows[0][0].Bounds
	if !near(b.W, 300) || !near(b.Left(), -150) || !near(b.Right(), 150) {
		t.Errorf("merged bounds = %+v, want width 300 spanning [-150, 150]", b)
	}
}

func TestGenerateNoMerge(t *testing.T) {
	l := Generate(geom.Canvas(300, 100), Config{Rows: 1, Cols: 3, NoMerge: true}, NewSequencePicker(geom.Square))
	if l.Len() != 3 {
		t.Errorf("items = %d, want 3", l.Len())
	}
}

func TestGenerateGap(t *testing.T) {
	l := Generate(geom.Canvas(400, 100), Config{Rows: 1, Cols: 4, Gap: 5}, NewSequencePicker(geom.Circle))
	for it := range l.Items() {
		if !near(it.Bounds.W, 100-2*5) || !near(it.Bounds.H, 100-2*5) {
			t.Errorf("padded size = %vx%v, want 90x90", it.Bounds.W, it.Bounds.H)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	tests := []struct {
		name   string
		canvas geom.Rect
		cfg    Config
	}{
		{"zero rows", geom.Canvas(100, 100), Config{Rows: 0, Cols: 3}},
		{"zero cols", geom.Canvas(100, 100), Config{Rows: 3, Cols: 0}},
		{"negative rows", geom.Canvas(100, 100), Config{Rows: -2, Cols: 3}},
		{"empty canvas", geom.Canvas(0, 100), Config{Rows: 3, Cols: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Generate(tt.canvas, tt.cfg, nil)
			if l.Len() != 0 {
				t.Errorf("items = %d, want 0", l.Len())
			}
			if l.Rows == nil {
				t.Error("Rows is nil, want empty slice")
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a := Generate(geom.Canvas(450, 600), cfg, NewRandomPicker(99, cfg.Weights))
	b := Generate(geom.Canvas(450, 600), cfg, NewRandomPicker(99, cfg.Weights))

	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Rows {
		for j := range a.Rows[i] {
			if a.Rows[i][j] != b.Rows[i][j] {
				t.Fatalf("item [%d][%d] differs: %+v vs %+v", i, j, a.Rows[i][j], b.Rows[i][j])
			}
		}
	}
}

func TestGenerateOversizedInsets(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"huge padding", Config{PagePadding: 500, Rows: 3, Cols: 3}},
		{"huge gap", Config{Rows: 3, Cols: 3, Gap: 80}},
		{"both", Config{PagePadding: 1000, Rows: 10, Cols: 10, Gap: 1000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Generate(geom.Canvas(200, 300), tt.cfg, NewSequencePicker(geom.Circle, geom.Triangle))
			if l.Len() == 0 {
				t.Fatal("expected items")
			}
			if len(l.Notes) == 0 {
				t.Error("expected clamp notes")
			}
			for it := range l.Items() {
				if it.Bounds.Empty() {
					t.Errorf("empty bounds %+v", it.Bounds)
				}
			}
		})
	}
}

func TestItemsEarlyStop(t *testing.T) {
	l := Generate(geom.Canvas(100, 100), Config{Rows: 3, Cols: 3, NoMerge: true}, nil)
	n := 0
	for range l.Items() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d items, want 2", n)
	}
}
