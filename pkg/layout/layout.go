package layout

import (
	"iter"

	"github.com/matzehuels/tilesketch/pkg/geom"
)

// Item pairs a shape with the rectangle it occupies.
type Item struct {
	Shape  geom.ShapeKind `json:"shape"`
	Bounds geom.Rect      `json:"bounds"`
}

// Layout is a generated grid. Rows run bottom-to-top, items left-to-right.
type Layout struct {
	Canvas geom.Rect `json:"canvas"`
	Config Config    `json:"config"`
	Rows   [][]Item  `json:"rows"`
	Notes  []string  `json:"notes,omitempty"`
}

// Len returns the total number of items across all rows.
func (l Layout) Len() int {
	n := 0
	for _, row := range l.Rows {
		n += len(row)
	}
	return n
}

// Items yields every item in row order.
func (l Layout) Items() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, row := range l.Rows {
			for _, it := range row {
				if !yield(it) {
					return
				}
			}
		}
	}
}

// Generate lays out canvas according to cfg, drawing shapes from picker.
// A nil picker uses NewRandomPicker(0, cfg.Weights).
func Generate(canvas geom.Rect, cfg Config, picker Picker) Layout {
	cfg, notes := cfg.Clamp(canvas)
	if picker == nil {
		picker = NewRandomPicker(0, cfg.Weights)
	}

	l := Layout{Canvas: canvas, Config: cfg, Rows: [][]Item{}, Notes: notes}

	region := canvas.Pad(float64(cfg.PagePadding))
	if cfg.Rows == 0 || cfg.Cols == 0 || region.Empty() {
		return l
	}

	rowH := region.H / float64(cfg.Rows)
	colW := region.W / float64(cfg.Cols)

	for r := range cfg.Rows {
		y := region.Bottom() + rowH*(float64(r)+0.5)

		cells := make([]Item, 0, cfg.Cols)
		for c := range cfg.Cols {
			x := region.Left() + colW*(float64(c)+0.5)
			cells = append(cells, Item{
				Shape:  picker.Pick(),
				Bounds: geom.FromXYWH(x, y, colW, rowH),
			})
		}

		if !cfg.NoMerge {
			cells = MergeRow(cells)
		}
		l.Rows = append(l.Rows, PadRow(cells, float64(cfg.Gap)))
	}

	return l
}
