package layout

import "github.com/matzehuels/tilesketch/pkg/geom"

// MergeRow combines runs of consecutive squares into single items spanning
// from the first square's left edge to the last square's right edge. Other
// shapes pass through unchanged and in order.
func MergeRow(cells []Item) []Item {
	out := make([]Item, 0, len(cells))

	var pending *Item
	flush := func() {
		if pending != nil {
			out = append(out, *pending)
			pending = nil
		}
	}

	for _, cell := range cells {
		if cell.Shape != geom.Square {
			flush()
			out = append(out, cell)
			continue
		}
		if pending == nil {
			c := cell
			pending = &c
			continue
		}
		pending.Bounds = pending.Bounds.StretchTo(geom.Pt(cell.Bounds.Right(), cell.Bounds.Top()))
	}
	flush()

	return out
}

// PadRow shrinks every item by gap on each side.
func PadRow(items []Item, gap float64) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{Shape: it.Shape, Bounds: it.Bounds.Pad(gap)}
	}
	return out
}
