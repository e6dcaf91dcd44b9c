package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/tilesketch/pkg/geom"
)

// Weights sets the relative probability of each shape kind.
type Weights struct {
	Square   int `json:"square" toml:"square_weight"`
	Circle   int `json:"circle" toml:"circle_weight"`
	Triangle int `json:"triangle" toml:"triangle_weight"`
}

// DefaultWeights favours squares three to one over each other shape.
var DefaultWeights = Weights{Square: 3, Circle: 1, Triangle: 1}

// Total returns the sum of all weights.
func (w Weights) Total() int { return w.Square + w.Circle + w.Triangle }

// Config controls grid density and spacing. All values are in canvas units.
type Config struct {
	PagePadding int     `json:"page_padding"`
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	Gap         int     `json:"gap"`
	NoMerge     bool    `json:"no_merge,omitempty"`
	Weights     Weights `json:"weights"`
}

// MaxGrid caps the number of rows and of columns.
const MaxGrid = 1024

// DefaultConfig returns the settings the sketch starts with.
func DefaultConfig() Config {
	return Config{
		PagePadding: 30,
		Rows:        15,
		Cols:        14,
		Gap:         1,
		Weights:     DefaultWeights,
	}
}

// Clamp returns a copy of c that is safe to lay out on canvas, together with
// a note for every value it had to change.
func (c Config) Clamp(canvas geom.Rect) (Config, []string) {
	var notes []string
	note := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}

	if c.Rows < 0 {
		note("rows %d clamped to 0", c.Rows)
		c.Rows = 0
	}
	if c.Cols < 0 {
		note("cols %d clamped to 0", c.Cols)
		c.Cols = 0
	}
	if c.Rows > MaxGrid {
		note("rows %d clamped to %d", c.Rows, MaxGrid)
		c.Rows = MaxGrid
	}
	if c.Cols > MaxGrid {
		note("cols %d clamped to %d", c.Cols, MaxGrid)
		c.Cols = MaxGrid
	}
	if c.PagePadding < 0 {
		note("page padding %d clamped to 0", c.PagePadding)
		c.PagePadding = 0
	}
	if c.Gap < 0 {
		note("gap %d clamped to 0", c.Gap)
		c.Gap = 0
	}

	w := c.Weights
	w.Square, w.Circle, w.Triangle = max(w.Square, 0), max(w.Circle, 0), max(w.Triangle, 0)
	if w.Total() == 0 {
		if c.Weights != (Weights{}) {
			note("shape weights %+v have no positive entry, using defaults", c.Weights)
		}
		w = DefaultWeights
	}
	c.Weights = w

	if canvas.Empty() {
		return c, notes
	}

	if extent := min(canvas.W, canvas.H); 2*float64(c.PagePadding) >= extent {
		capped := int(math.Floor(maxInset(extent)))
		note("page padding %d clamped to %d for a %.0fx%.0f canvas", c.PagePadding, capped, canvas.W, canvas.H)
		c.PagePadding = capped
	}

	region := canvas.Pad(float64(c.PagePadding))

	// Cells are at least one unit wide and tall.
	if limit := math.Max(1, math.Floor(region.W)); float64(c.Cols) > limit {
		note("cols %d clamped to %d for a %.2f unit wide region", c.Cols, int(limit), region.W)
		c.Cols = int(limit)
	}
	if limit := math.Max(1, math.Floor(region.H)); float64(c.Rows) > limit {
		note("rows %d clamped to %d for a %.2f unit tall region", c.Rows, int(limit), region.H)
		c.Rows = int(limit)
	}

	if c.Rows > 0 && c.Cols > 0 {
		cell := min(region.W/float64(c.Cols), region.H/float64(c.Rows))
		if 2*float64(c.Gap) >= cell {
			capped := int(math.Floor(maxInset(cell)))
			note("gap %d clamped to %d for %.2f unit cells", c.Gap, capped, cell)
			c.Gap = capped
		}
	}

	return c, notes
}

// maxInset is the largest inset that leaves a positive extent: at least one
// unit, or half the extent when it is smaller than two units.
func maxInset(extent float64) float64 {
	return (extent - min(1, extent/2)) / 2
}
