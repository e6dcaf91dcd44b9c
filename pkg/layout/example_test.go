package layout_test

import (
	"fmt"

	"github.com/matzehuels/tilesketch/pkg/geom"
	"github.com/matzehuels/tilesketch/pkg/layout"
)

func ExampleGenerate() {
	picker := layout.NewSequencePicker(geom.Square, geom.Square, geom.Circle)
	l := layout.Generate(geom.Canvas(300, 100), layout.Config{Rows: 1, Cols: 3}, picker)

	for it := range l.Items() {
		fmt.Printf("%s [%.0f, %.0f]\n", it.Shape, it.Bounds.Left(), it.Bounds.Right())
	}
	// Output:
	// square [-150, 50]
	// circle [50, 150]
}

func ExampleConfig_Clamp() {
	cfg, notes := layout.Config{Rows: 2, Cols: 2, Gap: 40}.Clamp(geom.Canvas(100, 100))
	fmt.Println(cfg.Gap)
	for _, n := range notes {
		fmt.Println(n)
	}
	// Output:
	// 24
	// gap 40 clamped to 24 for 50.00 unit cells
}
