// Package layout tiles a canvas into a grid of shape cells.
//
// # Algorithm
//
// [Generate] shrinks the canvas by the page padding, splits the remaining
// region into Rows x Cols equal cells, and assigns each cell a shape drawn
// from a [Picker]. Rows are produced bottom-to-top and cells left-to-right.
//
// Within each row, runs of consecutive squares are merged into a single wide
// rectangle ([MergeRow]); circles and triangles are never merged. Finally
// every resulting cell is shrunk by the gap ([PadRow]).
//
// # Reproducible Randomness
//
// [NewRandomPicker] uses a seeded PCG source, so the same seed, canvas and
// config always produce the same layout:
//
//	picker := layout.NewRandomPicker(42, layout.DefaultWeights)
//	l := layout.Generate(geom.Canvas(450, 600), layout.DefaultConfig(), picker)
//
// # Configuration Errors
//
// Values coming from a UI or a command line are clamped, never rejected:
// negative counts become zero, zero rows or columns yield an empty layout,
// and page padding or gaps large enough to invert a cell are capped. The
// adjustments are recorded in [Layout.Notes].
package layout
