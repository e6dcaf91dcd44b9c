// Package sink writes painted frames to output formats.
//
// # Overview
//
// A "sink" transforms a [sketch.Frame] into a final output format. Every
// sink flattens the rough path ops of each cell with package flatten and
// maps them from y-up canvas space to y-down image space.
//
//   - SVG: vector output built with github.com/ajstarks/svgo
//   - PNG: raster output drawn with the github.com/gogpu/gg software renderer
//   - JSON: the frame's cells, styles and op sets for external tools
//
// Basic usage:
//
//	svg := sink.RenderSVG(frame, sink.WithGrid(20), sink.WithTitle("tiles"))
//	png, err := sink.RenderPNG(frame, sink.WithScale(2))
//	doc, err := sink.RenderJSON(frame)
//
// Fill sets are stroked in the cell's fill color at the fill weight and the
// stroke set in [rough.StrokeColor] at the stroke width. Fill region sets
// carry no drawing logic and are skipped.
//
// # Debug Grid
//
// [WithGrid] and [WithPNGGrid] overlay a light grid anchored on the canvas
// center plus a crosshair through it, for checking layout alignment.
//
// [sketch.Frame]: github.com/matzehuels/tilesketch/pkg/sketch.Frame
// [rough.StrokeColor]: github.com/matzehuels/tilesketch/pkg/rough.StrokeColor
package sink
