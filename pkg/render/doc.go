// Package render groups the output stages of tilesketch.
//
// The [sink] subpackage turns a painted [sketch.Frame] into bytes:
//
//	svg := sink.RenderSVG(frame, sink.WithTitle("Grid"))
//	png, err := sink.RenderPNG(frame, sink.WithScale(2))
//	doc, err := sink.RenderJSON(frame, sink.WithJSONSeed(42))
//
// SVG and PNG both flatten curves through [flatten] before drawing, so the
// two formats trace the same polylines.
//
// [sketch.Frame]: github.com/matzehuels/tilesketch/pkg/sketch.Frame
// [flatten]: github.com/matzehuels/tilesketch/pkg/flatten
package render
