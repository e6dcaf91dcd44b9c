// Package pkg provides the libraries behind tilesketch, a generator of
// hand-sketched grid art.
//
// # Overview
//
// A sketch is built in three stages:
//
//	[layout] package (grid of shapes, square runs merged)
//	         ↓
//	[sketch] package (palette, fill style and rough strokes per cell)
//	         ↓
//	[render/sink] package (SVG, PNG or JSON)
//
// The stroke geometry lives in [rough], which emits move, line and cubic
// Bezier ops, and [flatten], which turns those ops into polylines for
// raster and vector output. [geom] holds the shared rectangle and shape
// types.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/tilesketch/pkg/geom"
//	    "github.com/matzehuels/tilesketch/pkg/layout"
//	    "github.com/matzehuels/tilesketch/pkg/render/sink"
//	    "github.com/matzehuels/tilesketch/pkg/sketch"
//	)
//
//	cfg := layout.DefaultConfig()
//	l := layout.Generate(geom.Canvas(450, 600), cfg, layout.NewRandomPicker(42, cfg.Weights))
//	frame := sketch.Paint(l, sketch.DefaultParams())
//	svg := sink.RenderSVG(frame)
//
// # Orchestration
//
// [pipeline] wires the stages together with validation and caching
// ([cache]), and [config] maps a TOML file onto [pipeline.Options].
// [observability] exposes hooks for metrics and tracing, and [errors]
// carries the error codes shared by the CLI and the HTTP server.
package pkg
