package pipeline

import (
	"fmt"

	"github.com/matzehuels/tilesketch/pkg/layout"
	"github.com/matzehuels/tilesketch/pkg/render/sink"
	"github.com/matzehuels/tilesketch/pkg/sketch"
)

// Paint composes the frame for l.
func Paint(l layout.Layout, opts Options) sketch.Frame {
	return sketch.Paint(l, opts.Params())
}

// RenderFrame encodes f in every format of opts.Formats.
func RenderFrame(f sketch.Frame, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(f, buildSVGOptions(opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(f,
				sink.WithScale(opts.Scale),
				sink.WithPNGTolerance(opts.Tolerance),
				sink.WithPNGGrid(opts.Grid),
				sink.WithPNGLogger(opts.Logger))
		case FormatJSON:
			data, err = sink.RenderJSON(f, sink.WithJSONSeed(opts.Seed))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithTolerance(opts.Tolerance),
		sink.WithLogger(opts.Logger),
	}
	if opts.Grid > 0 {
		svgOpts = append(svgOpts, sink.WithGrid(opts.Grid))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	return svgOpts
}
