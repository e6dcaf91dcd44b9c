package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/ajstarks/svgo"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilesketch/pkg/colors"
	"github.com/matzehuels/tilesketch/pkg/flatten"
	"github.com/matzehuels/tilesketch/pkg/sketch"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	tolerance float64
	grid      float64
	title     string
	logger    *log.Logger
}

// WithTolerance sets the chord tolerance used to flatten curves.
func WithTolerance(tol float64) SVGOption { return func(r *svgRenderer) { r.tolerance = tol } }

// WithGrid overlays a debug grid every step units plus a center crosshair.
func WithGrid(step float64) SVGOption { return func(r *svgRenderer) { r.grid = step } }

// WithTitle sets the document title.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithLogger receives debug output about skipped sets.
func WithLogger(l *log.Logger) SVGOption { return func(r *svgRenderer) { r.logger = l } }

// RenderSVG renders f as an SVG document. Each cell becomes a group with
// id "cell-N" holding one path per op set.
func RenderSVG(f sketch.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{tolerance: flatten.DefaultTolerance, logger: discardLogger()}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	w, h := pixels(f.Canvas.W), pixels(f.Canvas.H)
	canvas.Start(w, h)
	if r.title != "" {
		canvas.Title(r.title)
	}
	canvas.Rect(0, 0, w, h, "fill:"+colors.Hex(f.Background))

	open := -1
	for s := range strokes(f, r.tolerance, r.logger) {
		if s.cell != open {
			if open >= 0 {
				canvas.Gend()
			}
			canvas.Group(fmt.Sprintf(`id="cell-%d"`, s.cell), fmt.Sprintf(`class="%s"`, f.Cells[s.cell].Item.Shape))
			open = s.cell
		}
		if d := pathData(s.lines); d != "" {
			canvas.Path(d, penStyle(s.color, s.width))
		}
	}
	if open >= 0 {
		canvas.Gend()
	}

	if grid, cross := gridLines(f.Canvas, r.grid); len(grid) > 0 {
		canvas.Gid("debug-grid")
		canvas.Path(pathData(grid), penStyle(gridColor, 0.5))
		canvas.Path(pathData(cross), penStyle(crosshairColor, 1))
		canvas.Gend()
	}

	canvas.End()
	return buf.Bytes()
}

func penStyle(c color.NRGBA, width float64) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.2f;stroke-linecap:round;stroke-linejoin:round", colors.Hex(c), width)
}

// pathData encodes polylines as an SVG path with two decimals.
func pathData(lines []flatten.Polyline) string {
	var b strings.Builder
	for _, line := range lines {
		for i, p := range line {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s%.2f %.2f", cmd, p.X, p.Y)
		}
	}
	return b.String()
}
