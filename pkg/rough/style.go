package rough

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/matzehuels/tilesketch/pkg/errors"
)

// StrokeColor is the neutral tone every outline is drawn in.
var StrokeColor = color.NRGBA{R: 0x2f, G: 0x2f, B: 0x2f, A: 0xff}

// FillStyle selects the hatch pattern used to fill a shape.
type FillStyle int

const (
	Hachure FillStyle = iota
	CrossHatch
	Dots
	Dashed
	ZigZag
	ZigZagLine
)

// FillStyles lists every fill style in declaration order.
var FillStyles = []FillStyle{Hachure, CrossHatch, Dots, Dashed, ZigZag, ZigZagLine}

var fillStyleNames = [...]string{
	Hachure:    "hachure",
	CrossHatch: "cross-hatch",
	Dots:       "dots",
	Dashed:     "dashed",
	ZigZag:     "zigzag",
	ZigZagLine: "zigzag-line",
}

func (f FillStyle) String() string {
	if f >= 0 && int(f) < len(fillStyleNames) {
		return fillStyleNames[f]
	}
	return fmt.Sprintf("FillStyle(%d)", int(f))
}

// ParseFillStyle converts a name such as "cross-hatch" into a FillStyle.
func ParseFillStyle(s string) (FillStyle, error) {
	for i, name := range fillStyleNames {
		if name == s {
			return FillStyle(i), nil
		}
	}
	return Hachure, errors.New(errors.ErrCodeInvalidFillStyle, "unknown fill style %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (f FillStyle) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FillStyle) UnmarshalText(b []byte) error {
	v, err := ParseFillStyle(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Style holds the per-shape inputs: the seed driving all jitter, and the
// fill pattern and color.
type Style struct {
	Seed      uint64
	FillStyle FillStyle
	FillColor color.NRGBA
}

// MarshalJSON writes the fill color as a #rrggbb hex string.
func (s Style) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Seed      uint64    `json:"seed"`
		FillStyle FillStyle `json:"fill_style"`
		FillColor string    `json:"fill_color"`
	}{s.Seed, s.FillStyle, fmt.Sprintf("#%02x%02x%02x", s.FillColor.R, s.FillColor.G, s.FillColor.B)})
}
