// Package colors parses palette entries into colors.
//
// Entries may be #rrggbb hex strings, #rgb shorthands, rgb(r, g, b) or
// hsl(h, s%, l%) functions, or CSS color names. Rendering never fails on a
// bad entry: [Resolve] substitutes [Neutral] and reports the fallback.
package colors

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/tilesketch/pkg/errors"
)

// Neutral is the fallback fill for entries that fail to parse.
var Neutral = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}

// ParseHex converts a 7 character "#rrggbb" string to 0xrrggbb. Any other
// length, a missing '#' or a non-hex digit fails.
func ParseHex(s string) (uint32, bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// FromUint32 expands 0xrrggbb into an opaque color.
func FromUint32(v uint32) color.NRGBA {
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Hex formats c as "#rrggbb", dropping alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Parse converts a palette entry into a color.
func Parse(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	low := strings.ToLower(s)

	switch {
	case s == "":
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "empty color")
	case strings.HasPrefix(s, "#"):
		if v, ok := ParseHex(s); ok {
			return FromUint32(v), nil
		}
		if len(s) == 4 {
			if c, err := colorful.Hex(s); err == nil {
				return toNRGBA(c), nil
			}
		}
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q", s)
	case strings.HasPrefix(low, "rgb("):
		return parseRGB(s, low)
	case strings.HasPrefix(low, "hsl("):
		return parseHSL(s, low)
	}

	if c, ok := colornames.Map[low]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "unknown color %q", s)
}

// Resolve parses s, falling back to Neutral. ok is false on fallback.
func Resolve(s string) (c color.NRGBA, ok bool) {
	c, err := Parse(s)
	if err != nil {
		return Neutral, false
	}
	return c, true
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// args splits the comma separated arguments of fn(...).
func args(low string, n int) ([]string, bool) {
	open := strings.IndexByte(low, '(')
	if open < 0 || !strings.HasSuffix(low, ")") {
		return nil, false
	}
	parts := strings.Split(low[open+1:len(low)-1], ",")
	if len(parts) != n {
		return nil, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

func parseRGB(s, low string) (color.NRGBA, error) {
	parts, ok := args(low, 3)
	if !ok {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid rgb color %q", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid rgb channel %q in %q", p, s)
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
}

func parseHSL(s, low string) (color.NRGBA, error) {
	parts, ok := args(low, 3)
	if !ok {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid hsl color %q", s)
	}
	h, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hue in %q", s)
	}
	var sl [2]float64
	for i, p := range parts[1:] {
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil || v < 0 || v > 100 {
			return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid percentage %q in %q", p, s)
		}
		sl[i] = v / 100
	}
	return toNRGBA(colorful.Hsl(h, sl[0], sl[1])), nil
}

// Palette is an ordered list of color strings.
type Palette []string

// DefaultPalette is a muted set of warm and cool tones.
var DefaultPalette = Palette{"#e63946", "#f1c453", "#2a9d8f", "#457b9d", "#1d3557", "#f4a261"}

// Pick returns an entry chosen uniformly with rng. An empty palette yields
// the neutral color.
func (p Palette) Pick(rng *rand.Rand) string {
	if len(p) == 0 {
		return Hex(Neutral)
	}
	return p[rng.IntN(len(p))]
}

// Validate reports the first entry that does not parse.
func (p Palette) Validate() error {
	for i, s := range p {
		if _, err := Parse(s); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "palette entry %d", i)
		}
	}
	return nil
}

// Generate returns n colors with evenly spaced hues in HCL space, rotated
// by offset degrees.
func Generate(n int, offset float64) Palette {
	p := make(Palette, 0, max(n, 0))
	for i := range max(n, 0) {
		h := offset + 360*float64(i)/float64(n)
		p = append(p, colorful.Hcl(h, 0.55, 0.7).Clamped().Hex())
	}
	return p
}

// ParsePalette reads a comma separated list of entries, or "auto:N" for n
// generated colors. Entries are kept as written so malformed ones still
// fall back at render time; use Validate for strict checking.
func ParsePalette(s string) (Palette, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPalette, nil
	}
	if rest, ok := strings.CutPrefix(s, "auto:"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 || n > 64 {
			return nil, errors.New(errors.ErrCodeInvalidColor, "auto palette size must be 1..64, got %q", rest)
		}
		return Generate(n, 0), nil
	}
	var p Palette
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			p = append(p, part)
		}
	}
	return p, nil
}
