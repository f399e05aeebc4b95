// Package blocks draws 1-bit images as text with half-block glyphs, two pixel
// rows per line, for display in a terminal.
package blocks

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/ByLCY/tapelabel/bitmap"
)

const (
	UpperHalf    = "\u2580" // ▀
	LowerHalf    = "\u2584" // ▄
	FullBlock    = "\u2588" // █
	NoBreakSpace = "\u00a0"
	LightShade   = "\u2591" // ░
)

type pixel int

const (
	ink pixel = iota
	blank
	transparent
)

func (p pixel) String() string {
	switch p {
	case ink:
		return "ink"
	case blank:
		return "blank"
	case transparent:
		return "transparent"
	default:
		return "unknown"
	}
}

type pair struct{ top, bottom pixel }

var glyphs = map[pair]string{
	{ink, ink}:                 FullBlock,
	{blank, ink}:               LowerHalf,
	{ink, blank}:               UpperHalf,
	{blank, blank}:             NoBreakSpace,
	{ink, transparent}:         UpperHalf,
	{transparent, transparent}: NoBreakSpace,
}

var invertedGlyphs = map[pair]string{
	{ink, ink}:                 NoBreakSpace,
	{blank, ink}:               UpperHalf,
	{ink, blank}:               LowerHalf,
	{blank, blank}:             FullBlock,
	{ink, transparent}:         LightShade,
	{transparent, transparent}: NoBreakSpace,
}

// LookupError reports a pixel pair with no glyph, usually a colour that is
// neither ink, blank nor transparent.
type LookupError struct {
	Column int
	Row    int // pixel row of the top pixel
	Top    string
	Bottom string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("blocks: no glyph for (%s, %s) at column %d, row %d", e.Top, e.Bottom, e.Column, e.Row)
}

// Render converts img into rows of half-block glyphs. Opaque black is ink,
// opaque white is blank tape and fully transparent pixels are transparent;
// a *bitmap.Bitmap is read directly. An odd height is padded with one row of
// background: blank for a bitmap, transparent for any other image. With invert the glyphs draw the tape instead of the ink.
func Render(img image.Image, invert bool) (string, error) {
	table := glyphs
	if invert {
		table = invertedGlyphs
	}
	classify, pad := classifier(img)
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	padded := height + height%2

	rows := make([]string, 0, padded/2)
	var row strings.Builder
	for r := 0; r < padded; r += 2 {
		row.Reset()
		for c := 0; c < width; c++ {
			top, topDesc := classify(b.Min.X+c, b.Min.Y+r)
			bottom, bottomDesc := pad, pad.String()
			if r+1 < height {
				bottom, bottomDesc = classify(b.Min.X+c, b.Min.Y+r+1)
			}
			glyph, ok := table[pair{top, bottom}]
			if !ok {
				return "", &LookupError{Column: c, Row: r, Top: topDesc, Bottom: bottomDesc}
			}
			row.WriteString(glyph)
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n"), nil
}

// unknown marks a colour outside the three recognised ones.
const unknown pixel = -1

// classifier returns the pixel classifier of img and the class used to pad an odd height.
func classifier(img image.Image) (func(x, y int) (pixel, string), pixel) {
	if bm, ok := img.(*bitmap.Bitmap); ok {
		return func(x, y int) (pixel, string) {
			if bm.Ink(x, y) {
				return ink, ink.String()
			}
			return blank, blank.String()
		}, blank
	}
	return func(x, y int) (pixel, string) {
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		switch {
		case c.A == 0:
			return transparent, transparent.String()
		case c == color.NRGBA{A: 0xff}:
			return ink, ink.String()
		case c == color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}:
			return blank, blank.String()
		default:
			return unknown, fmt.Sprintf("%v", c)
		}
	}, transparent
}
