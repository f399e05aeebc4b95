package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ByLCY/tapelabel/bitmap"
	"github.com/ByLCY/tapelabel/layout"
)

// Outer margins of the preview canvas, room for the measurement annotations.
const (
	PreviewMarginXPx = 120
	PreviewMarginYPx = 60
)

var (
	previewInk        = color.RGBA{A: 0xff}
	previewBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Preview renders an on-screen picture of the label: recoloured to the
// context colours, surrounded by a transparent border and, when asked,
// annotated with its physical dimensions.
type Preview struct {
	margins *Margins
	pxToMM  func(px float64) float64
}

// NewPreview returns a preview-mode compositor around inner. pxToMM converts
// print head pixels for the annotation labels; nil uses layout.PxToMM.
func NewPreview(inner Renderer, g Geometry, pxToMM func(px float64) float64) (*Preview, error) {
	m, err := NewMargins(inner, ModePreview, g)
	if err != nil {
		return nil, err
	}
	if pxToMM == nil {
		pxToMM = layout.PxToMM
	}
	return &Preview{margins: m, pxToMM: pxToMM}, nil
}

// Margins exposes the underlying preview-mode compositor.
func (p *Preview) Margins() *Margins { return p.margins }

// Render returns the RGBA preview.
func (p *Preview) Render(ctx *Context) (*image.RGBA, error) {
	if ctx == nil {
		ctx = DefaultContext()
	}
	label, placement, err := p.margins.Render(ctx)
	if err != nil {
		return nil, err
	}
	colored, err := recolor(label, ctx)
	if err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, label.Width()+PreviewMarginXPx*2, label.Height()+PreviewMarginYPx*2))
	dst := image.Rect(PreviewMarginXPx, PreviewMarginYPx, PreviewMarginXPx+label.Width(), PreviewMarginYPx+label.Height())
	draw.Draw(out, dst, colored, image.Point{}, draw.Src)

	if ctx.PreviewShowMargins {
		fg, err := ParseColor(ctx.Foreground)
		if err != nil {
			return nil, fmt.Errorf("foreground: %w", err)
		}
		a := annotator{img: out, ink: fg, pxToMM: p.pxToMM}
		a.drawMargins(label.Bounds().Size(), placement)
	}
	return out, nil
}

// recolor maps label ink to the foreground colour and blank tape to the background.
func recolor(label *bitmap.Bitmap, ctx *Context) (*image.RGBA, error) {
	fg, err := ParseColor(ctx.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground: %w", err)
	}
	bg, err := ParseColor(ctx.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	// 反相后墨点为黑、空白为白，再按灰度转 RGBA。
	img := image.NewRGBA(label.Bounds())
	for y := 0; y < label.Height(); y++ {
		for x := 0; x < label.Width(); x++ {
			level := uint8(0xff)
			if label.Ink(x, y) {
				level = 0
			}
			img.SetRGBA(x, y, color.RGBAModel.Convert(color.Gray{Y: level}).(color.RGBA))
		}
	}

	table := map[color.RGBA]color.RGBA{
		previewInk:        fg,
		previewBackground: bg,
	}
	if err := remapColors(img, table); err != nil {
		return nil, err
	}
	return img, nil
}

// remapColors replaces every pixel through table. A pixel missing from the
// table is an error, never passed through.
func remapColors(img *image.RGBA, table map[color.RGBA]color.RGBA) error {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			src := img.RGBAAt(x, y)
			dst, ok := table[src]
			if !ok {
				return &ColorLookupError{X: x, Y: y, Color: src}
			}
			img.SetRGBA(x, y, dst)
		}
	}
	return nil
}
