package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Annotation offsets, in preview pixels from the label edge. Only the
// arrangement matters: width ticks below the label, height ticks left of it,
// payload tick closer to the label than the label tick.
const (
	payloadTickGapPx = PreviewMarginYPx / 4     // below the label
	labelTickGapPx   = PreviewMarginYPx * 2 / 3 // below the label
	payloadTickGapX  = PreviewMarginXPx / 4     // left of the label
	labelTickGapX    = PreviewMarginXPx * 3 / 4 // left of the label
	tickCapPx        = 3
	textPadPx        = 2
)

type annotator struct {
	img    *image.RGBA
	ink    color.RGBA
	face   font.Face
	pxToMM func(px float64) float64
}

// drawMargins draws the boundary lines, the four dimension ticks and their labels.
func (a *annotator) drawMargins(label image.Point, pl Placement) {
	if a.face == nil {
		a.face = basicfont.Face7x13
	}
	bounds := a.img.Bounds()
	ox, oy := PreviewMarginXPx, PreviewMarginYPx

	left := ox + roundPx(pl.HorizontalOffsetPx)
	right := ox + roundPx(pl.HorizontalOffsetPx+float64(pl.PayloadWidthPx))
	top := oy + roundPx(pl.VerticalOffsetPx)
	bottom := oy + roundPx(pl.VerticalOffsetPx+float64(pl.PayloadHeightPx))

	payloadTickY := oy + label.Y + payloadTickGapPx
	labelTickY := oy + label.Y + labelTickGapPx
	payloadTickX := ox - payloadTickGapX
	labelTickX := ox - labelTickGapX

	// 可见边距的边界线：竖线到 payload 刻度线为止，横线从 payload 刻度线开始。
	a.vline(left, 0, payloadTickY)
	a.vline(right, 0, payloadTickY)
	a.hline(top, payloadTickX, bounds.Max.X-1)
	a.hline(bottom, payloadTickX, bounds.Max.X-1)

	// 宽度刻度
	a.hTick(payloadTickY, left, right)
	a.hTick(labelTickY, ox, ox+label.X)
	// 高度刻度
	a.vTick(payloadTickX, top, bottom)
	a.vTick(labelTickX, oy, oy+label.Y)

	a.text((left+right)/2, payloadTickY, a.mm(right-left))
	a.text(ox+label.X/2, labelTickY, a.mm(label.X))
	a.text(payloadTickX, (top+bottom)/2, a.mm(bottom-top))
	a.text(labelTickX, oy+label.Y/2, a.mm(label.Y))
}

func (a *annotator) mm(px int) string {
	return fmt.Sprintf("%.1f mm", a.pxToMM(float64(px)))
}

func (a *annotator) vline(x, y0, y1 int) {
	a.fill(image.Rect(x, y0, x+1, y1+1), a.ink)
}

func (a *annotator) hline(y, x0, x1 int) {
	a.fill(image.Rect(x0, y, x1+1, y+1), a.ink)
}

func (a *annotator) hTick(y, x0, x1 int) {
	a.hline(y, x0, x1)
	a.vline(x0, y-tickCapPx, y+tickCapPx)
	a.vline(x1, y-tickCapPx, y+tickCapPx)
}

func (a *annotator) vTick(x, y0, y1 int) {
	a.vline(x, y0, y1)
	a.hline(y0, x-tickCapPx, x+tickCapPx)
	a.hline(y1, x-tickCapPx, x+tickCapPx)
}

func (a *annotator) fill(r image.Rectangle, c color.RGBA) {
	draw.Draw(a.img, r.Intersect(a.img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// text draws s centred on (cx, cy) after clearing its box to transparent.
func (a *annotator) text(cx, cy int, s string) {
	width := font.MeasureString(a.face, s).Ceil()
	metrics := a.face.Metrics()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()
	height := ascent + descent

	x0 := cx - width/2
	y0 := cy - height/2
	box := image.Rect(x0-textPadPx, y0-textPadPx, x0+width+textPadPx, y0+height+textPadPx)
	a.fill(box, color.RGBA{})

	d := &font.Drawer{
		Dst:  a.img,
		Src:  image.NewUniform(a.ink),
		Face: a.face,
		Dot:  fixed.Point26_6{X: fixed.I(x0), Y: fixed.I(y0 + ascent)},
	}
	d.DrawString(s)
}

func roundPx(v float64) int { return int(math.RoundToEven(v)) }
