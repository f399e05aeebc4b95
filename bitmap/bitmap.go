package bitmap

import (
	"fmt"
	"image"
	"image/color"
)

// 该文件定义 1-bit 位图：置位的像素表示"墨点"（打印头加热的位置）。

const bitsPerByte = 8

// Bitmap is a packed monochrome pixel grid, MSB first within each row byte.
// A set bit is ink. Bitmap implements image.Image so it can be encoded or
// drawn with the standard image packages; ink reads back as black.
type Bitmap struct {
	width  int
	height int
	stride int
	data   []byte
}

var _ image.Image = (*Bitmap)(nil)

// New allocates a blank (all background) bitmap.
func New(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	stride := (width + bitsPerByte - 1) / bitsPerByte
	return &Bitmap{
		width:  width,
		height: height,
		stride: stride,
		data:   make([]byte, stride*height),
	}
}

func (b *Bitmap) Width() int  { return b.width }
func (b *Bitmap) Height() int { return b.height }
func (b *Bitmap) Stride() int { return b.stride }

// Data returns the packed rows. The slice is shared with the bitmap.
func (b *Bitmap) Data() []byte { return b.data }

// Ink reports whether (x, y) is an ink pixel. Coordinates outside the
// bitmap are background.
func (b *Bitmap) Ink(x, y int) bool {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return false
	}
	idx := y*b.stride + x/bitsPerByte
	return b.data[idx]&(0x80>>(x%bitsPerByte)) != 0
}

// SetInk sets or clears the pixel at (x, y). Out of range writes are dropped.
func (b *Bitmap) SetInk(x, y int, ink bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	idx := y*b.stride + x/bitsPerByte
	mask := byte(0x80 >> (x % bitsPerByte))
	if ink {
		b.data[idx] |= mask
	} else {
		b.data[idx] &^= mask
	}
}

// Paste copies src into b with its top-left corner at (x, y). Both ink and
// background pixels of src replace the destination; the part of src falling
// outside b is clipped.
func (b *Bitmap) Paste(src *Bitmap, x, y int) {
	if src == nil {
		return
	}
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= b.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= b.width {
				continue
			}
			b.SetInk(dx, dy, src.Ink(sx, sy))
		}
	}
}

// FillRect sets every pixel of r (clipped to the bitmap) to ink.
func (b *Bitmap) FillRect(r image.Rectangle, ink bool) {
	r = r.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.SetInk(x, y, ink)
		}
	}
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	out := &Bitmap{width: b.width, height: b.height, stride: b.stride, data: make([]byte, len(b.data))}
	copy(out.data, b.data)
	return out
}

// InkCount returns the number of ink pixels.
func (b *Bitmap) InkCount() int {
	n := 0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.Ink(x, y) {
				n++
			}
		}
	}
	return n
}

func (b *Bitmap) ColorModel() color.Model { return color.GrayModel }

func (b *Bitmap) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

func (b *Bitmap) At(x, y int) color.Color {
	if b.Ink(x, y) {
		return color.Gray{Y: 0}
	}
	return color.Gray{Y: 0xff}
}

func (b *Bitmap) String() string {
	return fmt.Sprintf("Bitmap(%d,%d)", b.width, b.height)
}

// FromImage thresholds img into a bitmap. A pixel becomes ink when it is at
// least half opaque and its luminance is below threshold (0..1). The result
// is rebased so that img.Bounds().Min maps to (0, 0).
func FromImage(img image.Image, threshold float64) *Bitmap {
	bounds := img.Bounds()
	out := New(bounds.Dx(), bounds.Dy())
	limit := uint32(threshold * 0xffff)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.At(x, y)
			_, _, _, a := c.RGBA()
			if a < 0x8000 {
				continue
			}
			// 按非预乘亮度比较，避免半透明像素被误判。
			nc := color.NRGBA64Model.Convert(c).(color.NRGBA64)
			gray := color.Gray16Model.Convert(color.NRGBA64{R: nc.R, G: nc.G, B: nc.B, A: 0xffff}).(color.Gray16)
			if uint32(gray.Y) < limit {
				out.SetInk(x-bounds.Min.X, y-bounds.Min.Y, true)
			}
		}
	}
	return out
}
