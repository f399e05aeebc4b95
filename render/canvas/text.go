package canvasrender

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/tapelabel/bitmap"
	"github.com/ByLCY/tapelabel/layout"
	"github.com/ByLCY/tapelabel/render"
)

// inkThreshold 是抗锯齿像素被视为墨点的亮度上限。
const inkThreshold = 0.5

// Text 把一行或多行文字排成打印头高度的载荷。
// 画布单位取 1 像素，因此字号换算为 pt 时乘以 layout.MmToPt。
type Text struct {
	Lines []string
	// Font 是内置字体名，见 fonts.Names。
	Font string
	// SizeRatio 是字高占行高的比例，(0, 1]。
	SizeRatio float64
	// FrameWidthPx 大于 0 时在文字外画框，框与文字之间留出同样宽度的空白。
	FrameWidthPx int
	// Align 是多行文字的水平对齐：left/center/right。
	Align    string
	HeightPx int

	// Fonts 为 nil 时使用包级缓存。
	Fonts *FontCache
}

var _ render.Renderer = (*Text)(nil)

func (t *Text) Render(*render.Context) (*bitmap.Bitmap, error) {
	if t.HeightPx <= 0 {
		return nil, fmt.Errorf("text: 高度必须为正数，得到 %d", t.HeightPx)
	}
	if len(t.Lines) == 0 {
		return nil, fmt.Errorf("text: 没有可渲染的行")
	}
	ratio := t.SizeRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 0.9
	}
	frame := max(t.FrameWidthPx, 0)
	pad := 2 * frame

	innerH := float64(t.HeightPx - 2*pad)
	if innerH <= 0 {
		return nil, fmt.Errorf("text: 边框 %dpx 超出高度 %dpx", frame, t.HeightPx)
	}
	lineH := innerH / float64(len(t.Lines))

	cache := t.Fonts
	if cache == nil {
		cache = defaultFonts
	}
	family, err := cache.Family(t.Font)
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	face := family.Face(lineH*ratio*layout.MmToPt, canvas.Black, canvas.FontRegular, canvas.FontNormal)

	textW := 0.0
	for _, line := range t.Lines {
		textW = math.Max(textW, face.TextWidth(line))
	}
	width := max(int(math.Ceil(textW))+2*pad, 1)

	c := canvas.New(float64(width), float64(t.HeightPx))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	align, anchorX := textAlign(t.Align, float64(pad), float64(width-pad))
	metrics := face.Metrics()
	glyphH := metrics.Ascent + metrics.Descent
	for i, line := range t.Lines {
		if line == "" {
			continue
		}
		top := float64(pad) + float64(i)*lineH
		baseline := top + (lineH-glyphH)/2 + metrics.Ascent
		ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, line, align))
	}

	img := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	out := bitmap.FromImage(img, inkThreshold)
	if out.Width() != width || out.Height() != t.HeightPx {
		// 光栅化按四舍五入取整，这里对齐到期望尺寸。
		fixed := bitmap.New(width, t.HeightPx)
		fixed.Paste(out, 0, 0)
		out = fixed
	}
	if frame > 0 {
		drawFrame(out, frame)
	}
	return out, nil
}

func textAlign(align string, left, right float64) (canvas.TextAlign, float64) {
	switch strings.ToLower(align) {
	case "left", "start":
		return canvas.Left, left
	case "right", "end":
		return canvas.Right, right
	default:
		return canvas.Center, (left + right) / 2
	}
}

func drawFrame(b *bitmap.Bitmap, w int) {
	bw, bh := b.Width(), b.Height()
	b.FillRect(image.Rect(0, 0, bw, w), true)
	b.FillRect(image.Rect(0, bh-w, bw, bh), true)
	b.FillRect(image.Rect(0, 0, w, bh), true)
	b.FillRect(image.Rect(bw-w, 0, bw, bh), true)
}
