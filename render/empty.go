package render

import (
	"log/slog"

	"github.com/ByLCY/tapelabel/bitmap"
)

// Empty renders a blank payload. A zero width yields a 1px wide payload so the
// margin compositor always has something to place.
type Empty struct {
	WidthPx  int
	HeightPx int
}

func (e Empty) Render(*Context) (*bitmap.Bitmap, error) {
	return bitmap.New(max(e.WidthPx, 1), max(e.HeightPx, 1)), nil
}

// Fallback renders Inner and, when it fails, logs a warning and renders
// Empty instead. Used for user-provided items so one bad item does not stop
// the preview; the compositors themselves never fall back.
type Fallback struct {
	Name  string
	Inner Renderer
	Empty Empty
}

func (f *Fallback) Render(ctx *Context) (*bitmap.Bitmap, error) {
	b, err := f.Inner.Render(ctx)
	if err == nil {
		return b, nil
	}
	Logger().Warn("render failed, using empty payload",
		slog.String("item", f.Name),
		slog.Any("error", err),
	)
	return f.Empty.Render(ctx)
}

// Pattern renders diagonal stripes StripePx wide across the full height,
// useful to check head alignment and cutter position.
type Pattern struct {
	StripePx int
	WidthPx  int
	HeightPx int
}

func (p Pattern) Render(*Context) (*bitmap.Bitmap, error) {
	stripe := max(p.StripePx, 1)
	out := bitmap.New(max(p.WidthPx, 1), max(p.HeightPx, 1))
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			if ((x+y)/stripe)%2 == 0 {
				out.SetInk(x, y, true)
			}
		}
	}
	return out, nil
}
