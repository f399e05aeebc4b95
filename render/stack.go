package render

import (
	"fmt"

	"github.com/ByLCY/tapelabel/bitmap"
)

// HStack renders its children left to right, GapPx apart, each vertically
// centred on the tallest one.
type HStack struct {
	Children []Renderer
	GapPx    int
}

var _ Renderer = (*HStack)(nil)

func (s *HStack) Render(ctx *Context) (*bitmap.Bitmap, error) {
	parts := make([]*bitmap.Bitmap, 0, len(s.Children))
	width, height := 0, 0
	for i, child := range s.Children {
		b, err := child.Render(ctx)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if b == nil {
			return nil, fmt.Errorf("item %d: payload renderer returned no bitmap", i)
		}
		parts = append(parts, b)
		if i > 0 {
			width += s.GapPx
		}
		width += b.Width()
		height = max(height, b.Height())
	}

	out := bitmap.New(width, height)
	x := 0
	for i, b := range parts {
		if i > 0 {
			x += s.GapPx
		}
		out.Paste(b, x, (height-b.Height())/2)
		x += b.Width()
	}
	return out, nil
}
