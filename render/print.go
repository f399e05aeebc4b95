package render

import "github.com/ByLCY/tapelabel/bitmap"

// PrintPayload builds the exact bitmap sent to the printer: the payload with
// its visible margins, shifted left by the head-to-cutter distance.
type PrintPayload struct {
	margins *Margins
}

var _ Renderer = (*PrintPayload)(nil)

// NewPrintPayload returns a print-mode compositor around inner.
func NewPrintPayload(inner Renderer, g Geometry) (*PrintPayload, error) {
	m, err := NewMargins(inner, ModePrint, g)
	if err != nil {
		return nil, err
	}
	return &PrintPayload{margins: m}, nil
}

func (p *PrintPayload) Render(ctx *Context) (*bitmap.Bitmap, error) {
	out, _, err := p.margins.Render(ctx)
	return out, err
}
