package render

import (
	"fmt"
	"strings"

	"github.com/ByLCY/tapelabel/bitmap"
)

// Context carries the presentation settings of one render call. Renderers
// read it and never modify it.
type Context struct {
	Foreground         string `json:"foreground"`
	Background         string `json:"background"`
	PreviewShowMargins bool   `json:"previewShowMargins"`
}

// DefaultContext returns black ink on white tape without margin annotations.
func DefaultContext() *Context {
	return &Context{Foreground: "black", Background: "white"}
}

// Renderer produces a monochrome payload for a render context. Text, barcode,
// QR and image payloads all satisfy it, as do the compositors built on them.
type Renderer interface {
	Render(ctx *Context) (*bitmap.Bitmap, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx *Context) (*bitmap.Bitmap, error)

func (f RendererFunc) Render(ctx *Context) (*bitmap.Bitmap, error) { return f(ctx) }

// Mode selects the vertical margin and offset policy of the margin compositor.
type Mode int

const (
	ModePrint Mode = iota + 1
	ModePreview
)

func (m Mode) String() string {
	switch m {
	case ModePrint:
		return "print"
	case ModePreview:
		return "preview"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Justify places the payload horizontally within the label.
type Justify int

const (
	JustifyCenter Justify = iota
	JustifyLeft
	JustifyRight
)

func (j Justify) String() string {
	switch j {
	case JustifyLeft:
		return "left"
	case JustifyCenter:
		return "center"
	case JustifyRight:
		return "right"
	default:
		return fmt.Sprintf("Justify(%d)", int(j))
	}
}

// ParseJustify accepts left/center/right (plus start/middle/end aliases).
func ParseJustify(v string) (Justify, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "center", "centre", "middle":
		return JustifyCenter, nil
	case "left", "start":
		return JustifyLeft, nil
	case "right", "end":
		return JustifyRight, nil
	default:
		return JustifyCenter, fmt.Errorf("unknown justification %q", v)
	}
}
