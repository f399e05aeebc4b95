package render

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ByLCY/tapelabel/bitmap"
)

// Geometry fixes the margin compositor's layout parameters. All values are
// print head pixels.
type Geometry struct {
	Justify Justify
	// VisibleHorizontalMarginPx is the blank tape wanted left of and right of the payload.
	VisibleHorizontalMarginPx float64
	// LabelerHorizontalMarginPx is the print head to cutter distance.
	LabelerHorizontalMarginPx float64
	// LabelerVerticalMarginPx is the unprintable strip above and below the head.
	LabelerVerticalMarginPx float64
	// MaxWidthPx limits the label width when set.
	MaxWidthPx *float64
	MinWidthPx float64
}

// MaxWidth is a helper for Geometry.MaxWidthPx.
func MaxWidth(px float64) *float64 { return &px }

func (g Geometry) validate() error {
	switch {
	case g.VisibleHorizontalMarginPx < 0:
		return fmt.Errorf("%w: visible horizontal margin %g < 0", ErrInvalidGeometry, g.VisibleHorizontalMarginPx)
	case g.LabelerHorizontalMarginPx < 0:
		return fmt.Errorf("%w: labeler horizontal margin %g < 0", ErrInvalidGeometry, g.LabelerHorizontalMarginPx)
	case g.LabelerVerticalMarginPx < 0:
		return fmt.Errorf("%w: labeler vertical margin %g < 0", ErrInvalidGeometry, g.LabelerVerticalMarginPx)
	case g.MaxWidthPx != nil && *g.MaxWidthPx < 0:
		return fmt.Errorf("%w: max width %g < 0", ErrInvalidGeometry, *g.MaxWidthPx)
	case g.MinWidthPx < 0:
		return fmt.Errorf("%w: min width %g < 0", ErrInvalidGeometry, g.MinWidthPx)
	}
	switch g.Justify {
	case JustifyLeft, JustifyCenter, JustifyRight:
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, g.Justify)
	}
}

// Placement records where the payload was pasted into the label.
type Placement struct {
	HorizontalOffsetPx float64 `json:"horizontalOffsetPx"`
	VerticalOffsetPx   float64 `json:"verticalOffsetPx"`
	PayloadWidthPx     int     `json:"payloadWidthPx"`
	PayloadHeightPx    int     `json:"payloadHeightPx"`
}

// Margins wraps a payload renderer and places its output within a label of
// the right width and height for the configured mode.
type Margins struct {
	inner    Renderer
	mode     Mode
	geometry Geometry
}

// NewMargins validates g and returns a compositor around inner.
func NewMargins(inner Renderer, mode Mode, g Geometry) (*Margins, error) {
	if inner == nil {
		return nil, fmt.Errorf("render: margins need a payload renderer")
	}
	if mode != ModePrint && mode != ModePreview {
		return nil, fmt.Errorf("render: unknown mode %v", mode)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return &Margins{inner: inner, mode: mode, geometry: g}, nil
}

func (m *Margins) Mode() Mode         { return m.mode }
func (m *Margins) Geometry() Geometry { return m.geometry }

// CalculateVisibleWidth returns the label width for a payload of the given width.
func (m *Margins) CalculateVisibleWidth(payloadWidthPx int) (float64, error) {
	minimal := float64(payloadWidthPx) + m.geometry.VisibleHorizontalMarginPx*2
	if m.geometry.MaxWidthPx != nil && minimal > *m.geometry.MaxWidthPx {
		return 0, &BitmapTooBigError{WidthPx: minimal, MaxWidthPx: *m.geometry.MaxWidthPx}
	}
	return math.Max(minimal, m.geometry.MinWidthPx), nil
}

// horizontalOffset returns the justified offset before any mode adjustment.
func (m *Margins) horizontalOffset(paddingPx float64) float64 {
	margin := m.geometry.VisibleHorizontalMarginPx
	var offset float64
	switch m.geometry.Justify {
	case JustifyLeft:
		offset = margin
	case JustifyRight:
		offset = paddingPx - margin
	default:
		offset = paddingPx / 2
	}
	if offset < margin {
		panic(fmt.Sprintf("render: horizontal offset %g below visible margin %g (%v)", offset, margin, m.geometry.Justify))
	}
	return offset
}

// Render composes the payload into a new label bitmap.
func (m *Margins) Render(ctx *Context) (*bitmap.Bitmap, Placement, error) {
	payload, err := m.inner.Render(ctx)
	if err != nil {
		return nil, Placement{}, err
	}
	if payload == nil {
		return nil, Placement{}, fmt.Errorf("render: payload renderer returned no bitmap")
	}

	labelWidth, err := m.CalculateVisibleWidth(payload.Width())
	if err != nil {
		return nil, Placement{}, err
	}
	padding := labelWidth - float64(payload.Width()) // 两侧留白之和
	xOffset := m.horizontalOffset(padding)

	var (
		yOffset float64
		height  float64
	)
	switch m.mode {
	case ModePrint:
		// 打印头已位于切刀后方 DX 处，预先扣除这段距离。
		xOffset -= m.geometry.LabelerHorizontalMarginPx
		height = float64(payload.Height())
	case ModePreview:
		height = float64(payload.Height()) + m.geometry.LabelerVerticalMarginPx*2
		yOffset = m.geometry.LabelerVerticalMarginPx
	}

	out := bitmap.New(int(math.Ceil(labelWidth)), int(math.Ceil(height)))
	out.Paste(payload, int(math.RoundToEven(xOffset)), int(math.RoundToEven(yOffset)))

	Logger().Debug("margins composed",
		slog.String("mode", m.mode.String()),
		slog.String("justify", m.geometry.Justify.String()),
		slog.Int("payload_width", payload.Width()),
		slog.Float64("label_width", labelWidth),
		slog.Float64("x_offset", xOffset),
		slog.Float64("y_offset", yOffset),
	)

	return out, Placement{
		HorizontalOffsetPx: xOffset,
		VerticalOffsetPx:   yOffset,
		PayloadWidthPx:     payload.Width(),
		PayloadHeightPx:    payload.Height(),
	}, nil
}
