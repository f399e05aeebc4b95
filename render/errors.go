package render

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidGeometry is returned when a compositor is built with a negative
// margin or width.
var ErrInvalidGeometry = errors.New("render: invalid geometry")

// BitmapTooBigError reports a label whose minimal width exceeds the allowed
// maximum. It is never clamped: the caller relaxes the limit or rejects the payload.
type BitmapTooBigError struct {
	WidthPx    float64
	MaxWidthPx float64
}

func (e *BitmapTooBigError) Error() string {
	return fmt.Sprintf("bitmap too big: width_px: %g, max_width_px: %g", e.WidthPx, e.MaxWidthPx)
}

// ColorLookupError reports a preview pixel that has no entry in the recolour table.
type ColorLookupError struct {
	X, Y  int
	Color color.RGBA
}

func (e *ColorLookupError) Error() string {
	return fmt.Sprintf("render: no colour mapping for %v at (%d,%d)", e.Color, e.X, e.Y)
}
