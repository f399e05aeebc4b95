// Package barcode renders QR codes and linear barcodes as label payloads.
package barcode

import (
	"fmt"
	"strings"

	bc "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/qr"

	"github.com/ByLCY/tapelabel/bitmap"
	"github.com/ByLCY/tapelabel/render"
)

// ModulePx is the width of one narrow bar of a linear barcode.
const ModulePx = 2

// Symbologies lists the supported linear barcode types.
var Symbologies = []string{"code128", "code39", "ean13"}

// QR renders Content as a QR code scaled by the largest integer factor that
// fits HeightPx, vertically centred on a HeightPx tall payload.
type QR struct {
	Content  string
	HeightPx int
}

var _ render.Renderer = (*QR)(nil)

func (q *QR) Render(*render.Context) (*bitmap.Bitmap, error) {
	if q.Content == "" {
		return nil, fmt.Errorf("qr: empty content")
	}
	code, err := qr.Encode(q.Content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}
	modules := code.Bounds().Dx()
	scale := q.HeightPx / modules
	if scale < 1 {
		return nil, fmt.Errorf("qr: %d modules do not fit %dpx, shorten the content", modules, q.HeightPx)
	}
	scaled, err := bc.Scale(code, modules*scale, modules*scale)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}
	return centre(bitmap.FromImage(scaled, 0.5), q.HeightPx), nil
}

// Linear renders Content as a one-dimensional barcode, ModulePx per module,
// spanning the full HeightPx.
type Linear struct {
	Symbology string
	Content   string
	HeightPx  int
}

var _ render.Renderer = (*Linear)(nil)

func (l *Linear) Render(*render.Context) (*bitmap.Bitmap, error) {
	if l.HeightPx <= 0 {
		return nil, fmt.Errorf("barcode: height must be positive, got %d", l.HeightPx)
	}
	code, err := encode(l.Symbology, l.Content)
	if err != nil {
		return nil, err
	}
	scaled, err := bc.Scale(code, code.Bounds().Dx()*ModulePx, l.HeightPx)
	if err != nil {
		return nil, fmt.Errorf("barcode: %w", err)
	}
	return bitmap.FromImage(scaled, 0.5), nil
}

func encode(symbology, content string) (bc.Barcode, error) {
	if content == "" {
		return nil, fmt.Errorf("barcode: empty content")
	}
	var (
		code bc.Barcode
		err  error
	)
	switch strings.ToLower(symbology) {
	case "", "code128":
		code, err = code128.Encode(content)
	case "code39":
		code, err = code39.Encode(strings.ToUpper(content), false, true)
	case "ean13", "ean":
		code, err = ean.Encode(content)
	default:
		return nil, fmt.Errorf("barcode: unknown symbology %q (supported: %s)", symbology, strings.Join(Symbologies, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("barcode %s: %w", symbology, err)
	}
	return code, nil
}

func centre(b *bitmap.Bitmap, height int) *bitmap.Bitmap {
	if b.Height() >= height {
		return b
	}
	out := bitmap.New(b.Width(), height)
	out.Paste(b, 0, (height-b.Height())/2)
	return out
}
