// Package picture renders image files as label payloads.
package picture

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"

	"github.com/ByLCY/tapelabel/bitmap"
	"github.com/ByLCY/tapelabel/render"
)

// Picture scales an image to HeightPx, keeping its aspect ratio, and
// thresholds it to ink. Transparent pixels stay blank.
type Picture struct {
	// Path is read on every render so an edited file shows up in the next preview.
	Path string
	// Image is used instead of Path when set.
	Image     image.Image
	Threshold float64
	HeightPx  int
}

var _ render.Renderer = (*Picture)(nil)

func (p *Picture) Render(*render.Context) (*bitmap.Bitmap, error) {
	if p.HeightPx <= 0 {
		return nil, fmt.Errorf("image: height must be positive, got %d", p.HeightPx)
	}
	img := p.Image
	if img == nil {
		var err error
		if img, err = decodeFile(p.Path); err != nil {
			return nil, err
		}
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("image %s: empty image", p.Path)
	}
	scaled := resize.Resize(0, uint(p.HeightPx), img, resize.Lanczos3)
	return bitmap.FromImage(scaled, p.Threshold), nil
}

func decodeFile(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image: missing path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}
	render.Logger().Debug("image decoded", "path", path, "format", format, "bounds", img.Bounds())
	return img, nil
}
