// Package job turns a built label description into the renderer trees used by
// the CLI: the print payload, the annotated preview and the terminal view.
package job

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/ByLCY/tapelabel/bitmap"
	"github.com/ByLCY/tapelabel/blocks"
	"github.com/ByLCY/tapelabel/layout"
	"github.com/ByLCY/tapelabel/render"
	"github.com/ByLCY/tapelabel/render/barcode"
	canvasrender "github.com/ByLCY/tapelabel/render/canvas"
	"github.com/ByLCY/tapelabel/render/picture"
)

// Job holds the payload renderer and compositor geometry of one label.
type Job struct {
	label    *layout.Label
	payload  render.Renderer
	geometry render.Geometry
}

// New builds the item renderers of label. Each item is wrapped in a
// render.Fallback so a broken item renders blank instead of failing the label.
func New(label *layout.Label) (*Job, error) {
	if label == nil {
		return nil, fmt.Errorf("job: label is nil")
	}
	justify, err := render.ParseJustify(label.Device.Justify)
	if err != nil {
		return nil, fmt.Errorf("job: %w", err)
	}
	g := render.Geometry{
		Justify:                   justify,
		VisibleHorizontalMarginPx: label.Device.MarginPx,
		LabelerHorizontalMarginPx: label.Device.LabelerHorizontalMarginPx,
		LabelerVerticalMarginPx:   label.Device.LabelerVerticalMarginPx,
		MaxWidthPx:                label.Device.MaxWidthPx,
		MinWidthPx:                label.Device.MinWidthPx,
	}

	height := label.Device.PrintHeadPx
	children := make([]render.Renderer, 0, len(label.Items))
	for i, item := range label.Items {
		r, err := itemRenderer(item, height)
		if err != nil {
			return nil, fmt.Errorf("job: item %d (line %d): %w", i, item.Line, err)
		}
		children = append(children, &render.Fallback{
			Name:  fmt.Sprintf("%s#%d", item.Kind, i),
			Inner: r,
			Empty: render.Empty{WidthPx: 1, HeightPx: height},
		})
	}

	var payload render.Renderer = &render.HStack{Children: children, GapPx: label.Device.GapPx}
	if len(children) == 1 {
		payload = children[0]
	}
	return &Job{label: label, payload: payload, geometry: g}, nil
}

func itemRenderer(item layout.Item, height int) (render.Renderer, error) {
	switch item.Kind {
	case layout.ItemText:
		return &canvasrender.Text{
			Lines:        item.Lines,
			Font:         item.Font,
			SizeRatio:    item.SizeRatio,
			FrameWidthPx: item.FrameWidthPx,
			Align:        item.Align,
			HeightPx:     height,
		}, nil
	case layout.ItemQR:
		return &barcode.QR{Content: item.Content, HeightPx: height}, nil
	case layout.ItemBarcode:
		return &barcode.Linear{Symbology: item.Symbology, Content: item.Content, HeightPx: height}, nil
	case layout.ItemImage:
		return &picture.Picture{Path: item.Path, Threshold: item.Threshold, HeightPx: height}, nil
	case layout.ItemPattern:
		return render.Pattern{StripePx: item.StripePx, WidthPx: item.WidthPx, HeightPx: height}, nil
	case layout.ItemSpacer:
		return render.Empty{WidthPx: item.WidthPx, HeightPx: height}, nil
	default:
		return nil, fmt.Errorf("unknown item kind %q", item.Kind)
	}
}

// Context returns the render context configured by the label's device section.
func (j *Job) Context() *render.Context {
	return &render.Context{
		Foreground:         j.label.Device.Foreground,
		Background:         j.label.Device.Background,
		PreviewShowMargins: j.label.Device.ShowMargins,
	}
}

// Geometry returns the compositor geometry.
func (j *Job) Geometry() render.Geometry { return j.geometry }

// Print renders the bitmap sent to the printer.
func (j *Job) Print() (*bitmap.Bitmap, error) {
	p, err := render.NewPrintPayload(j.payload, j.geometry)
	if err != nil {
		return nil, err
	}
	out, err := p.Render(j.Context())
	if err != nil {
		return nil, err
	}
	render.Logger().Debug("print payload rendered",
		slog.String("label", j.label.Name),
		slog.Int("widthPx", out.Width()),
		slog.Int("heightPx", out.Height()),
	)
	return out, nil
}

// Preview renders the annotated RGBA preview.
func (j *Job) Preview() (*image.RGBA, error) {
	p, err := render.NewPreview(j.payload, j.geometry, layout.PxToMM)
	if err != nil {
		return nil, err
	}
	return p.Render(j.Context())
}

// PreviewPDF writes the preview to w as a PDF of the label's physical size.
func (j *Job) PreviewPDF(w io.Writer) error {
	img, err := j.Preview()
	if err != nil {
		return err
	}
	return canvasrender.WritePDF(w, img, j.label.Meta)
}

// Show renders the preview-mode label as Unicode block characters.
func (j *Job) Show(invert bool) (string, error) {
	m, err := render.NewMargins(j.payload, render.ModePreview, j.geometry)
	if err != nil {
		return "", err
	}
	label, _, err := m.Render(j.Context())
	if err != nil {
		return "", err
	}
	return blocks.Render(label, invert)
}
