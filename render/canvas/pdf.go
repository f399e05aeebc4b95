package canvasrender

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/tapelabel/layout"
)

// WritePDF 将预览图放到与其物理尺寸相同的单页 PDF 上，1 像素对应打印头的一个点。
func WritePDF(w io.Writer, img image.Image, meta layout.Meta) error {
	if img == nil {
		return fmt.Errorf("预览图为空")
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return fmt.Errorf("预览图尺寸为 0")
	}
	widthMM := layout.PxToMM(float64(bounds.Dx()))
	heightMM := layout.PxToMM(float64(bounds.Dy()))

	writer := pdf.New(w, widthMM, heightMM, nil)
	writer.SetInfo(meta.Title, meta.Subject, strings.Join(meta.Keywords, ", "), meta.Author, meta.Creator)

	c := canvas.New(widthMM, heightMM)
	ctx := canvas.NewContext(c)
	ctx.DrawImage(0, 0, img, canvas.DPMM(layout.PixelsPerMM))
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}
