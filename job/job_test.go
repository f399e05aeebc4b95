package job

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/tapelabel/dsl"
	"github.com/ByLCY/tapelabel/layout"
	"github.com/ByLCY/tapelabel/render"
)

func newJob(t *testing.T, src string) *Job {
	t.Helper()
	doc, err := dsl.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	label, err := layout.Build(doc, nil, layout.BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	j, err := New(label)
	if err != nil {
		t.Fatalf("job: %v", err)
	}
	return j
}

// 6mm 色带：打印头 32px，色带 42px，上下各 5px 不可打印。
const patternLabel = `
label Cal v1 {
  device {
    tape: 6mm
    margin: 1mm
    justify: left
  }
  pattern width 70px stripe 1px
}
`

func TestPrintShiftsByCutterDistance(t *testing.T) {
	j := newJob(t, patternLabel)
	out, err := j.Print()
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if out.Width() != 84 || out.Height() != 32 {
		t.Fatalf("size: got %dx%d want 84x32", out.Width(), out.Height())
	}
	// offset = 7 - 56.7，四舍五入为 -50，只剩图案最后 20 列。
	if out.InkCount() == 0 {
		t.Fatalf("expected the tail of the pattern to be printed")
	}
	for x := 20; x < out.Width(); x++ {
		for y := 0; y < out.Height(); y++ {
			if out.Ink(x, y) {
				t.Fatalf("unexpected ink at (%d,%d)", x, y)
			}
		}
	}
}

func TestShowUsesPreviewGeometry(t *testing.T) {
	j := newJob(t, patternLabel)
	s, err := j.Show(false)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if len(lines) != 21 {
		t.Fatalf("rows: got %d want 21", len(lines))
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != 84 {
			t.Fatalf("row %d: got %d columns want 84", i, n)
		}
	}
}

func TestPreviewSizeAndContext(t *testing.T) {
	j := newJob(t, `
label P v1 {
  device {
    tape: 12mm
    foreground: navy
    background: "#ffffe0"
    show-margins: true
  }
  spacer width 20px
}
`)
	ctx := j.Context()
	if ctx.Foreground != "navy" || ctx.Background != "#ffffe0" || !ctx.PreviewShowMargins {
		t.Fatalf("context %+v", ctx)
	}
	img, err := j.Preview()
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	// 标签宽 20+2*56，高 64+2*10，外加预览边距。
	wantW := 132 + 2*render.PreviewMarginXPx
	wantH := 84 + 2*render.PreviewMarginYPx
	if img.Bounds().Dx() != wantW || img.Bounds().Dy() != wantH {
		t.Fatalf("preview size: got %v want %dx%d", img.Bounds().Size(), wantW, wantH)
	}

	var buf bytes.Buffer
	if err := j.PreviewPDF(&buf); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected PDF output")
	}
}

func TestBrokenItemFallsBack(t *testing.T) {
	var logs bytes.Buffer
	render.SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn})))
	defer render.SetLogger(nil)

	j := newJob(t, `
label B v1 {
  text { "ok" }
  image "missing-file.png"
}
`)
	out, err := j.Print()
	if err != nil {
		t.Fatalf("print should survive a broken item: %v", err)
	}
	if out.Height() != 64 {
		t.Fatalf("height: got %d", out.Height())
	}
	if !strings.Contains(logs.String(), "image#1") {
		t.Fatalf("expected a warning naming the item, got %q", logs.String())
	}
}

func TestPrintLogsAtDebugOnly(t *testing.T) {
	var logs bytes.Buffer
	render.SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo})))
	defer render.SetLogger(nil)

	j := newJob(t, patternLabel)
	if _, err := j.Print(); err != nil {
		t.Fatalf("print: %v", err)
	}
	if logs.Len() != 0 {
		t.Fatalf("nothing above debug expected, got %q", logs.String())
	}

	render.SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	if _, err := j.Print(); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(logs.String(), "print payload rendered") {
		t.Fatalf("expected debug record, got %q", logs.String())
	}
}

func TestMaxWidthViolation(t *testing.T) {
	j := newJob(t, `
label M v1 {
  device {
    max-width: 100px
  }
  spacer width 50px
}
`)
	_, err := j.Print()
	var tooBig *render.BitmapTooBigError
	if !errors.As(err, &tooBig) {
		t.Fatalf("expected BitmapTooBigError, got %v", err)
	}
	if tooBig.WidthPx != 162 || tooBig.MaxWidthPx != 100 {
		t.Fatalf("error values %+v", tooBig)
	}
}

func TestNewRejectsBadJustify(t *testing.T) {
	label := &layout.Label{Device: layout.Device{Justify: "diagonal", PrintHeadPx: 64}}
	if _, err := New(label); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil label")
	}
}
