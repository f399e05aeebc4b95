package layout

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/tapelabel/dsl"
)

// buildLabel 是测试辅助：用给定 DSL 文本构建标签描述。
func buildLabel(t *testing.T, dslText string, data any, opts BuildOptions) *Label {
	t.Helper()
	doc, err := dsl.Parse(strings.NewReader(dslText))
	if err != nil {
		t.Fatalf("解析 DSL 失败: %v", err)
	}
	label, err := Build(doc, data, opts)
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	return label
}

func buildErr(t *testing.T, dslText string, opts BuildOptions) error {
	t.Helper()
	doc, err := dsl.ParseString(dslText)
	if err != nil {
		t.Fatalf("解析 DSL 失败: %v", err)
	}
	_, err = Build(doc, nil, opts)
	return err
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBuildDefaults(t *testing.T) {
	label := buildLabel(t, `label L v1 { text { "hi" } }`, nil, BuildOptions{})
	dev := label.Device
	if dev.TapeMM != 12 || dev.PrintHeadPx != 64 {
		t.Fatalf("unexpected tape profile %+v", dev)
	}
	if !almostEqual(dev.MarginPx, 56) {
		t.Fatalf("default margin: got %g want 56", dev.MarginPx)
	}
	if !almostEqual(dev.LabelerHorizontalMarginPx, 8.1*7) {
		t.Fatalf("labeler horizontal margin: got %g", dev.LabelerHorizontalMarginPx)
	}
	if !almostEqual(dev.LabelerVerticalMarginPx, 10) {
		t.Fatalf("labeler vertical margin: got %g want 10", dev.LabelerVerticalMarginPx)
	}
	if dev.MaxWidthPx != nil || dev.MinWidthPx != 0 {
		t.Fatalf("width limits should be unset: %+v", dev)
	}
	if dev.Justify != "center" || dev.Foreground != "black" || dev.Background != "white" {
		t.Fatalf("unexpected presentation defaults %+v", dev)
	}
	if dev.GapPx != 14 {
		t.Fatalf("gap: got %d want 14", dev.GapPx)
	}
	if label.Meta.Creator != "tapelabel" {
		t.Fatalf("creator: got %q", label.Meta.Creator)
	}
	item := label.Items[0]
	if item.Kind != ItemText || item.SizeRatio != defaultSizeRatio || item.Line != 1 {
		t.Fatalf("unexpected text defaults %+v", item)
	}
}

func TestBuildDeviceSection(t *testing.T) {
	label := buildLabel(t, `
label Box v2 {
  meta {
    title: "Box"
    keywords: ["a", "b"]
  }
  device {
    tape: 9mm
    margin: 2mm
    min-width: 30mm
    max-length: 500px
    justify: right
    foreground: red
    background: #ffffe0
    show-margins: true
    gap: 0
  }
  spacer width 10px
}
`, nil, BuildOptions{})

	dev := label.Device
	if dev.TapeMM != 9 || dev.PrintHeadPx != 48 {
		t.Fatalf("tape profile %+v", dev)
	}
	if !almostEqual(dev.LabelerVerticalMarginPx, (63.0-48)/2) {
		t.Fatalf("vertical margin %g", dev.LabelerVerticalMarginPx)
	}
	if !almostEqual(dev.MarginPx, 14) || !almostEqual(dev.MinWidthPx, 210) {
		t.Fatalf("margin/min width %+v", dev)
	}
	if dev.MaxWidthPx == nil || *dev.MaxWidthPx != 500 {
		t.Fatalf("max width %v", dev.MaxWidthPx)
	}
	if dev.Justify != "right" || dev.Foreground != "red" || dev.Background != "#ffffe0" || !dev.ShowMargins || dev.GapPx != 0 {
		t.Fatalf("presentation %+v", dev)
	}
	if label.Meta.Title != "Box" || strings.Join(label.Meta.Keywords, ",") != "a,b" {
		t.Fatalf("meta %+v", label.Meta)
	}
	if label.Name != "Box" || label.Version != "v2" {
		t.Fatalf("header %s %s", label.Name, label.Version)
	}
}

func TestBuildItems(t *testing.T) {
	data := map[string]any{
		"item": map[string]any{"name": "Flour", "sku": "F-001"},
	}
	label := buildLabel(t, `
label Shelf v1 {
  text font bold size 80% frame 2px align left {
    "${item.name}"
    "${item.origin|unknown}"
  }
  qr { "https://example.org/${item.sku}" }
  barcode code39 { "${item.sku}" }
  barcode { "123" }
  image "logo.png" threshold 40%
  pattern width 3mm stripe 2px
}
`, data, BuildOptions{BaseDir: "assets"})

	if len(label.Items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(label.Items))
	}
	text := label.Items[0]
	if strings.Join(text.Lines, "|") != "Flour|unknown" {
		t.Fatalf("text lines %q", text.Lines)
	}
	if text.Font != "bold" || !almostEqual(text.SizeRatio, 0.8) || text.FrameWidthPx != 2 || text.Align != "left" {
		t.Fatalf("text attrs %+v", text)
	}
	if qr := label.Items[1]; qr.Kind != ItemQR || qr.Content != "https://example.org/F-001" {
		t.Fatalf("qr %+v", qr)
	}
	if bc := label.Items[2]; bc.Symbology != "code39" || bc.Content != "F-001" {
		t.Fatalf("barcode %+v", bc)
	}
	if bc := label.Items[3]; bc.Symbology != "code128" {
		t.Fatalf("default symbology %+v", bc)
	}
	img := label.Items[4]
	if img.Path != filepath.Join("assets", "logo.png") || !almostEqual(img.Threshold, 0.4) {
		t.Fatalf("image %+v", img)
	}
	pat := label.Items[5]
	if pat.WidthPx != 21 || pat.StripePx != 2 {
		t.Fatalf("pattern %+v", pat)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]string{
		"unsupported tape": `label L v1 { device { tape: 24mm } text { "x" } }`,
		"unknown device":   `label L v1 { device { colour: red } text { "x" } }`,
		"unknown item":     `label L v1 { sticker { "x" } }`,
		"empty text":       `label L v1 { text { } }`,
		"no items":         `label L v1 { device { tape: 12mm } }`,
		"bad size":         `label L v1 { text size 150% { "x" } }`,
		"spacer width":     `label L v1 { spacer }`,
		"qr content":       `label L v1 { qr }`,
		"negative margin":  `label L v1 { device { margin: -1mm } text { "x" } }`,
	}
	for name, src := range cases {
		if err := buildErr(t, src, BuildOptions{}); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestBuildStrictBinding(t *testing.T) {
	src := `label L v1 { text { "${missing}" } }`
	if err := buildErr(t, src, BuildOptions{Strict: true}); err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("expected strict binding error, got %v", err)
	}
	label := buildLabel(t, src, nil, BuildOptions{})
	if label.Items[0].Lines[0] != "${missing}" {
		t.Fatalf("lenient binding should keep placeholder, got %q", label.Items[0].Lines[0])
	}
}
