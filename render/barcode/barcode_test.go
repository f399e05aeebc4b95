package barcode

import "testing"

func TestQRFitsHeight(t *testing.T) {
	b, err := (&QR{Content: "https://example.org", HeightPx: 64}).Render(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Height() != 64 {
		t.Fatalf("height: got %d want 64", b.Height())
	}
	// 版本 2 的 QR 码是 25 个模块，放大两倍。
	if b.Width() != 50 {
		t.Fatalf("width: got %d want 50", b.Width())
	}
	// 左上角定位图案
	if !b.Ink(0, 7) || !b.Ink(1, 8) {
		t.Fatalf("finder pattern missing")
	}
	for x := 0; x < b.Width(); x++ {
		if b.Ink(x, 0) || b.Ink(x, 63) {
			t.Fatalf("padding rows should stay blank")
		}
	}
}

func TestQRTooLarge(t *testing.T) {
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'a' + byte(i%26)
	}
	if _, err := (&QR{Content: string(long), HeightPx: 32}).Render(nil); err == nil {
		t.Fatalf("expected error for content that cannot fit")
	}
	if _, err := (&QR{HeightPx: 32}).Render(nil); err == nil {
		t.Fatalf("expected error for empty content")
	}
}

func TestLinearSymbologies(t *testing.T) {
	cases := []struct {
		sym, content string
		modules      int
	}{
		{"code128", "ABC", 0},
		{"code39", "abc", 0},
		{"ean13", "5901234123457", 95},
	}
	for _, tc := range cases {
		b, err := (&Linear{Symbology: tc.sym, Content: tc.content, HeightPx: 48}).Render(nil)
		if err != nil {
			t.Fatalf("%s: %v", tc.sym, err)
		}
		if b.Height() != 48 || b.Width()%ModulePx != 0 {
			t.Fatalf("%s: unexpected size %dx%d", tc.sym, b.Width(), b.Height())
		}
		if tc.modules > 0 && b.Width() != tc.modules*ModulePx {
			t.Fatalf("%s: width got %d want %d", tc.sym, b.Width(), tc.modules*ModulePx)
		}
		// 每一列上下一致
		for x := 0; x < b.Width(); x++ {
			if b.Ink(x, 0) != b.Ink(x, 47) {
				t.Fatalf("%s: column %d not uniform", tc.sym, x)
			}
		}
		if !b.Ink(0, 0) {
			t.Fatalf("%s: barcode should start with a bar", tc.sym)
		}
	}
}

func TestLinearErrors(t *testing.T) {
	cases := []*Linear{
		{Symbology: "pdf417", Content: "x", HeightPx: 10},
		{Symbology: "code128", Content: "", HeightPx: 10},
		{Symbology: "ean13", Content: "12", HeightPx: 10},
		{Symbology: "code128", Content: "x"},
	}
	for _, l := range cases {
		if _, err := l.Render(nil); err == nil {
			t.Fatalf("%+v: expected error", l)
		}
	}
}
