package layout

import (
	"math"
	"testing"
)

// TestPxMmRoundTrip 验证 px↔mm 换算的往返精度。
func TestPxMmRoundTrip(t *testing.T) {
	samples := []float64{0, 1, 7, 56, 64, 84, 1000}
	for _, px := range samples {
		back := MMToPx(PxToMM(px))
		if diff := math.Abs(back - px); diff > 1e-9 {
			t.Fatalf("px→mm→px 往返误差过大: in=%g back=%g diff=%g", px, back, diff)
		}
	}
	if got := PxToMM(70); got != 10 {
		t.Fatalf("70px should be 10mm, got %g", got)
	}
}

// TestParseLengthUnits 覆盖 DSL 中常见单位到 px 的换算。
func TestParseLengthUnits(t *testing.T) {
	cases := []struct {
		in     string
		wantPx float64
	}{
		{"8mm", 56},
		{"1cm", 70},
		{"1in", 25.4 * PixelsPerMM},
		{"12px", 12},
		{"12", 12},
		{"50%", 32},
		{"72pt", 25.4 * PixelsPerMM},
	}
	for _, tc := range cases {
		l, ok := ParseLength(tc.in)
		if !ok {
			t.Fatalf("%s: parse failed", tc.in)
		}
		if got := l.ToPx(64); math.Abs(got-tc.wantPx) > 1e-3 {
			t.Fatalf("%s: got %gpx want %gpx", tc.in, got, tc.wantPx)
		}
	}
	if _, ok := ParseLength("wide"); ok {
		t.Fatalf("expected parse failure for non-numeric length")
	}
}

func TestLengthRatio(t *testing.T) {
	l, _ := ParseLength("90%")
	if got := l.Ratio(); math.Abs(got-0.9) > 1e-12 {
		t.Fatalf("90%% ratio: got %g", got)
	}
	l, _ = ParseLength("0.5")
	if got := l.Ratio(); got != 0.5 {
		t.Fatalf("0.5 ratio: got %g", got)
	}
}
