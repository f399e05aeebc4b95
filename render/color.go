package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor resolves a CSS colour name ("black", "navy") or a hex value
// (#rgb, #rrggbb, #rrggbbaa) to an opaque or translucent RGBA.
func ParseColor(spec string) (color.RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty colour")
	}
	if s == "transparent" {
		return color.RGBA{}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("unknown colour %q", spec)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("colour %q: expected #rgb, #rrggbb or #rrggbbaa", spec)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", spec, err)
	}
	// 8 位十六进制为非预乘 RGBA，这里转成 image/color 使用的预乘形式。
	nc := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(nc).(color.RGBA), nil
}
