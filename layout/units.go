package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe lengths and the px↔mm conversion of the print head.

// Unit represents the original unit of a length value as specified in DSL.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like ratios
	UnitPX               // print head dots
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
	UnitPercent          // percentage of a reference
)

// PixelsPerMM is the print head resolution (≈180 dpi).
const PixelsPerMM = 7.0

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToMM converts print head pixels to millimeters.
func PxToMM(px float64) float64 { return px / PixelsPerMM }

// MMToPx converts millimeters to print head pixels (unrounded).
func MMToPx(mm float64) float64 { return mm * PixelsPerMM }

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	case UnitPercent:
		return "%"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// ToMM converts the length to millimeters. Unit-less values are taken as mm.
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitPX:
		return PxToMM(l.Value)
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

// ToPx converts the length to print head pixels. Unit-less values are taken as px,
// percentages resolve against reference (in px).
func (l Length) ToPx(reference float64) float64 {
	switch l.Unit {
	case UnitNone, UnitPX:
		return l.Value
	case UnitPercent:
		return reference * l.Value / 100
	default:
		return MMToPx(l.ToMM())
	}
}

// Ratio returns percentages as a fraction and plain numbers unchanged.
func (l Length) Ratio() float64 {
	if l.Unit == UnitPercent {
		return l.Value / 100
	}
	return l.Value
}

// ParseLength parses a DSL length string preserving its unit.
func ParseLength(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}, {"%", UnitPercent}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}
