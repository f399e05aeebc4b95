package layout

import (
	"fmt"
	"math"
	"sort"
)

// TapeProfile describes how much of a tape the print head can reach.
type TapeProfile struct {
	TapeMM      float64 `json:"tapeMM"`
	PrintHeadPx int     `json:"printHeadPx"`
}

const (
	// HeadToCutterMM is the distance between the print head and the cutter.
	HeadToCutterMM = 8.1
	// DefaultMarginMM is the visible margin left of and right of the payload.
	DefaultMarginMM = 8.0
	DefaultTapeMM   = 12.0
)

var tapeProfiles = map[float64]TapeProfile{
	6:  {TapeMM: 6, PrintHeadPx: 32},
	9:  {TapeMM: 9, PrintHeadPx: 48},
	12: {TapeMM: 12, PrintHeadPx: 64},
}

// LookupTape returns the profile for a tape width in mm.
func LookupTape(tapeMM float64) (TapeProfile, error) {
	if p, ok := tapeProfiles[tapeMM]; ok {
		return p, nil
	}
	supported := make([]float64, 0, len(tapeProfiles))
	for k := range tapeProfiles {
		supported = append(supported, k)
	}
	sort.Float64s(supported)
	return TapeProfile{}, fmt.Errorf("unsupported tape width %gmm (supported: %v)", tapeMM, supported)
}

// LabelerHorizontalMarginPx is the leading offset of the print head relative to the cutter.
func (p TapeProfile) LabelerHorizontalMarginPx() float64 {
	return MMToPx(HeadToCutterMM)
}

// LabelerVerticalMarginPx is the unprintable strip above and below the head's reach.
func (p TapeProfile) LabelerVerticalMarginPx() float64 {
	return math.Max((MMToPx(p.TapeMM)-float64(p.PrintHeadPx))/2, 0)
}
