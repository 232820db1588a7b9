package units

import (
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for lengths. The layout
// engine works in PostScript points throughout; millimetres appear at the
// edges (paper formats, barcode print sizes, script input).

// Unit represents the unit a length value was expressed in.
type Unit int

const (
	None Unit = iota // unit-less numbers
	MM               // millimeters
	CM               // centimeters
	IN               // inches
	PT               // points
)

// Conversion constants between pt and mm.
const (
	PtPerIn = 72.0
	MmPerIn = 25.4
	MmToPt  = PtPerIn / MmPerIn
	PtToMm  = MmPerIn / PtPerIn
)

// String returns the short suffix for a Unit value.
func (u Unit) String() string {
	switch u {
	case MM:
		return "mm"
	case CM:
		return "cm"
	case IN:
		return "in"
	case PT:
		return "pt"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64
	Unit  Unit
}

func (l Length) IsZero() bool { return l.Value == 0 }

// To converts this length to the target unit. Supported targets: MM, PT.
func (l Length) To(target Unit) float64 {
	mm := l.Value
	switch l.Unit {
	case CM:
		mm = l.Value * 10
	case IN:
		mm = l.Value * MmPerIn
	case PT:
		if target == PT {
			return l.Value
		}
		mm = l.Value * PtToMm
	case None, MM:
		// raw numbers are treated as mm
	}
	if target == PT {
		return mm * MmToPt
	}
	return mm
}

func (l Length) ToMM() float64 { return l.To(MM) }
func (l Length) ToPT() float64 { return l.To(PT) }

// Parse reads a length string like "12pt", "8mm" or "1.5in", preserving its
// unit. Unknown or malformed input yields a zero Length with Unit None.
func Parse(value string) Length {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}
	}
	unit := None
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", MM}, {"cm", CM}, {"in", IN}, {"pt", PT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}
