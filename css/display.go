package css

import (
	"bytes"
	"fmt"
	"strings"
)

// DisplayMode is a type for the style property "display".
type DisplayMode uint16

// Flags for display mode (outer and inner).
const (
	NoMode      DisplayMode = iota   // unset or error condition
	DisplayNone DisplayMode = 0x0001 // outer display = none
	BlockMode   DisplayMode = 0x0002 // box participates in layout
	FlexMode    DisplayMode = 0x0010 // inner display = stacking children
	GridMode    DisplayMode = 0x0020 // inner display = grid
)

var allDisplayModes = []DisplayMode{
	DisplayNone, BlockMode, FlexMode, GridMode,
}

var displayModeNames = map[DisplayMode]string{
	DisplayNone: "none",
	BlockMode:   "block",
	FlexMode:    "flex",
	GridMode:    "grid",
}

// Outer returns outer mode
func (disp DisplayMode) Outer() DisplayMode {
	return disp & 0x000f
}

// Inner returns inner mode
func (disp DisplayMode) Inner() DisplayMode {
	return disp & 0xfff0
}

// IsHidden is true for display mode none. Hidden entities take no space in
// layout and are not drawn.
func (disp DisplayMode) IsHidden() bool {
	return disp.Contains(DisplayNone)
}

// Set sets a given atomic mode within this display mode.
func (disp *DisplayMode) Set(d DisplayMode) {
	*disp = (*disp) | d
}

// Contains checks if a display mode contains a given atomic mode.
// Returns false for d = NoMode.
func (disp DisplayMode) Contains(d DisplayMode) bool {
	return d != NoMode && (disp&d > 0)
}

func (disp DisplayMode) String() string {
	if disp == NoMode {
		return "NoMode"
	}
	var b bytes.Buffer
	for _, m := range allDisplayModes {
		if disp.Contains(m) {
			if b.Len() > 0 {
				b.WriteString(" ")
			}
			b.WriteString(displayModeNames[m])
		}
	}
	return b.String()
}

// Symbol returns a Unicode symbol for a mode.
func (disp DisplayMode) Symbol() string {
	if disp.Contains(DisplayNone) {
		return "□"
	} else if disp.Contains(FlexMode) {
		return "▤"
	} else if disp.Contains(GridMode) {
		return "◰"
	} else if disp.Contains(BlockMode) {
		return "▩"
	} else if disp == NoMode {
		return "–"
	}
	return "?"
}

// ParseDisplay returns mode flags from a display property string.
func ParseDisplay(display string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(display)) {
	case "":
		return NoMode, nil
	case "none":
		return DisplayNone, nil
	case "block":
		return BlockMode, nil
	case "flex":
		return BlockMode | FlexMode, nil
	case "grid":
		return BlockMode | GridMode, nil
	}
	return NoMode, fmt.Errorf("unknown display mode: %s", display)
}
