package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Visibility tells if an entity is drawn. Invisible entities still take
// part in layout.
type Visibility uint8

// Visibility values.
const (
	Visible Visibility = iota
	Hidden
)

func (v Visibility) String() string {
	if v == Hidden {
		return "hidden"
	}
	return "visible"
}

// ParseVisibility parses "visible" or "hidden".
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "visible":
		return Visible, nil
	case "hidden", "collapse":
		return Hidden, nil
	}
	return Visible, fmt.Errorf("unknown visibility: %s", s)
}

// Overflow tells if the content of an entity is clipped to its bounds.
type Overflow uint8

// Overflow values.
const (
	OverflowVisible Overflow = iota
	OverflowHidden
)

func (o Overflow) String() string {
	if o == OverflowHidden {
		return "hidden"
	}
	return "visible"
}

// ParseOverflow parses "visible" or "hidden".
func ParseOverflow(s string) (Overflow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "visible":
		return OverflowVisible, nil
	case "hidden", "clip":
		return OverflowHidden, nil
	}
	return OverflowVisible, fmt.Errorf("unknown overflow: %s", s)
}

// LayoutType is the way an entity lays out its children.
type LayoutType uint8

// Layout types.
const (
	Column LayoutType = iota
	Row
	Grid
)

var layoutTypeNames = []string{"column", "row", "grid"}

func (l LayoutType) String() string {
	if int(l) < len(layoutTypeNames) {
		return layoutTypeNames[l]
	}
	return "?"
}

// ParseLayoutType parses "row", "column" or "grid".
func ParseLayoutType(s string) (LayoutType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range layoutTypeNames {
		if n == s {
			return LayoutType(i), nil
		}
	}
	return Column, fmt.Errorf("unknown layout type: %s", s)
}

// FontWeight is a numeric font weight from 1 to 1000.
type FontWeight uint16

// Common font weights.
const (
	Thin   FontWeight = 100
	Normal FontWeight = 400
	Bold   FontWeight = 700
	Black  FontWeight = 900
)

// ParseFontWeight parses a numeric weight or one of the keywords "normal"
// and "bold".
func ParseFontWeight(s string) (FontWeight, error) {
	t, err := singleTerm(s)
	if err != nil {
		return Normal, err
	}
	switch {
	case t.isIdent("normal"):
		return Normal, nil
	case t.isIdent("bold"):
		return Bold, nil
	case t.isIdent("thin"):
		return Thin, nil
	case t.kind == numberTerm && t.num >= 1 && t.num <= 1000:
		return FontWeight(t.num), nil
	}
	return Normal, fmt.Errorf("illegal font weight: %s", s)
}

// LerpFontWeight interpolates font weights.
func LerpFontWeight(from, to FontWeight, t float32) FontWeight {
	return FontWeight(math.Round(float64(from) + (float64(to)-float64(from))*float64(t)))
}

// FontSlant is the style of a font face.
type FontSlant uint8

// Font slants.
const (
	Upright FontSlant = iota
	Italic
	Oblique
)

var slantNames = []string{"normal", "italic", "oblique"}

func (s FontSlant) String() string {
	if int(s) < len(slantNames) {
		return slantNames[s]
	}
	return "?"
}

// ParseFontSlant parses "normal", "italic" or "oblique".
func ParseFontSlant(s string) (FontSlant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range slantNames {
		if n == s {
			return FontSlant(i), nil
		}
	}
	return Upright, fmt.Errorf("unknown font slant: %s", s)
}

// ParseFontFamily returns the first family of a font family list, with
// quotes removed.
func ParseFontFamily(s string) (string, error) {
	groups, err := parseValue(s)
	if err != nil {
		return "", err
	}
	if len(groups[0]) == 0 {
		return "", fmt.Errorf("illegal font family: %s", s)
	}
	names := make([]string, 0, len(groups[0]))
	for _, t := range groups[0] {
		if t.kind != identTerm && t.kind != stringTerm {
			return "", fmt.Errorf("illegal font family: %s", s)
		}
		names = append(names, t.text)
	}
	return strings.Join(names, " "), nil
}

// ParseFontSize parses a font size in pixels or points.
func ParseFontSize(s string) (float32, error) {
	l, err := ParseLength(s)
	if err != nil {
		return 0, err
	}
	var px float32
	switch m := l.Match(); m {
	case m.Px(&px):
		return px, nil
	}
	return 0, fmt.Errorf("font size must be a fixed length: %s", s)
}

// ParseOpacity parses a number from 0 to 1 or a percentage.
func ParseOpacity(s string) (float32, error) {
	t, err := singleTerm(s)
	if err != nil {
		return 1, err
	}
	var x float64
	switch t.kind {
	case numberTerm:
		x = t.num
	case percentTerm:
		x = t.num / 100
	default:
		return 1, fmt.Errorf("illegal opacity: %s", s)
	}
	return float32(math.Max(0, math.Min(1, x))), nil
}

// ParseAngle parses an angle in deg, rad, grad or turn and returns it in
// degrees. A plain 0 is accepted.
func ParseAngle(s string) (float32, error) {
	t, err := singleTerm(s)
	if err != nil {
		return 0, err
	}
	if t.kind == numberTerm && t.num == 0 {
		return 0, nil
	}
	if t.kind == dimensionTerm {
		switch t.text {
		case "deg":
			return float32(t.num), nil
		case "rad":
			return float32(t.num * 180 / math.Pi), nil
		case "grad":
			return float32(t.num * 0.9), nil
		case "turn":
			return float32(t.num * 360), nil
		}
	}
	return 0, fmt.Errorf("illegal angle: %s", s)
}

// ParseInteger parses a (possibly negative) integer, e.g. for z-index.
func ParseInteger(s string) (int32, error) {
	t, err := singleTerm(s)
	if err != nil {
		return 0, err
	}
	if t.kind != numberTerm || t.num != math.Trunc(t.num) {
		return 0, fmt.Errorf("not an integer: %s", s)
	}
	return int32(t.num), nil
}

// ParseBool parses "true" or "false".
func ParseBool(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}

// ParseKeyword returns a lowercase identifier.
func ParseKeyword(s string) (string, error) {
	t, err := singleTerm(s)
	if err != nil {
		return "", err
	}
	if t.kind != identTerm {
		return "", fmt.Errorf("not a keyword: %s", s)
	}
	return strings.ToLower(t.text), nil
}

// Tracks is a list of grid track sizes, kept in canonical textual form
// so that it can be compared.
type Tracks string

// ParseTracks parses a space separated list of lengths.
func ParseTracks(s string) (Tracks, error) {
	terms, err := singleGroup(s)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		l, err := lengthFromTerm(t)
		if err != nil {
			return "", err
		}
		parts[i] = l.String()
	}
	return Tracks(strings.Join(parts, " ")), nil
}

// Lengths returns the track sizes.
func (tr Tracks) Lengths() []Length {
	var ls []Length
	for _, f := range strings.Fields(string(tr)) {
		if l, err := ParseLength(f); err == nil {
			ls = append(ls, l)
		}
	}
	return ls
}

// ParseNumber parses a plain number, e.g. for scale factors.
func ParseNumber(s string) (float32, error) {
	t, err := singleTerm(s)
	if err != nil {
		return 0, err
	}
	if t.kind != numberTerm {
		return 0, fmt.Errorf("not a number: %s", s)
	}
	return float32(t.num), nil
}
