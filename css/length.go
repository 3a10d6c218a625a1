package css

import (
	"fmt"
	"strconv"
)

const (
	lengthNone uint8 = iota
	lengthPixels
	lengthPercent
	lengthStretch
	lengthAuto
)

// ptToPx converts typographic points to (CSS reference) pixels.
const ptToPx = 4.0 / 3.0

// Length is an option type for lengths of the layout system.
type Length struct {
	value float32
	kind  uint8
}

/*
type Length
	= Unset
	| Auto
	| Pixels px
	| Percentage p
	| Stretch factor
*/

// Auto creates a length to be determined by layout.
func Auto() Length {
	return Length{kind: lengthAuto}
}

// Px creates a fixed length of x pixels.
func Px(x float32) Length {
	return Length{value: x, kind: lengthPixels}
}

// Percentage creates a length relative to the parent's size.
func Percentage(p float32) Length {
	return Length{value: p, kind: lengthPercent}
}

// Stretch creates a length taking a share of the remaining free space.
func Stretch(factor float32) Length {
	return Length{value: factor, kind: lengthStretch}
}

// IsUnset is true for the zero value.
func (l Length) IsUnset() bool { return l.kind == lengthNone }

// IsAuto is true for auto lengths.
func (l Length) IsAuto() bool { return l.kind == lengthAuto }

// Value returns the number of a length without its unit.
func (l Length) Value() float32 { return l.value }

// Pixels resolves a length against a base size. Stretch and auto lengths
// cannot be resolved and return false.
func (l Length) Pixels(base float32) (float32, bool) {
	switch l.kind {
	case lengthPixels:
		return l.value, true
	case lengthPercent:
		return base * l.value / 100, true
	}
	return 0, false
}

func (l Length) String() string {
	f := func(x float32) string { return strconv.FormatFloat(float64(x), 'f', -1, 32) }
	switch l.kind {
	case lengthAuto:
		return "auto"
	case lengthPixels:
		return f(l.value) + "px"
	case lengthPercent:
		return f(l.value) + "%"
	case lengthStretch:
		return f(l.value) + "s"
	}
	return "unset"
}

// ParseLength parses a length: "auto", "0", pixels ("10px"), points
// ("12pt", converted to pixels), percentages ("50%") or stretch factors
// ("1s" or "stretch(1)").
func ParseLength(value string) (Length, error) {
	t, err := singleTerm(value)
	if err != nil {
		return Length{}, err
	}
	return lengthFromTerm(t)
}

func lengthFromTerm(t term) (Length, error) {
	switch t.kind {
	case identTerm:
		if t.isIdent("auto") {
			return Auto(), nil
		}
	case numberTerm:
		if t.num == 0 {
			return Px(0), nil
		}
	case percentTerm:
		return Percentage(float32(t.num)), nil
	case dimensionTerm:
		switch t.text {
		case "px":
			return Px(float32(t.num)), nil
		case "pt":
			return Px(float32(t.num * ptToPx)), nil
		case "s":
			return Stretch(float32(t.num)), nil
		}
	case funcTerm:
		if t.text == "stretch" && len(t.args) == 1 && t.args[0].kind == numberTerm {
			return Stretch(float32(t.args[0].num)), nil
		}
	}
	return Length{}, fmt.Errorf("not a length: %s", t)
}

// LerpLength interpolates lengths of the same kind. Lengths of different
// kinds cannot be interpolated and switch discretely.
func LerpLength(from, to Length, t float32) Length {
	if from.kind != to.kind || from.kind == lengthAuto {
		if t < 0.5 {
			return from
		}
		return to
	}
	return Length{value: from.value + (to.value-from.value)*t, kind: from.kind}
}

// ---------------------------------------------------------------------------

// Match starts a type switch on the kind of a length:
//
//	switch m := l.Match(); m {
//	case m.Px(&x):
//	    …
//	case m.IsKind(css.Auto()):
//	    …
//	}
func (l Length) Match() *Matcher {
	return &Matcher{length: l}
}

// Matcher is part of type switches on lengths, see Length.Match.
type Matcher struct {
	length Length
}

// IsKind matches if the length is of the same kind as l.
func (m *Matcher) IsKind(l Length) *Matcher {
	if m.length.kind == l.kind {
		return m
	}
	return nil
}

func (m *Matcher) just(kind uint8, x *float32) *Matcher {
	if m.length.kind == kind {
		if x != nil {
			*x = m.length.value
		}
		return m
	}
	return nil
}

// Px matches pixel lengths and extracts the number of pixels.
func (m *Matcher) Px(x *float32) *Matcher { return m.just(lengthPixels, x) }

// Percentage matches relative lengths and extracts the percentage.
func (m *Matcher) Percentage(p *float32) *Matcher { return m.just(lengthPercent, p) }

// Stretch matches stretch lengths and extracts the stretch factor.
func (m *Matcher) Stretch(f *float32) *Matcher { return m.just(lengthStretch, f) }

// --- Expression matching ---------------------------------------------------

// LengthPatterns holds the results of a pattern match on a length.
type LengthPatterns[T any] struct {
	Unset      T
	Auto       T
	Px         T
	Percentage T
	Stretch    T
	Default    T
}

// LengthPattern starts an expression switch on the kind of a length:
//
//	var x float32
//	m := css.LengthPattern[float32](l)
//	w := m.OneOf(css.LengthPatterns[float32]{
//	    Px:      m.With(&x).Const(x),
//	    Default: 0,
//	})
func LengthPattern[T any](l Length) *MatchExpr[T] {
	return &MatchExpr[T]{length: l}
}

// MatchExpr is part of pattern matching for lengths and is intended to be
// instantiated using LengthPattern only.
type MatchExpr[T any] struct {
	length Length
}

// OneOf selects the pattern for the kind of the length.
func (m *MatchExpr[T]) OneOf(patterns LengthPatterns[T]) T {
	switch m.length.kind {
	case lengthNone:
		return patterns.Unset
	case lengthAuto:
		return patterns.Auto
	case lengthPixels:
		return patterns.Px
	case lengthPercent:
		return patterns.Percentage
	case lengthStretch:
		return patterns.Stretch
	}
	return patterns.Default
}

// With extracts the number of the length.
func (m *MatchExpr[T]) With(x *float32) *MatchExpr[T] {
	*x = m.length.value
	return m
}

// Const returns x.
func (m *MatchExpr[T]) Const(x T) T {
	return x
}
