package css

import (
	"fmt"
	"strings"
)

// position is an enum type for the style property position-type.
type position uint8

// Enum values for type position
const (
	positionUnset  position = iota
	positionParent          // placed by the parent's layout (default)
	positionSelf            // placed by its own offsets
)

// PositionT is an option type for position types.
type PositionT struct {
	kind position
}

/*
type PositionT
	= Unset
	| ParentDirected
	| SelfDirected
*/

// ParentDirected creates a position type for entities placed by the layout
// of their parent.
func ParentDirected() PositionT {
	return PositionT{kind: positionParent}
}

// SelfDirected creates a position type for entities placed by their own
// offsets (left, top, right, bottom), ignoring siblings.
func SelfDirected() PositionT {
	return PositionT{kind: positionSelf}
}

var positionMap = map[position]string{
	positionParent: "parent-directed",
	positionSelf:   "self-directed",
}

// ParsePosition returns a position type from a property string.
func ParsePosition(p string) (PositionT, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "parent-directed", "relative":
		return ParentDirected(), nil
	case "self-directed", "absolute":
		return SelfDirected(), nil
	}
	return PositionT{}, fmt.Errorf("unknown position type: %s", p)
}

func (p PositionT) String() string {
	if s, ok := positionMap[p.kind]; ok {
		return s
	}
	return "unset"
}

// IsUnset returns true if p is unset.
func (p PositionT) IsUnset() bool {
	return p.kind == positionUnset
}

// IsSelfDirected returns true if p is self-directed.
func (p PositionT) IsSelfDirected() bool {
	return p.kind == positionSelf
}

// --- Expression matching ---------------------------------------------------

// PositionPatterns holds the results of a pattern match on a position type.
type PositionPatterns[T any] struct {
	Unset  T
	Parent T
	Self   T
}

// PositionPattern starts an expression switch on a position type.
func PositionPattern[T any](p PositionT) *PMatchExpr[T] {
	return &PMatchExpr[T]{pos: p}
}

// PMatchExpr is part of pattern matching for PositionT types and intended to
// be instantiated using PositionPattern only.
type PMatchExpr[T any] struct {
	pos PositionT
}

// OneOf selects the pattern for the kind of the position type.
func (m *PMatchExpr[T]) OneOf(patterns PositionPatterns[T]) T {
	switch m.pos.kind {
	case positionParent:
		return patterns.Parent
	case positionSelf:
		return patterns.Self
	}
	return patterns.Unset
}

// --- Directions ------------------------------------------------------------

// PosDir is either Top, Right, Bottom or Left.
type PosDir uint8

// Directions in the order of CSS four-value shorthands.
const (
	Top PosDir = iota
	Right
	Bottom
	Left
)

var dirNames = [4]string{"top", "right", "bottom", "left"}

func (d PosDir) String() string {
	if d <= Left {
		return dirNames[d]
	}
	return "?"
}

// Distribute4 spreads 1 to 4 values onto the four directions, the way CSS
// shorthands like "margin" do:
//
//	1 value:  all four
//	2 values: top/bottom, right/left
//	3 values: top, right/left, bottom
//	4 values: top, right, bottom, left
func Distribute4[T any](values []T) ([4]T, error) {
	var r [4]T
	switch len(values) {
	case 1:
		r = [4]T{values[0], values[0], values[0], values[0]}
	case 2:
		r = [4]T{values[0], values[1], values[0], values[1]}
	case 3:
		r = [4]T{values[0], values[1], values[2], values[1]}
	case 4:
		copy(r[:], values)
	default:
		return r, fmt.Errorf("expecting 1-4 values, have %d", len(values))
	}
	return r, nil
}
