package storage

import "fmt"

// MaxIndex is the upper bound (exclusive) for indices held by a DataIndex.
const MaxIndex = 1 << 30

type slotKind uint8

const (
	nullSlot slotKind = iota
	inlineSlot
	sharedSlot
)

// DataIndex points an entity to its data, which is either an inline value
// owned by the entity or a shared value owned by a rule. Either kind may be
// flagged as inherited, i.e. copied down from an ancestor instead of being
// authored on (or matched by) the entity itself.
//
// The zero value is the null index.
type DataIndex struct {
	kind      slotKind
	inherited bool
	index     uint32
}

// NullIndex denotes "no data".
func NullIndex() DataIndex {
	return DataIndex{}
}

// InlineIndex points to inline data at dense position i.
func InlineIndex(i int) DataIndex {
	return DataIndex{kind: inlineSlot, index: checkIndex(i)}
}

// SharedIndex points to shared data at dense position i.
func SharedIndex(i int) DataIndex {
	return DataIndex{kind: sharedSlot, index: checkIndex(i)}
}

func checkIndex(i int) uint32 {
	if i < 0 || i >= MaxIndex {
		panic(fmt.Sprintf("storage: data index %d out of range", i))
	}
	return uint32(i)
}

// Inherited returns a copy of inx flagged as inherited.
func (inx DataIndex) Inherited() DataIndex {
	if inx.kind != nullSlot {
		inx.inherited = true
	}
	return inx
}

// IsNull is true if inx points to no data.
func (inx DataIndex) IsNull() bool { return inx.kind == nullSlot }

// IsInline is true if inx points to inline data.
func (inx DataIndex) IsInline() bool { return inx.kind == inlineSlot }

// IsShared is true if inx points to shared data.
func (inx DataIndex) IsShared() bool { return inx.kind == sharedSlot }

// IsInherited is true if inx has been copied down from an ancestor.
func (inx DataIndex) IsInherited() bool { return inx.inherited }

// Index returns the dense position inx points to. It is -1 for null.
func (inx DataIndex) Index() int {
	if inx.kind == nullSlot {
		return -1
	}
	return int(inx.index)
}

func (inx DataIndex) String() string {
	var s string
	switch inx.kind {
	case inlineSlot:
		s = fmt.Sprintf("inline[%d]", inx.index)
	case sharedSlot:
		s = fmt.Sprintf("shared[%d]", inx.index)
	default:
		return "null"
	}
	if inx.inherited {
		s += "^"
	}
	return s
}
