package entity

import (
	"fmt"
	"math"
)

const nullIndex = math.MaxUint32

// id is the common representation of all generational identifiers.
type id struct {
	index      uint32
	generation uint32
}

// Index returns the array index of an identifier.
func (i id) Index() int {
	return int(i.index)
}

// Generation returns the generation counter of an identifier.
func (i id) Generation() uint32 {
	return i.generation
}

// IsNull is true for the distinguished null identifier.
func (i id) IsNull() bool {
	return i.index == nullIndex
}

func (i id) format(prefix string) string {
	if i.IsNull() {
		return prefix + "(null)"
	}
	return fmt.Sprintf("%s#%d.%d", prefix, i.index, i.generation)
}

// Entity is an opaque handle for a node of the user interface tree.
// It is the key for all per-entity style storage.
type Entity struct{ id }

// Rule identifies one parsed style rule, i.e. a selector list together
// with its declaration block.
type Rule struct{ id }

// Animation identifies a playable animation or transition description.
type Animation struct{ id }

// NewEntity creates an entity handle from an index and a generation.
// Clients usually get entities from a Manager.
func NewEntity(index, generation uint32) Entity {
	return Entity{id{index, generation}}
}

// NewRule creates a rule identifier from an index and a generation.
func NewRule(index, generation uint32) Rule {
	return Rule{id{index, generation}}
}

// NewAnimation creates an animation identifier from an index and a generation.
func NewAnimation(index, generation uint32) Animation {
	return Animation{id{index, generation}}
}

// Null values for identifiers.
var (
	Null          = Entity{id{nullIndex, 0}}
	NullRule      = Rule{id{nullIndex, 0}}
	NullAnimation = Animation{id{nullIndex, 0}}
)

func (e Entity) String() string    { return e.format("entity") }
func (r Rule) String() string      { return r.format("rule") }
func (a Animation) String() string { return a.format("animation") }

// Generational is the set of identifier types a Manager may hand out.
type Generational interface {
	comparable
	Index() int
	Generation() uint32
	IsNull() bool
}
