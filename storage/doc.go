/*
Package storage implements per-property style storage.

Every visual property is held in its own AnimatableSet. A set layers three
planes of data:

  - shared values, authored by style rules and keyed by rule
  - inline values, authored directly on an entity
  - active animations, interpolating between values over time

Entities refer to their value through a DataIndex, which points either into
the inline values or into the shared values. Resolving a value for an entity
takes an active animation first, then the inline or shared value the
entity's DataIndex points to.

The arena pattern of a sparse array of indices into a dense array of values
is implemented by SparseSet.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package storage

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.storage'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.storage")
}
