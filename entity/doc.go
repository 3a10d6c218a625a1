/*
Package entity provides generational identifiers for entities, style rules
and animations.

An identifier consists of an index, used for addressing dense arrays, and a
generation counter. Indices are recycled by a Manager; every time an index is
handed out again its generation is incremented. Code holding an old
identifier therefore never accidentally addresses the object which re-used
the slot: all lookups compare the full identifier, not just the index.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package entity

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.entity'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.entity")
}
