/*
Package tree implements an entity tree.

Nodes of the tree are entities. The tree itself does not hold any payload;
data is associated with entities by property stores elsewhere. Links between
nodes (parent, first and last child, siblings) are kept in slices indexed by
entity index, so lookups are O(1) and the tree never allocates per node.

The tree is not safe for concurrent use. It is mutated between frames by a
single owner, usually the UI framework hosting the style engine.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.tree'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.tree")
}
