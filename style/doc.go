/*
Package style resolves style properties for the entities of a user interface
tree.

The central type is Engine. It owns a store for every supported style
property, the table of stylesheet rules and the dirty flags telling layout
and rendering what needs to be re-done. Clients drive it once per frame:

	eng := style.NewEngine(tree, entities, conf)
	eng.AddStylesheet(".a { width: 10px; } #x.a { width: 20px; transition: width 0.2s; }")
	eng.AddEntity(x, "button")
	eng.AddClass(x, "a")
	…
	eng.Update(now)            // restyle, inherit, tick animations
	w, ok := eng.Width.Get(x)  // resolved width
	if eng.NeedsRelayout() {
	    …
	}

Resolution

Every property store resolves a value for an entity in the order

	active animation > inline value > value of the best matching rule

Rules matching an entity are sorted by specificity. For equal specificity,
the rule declared later wins. Declarations marked !important win over all
normal declarations.

Restyling walks the tree breadth first, so a parent is always resolved
before its children. Siblings with identical element names, ids, classes and
pseudo-classes share the result of selector matching, except for structural
selectors (e.g., ":first-child"), which are matched for every entity.

Inheritance

Font properties, text colors and the disabled flag are inherited. Children
without a value of their own point to the value of their parent. Inheritance
runs in two passes after restyling, one for inline values and one for rule
values.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.style'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.style")
}
