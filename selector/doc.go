/*
Package selector matches CSS selectors against an entity tree.

Selector parsing and matching is delegated to cascadia, which operates on
html.Node trees. A Matcher therefore mirrors the entity tree, exposed through
the Document interface, into a lightweight html.Node tree. Element names,
IDs and classes become element data and attributes. Dynamic pseudo-classes,
which are meaningless for static HTML documents, are translated into a
"data-state" attribute; selectors referring to them are rewritten
accordingly at compile time.

	sel, err := selector.Compile("button.primary:hover > label")
	m := selector.NewMatcher(doc)
	if spec, ok := m.Matches(sel, e); ok {
	    …
	}

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package selector

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.selector'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.selector")
}
