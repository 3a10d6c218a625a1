/*
Package cssom provides the stylesheet abstraction for the style engine.

CSS handling is de-coupled from the styling engine by introducing the
interfaces StyleSheet, Rule and Keyframes. Clients of the engine may provide
their own implementation; a concrete one on top of the douceur CSS parser
may be found in sub-package douceuradapter.

Property values are kept as raw strings (type Property) until the engine
resolves them for a concrete property store. Shorthand properties, e.g.

	border-radius: 4px 8px

are split into their components with SplitCompoundProperty.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'restyle.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.cssom")
}
