/*
Package css provides value types and parsers for style properties.

Style properties are textual in stylesheets and inline style declarations.
This package shields clients from the cumbersome handling of the textual
representation and converts property values into types the layout and
render systems can work with: lengths, colors, shadows, display modes,
transition lists and the like. Values are tokenized with the CSS scanner
of gorilla/css.

Most types come with an interpolation function suitable for animations,
see package animation.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.css'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.css")
}
