/*
Package animation implements the timing model for transitions and keyframe
animations.

An animation is described by a template State holding an ordered list of
keyframes. Playing an animation clones the template into an active instance,
which is advanced once per frame. Advancing is a pure function of the
wall-clock time elapsed since the start of the instance; callers may skip
frames or call Advance with stale time stamps without accumulating drift.

Instances run through the states

	Pending (t = 0) → Running (0 < t < 1) → Finished (t = 1)

Interpolation between keyframe values is provided by clients as a Lerp
function, which keeps this package independent from concrete value types.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package animation

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.animation'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.animation")
}
