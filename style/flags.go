package style

import "strings"

// SystemFlags tell which parts of the frame pipeline have to be re-run
// because of style changes.
type SystemFlags uint16

// Dirty flags.
const (
	Restyle  SystemFlags = 1 << iota // selector matching for some entities
	Relayout                         // box geometry
	Reflow                           // text shaping of some entities
	Redraw                           // painting
	Reorder                          // z-ordering
	Reclip                           // clipping regions
	Rehide                           // visibility of subtrees
)

var flagNames = []string{"restyle", "relayout", "reflow", "redraw", "reorder", "reclip", "rehide"}

// Contains is true if all of flags are set in f.
func (f SystemFlags) Contains(flags SystemFlags) bool {
	return f&flags == flags
}

func (f SystemFlags) String() string {
	if f == 0 {
		return "clean"
	}
	var names []string
	for i, n := range flagNames {
		if f&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	return strings.Join(names, "|")
}
