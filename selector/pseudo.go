package selector

import (
	"strings"
)

// PseudoClass is a set of dynamic pseudo-class flags of an entity. The
// flags are maintained by input handling and read by selector matching.
type PseudoClass uint32

// Dynamic pseudo-classes.
const (
	Hover PseudoClass = 1 << iota
	Over
	Active
	Focus
	FocusVisible
	FocusWithin
	Disabled
	ReadOnly
	ReadWrite
	PlaceholderShown
	Default
	Checked
	Indeterminate
	Blank
	Valid
	Invalid
	InRange
	OutOfRange
	Required
	Optional
	UserValid
	UserInvalid
)

var pseudoClassNames = []string{
	"hover", "over", "active", "focus", "focus-visible", "focus-within",
	"disabled", "read-only", "read-write", "placeholder-shown", "default",
	"checked", "indeterminate", "blank", "valid", "invalid", "in-range",
	"out-of-range", "required", "optional", "user-valid", "user-invalid",
}

// enabled is not a flag of its own, but the absence of Disabled.
const enabled = "enabled"

// ParsePseudoClass returns the flag for a pseudo-class name (without colon).
func ParsePseudoClass(name string) (PseudoClass, bool) {
	name = strings.ToLower(strings.TrimPrefix(name, ":"))
	for i, n := range pseudoClassNames {
		if n == name {
			return PseudoClass(1 << i), true
		}
	}
	return 0, false
}

// Set sets or clears flags.
func (pc *PseudoClass) Set(flags PseudoClass, on bool) {
	if on {
		*pc |= flags
	} else {
		*pc &^= flags
	}
}

// Contains is true if all of flags are set.
func (pc PseudoClass) Contains(flags PseudoClass) bool {
	return pc&flags == flags
}

// Names returns the names of all set flags. "enabled" is included if
// Disabled is not set.
func (pc PseudoClass) Names() []string {
	var names []string
	for i, n := range pseudoClassNames {
		if pc&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	if pc&Disabled == 0 {
		names = append(names, enabled)
	}
	return names
}

func (pc PseudoClass) String() string {
	if pc == 0 {
		return "{}"
	}
	var names []string
	for i, n := range pseudoClassNames {
		if pc&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

func isDynamic(name string) bool {
	if name == enabled {
		return true
	}
	_, ok := ParsePseudoClass(name)
	return ok
}
