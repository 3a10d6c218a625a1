package cssom

import (
	"errors"
	"strings"
)

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// In order to de-couple implementations of CSS-stylesheets from the
// style engine, we introduce an interface for CSS stylesheets. Clients of
// the engine may provide a concrete implementation of this interface
// (e.g., see package douceuradapter).
//
// See interfaces Rule and Keyframes.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the style rules of a stylesheet, in declaration order
	Keyframes() []Keyframes // all the @keyframes blocks of a stylesheet
}

// Rule is the type stylesheets consists of.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string        // the prelude / selectors of the rule
	Properties() []string    // property keys in declaration order, e.g. "width"
	Value(string) Property   // property value for key, e.g. "15px"
	IsImportant(string) bool // is property key marked as important?
}

// Keyframes is a named keyframe animation, declared as
//
//	@keyframes pulse {
//	    from { opacity: 1 }
//	    50%  { opacity: 0.5 }
//	    to   { opacity: 1 }
//	}
type Keyframes interface {
	AnimationName() string
	Frames() []Keyframe // sorted by offset
}

// Keyframe is a single step of a keyframe animation.
type Keyframe struct {
	Offset     float32 // 0…1
	Properties []KeyValue
}

// ---------------------------------------------------------------------------

// ErrEmptyStylesheet is returned when ingesting a stylesheet without rules.
var ErrEmptyStylesheet = errors.New("stylesheet is empty")

// ParseErrors collects the errors of stylesheet items which have been
// dropped. The remaining items are still valid.
type ParseErrors []error

// Add appends err, if it is non-nil.
func (pe *ParseErrors) Add(err error) {
	if err != nil {
		*pe = append(*pe, err)
	}
}

// Err returns pe as an error, or nil if no error has been collected.
func (pe ParseErrors) Err() error {
	if len(pe) == 0 {
		return nil
	}
	return pe
}

func (pe ParseErrors) Error() string {
	switch len(pe) {
	case 0:
		return "no errors"
	case 1:
		return pe[0].Error()
	}
	msgs := make([]string, len(pe))
	for i, err := range pe {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is and errors.As inspect the collected errors.
func (pe ParseErrors) Unwrap() []error {
	return pe
}
