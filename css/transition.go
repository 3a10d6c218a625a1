package css

import (
	"fmt"
	"strings"
	"time"

	"github.com/npillmayer/restyle/animation"
)

// Transition is one entry of a transition list, e.g.
//
//	transition: width 0.2s ease-in 50ms, color 1s
type Transition struct {
	Property string
	Duration time.Duration
	Delay    time.Duration
	Timing   animation.TimingFunction
}

func (tr Transition) String() string {
	return fmt.Sprintf("%s %v %v %v", tr.Property, tr.Duration, tr.Delay, tr.Timing)
}

// ParseTransitions parses a comma separated transition list. Within an
// entry, the first time is the duration and the second one the delay. The
// timing function defaults to ease.
func ParseTransitions(value string) ([]Transition, error) {
	groups, err := parseValue(value)
	if err != nil {
		return nil, err
	}
	list := make([]Transition, 0, len(groups))
	for _, g := range groups {
		tr, err := transitionFromTerms(g)
		if err != nil {
			return nil, err
		}
		list = append(list, tr)
	}
	return list, nil
}

func transitionFromTerms(terms []term) (Transition, error) {
	tr := Transition{Timing: animation.Ease}
	times := 0
	for _, t := range terms {
		if d, ok := durationFromTerm(t); ok {
			if times == 0 {
				tr.Duration = d
			} else if times == 1 {
				tr.Delay = d
			} else {
				return tr, fmt.Errorf("transition: too many times")
			}
			times++
			continue
		}
		if tf, ok := timingFromTerm(t); ok {
			tr.Timing = tf
			continue
		}
		if t.kind == identTerm && tr.Property == "" {
			tr.Property = strings.ToLower(t.text)
			continue
		}
		return tr, fmt.Errorf("transition: unexpected %s", t)
	}
	if tr.Property == "" {
		tr.Property = "all"
	}
	return tr, nil
}

// ParseTime parses a time in seconds ("0.2s") or milliseconds ("200ms").
func ParseTime(value string) (time.Duration, error) {
	t, err := singleTerm(value)
	if err != nil {
		return 0, err
	}
	if d, ok := durationFromTerm(t); ok {
		return d, nil
	}
	return 0, fmt.Errorf("not a time: %s", value)
}

func durationFromTerm(t term) (time.Duration, bool) {
	if t.kind == numberTerm && t.num == 0 {
		return 0, true
	}
	if t.kind != dimensionTerm {
		return 0, false
	}
	switch t.text {
	case "s":
		return time.Duration(t.num * float64(time.Second)), true
	case "ms":
		return time.Duration(t.num * float64(time.Millisecond)), true
	}
	return 0, false
}

// ParseTiming parses a timing function: one of the keywords linear, ease,
// ease-in, ease-out, ease-in-out, step-start and step-end, or a
// cubic-bezier() or steps() function.
func ParseTiming(value string) (animation.TimingFunction, error) {
	t, err := singleTerm(value)
	if err != nil {
		return animation.Linear, err
	}
	if tf, ok := timingFromTerm(t); ok {
		return tf, nil
	}
	return animation.Linear, fmt.Errorf("not a timing function: %s", value)
}

func timingFromTerm(t term) (animation.TimingFunction, bool) {
	switch t.kind {
	case identTerm:
		switch strings.ToLower(t.text) {
		case "linear":
			return animation.Linear, true
		case "ease":
			return animation.Ease, true
		case "ease-in":
			return animation.EaseIn, true
		case "ease-out":
			return animation.EaseOut, true
		case "ease-in-out":
			return animation.EaseInOut, true
		case "step-start":
			return animation.Steps(1, true), true
		case "step-end":
			return animation.Steps(1, false), true
		}
	case funcTerm:
		switch t.text {
		case "cubic-bezier":
			if len(t.args) != 4 {
				return animation.Linear, false
			}
			var p [4]float32
			for i, a := range t.args {
				if a.kind != numberTerm {
					return animation.Linear, false
				}
				p[i] = float32(a.num)
			}
			return animation.CubicBezier(p[0], p[1], p[2], p[3]), true
		case "steps":
			if len(t.args) == 0 || t.args[0].kind != numberTerm || t.args[0].num < 1 {
				return animation.Linear, false
			}
			jumpStart := len(t.args) > 1 && t.args[1].isIdent("start", "jump-start")
			return animation.Steps(int(t.args[0].num), jumpStart), true
		}
	}
	return animation.Linear, false
}

// ParseIterations parses an iteration count: a positive number or
// "infinite".
func ParseIterations(value string) (int, error) {
	t, err := singleTerm(value)
	if err != nil {
		return 0, err
	}
	if t.isIdent("infinite") {
		return animation.Infinite, nil
	}
	if t.kind == numberTerm && t.num >= 1 {
		return int(t.num), nil
	}
	return 0, fmt.Errorf("illegal iteration count: %s", value)
}

// ParseDirection parses an animation direction.
func ParseDirection(value string) (animation.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "normal":
		return animation.Normal, nil
	case "reverse":
		return animation.Reverse, nil
	case "alternate":
		return animation.Alternate, nil
	case "alternate-reverse":
		return animation.AlternateReverse, nil
	}
	return animation.Normal, fmt.Errorf("illegal animation direction: %s", value)
}

// ParseFillMode parses an animation fill mode.
func ParseFillMode(value string) (animation.FillMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none":
		return animation.FillNone, nil
	case "forwards":
		return animation.FillForwards, nil
	case "backwards":
		return animation.FillBackwards, nil
	case "both":
		return animation.FillBoth, nil
	}
	return animation.FillNone, fmt.Errorf("illegal fill mode: %s", value)
}
