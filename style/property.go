package style

import (
	"fmt"
	"time"

	"github.com/npillmayer/restyle/animation"
	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/cssom"
	"github.com/npillmayer/restyle/entity"
	"github.com/npillmayer/restyle/storage"
)

// store is the type-erased view of a Property the engine works with.
type store interface {
	Name() string
	Flags() SystemFlags
	Inheritable() bool
	check(value cssom.Property) error
	setInline(e entity.Entity, value cssom.Property) error
	remove(e entity.Entity) bool
	insertRule(r entity.Rule, value cssom.Property) error
	link(e entity.Entity, rules []storage.RuleMatch, now time.Time) bool
	inheritInline(e, parent entity.Entity) bool
	inheritShared(e, parent entity.Entity) bool
	clearRules()
	addTransition(r entity.Rule, a entity.Animation, tr css.Transition) bool
	addKeyframe(a entity.Animation, offset float32, value cssom.Property) error
	hasTemplate(a entity.Animation) bool
	removeAnimation(a entity.Animation)
	play(e entity.Entity, a entity.Animation, start time.Time, d animation.Description) bool
	stop(e entity.Entity, a entity.Animation)
	tick(now time.Time) []entity.Entity
	hasAnimations() bool
	describe(e entity.Entity) (string, bool)
}

// Property is the store for a single style property, holding values of
// type T for all entities. Layout and rendering read resolved values with
// Get:
//
//	if w, ok := eng.Width.Get(e); ok {
//	    …
//	}
type Property[T comparable] struct {
	*storage.AnimatableSet[T]
	name    string
	parse   func(string) (T, error)
	format  func(T) string
	flags   SystemFlags
	inherit bool
}

func newProperty[T comparable](name string, parse func(string) (T, error), lerp animation.Lerp[T],
	flags SystemFlags) *Property[T] {
	//
	return &Property[T]{
		AnimatableSet: storage.NewAnimatableSet(lerp),
		name:          name,
		parse:         parse,
		flags:         flags,
	}
}

// Name returns the CSS name of the property.
func (p *Property[T]) Name() string { return p.name }

// Flags returns the dirty flags a change of this property implies.
func (p *Property[T]) Flags() SystemFlags { return p.flags }

// Inheritable is true for properties children inherit from their parent.
func (p *Property[T]) Inheritable() bool { return p.inherit }

// Parse converts a CSS value to a value of this property.
func (p *Property[T]) Parse(value string) (T, error) {
	v, err := p.parse(value)
	if err != nil {
		return v, fmt.Errorf("%s: %w", p.name, err)
	}
	return v, nil
}

// Format returns the CSS representation of a value of this property.
func (p *Property[T]) Format(v T) string {
	if p.format != nil {
		return p.format(v)
	}
	return fmt.Sprintf("%v", v)
}

func (p *Property[T]) check(value cssom.Property) error {
	_, err := p.Parse(value.String())
	return err
}

func (p *Property[T]) setInline(e entity.Entity, value cssom.Property) error {
	v, err := p.Parse(value.String())
	if err != nil {
		return err
	}
	p.Insert(e, v)
	return nil
}

func (p *Property[T]) remove(e entity.Entity) bool {
	_, ok := p.Remove(e)
	return ok
}

func (p *Property[T]) insertRule(r entity.Rule, value cssom.Property) error {
	v, err := p.Parse(value.String())
	if err != nil {
		return err
	}
	p.InsertRule(r, v)
	return nil
}

func (p *Property[T]) link(e entity.Entity, rules []storage.RuleMatch, now time.Time) bool {
	return p.Link(e, rules, now)
}

func (p *Property[T]) inheritInline(e, parent entity.Entity) bool {
	return p.InheritInline(e, parent)
}

func (p *Property[T]) inheritShared(e, parent entity.Entity) bool {
	return p.InheritShared(e, parent)
}

func (p *Property[T]) clearRules() {
	p.ClearRules()
}

// addTransition creates a transition template from tr and attaches it to
// the value of rule r. Keyframe values are placeholders, they are set when
// the transition is triggered. The start value is held during the delay.
func (p *Property[T]) addTransition(r entity.Rule, a entity.Animation, tr css.Transition) bool {
	if _, ok := p.RuleValue(r); !ok {
		return false
	}
	var zero T
	st := animation.NewState[T](a)
	st.AddKeyframe(animation.Keyframe[T]{Time: 0, Value: zero, Timing: tr.Timing})
	st.AddKeyframe(animation.Keyframe[T]{Time: 1, Value: zero, Timing: animation.Linear})
	st.Description = animation.Description{
		Duration:   tr.Duration,
		Delay:      tr.Delay,
		Iterations: 1,
		Fill:       animation.FillBackwards,
	}
	p.InsertAnimation(a, st)
	p.InsertTransition(r, a)
	return true
}

func (p *Property[T]) addKeyframe(a entity.Animation, offset float32, value cssom.Property) error {
	v, err := p.Parse(value.String())
	if err != nil {
		return err
	}
	p.AddKeyframe(a, animation.Keyframe[T]{Time: offset, Value: v, Timing: animation.Linear})
	return nil
}

func (p *Property[T]) hasTemplate(a entity.Animation) bool {
	return p.HasTemplate(a)
}

func (p *Property[T]) removeAnimation(a entity.Animation) {
	p.RemoveAnimation(a)
}

func (p *Property[T]) play(e entity.Entity, a entity.Animation, start time.Time, d animation.Description) bool {
	return p.PlayAnimation(e, a, start, d)
}

func (p *Property[T]) stop(e entity.Entity, a entity.Animation) {
	p.StopAnimation(e, a)
}

func (p *Property[T]) tick(now time.Time) []entity.Entity {
	return p.Tick(now)
}

func (p *Property[T]) hasAnimations() bool {
	return p.HasAnimations()
}

func (p *Property[T]) describe(e entity.Entity) (string, bool) {
	v, ok := p.Get(e)
	if !ok {
		return "", false
	}
	return p.Format(v), true
}

var _ store = &Property[float32]{}
