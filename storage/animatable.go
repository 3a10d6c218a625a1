package storage

import (
	"fmt"
	"time"

	"github.com/npillmayer/restyle/animation"
	"github.com/npillmayer/restyle/entity"
)

// RuleMatch is a rule matching an entity, together with the specificity of
// the match.
type RuleMatch struct {
	Rule        entity.Rule
	Specificity uint32
}

// sharedValue is a value authored by a rule, with an optional transition
// to play whenever an entity starts pointing to it.
type sharedValue[T any] struct {
	value      T
	transition entity.Animation
}

// entry is the per-entity slot of an AnimatableSet.
type entry struct {
	owner entity.Entity
	data  DataIndex
	anim  int // position in active, or -1
}

// AnimatableSet stores the values of one style property for all entities.
//
// Values are either inline (authored on an entity), shared (authored by a
// rule and linked to every entity the rule matches) or computed by an
// active animation. Get resolves them in the order
//
//	active animation > inline > shared
//
// Non-animatable properties use an AnimatableSet with a discrete
// interpolation, see animation.Discrete.
type AnimatableSet[T comparable] struct {
	lerp         animation.Lerp[T]
	entries      []entry // indexed by entity index
	inline       []T     // dense inline values
	inlineOwners []entity.Entity
	shared       *SparseSet[entity.Rule, sharedValue[T]]
	templates    *SparseSet[entity.Animation, *animation.State[T]]
	active       []*animation.State[T]
}

// NewAnimatableSet creates a property store with interpolation lerp.
func NewAnimatableSet[T comparable](lerp animation.Lerp[T]) *AnimatableSet[T] {
	if lerp == nil {
		lerp = animation.Discrete[T]
	}
	return &AnimatableSet[T]{
		lerp:      lerp,
		shared:    NewSparseSet[entity.Rule, sharedValue[T]](),
		templates: NewSparseSet[entity.Animation, *animation.State[T]](),
	}
}

// --- Entries ----------------------------------------------------------

// entryOf returns the slot owned by e, or nil.
func (s *AnimatableSet[T]) entryOf(e entity.Entity) *entry {
	i := e.Index()
	if e.IsNull() || i >= len(s.entries) || s.entries[i].owner != e {
		return nil
	}
	return &s.entries[i]
}

// entryFor returns the slot for e, creating it if necessary. A slot left
// behind by an earlier generation of e's index is released first.
// Pointers returned earlier may be invalidated.
func (s *AnimatableSet[T]) entryFor(e entity.Entity) *entry {
	if e.IsNull() {
		panic("storage: null entity")
	}
	i := e.Index()
	for len(s.entries) <= i {
		s.entries = append(s.entries, entry{owner: entity.Null, anim: -1})
	}
	en := &s.entries[i]
	if en.owner == e {
		return en
	}
	if !en.owner.IsNull() {
		if en.owner.Generation() > e.Generation() {
			panic(fmt.Sprintf("storage: entity %v is stale, slot owned by %v", e, en.owner))
		}
		tracer().Debugf("releasing slot of stale entity %v", en.owner)
		s.release(en)
		en = &s.entries[i]
	}
	en.owner, en.data, en.anim = e, NullIndex(), -1
	return en
}

// release drops the inline value and animation of an entry.
func (s *AnimatableSet[T]) release(en *entry) {
	owner := en.owner
	if en.anim >= 0 {
		s.detach(owner)
	}
	en = &s.entries[owner.Index()]
	if en.data.IsInline() && !en.data.IsInherited() {
		s.removeInline(en.data.Index())
	}
	en.data = NullIndex()
}

// removeInline swap-removes inline value i. Inherited pointers to i are
// cleared, inherited pointers to the moved value follow it.
func (s *AnimatableSet[T]) removeInline(i int) T {
	last := len(s.inline) - 1
	v := s.inline[i]
	for k := range s.entries {
		d := s.entries[k].data
		if !d.IsInline() || !d.IsInherited() {
			continue
		}
		if d.Index() == i {
			s.entries[k].data = NullIndex()
		} else if d.Index() == last {
			s.entries[k].data = InlineIndex(i).Inherited()
		}
	}
	if i != last {
		s.inline[i] = s.inline[last]
		s.inlineOwners[i] = s.inlineOwners[last]
		if moved := s.entryOf(s.inlineOwners[i]); moved != nil {
			moved.data = InlineIndex(i)
		}
	}
	var zero T
	s.inline[last] = zero
	s.inline = s.inline[:last]
	s.inlineOwners = s.inlineOwners[:last]
	return v
}

func (s *AnimatableSet[T]) resolve(d DataIndex) (T, bool) {
	var zero T
	switch {
	case d.IsInline():
		if i := d.Index(); i < len(s.inline) {
			return s.inline[i], true
		}
	case d.IsShared():
		if sv, ok := s.shared.At(d.Index()); ok {
			return sv.value, true
		}
	}
	return zero, false
}

// --- Values -----------------------------------------------------------

// Get resolves the value of e: the output of an active animation, an inline
// value or a shared value, in this order.
func (s *AnimatableSet[T]) Get(e entity.Entity) (T, bool) {
	en := s.entryOf(e)
	if en == nil {
		var zero T
		return zero, false
	}
	if en.anim >= 0 && en.anim < len(s.active) {
		if v, ok := s.active[en.anim].Output(); ok {
			return v, true
		}
	}
	return s.resolve(en.data)
}

// Index returns the data index of e.
func (s *AnimatableSet[T]) Index(e entity.Entity) DataIndex {
	if en := s.entryOf(e); en != nil {
		return en.data
	}
	return NullIndex()
}

// Insert sets an inline value for e. Inline values win over shared values
// until they are removed. A running transition of e is stopped.
func (s *AnimatableSet[T]) Insert(e entity.Entity, v T) {
	en := s.entryFor(e)
	if en.data.IsInline() && !en.data.IsInherited() {
		s.inline[en.data.Index()] = v
		return
	}
	if en.anim >= 0 && s.active[en.anim].Transition != nil {
		s.detach(e)
		en = s.entryOf(e)
	}
	s.inline = append(s.inline, v)
	s.inlineOwners = append(s.inlineOwners, e)
	en.data = InlineIndex(len(s.inline) - 1)
}

// Remove deletes the data of e. An active animation driving e is forced to
// completion and dropped, releasing every entity it drives. Returns the
// inline value, if e owned one.
func (s *AnimatableSet[T]) Remove(e entity.Entity) (T, bool) {
	var zero T
	en := s.entryOf(e)
	if en == nil {
		return zero, false
	}
	if en.anim >= 0 {
		st := s.active[en.anim]
		if st.Running() {
			st.Complete(s.lerp)
		}
		s.removeActive(en.anim)
		en = s.entryOf(e)
	}
	d := en.data
	en.data = NullIndex()
	if d.IsInline() && !d.IsInherited() {
		return s.removeInline(d.Index()), true
	}
	return zero, false
}

// --- Inheritance ------------------------------------------------------

// InheritInline lets e point to the inline value of its parent, if e has no
// value of its own. Returns true if e's data changed.
//
// Values authored on e itself (inline or by a matching rule) are never
// overwritten. An inherited inline pointer is cleared if the parent no longer
// resolves to an inline value.
func (s *AnimatableSet[T]) InheritInline(e, parent entity.Entity) bool {
	pdata := s.Index(parent)
	if pdata.IsInline() && pdata.Index() < len(s.inline) {
		target := InlineIndex(pdata.Index()).Inherited()
		en := s.entryOf(e)
		if en == nil {
			en = s.entryFor(e)
		}
		if !en.data.IsNull() && !en.data.IsInherited() {
			return false
		}
		if en.data == target {
			return false
		}
		en.data = target
		return true
	}
	if en := s.entryOf(e); en != nil && en.data.IsInline() && en.data.IsInherited() {
		en.data = NullIndex()
		return true
	}
	return false
}

// InheritShared lets e point to the shared value its parent resolves to, if e
// has no value of its own. Returns true if e's data changed.
func (s *AnimatableSet[T]) InheritShared(e, parent entity.Entity) bool {
	pdata := s.Index(parent)
	if pdata.IsShared() && pdata.Index() < s.shared.Len() {
		target := SharedIndex(pdata.Index()).Inherited()
		en := s.entryOf(e)
		if en == nil {
			en = s.entryFor(e)
		}
		if !en.data.IsNull() && !en.data.IsInherited() {
			return false
		}
		if en.data == target {
			return false
		}
		en.data = target
		return true
	}
	if pdata.IsInline() {
		return false
	}
	if en := s.entryOf(e); en != nil && en.data.IsShared() && en.data.IsInherited() {
		en.data = NullIndex()
		return true
	}
	return false
}

// --- Rules ------------------------------------------------------------

// InsertRule (re-)defines the shared value of a rule.
func (s *AnimatableSet[T]) InsertRule(r entity.Rule, v T) {
	if sv := s.shared.GetMut(r); sv != nil {
		sv.value = v
		return
	}
	s.shared.Insert(r, sharedValue[T]{value: v, transition: entity.NullAnimation})
}

// RuleValue returns the shared value of a rule.
func (s *AnimatableSet[T]) RuleValue(r entity.Rule) (T, bool) {
	sv, ok := s.shared.Get(r)
	return sv.value, ok
}

// InsertTransition sets animation a as the transition of rule r. Nothing
// happens if either the rule has no value or there is no template for a.
func (s *AnimatableSet[T]) InsertTransition(r entity.Rule, a entity.Animation) {
	sv := s.shared.GetMut(r)
	if sv == nil || !s.templates.Has(a) {
		tracer().Debugf("ignoring transition %v for %v", a, r)
		return
	}
	sv.transition = a
}

// ClearRules drops all shared values and their transitions. Entities
// pointing to shared values are reset; inline values are kept.
func (s *AnimatableSet[T]) ClearRules() {
	s.shared.Clear()
	for i := range s.entries {
		if s.entries[i].data.IsShared() {
			s.entries[i].data = NullIndex()
		}
	}
	for _, st := range s.active {
		if st.Transition != nil { // orphaned, will be retargeted
			st.Transition.From, st.Transition.To = -1, -1
		}
	}
}

// --- Link -------------------------------------------------------------

// Link resolves e against the rules matching it. rules must be sorted by
// descending priority. The first rule with a value for this property wins.
// now is the time stamp for transitions triggered by a change of rule.
//
// Returns true if e now points to a different value.
func (s *AnimatableSet[T]) Link(e entity.Entity, rules []RuleMatch, now time.Time) bool {
	en := s.entryOf(e)
	if en != nil && en.data.IsInline() && !en.data.IsInherited() {
		return false
	}
	for _, m := range rules {
		d, ok := s.shared.DenseIndex(m.Rule)
		if !ok {
			continue
		}
		if en == nil {
			en = s.entryFor(e)
		}
		target := SharedIndex(d)
		switch st := s.transitionOf(en); {
		case st != nil: // transitioning
			if st.Transition.To != d {
				if st.Transition.From == d {
					s.reverse(e, st, now)
				} else {
					s.retarget(e, st, d, now)
				}
			}
		case en.data != target: // idle
			s.triggerTransition(e, en.data, d, now)
		}
		en = s.entryOf(e)
		if en.data == target {
			return false
		}
		en.data = target
		return true
	}
	if en != nil && en.data.IsShared() && !en.data.IsInherited() {
		en.data = NullIndex()
		return true
	}
	return false
}

// transitionOf returns the running transition of an entry, if any.
func (s *AnimatableSet[T]) transitionOf(en *entry) *animation.State[T] {
	if en.anim < 0 || en.anim >= len(s.active) {
		return nil
	}
	if st := s.active[en.anim]; st.Transition != nil && st.Running() {
		return st
	}
	return nil
}

// triggerTransition starts the transition of shared slot d, if there is
// one, animating from the value e currently points to. Nothing is animated
// if e had no value before.
func (s *AnimatableSet[T]) triggerTransition(e entity.Entity, prev DataIndex, d int, now time.Time) {
	sv, _ := s.shared.At(d)
	if sv.transition.IsNull() || prev.IsNull() {
		return
	}
	from, ok := s.resolve(prev)
	if !ok || from == sv.value {
		return
	}
	tmpl, ok := s.templates.Get(sv.transition)
	if !ok {
		return
	}
	st := tmpl.Clone()
	st.Keyframes[0].Value = from
	st.Keyframes[len(st.Keyframes)-1].Value = sv.value
	fromSlot := -1
	if prev.IsShared() {
		fromSlot = prev.Index()
	}
	st.Transition = &animation.Transition{From: fromSlot, To: d}
	st.Play(now, tmpl.Description)
	st.Advance(now, s.lerp)
	s.attach(e, st)
	tracer().Debugf("transition %v of %v: %v → %v", st.ID, e, from, sv.value)
}

// reverse turns a running transition around. The reversed transition
// starts at the value currently rendered and heads back to the shared
// value the original one started from. Its duration is shortened by the progress the
// original transition made.
func (s *AnimatableSet[T]) reverse(e entity.Entity, st *animation.State[T], now time.Time) {
	current, _ := s.Get(e)
	tr := st.Transition
	tr.From, tr.To = tr.To, tr.From
	sv, _ := s.shared.At(tr.To)
	st.Keyframes[0].Value = current
	st.Keyframes[len(st.Keyframes)-1].Value = sv.value
	d := st.Description
	d.Duration = time.Duration(float64(d.Duration) * float64(st.Progress))
	st.Play(now, d)
	st.Advance(now, s.lerp)
}

// retarget lets a running transition head for shared slot d, starting from
// the value currently rendered.
func (s *AnimatableSet[T]) retarget(e entity.Entity, st *animation.State[T], d int, now time.Time) {
	current, _ := s.Get(e)
	sv, _ := s.shared.At(d)
	st.Keyframes[0].Value = current
	st.Keyframes[len(st.Keyframes)-1].Value = sv.value
	st.Transition.From, st.Transition.To = st.Transition.To, d
	st.Play(now, st.Description)
	st.Advance(now, s.lerp)
}

// Transition reports the running transition of e.
func (s *AnimatableSet[T]) Transition(e entity.Entity) (animation.Transition, float32, bool) {
	if en := s.entryOf(e); en != nil {
		if st := s.transitionOf(en); st != nil {
			return *st.Transition, st.Progress, true
		}
	}
	return animation.Transition{}, 0, false
}

// --- Animations -------------------------------------------------------

// InsertAnimation registers a keyframe template under id a.
func (s *AnimatableSet[T]) InsertAnimation(a entity.Animation, st *animation.State[T]) {
	s.templates.Insert(a, st)
}

// AddKeyframe adds a keyframe to the template of a, creating the template
// if necessary.
func (s *AnimatableSet[T]) AddKeyframe(a entity.Animation, kf animation.Keyframe[T]) {
	st, ok := s.templates.Get(a)
	if !ok {
		st = animation.NewState[T](a)
		s.templates.Insert(a, st)
	}
	st.AddKeyframe(kf)
}

// HasTemplate is true if there is a template for a.
func (s *AnimatableSet[T]) HasTemplate(a entity.Animation) bool {
	return s.templates.Has(a)
}

// RemoveAnimation drops the template of a. Running instances are kept.
func (s *AnimatableSet[T]) RemoveAnimation(a entity.Animation) {
	s.templates.Remove(a)
}

// PlayAnimation starts animation a for entity e. If e is already driven by
// an instance of a, that instance is restarted. If another entity runs an
// instance of a with identical start and description, e joins it.
// Returns false if there is no template for a.
func (s *AnimatableSet[T]) PlayAnimation(e entity.Entity, a entity.Animation, start time.Time,
	d animation.Description) bool {
	//
	tmpl, ok := s.templates.Get(a)
	if !ok || len(tmpl.Keyframes) == 0 {
		return false
	}
	en := s.entryFor(e)
	if en.anim >= 0 {
		if st := s.active[en.anim]; st.ID == a && st.Transition == nil {
			st.Play(start, d)
			return true
		}
		s.detach(e)
	}
	for _, st := range s.active {
		if st.ID == a && st.Transition == nil && st.Running() &&
			st.Start.Equal(start) && st.Description == d {
			s.attach(e, st)
			return true
		}
	}
	st := tmpl.Clone()
	st.Play(start, d)
	s.attach(e, st)
	return true
}

// StopAnimation detaches e from its instance of a. Other entities driven by
// the same instance keep running.
func (s *AnimatableSet[T]) StopAnimation(e entity.Entity, a entity.Animation) {
	en := s.entryOf(e)
	if en == nil || en.anim < 0 || s.active[en.anim].ID != a {
		return
	}
	s.detach(e)
}

// attach lets e be driven by st, appending st to the active instances if
// it is not active yet.
func (s *AnimatableSet[T]) attach(e entity.Entity, st *animation.State[T]) {
	en := s.entryFor(e)
	if en.anim >= 0 {
		s.detach(e)
		en = s.entryOf(e)
	}
	pos := -1
	for i, x := range s.active {
		if x == st {
			pos = i
			break
		}
	}
	if pos < 0 {
		s.active = append(s.active, st)
		pos = len(s.active) - 1
	}
	st.AddEntity(e)
	en.anim = pos
}

// detach releases e from its instance. Instances without entities are
// dropped.
func (s *AnimatableSet[T]) detach(e entity.Entity) {
	en := s.entryOf(e)
	if en == nil || en.anim < 0 {
		return
	}
	pos := en.anim
	en.anim = -1
	st := s.active[pos]
	st.RemoveEntity(e)
	if len(st.Entities()) == 0 {
		s.removeActive(pos)
	}
}

// removeActive drops an active instance, releases all entities it drives and
// re-indexes the back references of the remaining instances.
func (s *AnimatableSet[T]) removeActive(pos int) {
	for _, e := range s.active[pos].Entities() {
		if en := s.entryOf(e); en != nil && en.anim == pos {
			en.anim = -1
		}
	}
	copy(s.active[pos:], s.active[pos+1:])
	s.active[len(s.active)-1] = nil
	s.active = s.active[:len(s.active)-1]
	s.reindex(pos)
}

func (s *AnimatableSet[T]) reindex(from int) {
	for i := from; i < len(s.active); i++ {
		for _, e := range s.active[i].Entities() {
			if en := s.entryOf(e); en != nil {
				en.anim = i
			}
		}
	}
}

// Tick advances all running animations to time now. Instances which
// finished during an earlier tick and are not persistent are dropped.
// Returns the entities whose values changed, including those released from
// dropped instances.
func (s *AnimatableSet[T]) Tick(now time.Time) []entity.Entity {
	var touched []entity.Entity
	kept := s.active[:0]
	dropped := false
	for _, st := range s.active {
		if st.Finished() && !st.Persistent() {
			touched = append(touched, st.Entities()...)
			for _, e := range st.Entities() {
				if en := s.entryOf(e); en != nil {
					en.anim = -1
				}
			}
			dropped = true
			continue
		}
		kept = append(kept, st)
	}
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = kept
	if dropped {
		s.reindex(0)
	}
	for _, st := range s.active {
		if st.Running() {
			st.Advance(now, s.lerp)
			touched = append(touched, st.Entities()...)
		}
	}
	return touched
}

// HasAnimations is true if any instance is still running.
func (s *AnimatableSet[T]) HasAnimations() bool {
	for _, st := range s.active {
		if st.Running() {
			return true
		}
	}
	return false
}

// ActiveAnimations returns the number of active instances, running or
// finished but not yet collected.
func (s *AnimatableSet[T]) ActiveAnimations() int {
	return len(s.active)
}

// IsAnimating is true if e is driven by a running instance.
func (s *AnimatableSet[T]) IsAnimating(e entity.Entity) bool {
	en := s.entryOf(e)
	return en != nil && en.anim >= 0 && s.active[en.anim].Running()
}
