package style

import (
	"sort"
	"time"

	"github.com/npillmayer/restyle/animation"
	"github.com/npillmayer/restyle/entity"
	"github.com/npillmayer/restyle/selector"
	"github.com/npillmayer/restyle/storage"
)

// siblingCache holds the non-structural rule matches of siblings visited
// so far, keyed by fingerprint.
type siblingCache struct {
	parent  entity.Entity
	entries []cachedMatch
}

type cachedMatch struct {
	fp      selector.Fingerprint
	matches []storage.RuleMatch
}

func (c *siblingCache) lookup(fp selector.Fingerprint) ([]storage.RuleMatch, bool) {
	for _, x := range c.entries {
		if x.fp == fp {
			return x.matches, true
		}
	}
	return nil, false
}

// Restyle matches all entities scheduled for restyling against the rules and
// links every property store to the matching rules. Transitions of changed
// values start at time now. Returns the number of entities restyled.
//
// Entities are visited in breadth-first tree order, parents before their
// children.
func (eng *Engine) Restyle(now time.Time) int {
	if len(eng.restyle) == 0 {
		eng.flags &^= Restyle
		return 0
	}
	eng.matcher.Refresh()
	cache := &siblingCache{parent: entity.Null}
	n := 0
	for _, e := range eng.tree.BreadthFirst() {
		if _, ok := eng.restyle[e]; !ok {
			continue
		}
		if !eng.isAlive(e) || !eng.meta.Has(e) {
			continue
		}
		matches := eng.matchEntity(e, cache)
		eng.matched[e] = matches
		for _, p := range eng.order {
			if p.link(e, matches, now) {
				eng.mark(e, p.Flags())
			}
		}
		n++
	}
	tracer().Debugf("restyled %d entities", n)
	eng.restyle = make(map[entity.Entity]struct{})
	eng.flags &^= Restyle
	return n
}

// matchEntity returns the rules matching e, by decreasing priority.
// Siblings with equal fingerprints share their non-structural matches;
// structural rules are matched for every entity.
func (eng *Engine) matchEntity(e entity.Entity, cache *siblingCache) []storage.RuleMatch {
	parent, hasParent := eng.tree.ParentOf(e)
	if !hasParent || parent != cache.parent {
		cache.parent = parent
		cache.entries = cache.entries[:0]
	}
	var plain []storage.RuleMatch
	useCache := eng.siblingCache && hasParent
	fp := selector.FingerprintOf(eng.doc, e)
	cached := false
	if useCache && !eng.tree.IsFirstChild(e) && !eng.tree.IsLastChild(e) {
		plain, cached = cache.lookup(fp)
	}
	if !cached {
		plain = eng.matchRules(e, false)
		if useCache {
			cache.entries = append(cache.entries, cachedMatch{fp: fp, matches: plain})
		}
	}
	matches := make([]storage.RuleMatch, 0, len(plain)+4)
	matches = append(matches, plain...)
	if eng.structural > 0 {
		matches = append(matches, eng.matchRules(e, true)...)
	}
	eng.sortMatches(matches)
	return matches
}

// matchRules matches e against either the structural or the non-structural
// rules.
func (eng *Engine) matchRules(e entity.Entity, structural bool) []storage.RuleMatch {
	var matches []storage.RuleMatch
	for d, r := range eng.rules.Keys() {
		x, _ := eng.rules.At(d)
		if x.sel.IsStructural() != structural {
			continue
		}
		if sp, ok := eng.matcher.Matches(x.sel, e); ok {
			s := uint32(sp)
			if x.important {
				s |= importantBit
			}
			matches = append(matches, storage.RuleMatch{Rule: r, Specificity: s})
		}
	}
	return matches
}

// sortMatches orders by specificity, then by declaration order, later rules
// first.
func (eng *Engine) sortMatches(matches []storage.RuleMatch) {
	order := func(r entity.Rule) int {
		x, _ := eng.rules.Get(r)
		return x.order
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Specificity != matches[j].Specificity {
			return matches[i].Specificity > matches[j].Specificity
		}
		return order(matches[i].Rule) > order(matches[j].Rule)
	})
}

// --- Inheritance ------------------------------------------------------

// InheritInline lets entities without a value of their own point to the
// inline value of their parent, for all inheritable properties.
func (eng *Engine) InheritInline() {
	eng.inherit(func(p store, e, parent entity.Entity) bool {
		return p.inheritInline(e, parent)
	})
}

// InheritShared lets entities without a value of their own point to the
// rule value of their parent, for all inheritable properties.
func (eng *Engine) InheritShared() {
	eng.inherit(func(p store, e, parent entity.Entity) bool {
		return p.inheritShared(e, parent)
	})
}

func (eng *Engine) inherit(pass func(p store, e, parent entity.Entity) bool) {
	for _, e := range eng.tree.BreadthFirst() {
		parent, ok := eng.tree.ParentOf(e)
		if !ok || !eng.meta.Has(e) || !eng.isAlive(e) {
			continue
		}
		for _, p := range eng.order {
			if p.Inheritable() && pass(p, e, parent) {
				eng.mark(e, p.Flags())
			}
		}
	}
}

// --- Frames -----------------------------------------------------------

// Tick advances all animations and transitions to time now. Returns the
// entities whose values changed, each once.
func (eng *Engine) Tick(now time.Time) []entity.Entity {
	var touched []entity.Entity
	seen := make(map[entity.Entity]struct{})
	for _, p := range eng.order {
		for _, e := range p.tick(now) {
			eng.mark(e, p.Flags())
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				touched = append(touched, e)
			}
		}
	}
	return touched
}

// Update runs a complete style frame: restyling, both inheritance passes
// and a tick of the animations. Returns the entities touched by animations.
func (eng *Engine) Update(now time.Time) []entity.Entity {
	eng.Restyle(now)
	eng.InheritInline()
	eng.InheritShared()
	return eng.Tick(now)
}

// --- Keyframe animations ----------------------------------------------

// PlayAnimation starts the @keyframes animation name for e at time now.
// Returns false if there is no such animation.
func (eng *Engine) PlayAnimation(e entity.Entity, name string, d animation.Description,
	now time.Time) bool {
	//
	a, ok := eng.keyframes[name]
	if !ok || !eng.HasEntity(e) {
		return false
	}
	played := false
	for _, p := range eng.order {
		if p.hasTemplate(a) && p.play(e, a, now, d) {
			eng.mark(e, p.Flags())
			played = true
		}
	}
	return played
}

// StopAnimation stops the @keyframes animation name for e.
func (eng *Engine) StopAnimation(e entity.Entity, name string) {
	a, ok := eng.keyframes[name]
	if !ok {
		return
	}
	for _, p := range eng.order {
		if p.hasTemplate(a) {
			p.stop(e, a)
			eng.mark(e, p.Flags())
		}
	}
}

// HasAnimations is true if any animation or transition is running.
func (eng *Engine) HasAnimations() bool {
	for _, p := range eng.order {
		if p.hasAnimations() {
			return true
		}
	}
	return false
}

// Animations returns the names of all @keyframes animations, sorted.
func (eng *Engine) Animations() []string {
	names := make([]string, 0, len(eng.keyframes))
	for n := range eng.keyframes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
