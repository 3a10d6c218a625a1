package style

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/restyle/cssom"
	"github.com/npillmayer/restyle/entity"
	"github.com/npillmayer/restyle/selector"
	"github.com/npillmayer/restyle/storage"
	"github.com/npillmayer/schuko"
)

// Configuration keys.
const (
	ConfigSiblingCache     = "style.sibling-cache"      // bool, default true
	ConfigIDReuseThreshold = "style.id-reuse-threshold" // int, default 1024
)

// ErrUnknownProperty is returned for property names the engine does not
// support.
var ErrUnknownProperty = errors.New("unknown style property")

// ErrUnknownEntity is returned for entities which have not been added to
// the engine or are no longer alive.
var ErrUnknownEntity = errors.New("unknown entity")

// Tree is the view of the entity tree the engine needs. *tree.Tree is an
// implementation.
type Tree interface {
	Root() (entity.Entity, bool)
	ParentOf(entity.Entity) (entity.Entity, bool)
	FirstChildOf(entity.Entity) (entity.Entity, bool)
	NextSiblingOf(entity.Entity) (entity.Entity, bool)
	PrevSiblingOf(entity.Entity) (entity.Entity, bool)
	IsFirstChild(entity.Entity) bool
	IsLastChild(entity.Entity) bool
	BreadthFirst() []entity.Entity
}

// Liveness tells if an entity is alive. *entity.Manager[entity.Entity] is an
// implementation.
type Liveness interface {
	IsAlive(entity.Entity) bool
}

// metadata is the selector-relevant data of an entity.
type metadata struct {
	element string
	id      string
	classes []string
	pseudo  selector.PseudoClass
}

// Engine resolves style properties for the entities of a tree.
// An Engine is not safe for concurrent use.
type Engine struct {
	Properties
	tree         Tree
	entities     Liveness
	meta         *storage.SparseSet[entity.Entity, metadata]
	doc          document
	matcher      *selector.Matcher
	rules        *storage.SparseSet[entity.Rule, rule] // dense order is declaration order
	ruleIDs      *entity.Manager[entity.Rule]
	animIDs      *entity.Manager[entity.Animation]
	transitions  []entity.Animation         // templates of rule transitions
	keyframes    map[string]entity.Animation // @keyframes by name
	sources      []source
	ruleOrder    int
	structural   int // number of rules with structural selectors
	restyle      map[entity.Entity]struct{}
	matched      map[entity.Entity][]storage.RuleMatch
	reflow       map[entity.Entity]struct{}
	flags        SystemFlags
	siblingCache bool
}

// NewEngine creates a style engine for tree. entities may be nil, in which
// case all entities of the tree are considered alive. conf may be nil.
func NewEngine(tree Tree, entities Liveness, conf schuko.Configuration) *Engine {
	eng := &Engine{
		Properties:   newProperties(),
		tree:         tree,
		entities:     entities,
		meta:         storage.NewSparseSet[entity.Entity, metadata](),
		rules:        storage.NewSparseSet[entity.Rule, rule](),
		ruleIDs:      entity.Rules(),
		animIDs:      entity.Animations(),
		keyframes:    make(map[string]entity.Animation),
		restyle:      make(map[entity.Entity]struct{}),
		matched:      make(map[entity.Entity][]storage.RuleMatch),
		reflow:       make(map[entity.Entity]struct{}),
		siblingCache: true,
	}
	if conf != nil {
		if conf.IsSet(ConfigSiblingCache) {
			eng.siblingCache = conf.GetBool(ConfigSiblingCache)
		}
		if conf.IsSet(ConfigIDReuseThreshold) {
			n := conf.GetInt(ConfigIDReuseThreshold)
			eng.ruleIDs.SetReuseThreshold(n)
			eng.animIDs.SetReuseThreshold(n)
		}
	}
	eng.doc = document{eng}
	eng.matcher = selector.NewMatcher(eng.doc)
	tracer().Debugf("new style engine with %d properties, sibling cache = %v",
		len(eng.order), eng.siblingCache)
	return eng
}

func (eng *Engine) isAlive(e entity.Entity) bool {
	return eng.entities == nil || eng.entities.IsAlive(e)
}

// --- Metadata ---------------------------------------------------------

// AddEntity registers e with an element name, e.g. "button". The entity
// will be styled during the next restyle pass.
func (eng *Engine) AddEntity(e entity.Entity, element string) error {
	if !eng.isAlive(e) {
		return fmt.Errorf("adding %v: %w", e, ErrUnknownEntity)
	}
	eng.meta.Insert(e, metadata{element: strings.ToLower(element)})
	eng.MarkRestyle(e)
	return nil
}

// RemoveEntity drops all style data of e. Running animations driving e are
// completed for all the entities they drive.
func (eng *Engine) RemoveEntity(e entity.Entity) {
	for _, p := range eng.order {
		p.remove(e)
	}
	eng.meta.Remove(e)
	delete(eng.restyle, e)
	delete(eng.matched, e)
	delete(eng.reflow, e)
	eng.flags |= Relayout | Redraw
}

// HasEntity is true if e has been added to the engine.
func (eng *Engine) HasEntity(e entity.Entity) bool {
	return eng.meta.Has(e)
}

func (eng *Engine) metaOf(e entity.Entity) *metadata {
	return eng.meta.GetMut(e)
}

// SetID sets the id of e, as matched by "#id" selectors.
func (eng *Engine) SetID(e entity.Entity, id string) {
	if m := eng.metaOf(e); m != nil && m.id != id {
		m.id = id
		eng.MarkRestyle(e)
	}
}

// AddClass adds a class to e.
func (eng *Engine) AddClass(e entity.Entity, class string) {
	m := eng.metaOf(e)
	if m == nil {
		return
	}
	for _, c := range m.classes {
		if c == class {
			return
		}
	}
	m.classes = append(m.classes, class)
	eng.MarkRestyle(e)
}

// RemoveClass removes a class from e.
func (eng *Engine) RemoveClass(e entity.Entity, class string) {
	m := eng.metaOf(e)
	if m == nil {
		return
	}
	for i, c := range m.classes {
		if c == class {
			m.classes = append(m.classes[:i], m.classes[i+1:]...)
			eng.MarkRestyle(e)
			return
		}
	}
}

// SetPseudoClass switches dynamic pseudo-classes of e on or off, e.g.
// selector.Hover.
func (eng *Engine) SetPseudoClass(e entity.Entity, pc selector.PseudoClass, on bool) {
	m := eng.metaOf(e)
	if m == nil {
		return
	}
	old := m.pseudo
	m.pseudo.Set(pc, on)
	if m.pseudo != old {
		eng.MarkRestyle(e)
	}
}

// SetDisabled disables or enables e and its descendants. Descendants
// inherit the flag unless they are disabled or enabled themselves.
func (eng *Engine) SetDisabled(e entity.Entity, on bool) {
	if !eng.HasEntity(e) {
		return
	}
	eng.Disabled.Insert(e, on)
	eng.mark(e, eng.Disabled.Flags())
	eng.MarkRestyle(e)
}

// IsDisabled tells if e or its closest ancestor with a disabled flag of its
// own is disabled.
func (eng *Engine) IsDisabled(e entity.Entity) bool {
	for x, ok := e, true; ok; x, ok = eng.tree.ParentOf(x) {
		if d := eng.Disabled.Index(x); d.IsInline() && !d.IsInherited() {
			v, _ := eng.Disabled.Get(x)
			return v
		}
	}
	return false
}

// MarkRestyle schedules e and its descendants for restyling. If the
// stylesheets contain structural selectors, the following siblings of e
// are scheduled as well.
func (eng *Engine) MarkRestyle(e entity.Entity) {
	eng.markSubtree(e)
	if eng.structural > 0 {
		for s, ok := eng.tree.NextSiblingOf(e); ok; s, ok = eng.tree.NextSiblingOf(s) {
			eng.markSubtree(s)
		}
	}
	eng.flags |= Restyle
}

func (eng *Engine) markSubtree(e entity.Entity) {
	eng.restyle[e] = struct{}{}
	for c, ok := eng.tree.FirstChildOf(e); ok; c, ok = eng.tree.NextSiblingOf(c) {
		eng.markSubtree(c)
	}
}

// RestyleAll schedules every entity of the tree for restyling.
func (eng *Engine) RestyleAll() {
	for _, e := range eng.tree.BreadthFirst() {
		eng.restyle[e] = struct{}{}
	}
	eng.flags |= Restyle
}

// --- Inline styles ----------------------------------------------------

// SetProperty sets an inline value for e. Inline values win over values
// from stylesheets. Shorthands (e.g., "border") set all of their components.
func (eng *Engine) SetProperty(e entity.Entity, name, value string) error {
	if !eng.HasEntity(e) {
		return fmt.Errorf("setting %s of %v: %w", name, e, ErrUnknownEntity)
	}
	name = strings.ToLower(strings.TrimSpace(name))
	kvs := []cssom.KeyValue{{Key: name, Value: cssom.Property(value)}}
	if cssom.IsCompound(name) {
		var err error
		if kvs, err = cssom.SplitCompoundProperty(name, cssom.Property(value)); err != nil {
			return err
		}
	}
	// a shorthand is set as a whole or not at all
	stores := make([]store, len(kvs))
	for i, kv := range kvs {
		p, ok := eng.table[kv.Key]
		if !ok {
			return fmt.Errorf("%q: %w", kv.Key, ErrUnknownProperty)
		}
		if err := p.check(kv.Value); err != nil {
			return fmt.Errorf("setting %s of %v: %w", kv.Key, e, err)
		}
		stores[i] = p
	}
	for i, kv := range kvs {
		if err := stores[i].setInline(e, kv.Value); err != nil {
			return err
		}
		eng.mark(e, stores[i].Flags())
	}
	return nil
}

// RemoveProperty removes the inline value of a property of e. The entity
// falls back to values from stylesheets with the next restyle pass.
func (eng *Engine) RemoveProperty(e entity.Entity, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	names := []string{name}
	if targets, ok := transitionTargets[name]; ok {
		names = targets
	}
	for _, n := range names {
		p, ok := eng.table[n]
		if !ok {
			return fmt.Errorf("%q: %w", n, ErrUnknownProperty)
		}
		if p.remove(e) {
			eng.mark(e, p.Flags())
		}
	}
	eng.restyle[e] = struct{}{}
	eng.flags |= Restyle
	return nil
}

// --- Dirty flags ------------------------------------------------------

func (eng *Engine) mark(e entity.Entity, f SystemFlags) {
	eng.flags |= f
	if f&Reflow != 0 {
		eng.reflow[e] = struct{}{}
	}
}

// Flags returns the accumulated dirty flags.
func (eng *Engine) Flags() SystemFlags {
	return eng.flags
}

// NeedsRelayout is true if style changes affect the layout.
func (eng *Engine) NeedsRelayout() bool {
	return eng.flags&Relayout != 0
}

// NeedsRedraw is true if style changes affect painting.
func (eng *Engine) NeedsRedraw() bool {
	return eng.flags&Redraw != 0
}

// ClearFlags clears dirty flags after they have been consumed.
func (eng *Engine) ClearFlags(f SystemFlags) {
	eng.flags &^= f
}

// TakeReflow returns the entities whose text has to be shaped again, ordered
// by index, and clears the set as well as the Reflow flag.
func (eng *Engine) TakeReflow() []entity.Entity {
	ents := make([]entity.Entity, 0, len(eng.reflow))
	for e := range eng.reflow {
		ents = append(ents, e)
	}
	sort.Slice(ents, func(i, j int) bool {
		return ents[i].Index() < ents[j].Index()
	})
	eng.reflow = make(map[entity.Entity]struct{})
	eng.flags &^= Reflow
	return ents
}

// --- Introspection ----------------------------------------------------

// Describe returns the resolved value of property name for e in CSS
// notation.
func (eng *Engine) Describe(e entity.Entity, name string) (string, bool) {
	p, ok := eng.table[name]
	if !ok {
		return "", false
	}
	return p.describe(e)
}

// MatchedRules returns the selectors of the rules matching e, as of the
// last restyle pass, in order of decreasing priority.
func (eng *Engine) MatchedRules(e entity.Entity) []string {
	var sels []string
	for _, m := range eng.matched[e] {
		if r, ok := eng.rules.Get(m.Rule); ok {
			sel := r.sel.String()
			if r.important {
				sel += " !important"
			}
			sels = append(sels, sel)
		}
	}
	return sels
}

// --- Selector document ------------------------------------------------

// document presents the tree and the metadata of an engine to the
// selector matcher.
type document struct {
	eng *Engine
}

func (d document) Root() (entity.Entity, bool) { return d.eng.tree.Root() }

func (d document) ParentOf(e entity.Entity) (entity.Entity, bool) { return d.eng.tree.ParentOf(e) }

func (d document) FirstChildOf(e entity.Entity) (entity.Entity, bool) {
	return d.eng.tree.FirstChildOf(e)
}

func (d document) NextSiblingOf(e entity.Entity) (entity.Entity, bool) {
	return d.eng.tree.NextSiblingOf(e)
}

func (d document) PrevSiblingOf(e entity.Entity) (entity.Entity, bool) {
	return d.eng.tree.PrevSiblingOf(e)
}

func (d document) ElementName(e entity.Entity) string {
	if m, ok := d.eng.meta.Get(e); ok {
		return m.element
	}
	return ""
}

func (d document) ID(e entity.Entity) string {
	if m, ok := d.eng.meta.Get(e); ok {
		return m.id
	}
	return ""
}

func (d document) Classes(e entity.Entity) []string {
	if m, ok := d.eng.meta.Get(e); ok {
		return m.classes
	}
	return nil
}

func (d document) PseudoClasses(e entity.Entity) selector.PseudoClass {
	m, _ := d.eng.meta.Get(e)
	pc := m.pseudo
	pc.Set(selector.Disabled, d.eng.IsDisabled(e))
	return pc
}

var _ selector.Document = document{}

// Fingerprint returns the selector-relevant data of e.
func (eng *Engine) Fingerprint(e entity.Entity) selector.Fingerprint {
	return selector.FingerprintOf(eng.doc, e)
}
