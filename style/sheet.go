package style

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/cssom"
	"github.com/npillmayer/restyle/cssom/douceuradapter"
	"github.com/npillmayer/restyle/entity"
	"github.com/npillmayer/restyle/selector"
	"github.com/npillmayer/restyle/storage"
)

// importantBit lifts the specificity of !important declarations above all
// normal declarations.
const importantBit = 1 << 30

// rule is an entry of the rule table. A stylesheet rule with !important
// declarations is split into two entries sharing the same selector.
type rule struct {
	sel       *selector.Selector
	order     int // declaration order
	important bool
}

// source is an ingested stylesheet, retained for reloading.
type source struct {
	text  string
	sheet cssom.StyleSheet
}

// AddStylesheet parses CSS text and adds its rules to the engine. Rules and
// declarations which cannot be parsed are dropped and reported in a
// cssom.ParseErrors; all other rules are in effect, even if an error is
// returned.
func (eng *Engine) AddStylesheet(text string) error {
	sheet, err := douceuradapter.Parse(text)
	var errs cssom.ParseErrors
	flatten(&errs, err)
	if sheet.Empty() && len(errs) == 0 {
		return cssom.ErrEmptyStylesheet
	}
	eng.sources = append(eng.sources, source{text: text})
	flatten(&errs, eng.ingest(sheet))
	return errs.Err()
}

// AddRules adds the rules of an already parsed stylesheet.
func (eng *Engine) AddRules(sheet cssom.StyleSheet) error {
	if sheet == nil || sheet.Empty() {
		return cssom.ErrEmptyStylesheet
	}
	eng.sources = append(eng.sources, source{sheet: sheet})
	return eng.ingest(sheet)
}

// ClearStylesheets drops all rules, transitions and keyframe animations.
// Inline values are kept. Animations already running keep running.
func (eng *Engine) ClearStylesheets() {
	eng.clearRules()
	eng.sources = nil
	eng.RestyleAll()
}

// ReloadStylesheets re-ingests every stylesheet added so far, e.g. after a
// change of the set of supported properties or for hot reloading.
func (eng *Engine) ReloadStylesheets() error {
	sources := eng.sources
	eng.clearRules()
	var errs cssom.ParseErrors
	for _, src := range sources {
		sheet := src.sheet
		if sheet == nil {
			parsed, err := douceuradapter.Parse(src.text)
			flatten(&errs, err)
			sheet = parsed
		}
		flatten(&errs, eng.ingest(sheet))
	}
	eng.RestyleAll()
	return errs.Err()
}

// RuleCount returns the number of entries in the rule table.
func (eng *Engine) RuleCount() int {
	return eng.rules.Len()
}

func (eng *Engine) clearRules() {
	for _, p := range eng.order {
		p.clearRules()
	}
	for _, a := range eng.transitions {
		eng.dropAnimation(a)
	}
	for _, a := range eng.keyframes {
		eng.dropAnimation(a)
	}
	for _, r := range eng.rules.Keys() {
		eng.ruleIDs.Destroy(r)
	}
	eng.rules.Clear()
	eng.transitions = nil
	eng.keyframes = make(map[string]entity.Animation)
	eng.matched = make(map[entity.Entity][]storage.RuleMatch)
	eng.structural = 0
	eng.ruleOrder = 0
}

func (eng *Engine) dropAnimation(a entity.Animation) {
	for _, p := range eng.order {
		p.removeAnimation(a)
	}
	eng.animIDs.Destroy(a)
}

func flatten(errs *cssom.ParseErrors, err error) {
	var pe cssom.ParseErrors
	if errors.As(err, &pe) {
		for _, e := range pe {
			errs.Add(e)
		}
		return
	}
	errs.Add(err)
}

// --- Ingestion --------------------------------------------------------

// ingest adds the rules and keyframe animations of sheet to the engine.
func (eng *Engine) ingest(sheet cssom.StyleSheet) error {
	var errs cssom.ParseErrors
	for _, r := range sheet.Rules() {
		flatten(&errs, eng.ingestRule(r))
	}
	for _, kf := range sheet.Keyframes() {
		flatten(&errs, eng.ingestKeyframes(kf))
	}
	tracer().Infof("rule table holds %d rules", eng.rules.Len())
	eng.RestyleAll()
	return errs.Err()
}

func (eng *Engine) ingestRule(r cssom.Rule) error {
	sel, err := selector.Compile(r.Selector())
	if err != nil {
		tracer().Errorf("dropping rule: %v", err)
		return err
	}
	var errs cssom.ParseErrors
	order := eng.ruleOrder
	eng.ruleOrder++
	ids := [2]entity.Rule{entity.NullRule, entity.NullRule} // normal, important
	idFor := func(important bool) entity.Rule {
		k := 0
		if important {
			k = 1
		}
		if ids[k].IsNull() {
			ids[k] = eng.ruleIDs.Create()
			eng.rules.Insert(ids[k], rule{sel: sel, order: order, important: important})
			if sel.IsStructural() {
				eng.structural++
			}
		}
		return ids[k]
	}
	var transitions []css.Transition
	seen := make(map[string]bool)
	for _, key := range r.Properties() {
		key = strings.ToLower(strings.TrimSpace(key))
		if seen[key] {
			continue
		}
		seen[key] = true
		value := r.Value(key)
		if key == "transition" {
			trs, err := css.ParseTransitions(value.String())
			if err != nil {
				errs.Add(fmt.Errorf("%s: transition: %w", sel, err))
				continue
			}
			transitions = append(transitions, trs...)
			continue
		}
		if err := eng.declare(idFor(r.IsImportant(key)), key, value); err != nil {
			tracer().Errorf("%s: %v", sel, err)
			errs.Add(fmt.Errorf("%s: %w", sel, err))
		}
	}
	for _, tr := range transitions {
		if tr.Duration == 0 && tr.Delay == 0 {
			continue
		}
		for _, id := range ids {
			if !id.IsNull() {
				eng.attachTransition(id, tr)
			}
		}
	}
	return errs.Err()
}

// declare sets the shared value of property key for rule r. Shorthands are
// expanded.
func (eng *Engine) declare(r entity.Rule, key string, value cssom.Property) error {
	if value.IsInherit() || value.IsInitial() {
		return fmt.Errorf("%s: %q is not supported", key, value)
	}
	kvs := []cssom.KeyValue{{Key: key, Value: value}}
	if cssom.IsCompound(key) {
		var err error
		if kvs, err = cssom.SplitCompoundProperty(key, value); err != nil {
			return err
		}
	}
	for _, kv := range kvs {
		p, ok := eng.table[kv.Key]
		if !ok {
			return fmt.Errorf("%q: %w", kv.Key, ErrUnknownProperty)
		}
		if err := p.insertRule(r, kv.Value); err != nil {
			return err
		}
	}
	return nil
}

// attachTransition creates a transition template for every store the
// transition entry names and attaches it to rule r.
func (eng *Engine) attachTransition(r entity.Rule, tr css.Transition) {
	stores := eng.transitionStores(tr.Property)
	if len(stores) == 0 {
		tracer().Errorf("transition of unknown property %q", tr.Property)
		return
	}
	a := eng.animIDs.Create()
	attached := 0
	for _, p := range stores {
		if p.addTransition(r, a, tr) {
			attached++
		}
	}
	if attached == 0 {
		eng.animIDs.Destroy(a)
		return
	}
	eng.transitions = append(eng.transitions, a)
	tracer().Debugf("%v: transition %v on %d properties", r, tr, attached)
}

// ingestKeyframes creates keyframe templates for an @keyframes block. A
// block with a name seen before replaces the earlier one.
func (eng *Engine) ingestKeyframes(kf cssom.Keyframes) error {
	name := kf.AnimationName()
	if name == "" {
		return errors.New("@keyframes without a name")
	}
	if a, ok := eng.keyframes[name]; ok {
		eng.dropAnimation(a)
	}
	a := eng.animIDs.Create()
	eng.keyframes[name] = a
	var errs cssom.ParseErrors
	for _, f := range kf.Frames() {
		for _, prop := range f.Properties {
			kvs := []cssom.KeyValue{prop}
			if cssom.IsCompound(prop.Key) {
				var err error
				if kvs, err = cssom.SplitCompoundProperty(prop.Key, prop.Value); err != nil {
					errs.Add(fmt.Errorf("@keyframes %s: %w", name, err))
					continue
				}
			}
			for _, kv := range kvs {
				p, ok := eng.table[kv.Key]
				if !ok {
					errs.Add(fmt.Errorf("@keyframes %s: %q: %w", name, kv.Key, ErrUnknownProperty))
					continue
				}
				if err := p.addKeyframe(a, f.Offset, kv.Value); err != nil {
					errs.Add(fmt.Errorf("@keyframes %s: %w", name, err))
				}
			}
		}
	}
	return errs.Err()
}
