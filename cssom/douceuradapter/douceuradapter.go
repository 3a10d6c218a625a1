/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet.

Stylesheet text is parsed with github.com/aymerick/douceur. Douceur gives up
on the first syntax error; Parse therefore splits the text into top-level
blocks first and parses them one by one, dropping only the blocks (or
single declarations) which are malformed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"
	"github.com/npillmayer/restyle/cssom"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.cssom")
}

// CSSStyles is an adapter for interface cssom.StyleSheet.
type CSSStyles struct {
	css css.Stylesheet
}

// Wrap a douceur.css.Stylesheet into CssStyles.
// The stylesheet is now managed by the wrapper.
func Wrap(css *css.Stylesheet) *CSSStyles {
	sheet := &CSSStyles{*css}
	return sheet
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// AppendRules appends rules from another stylesheet. Stylesheets of other
// implementations are converted rule by rule.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	if othercss, ok := other.(*CSSStyles); ok {
		sheet.css.Rules = append(sheet.css.Rules, othercss.css.Rules...)
		return
	}
	for _, r := range other.Rules() {
		sheet.css.Rules = append(sheet.css.Rules, convert(r))
	}
	for _, kf := range other.Keyframes() {
		sheet.css.Rules = append(sheet.css.Rules, convertKeyframes(kf))
	}
}

// Rules returns all the qualified rules of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	rules := make([]cssom.Rule, 0, len(sheet.css.Rules))
	for _, r := range sheet.css.Rules {
		if r.Kind == css.QualifiedRule {
			rules = append(rules, Rule(*r))
		}
	}
	return rules
}

// Keyframes returns the @keyframes blocks of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Keyframes() []cssom.Keyframes {
	var kfs []cssom.Keyframes
	for _, r := range sheet.css.Rules {
		if r.Kind == css.AtRule && r.Name == "@keyframes" {
			kfs = append(kfs, Keyframes(*r))
		}
	}
	return kfs
}

func (sheet *CSSStyles) String() string {
	return sheet.css.String()
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule css.Rule

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.Prelude
}

// Properties returns the property keys of a rule,
// e.g. "margin-top"
func (r Rule) Properties() []string {
	decl := r.Declarations
	props := make([]string, 0, len(decl))
	for _, d := range decl {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property values for given key with this rule, e.g. "15px".
// If a key is declared more than once, the last important declaration wins,
// then the last one.
func (r Rule) Value(key string) cssom.Property {
	if d := r.declaration(key); d != nil {
		return cssom.Property(d.Value)
	}
	return cssom.NullStyle
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	if d := r.declaration(key); d != nil {
		return d.Important
	}
	return false
}

func (r Rule) declaration(key string) *css.Declaration {
	var found *css.Declaration
	for _, d := range r.Declarations {
		if d.Property != key {
			continue
		}
		if found == nil || d.Important || !found.Important {
			found = d
		}
	}
	return found
}

var _ cssom.Rule = &Rule{}

// Keyframes is an adapter for interface cssom.Keyframes.
type Keyframes css.Rule

// AnimationName returns the name of the animation.
func (kf Keyframes) AnimationName() string {
	return strings.TrimSpace(kf.Prelude)
}

// Frames returns the steps of the animation, sorted by offset. A step with
// a selector list ("0%, 100%") contributes a frame for every offset.
// Invalid offsets are skipped.
func (kf Keyframes) Frames() []cssom.Keyframe {
	var frames []cssom.Keyframe
	for _, r := range kf.Rules {
		props := make([]cssom.KeyValue, 0, len(r.Declarations))
		for _, d := range r.Declarations {
			props = append(props, cssom.KeyValue{Key: d.Property, Value: cssom.Property(d.Value)})
		}
		for _, sel := range strings.Split(r.Prelude, ",") {
			offset, err := parseOffset(sel)
			if err != nil {
				tracer().Errorf("@keyframes %s: %v", kf.AnimationName(), err)
				continue
			}
			frames = append(frames, cssom.Keyframe{Offset: offset, Properties: props})
		}
	}
	sort.SliceStable(frames, func(i, j int) bool {
		return frames[i].Offset < frames[j].Offset
	})
	return frames
}

var _ cssom.Keyframes = &Keyframes{}

func parseOffset(sel string) (float32, error) {
	sel = strings.ToLower(strings.TrimSpace(sel))
	switch sel {
	case "from":
		return 0, nil
	case "to":
		return 1, nil
	}
	if strings.HasSuffix(sel, "%") {
		p, err := strconv.ParseFloat(strings.TrimSuffix(sel, "%"), 32)
		if err == nil && p >= 0 && p <= 100 {
			return float32(p / 100), nil
		}
	}
	return 0, fmt.Errorf("illegal keyframe offset %q", sel)
}

// --- Conversion -------------------------------------------------------------

func convert(r cssom.Rule) *css.Rule {
	rule := css.NewRule(css.QualifiedRule)
	rule.Prelude = r.Selector()
	for _, sel := range strings.Split(rule.Prelude, ",") {
		rule.Selectors = append(rule.Selectors, strings.TrimSpace(sel))
	}
	for _, key := range r.Properties() {
		rule.Declarations = append(rule.Declarations, &css.Declaration{
			Property:  key,
			Value:     r.Value(key).String(),
			Important: r.IsImportant(key),
		})
	}
	return rule
}

func convertKeyframes(kf cssom.Keyframes) *css.Rule {
	rule := css.NewRule(css.AtRule)
	rule.Name = "@keyframes"
	rule.Prelude = kf.AnimationName()
	for _, f := range kf.Frames() {
		step := css.NewRule(css.QualifiedRule)
		step.Prelude = strconv.FormatFloat(float64(f.Offset)*100, 'f', -1, 32) + "%"
		step.Selectors = []string{step.Prelude}
		for _, kv := range f.Properties {
			step.Declarations = append(step.Declarations, &css.Declaration{
				Property: kv.Key,
				Value:    kv.Value.String(),
			})
		}
		rule.Rules = append(rule.Rules, step)
	}
	return rule
}

// --- Parsing ----------------------------------------------------------------

// Parse parses stylesheet text. Malformed blocks and declarations are
// dropped and reported in a cssom.ParseErrors; all valid rules are part of
// the returned stylesheet, which is never nil.
func Parse(text string) (*CSSStyles, error) {
	sheet := &CSSStyles{css: *css.NewStylesheet()}
	var errs cssom.ParseErrors
	blocks, err := splitBlocks(text)
	errs.Add(err)
	for _, block := range blocks {
		rules, err := parseBlock(block)
		if err != nil {
			tracer().Errorf("CSS: %v", err)
			errs.Add(err)
		}
		sheet.css.Rules = append(sheet.css.Rules, rules...)
	}
	tracer().Infof("parsed stylesheet with %d rules, %d errors", len(sheet.css.Rules), len(errs))
	return sheet, errs.Err()
}

// splitBlocks splits stylesheet text into top-level blocks: rules with a
// {…} block and at-rule statements terminated by ';'. Text after a
// tokenizer error is dropped.
func splitBlocks(text string) ([]string, error) {
	var blocks []string
	var b strings.Builder
	depth := 0
	s := scanner.New(text)
	for {
		t := s.Next()
		switch t.Type {
		case scanner.TokenEOF:
			if strings.TrimSpace(b.String()) != "" {
				blocks = append(blocks, b.String())
			}
			return blocks, nil
		case scanner.TokenError:
			return blocks, fmt.Errorf("CSS tokenizer error at line %d: %s", t.Line, t.Value)
		}
		b.WriteString(t.Value)
		if t.Type != scanner.TokenChar {
			continue
		}
		switch t.Value {
		case "{":
			depth++
		case "}":
			depth--
			if depth <= 0 {
				blocks = append(blocks, b.String())
				b.Reset()
				depth = 0
			}
		case ";":
			if depth == 0 {
				blocks = append(blocks, b.String())
				b.Reset()
			}
		}
	}
}

// parseBlock parses a single top-level block. If douceur rejects a qualified
// rule, its declarations are parsed one by one and the malformed ones are
// dropped.
func parseBlock(block string) ([]*css.Rule, error) {
	sheet, err := parser.Parse(block)
	if err == nil {
		return sheet.Rules, nil
	}
	open := strings.IndexByte(block, '{')
	prelude := ""
	if open >= 0 {
		prelude = strings.TrimSpace(block[:open])
	}
	if prelude == "" || strings.HasPrefix(prelude, "@") {
		return nil, fmt.Errorf("dropping block %q: %w", abbrev(block), err)
	}
	body := strings.TrimSuffix(strings.TrimSpace(block[open+1:]), "}")
	rule := css.NewRule(css.QualifiedRule)
	rule.Prelude = prelude
	for _, sel := range strings.Split(prelude, ",") {
		rule.Selectors = append(rule.Selectors, strings.TrimSpace(sel))
	}
	var errs cssom.ParseErrors
	for _, decl := range strings.Split(body, ";") {
		if strings.TrimSpace(decl) == "" {
			continue
		}
		d, err := parser.ParseDeclarations(decl + ";")
		if err != nil || len(d) != 1 || d[0].Property == "" {
			errs.Add(fmt.Errorf("%s: dropping declaration %q", prelude, strings.TrimSpace(decl)))
			continue
		}
		rule.Declarations = append(rule.Declarations, d[0])
	}
	return []*css.Rule{rule}, errs.Err()
}

func abbrev(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 40 {
		return s[:37] + "..."
	}
	return s
}
