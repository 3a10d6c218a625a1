package selector

import (
	"sort"
	"strings"

	"github.com/npillmayer/restyle/entity"
	"golang.org/x/net/html"
)

// Document is the read-only view of an entity tree and its style metadata
// which selector matching needs.
type Document interface {
	Root() (entity.Entity, bool)
	ParentOf(entity.Entity) (entity.Entity, bool)
	FirstChildOf(entity.Entity) (entity.Entity, bool)
	NextSiblingOf(entity.Entity) (entity.Entity, bool)
	PrevSiblingOf(entity.Entity) (entity.Entity, bool)
	ElementName(entity.Entity) string
	ID(entity.Entity) string
	Classes(entity.Entity) []string
	PseudoClasses(entity.Entity) PseudoClass
}

// Matcher matches selectors against the entities of a Document.
//
// A Matcher works on a snapshot of the document, taken by Refresh. Changes
// to the tree structure or to style metadata are not visible before the
// next call to Refresh.
type Matcher struct {
	doc   Document
	nodes map[entity.Entity]*html.Node
	root  *html.Node
}

// NewMatcher creates a matcher for doc and takes a first snapshot.
func NewMatcher(doc Document) *Matcher {
	m := &Matcher{doc: doc}
	m.Refresh()
	return m
}

// Refresh mirrors the document into a fresh node tree.
func (m *Matcher) Refresh() {
	m.nodes = make(map[entity.Entity]*html.Node, len(m.nodes))
	m.root = &html.Node{Type: html.DocumentNode}
	r, ok := m.doc.Root()
	if !ok {
		return
	}
	m.mirror(m.root, r)
	tracer().Debugf("selector mirror holds %d elements", len(m.nodes))
}

func (m *Matcher) mirror(parent *html.Node, e entity.Entity) {
	n := m.element(e)
	parent.AppendChild(n)
	m.nodes[e] = n
	for c, ok := m.doc.FirstChildOf(e); ok; c, ok = m.doc.NextSiblingOf(c) {
		m.mirror(n, c)
	}
}

func (m *Matcher) element(e entity.Entity) *html.Node {
	n := &html.Node{
		Type: html.ElementNode,
		Data: strings.ToLower(m.doc.ElementName(e)),
	}
	if id := m.doc.ID(e); id != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
	}
	if cls := m.doc.Classes(e); len(cls) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(cls, " ")})
	}
	n.Attr = append(n.Attr, html.Attribute{
		Key: stateAttr,
		Val: strings.Join(m.doc.PseudoClasses(e).Names(), " "),
	})
	return n
}

// Update refreshes the metadata of a single entity in the snapshot. The
// tree structure is not updated.
func (m *Matcher) Update(e entity.Entity) {
	n, ok := m.nodes[e]
	if !ok {
		return
	}
	fresh := m.element(e)
	n.Data, n.Attr = fresh.Data, fresh.Attr
}

// Matches tests e against every selector in the list sel. It returns the
// highest specificity among the matching selectors. Entities unknown to the
// snapshot never match.
func (m *Matcher) Matches(sel *Selector, e entity.Entity) (Specificity, bool) {
	n, ok := m.nodes[e]
	if !ok || sel == nil {
		return 0, false
	}
	var best Specificity
	matched := false
	for _, s := range sel.group {
		if s.Match(n) {
			if sp := Collapse(s.Specificity()); !matched || sp > best {
				best = sp
			}
			matched = true
		}
	}
	return best, matched
}

// --- Fingerprints ----------------------------------------------------------

// Fingerprint identifies the style metadata of an entity. Entities with
// equal fingerprints match the same non-structural selectors, provided
// their ancestors do.
type Fingerprint struct {
	Element string
	ID      string
	Classes string // sorted, space separated
	Pseudo  PseudoClass
}

// FingerprintOf computes the fingerprint of e.
func FingerprintOf(doc Document, e entity.Entity) Fingerprint {
	cls := append([]string(nil), doc.Classes(e)...)
	sort.Strings(cls)
	return Fingerprint{
		Element: strings.ToLower(doc.ElementName(e)),
		ID:      doc.ID(e),
		Classes: strings.Join(cls, " "),
		Pseudo:  doc.PseudoClasses(e),
	}
}
