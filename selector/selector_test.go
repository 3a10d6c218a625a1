package selector_test

import (
	"testing"

	"github.com/npillmayer/restyle/entity"
	"github.com/npillmayer/restyle/selector"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

type node struct {
	parent   int
	children []int
	element  string
	id       string
	classes  []string
	pseudo   selector.PseudoClass
}

// doc is a minimal Document. Entity i is nodes[i]; node 0 is the root.
type doc struct {
	nodes []*node
}

func (d *doc) add(parent int, element, id string, classes ...string) entity.Entity {
	n := &node{parent: parent, element: element, id: id, classes: classes}
	d.nodes = append(d.nodes, n)
	i := len(d.nodes) - 1
	if parent >= 0 {
		d.nodes[parent].children = append(d.nodes[parent].children, i)
	}
	return entity.NewEntity(uint32(i), 0)
}

func (d *doc) get(e entity.Entity) *node {
	if e.IsNull() || e.Index() >= len(d.nodes) {
		return nil
	}
	return d.nodes[e.Index()]
}

func ent(i int) entity.Entity { return entity.NewEntity(uint32(i), 0) }

func (d *doc) Root() (entity.Entity, bool) { return ent(0), len(d.nodes) > 0 }

func (d *doc) ParentOf(e entity.Entity) (entity.Entity, bool) {
	if n := d.get(e); n != nil && n.parent >= 0 {
		return ent(n.parent), true
	}
	return entity.Null, false
}

func (d *doc) FirstChildOf(e entity.Entity) (entity.Entity, bool) {
	if n := d.get(e); n != nil && len(n.children) > 0 {
		return ent(n.children[0]), true
	}
	return entity.Null, false
}

func (d *doc) sibling(e entity.Entity, delta int) (entity.Entity, bool) {
	n := d.get(e)
	if n == nil || n.parent < 0 {
		return entity.Null, false
	}
	sibs := d.nodes[n.parent].children
	for i, c := range sibs {
		if c == e.Index() && i+delta >= 0 && i+delta < len(sibs) {
			return ent(sibs[i+delta]), true
		}
	}
	return entity.Null, false
}

func (d *doc) NextSiblingOf(e entity.Entity) (entity.Entity, bool) { return d.sibling(e, 1) }
func (d *doc) PrevSiblingOf(e entity.Entity) (entity.Entity, bool) { return d.sibling(e, -1) }
func (d *doc) ElementName(e entity.Entity) string                  { return d.get(e).element }
func (d *doc) ID(e entity.Entity) string                           { return d.get(e).id }
func (d *doc) Classes(e entity.Entity) []string                    { return d.get(e).classes }
func (d *doc) PseudoClasses(e entity.Entity) selector.PseudoClass  { return d.get(e).pseudo }

func sampleDoc() (*doc, []entity.Entity) {
	d := &doc{}
	root := d.add(-1, "window", "")
	list := d.add(0, "list", "menu")
	a := d.add(1, "button", "", "item", "primary")
	b := d.add(1, "button", "", "item")
	c := d.add(1, "Button", "x", "item")
	return d, []entity.Entity{root, list, a, b, c}
}

func TestCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.selector")
	defer teardown()
	//
	for _, test := range []struct {
		text       string
		structural bool
		spec       string
	}{
		{"button", false, "(0,0,1)"},
		{".item", false, "(0,1,0)"},
		{"#x.item", false, "(1,1,0)"},
		{"list > button:hover", false, "(0,1,2)"},
		{"button:first-child", true, "(0,1,1)"},
		{"button + button", true, "(0,0,2)"},
		{"[data-x~=y]", false, "(0,1,0)"},
		{"list:has(.item)", true, "(0,1,1)"},
		{"button:not(:disabled), #menu", false, "(1,0,0)"},
	} {
		sel, err := selector.Compile(test.text)
		if err != nil {
			t.Errorf("expected %q to compile, got %v", test.text, err)
			continue
		}
		if sel.IsStructural() != test.structural {
			t.Errorf("expected %q structural=%v", test.text, test.structural)
		}
		if s := sel.Specificity().String(); s != test.spec {
			t.Errorf("expected specificity of %q to be %s, is %s", test.text, test.spec, s)
		}
	}
	for _, bad := range []string{"", "button:frobnicate", "button::after", "..x"} {
		if _, err := selector.Compile(bad); err == nil {
			t.Errorf("expected %q not to compile", bad)
		}
	}
}

func TestMatches(t *testing.T) {
	d, es := sampleDoc()
	m := selector.NewMatcher(d)
	root, list, a, b, c := es[0], es[1], es[2], es[3], es[4]
	check := func(text string, e entity.Entity, want bool) {
		t.Helper()
		_, ok := m.Matches(selector.MustCompile(text), e)
		if ok != want {
			t.Errorf("expected %q matching %v to be %v", text, e, want)
		}
	}
	check("window", root, true)
	check(":root", root, true)
	check(":root", list, false)
	check("#menu > .item", a, true)
	check("window .primary", a, true)
	check("window > .primary", a, false)
	check("button:first-child", a, true)
	check("button:first-child", b, false)
	check("button:last-child", c, true)
	check("button", c, true) // element names are case insensitive
	check(".item:hover", b, false)
	check("button:enabled", b, true)
	check("button:disabled", b, false)
	check("button", entity.NewEntity(42, 0), false)
	//
	d.nodes[3].pseudo.Set(selector.Hover|selector.Disabled, true)
	check(".item:hover", b, false) // not yet refreshed
	m.Update(b)
	check(".item:hover", b, true)
	check("button:disabled", b, true)
	check("button:enabled", b, false)
	check("list :hover:not(:focus)", b, true)
	//
	sp, ok := m.Matches(selector.MustCompile(".item, #x.item, button"), c)
	if !ok || sp.String() != "(1,1,0)" {
		t.Errorf("expected highest matching specificity (1,1,0), is %v", sp)
	}
	sp, _ = m.Matches(selector.MustCompile(".item, #x.item, button"), b)
	if sp.String() != "(0,1,0)" {
		t.Errorf("expected specificity (0,1,0) for b, is %v", sp)
	}
}

func TestPseudoClassFlags(t *testing.T) {
	pc, ok := selector.ParsePseudoClass(":Focus-Within")
	if !ok || pc != selector.FocusWithin {
		t.Errorf("expected focus-within, is %v", pc)
	}
	if _, ok := selector.ParsePseudoClass("enabled"); ok {
		t.Errorf("expected 'enabled' not to be a flag of its own")
	}
	var flags selector.PseudoClass
	flags.Set(selector.Checked|selector.Hover, true)
	flags.Set(selector.Hover, false)
	assert.Equal(t, []string{"checked", "enabled"}, flags.Names())
	if !flags.Contains(selector.Checked) || flags.Contains(selector.Hover) {
		t.Errorf("expected only checked to be set, is %v", flags)
	}
}

func TestFingerprint(t *testing.T) {
	d, es := sampleDoc()
	d.nodes[3].classes = []string{"b", "a"}
	d.nodes[2].classes = []string{"a", "b"}
	if selector.FingerprintOf(d, es[2]) != selector.FingerprintOf(d, es[3]) {
		t.Errorf("expected equal fingerprints regardless of class order")
	}
	if selector.FingerprintOf(d, es[3]) == selector.FingerprintOf(d, es[4]) {
		t.Errorf("expected fingerprints to differ by id")
	}
}
