package tree_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/restyle/entity"
	"github.com/npillmayer/restyle/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

//	root
//	├── a
//	│   ├── c
//	│   └── d
//	└── b
func buildTree(t *testing.T) (*tree.Tree, []entity.Entity) {
	m := entity.Entities()
	e := make([]entity.Entity, 5)
	for i := range e {
		e[i] = m.Create()
	}
	tr := tree.New(e[0])
	for _, link := range [][2]int{{1, 0}, {2, 0}, {3, 1}, {4, 1}} {
		if err := tr.Add(e[link[0]], e[link[1]]); err != nil {
			t.Fatal(err)
		}
	}
	return tr, e
}

func TestLinks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.tree")
	defer teardown()
	//
	tr, e := buildTree(t)
	if tr.Len() != 5 {
		t.Errorf("expected tree of 5 nodes, is %d", tr.Len())
	}
	if p, ok := tr.ParentOf(e[3]); !ok || p != e[1] {
		t.Errorf("expected parent of c to be a, is %v", p)
	}
	if _, ok := tr.ParentOf(e[0]); ok {
		t.Errorf("expected root to have no parent")
	}
	if !tr.IsFirstChild(e[3]) || tr.IsLastChild(e[3]) || !tr.IsLastChild(e[4]) {
		t.Errorf("unexpected first/last child status of c and d")
	}
	if tr.IsFirstChild(e[0]) {
		t.Errorf("expected root not to be a first child")
	}
	if s, ok := tr.PrevSiblingOf(e[2]); !ok || s != e[1] {
		t.Errorf("expected previous sibling of b to be a, is %v", s)
	}
	assert.Equal(t, []entity.Entity{e[3], e[4]}, tr.Children(e[1]))
	err := tr.Add(e[3], e[0])
	if !errors.Is(err, tree.ErrDuplicateNode) {
		t.Errorf("expected duplicate node to be rejected, have %v", err)
	}
	stranger := entity.NewEntity(99, 0)
	if err := tr.Add(entity.NewEntity(98, 0), stranger); !errors.Is(err, tree.ErrUnknownParent) {
		t.Errorf("expected unknown parent to be rejected, have %v", err)
	}
}

func TestWalk(t *testing.T) {
	tr, e := buildTree(t)
	assert.Equal(t, []entity.Entity{e[0], e[1], e[2], e[3], e[4]}, tr.BreadthFirst())
	var order []entity.Entity
	var depths []int
	tr.DepthFirst(func(n entity.Entity, depth int) bool {
		order = append(order, n)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []entity.Entity{e[0], e[1], e[3], e[4], e[2]}, order)
	assert.Equal(t, []int{0, 1, 2, 2, 1}, depths)
	assert.Equal(t, []entity.Entity{e[1], e[0]}, tr.Ancestors(e[4]))
}

func TestRemove(t *testing.T) {
	tr, e := buildTree(t)
	removed := tr.Remove(e[1])
	assert.Equal(t, []entity.Entity{e[1], e[3], e[4]}, removed)
	if tr.Len() != 2 || tr.Contains(e[3]) {
		t.Errorf("expected subtree of a to be gone, tree is %v", tr)
	}
	if c, ok := tr.FirstChildOf(e[0]); !ok || c != e[2] {
		t.Errorf("expected b to be the first child now, is %v", c)
	}
	if !tr.IsFirstChild(e[2]) {
		t.Errorf("expected b to be first child")
	}
	if tr.Remove(e[0]) != nil {
		t.Errorf("expected root not to be removable")
	}
}
