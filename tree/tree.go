package tree

import (
	"github.com/npillmayer/restyle/entity"
)

// BreadthFirst returns all nodes in breadth-first order, starting with the
// root. A parent always precedes its children.
func (t *Tree) BreadthFirst() []entity.Entity {
	if t.root.IsNull() {
		return nil
	}
	order := make([]entity.Entity, 0, t.size)
	order = append(order, t.root)
	for i := 0; i < len(order); i++ {
		for c, ok := t.FirstChildOf(order[i]); ok; c, ok = t.NextSiblingOf(c) {
			order = append(order, c)
		}
	}
	return order
}

// DepthFirst calls visit for every node in depth-first pre-order, together
// with its depth (0 for the root). If visit returns false, the children of
// the node are skipped.
func (t *Tree) DepthFirst(visit func(e entity.Entity, depth int) bool) {
	if t.root.IsNull() {
		return
	}
	t.walk(t.root, 0, visit)
}

func (t *Tree) walk(e entity.Entity, depth int, visit func(entity.Entity, int) bool) {
	if !visit(e, depth) {
		return
	}
	for c, ok := t.FirstChildOf(e); ok; c, ok = t.NextSiblingOf(c) {
		t.walk(c, depth+1, visit)
	}
}

// Subtree returns e and all of its descendants in depth-first pre-order.
func (t *Tree) Subtree(e entity.Entity) []entity.Entity {
	if !t.Contains(e) {
		return nil
	}
	var nodes []entity.Entity
	t.walk(e, 0, func(n entity.Entity, _ int) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}

// Ancestors returns the ancestors of e, its parent first.
func (t *Tree) Ancestors(e entity.Entity) []entity.Entity {
	var anc []entity.Entity
	for p, ok := t.ParentOf(e); ok; p, ok = t.ParentOf(p) {
		anc = append(anc, p)
	}
	return anc
}
