package tree

import (
	"errors"
	"fmt"

	"github.com/npillmayer/restyle/entity"
)

// ErrUnknownParent is returned when adding a node to a parent which is not
// part of the tree.
var ErrUnknownParent = errors.New("parent is not part of the tree")

// ErrDuplicateNode is returned when adding a node which is already part of
// the tree.
var ErrDuplicateNode = errors.New("node is already part of the tree")

// node holds the links of an entity.
type node struct {
	self   entity.Entity // owner of this slot, Null if free
	parent entity.Entity
	first  entity.Entity // first child
	last   entity.Entity // last child
	next   entity.Entity // next sibling
	prev   entity.Entity // previous sibling
}

// Tree is a tree of entities.
type Tree struct {
	nodes []node // indexed by entity index
	root  entity.Entity
	size  int
}

// New creates a tree with a root node.
func New(root entity.Entity) *Tree {
	t := &Tree{root: root}
	if root.IsNull() {
		return t
	}
	n := t.slot(root)
	n.self = root
	t.size = 1
	return t
}

func (t *Tree) slot(e entity.Entity) *node {
	i := e.Index()
	for len(t.nodes) <= i {
		t.nodes = append(t.nodes, node{
			self: entity.Null, parent: entity.Null, first: entity.Null,
			last: entity.Null, next: entity.Null, prev: entity.Null,
		})
	}
	return &t.nodes[i]
}

func (t *Tree) node(e entity.Entity) *node {
	i := e.Index()
	if e.IsNull() || i >= len(t.nodes) || t.nodes[i].self != e {
		return nil
	}
	return &t.nodes[i]
}

func (t *Tree) String() string {
	return fmt.Sprintf("(Tree root=%v #nodes=%d)", t.root, t.size)
}

// Len returns the number of nodes of the tree.
func (t *Tree) Len() int {
	return t.size
}

// Root returns the root node.
func (t *Tree) Root() (entity.Entity, bool) {
	return t.root, !t.root.IsNull()
}

// Contains is true if e is a node of the tree.
func (t *Tree) Contains(e entity.Entity) bool {
	return t.node(e) != nil
}

// Add appends e as the last child of parent.
func (t *Tree) Add(e, parent entity.Entity) error {
	if e.IsNull() {
		return errors.New("cannot add null entity")
	}
	if t.node(parent) == nil {
		return fmt.Errorf("adding %v: %w", e, ErrUnknownParent)
	}
	if t.node(e) != nil {
		return fmt.Errorf("adding %v: %w", e, ErrDuplicateNode)
	}
	n := t.slot(e)
	if !n.self.IsNull() {
		tracer().Debugf("re-using slot of stale node %v", n.self)
		if n.self.Generation() > e.Generation() {
			return fmt.Errorf("adding %v: slot owned by newer %v", e, n.self)
		}
		t.unlink(t.node(n.self))
		t.release(n.self)
		n = t.slot(e)
	}
	n.self, n.parent = e, parent
	p := t.node(parent)
	if p.last.IsNull() {
		p.first, p.last = e, e
	} else {
		t.node(p.last).next = e
		n.prev = p.last
		p.last = e
	}
	t.size++
	return nil
}

// Remove removes e and all of its descendants from the tree. The root
// cannot be removed. Returns the removed entities, e first.
func (t *Tree) Remove(e entity.Entity) []entity.Entity {
	n := t.node(e)
	if n == nil || e == t.root {
		return nil
	}
	removed := t.Subtree(e)
	t.unlink(n)
	for _, r := range removed {
		t.release(r)
	}
	return removed
}

// unlink detaches n from its parent and siblings.
func (t *Tree) unlink(n *node) {
	if p := t.node(n.parent); p != nil {
		if p.first == n.self {
			p.first = n.next
		}
		if p.last == n.self {
			p.last = n.prev
		}
	}
	if prev := t.node(n.prev); prev != nil {
		prev.next = n.next
	}
	if next := t.node(n.next); next != nil {
		next.prev = n.prev
	}
	n.parent, n.next, n.prev = entity.Null, entity.Null, entity.Null
}

func (t *Tree) release(e entity.Entity) {
	if n := t.node(e); n != nil {
		*n = node{
			self: entity.Null, parent: entity.Null, first: entity.Null,
			last: entity.Null, next: entity.Null, prev: entity.Null,
		}
		t.size--
	}
}

func valid(e entity.Entity) (entity.Entity, bool) {
	return e, !e.IsNull()
}

// ParentOf returns the parent of e. The root has no parent.
func (t *Tree) ParentOf(e entity.Entity) (entity.Entity, bool) {
	if n := t.node(e); n != nil {
		return valid(n.parent)
	}
	return entity.Null, false
}

// FirstChildOf returns the first child of e.
func (t *Tree) FirstChildOf(e entity.Entity) (entity.Entity, bool) {
	if n := t.node(e); n != nil {
		return valid(n.first)
	}
	return entity.Null, false
}

// LastChildOf returns the last child of e.
func (t *Tree) LastChildOf(e entity.Entity) (entity.Entity, bool) {
	if n := t.node(e); n != nil {
		return valid(n.last)
	}
	return entity.Null, false
}

// NextSiblingOf returns the next sibling of e.
func (t *Tree) NextSiblingOf(e entity.Entity) (entity.Entity, bool) {
	if n := t.node(e); n != nil {
		return valid(n.next)
	}
	return entity.Null, false
}

// PrevSiblingOf returns the previous sibling of e.
func (t *Tree) PrevSiblingOf(e entity.Entity) (entity.Entity, bool) {
	if n := t.node(e); n != nil {
		return valid(n.prev)
	}
	return entity.Null, false
}

// IsFirstChild is true if e has a parent and no previous sibling.
func (t *Tree) IsFirstChild(e entity.Entity) bool {
	n := t.node(e)
	return n != nil && !n.parent.IsNull() && n.prev.IsNull()
}

// IsLastChild is true if e has a parent and no next sibling.
func (t *Tree) IsLastChild(e entity.Entity) bool {
	n := t.node(e)
	return n != nil && !n.parent.IsNull() && n.next.IsNull()
}

// ChildCount returns the number of children of e.
func (t *Tree) ChildCount(e entity.Entity) int {
	cnt := 0
	for c, ok := t.FirstChildOf(e); ok; c, ok = t.NextSiblingOf(c) {
		cnt++
	}
	return cnt
}

// Children returns the children of e in order.
func (t *Tree) Children(e entity.Entity) []entity.Entity {
	var children []entity.Entity
	for c, ok := t.FirstChildOf(e); ok; c, ok = t.NextSiblingOf(c) {
		children = append(children, c)
	}
	return children
}
