package entity_test

import (
	"testing"

	"github.com/npillmayer/restyle/entity"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestManagerCreate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.entity")
	defer teardown()
	//
	m := entity.Entities()
	a, b := m.Create(), m.Create()
	if a == b {
		t.Fatalf("expected distinct entities, have %v twice", a)
	}
	if a.Index() != 0 || b.Index() != 1 {
		t.Errorf("expected indices 0 and 1, are %d and %d", a.Index(), b.Index())
	}
	if !m.IsAlive(a) || !m.IsAlive(b) {
		t.Errorf("expected fresh entities to be alive")
	}
	if m.Count() != 2 {
		t.Errorf("expected count 2, is %d", m.Count())
	}
	if m.IsAlive(entity.Null) {
		t.Errorf("expected null entity never to be alive")
	}
}

func TestManagerRecycling(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.entity")
	defer teardown()
	//
	m := entity.Rules()
	m.SetReuseThreshold(0)
	r := m.Create()
	if !m.Destroy(r) {
		t.Fatalf("expected destroy of live rule to succeed")
	}
	if m.Destroy(r) {
		t.Errorf("expected second destroy to fail")
	}
	r2 := m.Create()
	if r2.Index() != r.Index() {
		t.Fatalf("expected index %d to be recycled, got %d", r.Index(), r2.Index())
	}
	if r2.Generation() != r.Generation()+1 {
		t.Errorf("expected generation to be bumped, is %d", r2.Generation())
	}
	if m.IsAlive(r) {
		t.Errorf("expected stale rule %v not to be alive", r)
	}
	if !m.IsAlive(r2) {
		t.Errorf("expected recycled rule %v to be alive", r2)
	}
}

func TestManagerThreshold(t *testing.T) {
	m := entity.Animations()
	m.SetReuseThreshold(2)
	ids := []entity.Animation{m.Create(), m.Create(), m.Create()}
	for _, a := range ids {
		m.Destroy(a)
	}
	a := m.Create()
	if a.Index() != 0 || a.Generation() != 1 {
		t.Errorf("expected recycled index 0 with generation 1, is %v", a)
	}
	m.Reset()
	if m.Count() != 0 || m.IsAlive(a) {
		t.Errorf("expected reset to kill all animations")
	}
}
