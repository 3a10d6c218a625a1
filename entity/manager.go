package entity

// DefaultReuseThreshold is the number of free indices a Manager collects
// before it starts to recycle them.
const DefaultReuseThreshold = 1024

// Manager allocates and recycles generational identifiers of type I.
//
// Destroyed indices are collected in a free list. As long as the free list
// holds fewer than the reuse threshold, new identifiers get fresh indices.
// This keeps generation counters from spinning on a small set of hot slots.
type Manager[I Generational] struct {
	make        func(index, generation uint32) I
	generations []uint32 // current generation per index
	alive       []bool
	free        []uint32 // FIFO of destroyed indices
	threshold   int
	count       int
}

// NewManager creates an id manager. mk constructs an identifier of type I,
// e.g. NewEntity or NewRule.
func NewManager[I Generational](mk func(index, generation uint32) I) *Manager[I] {
	return &Manager[I]{
		make:      mk,
		threshold: DefaultReuseThreshold,
	}
}

// Entities returns a manager for entity handles.
func Entities() *Manager[Entity] {
	return NewManager(NewEntity)
}

// Rules returns a manager for rule identifiers.
func Rules() *Manager[Rule] {
	return NewManager(NewRule)
}

// Animations returns a manager for animation identifiers.
func Animations() *Manager[Animation] {
	return NewManager(NewAnimation)
}

// SetReuseThreshold sets the minimum number of free indices before indices
// are recycled. n = 0 recycles immediately.
func (m *Manager[I]) SetReuseThreshold(n int) {
	if n < 0 {
		n = 0
	}
	m.threshold = n
}

// Create hands out a new identifier.
func (m *Manager[I]) Create() I {
	m.count++
	if len(m.free) > m.threshold {
		inx := m.free[0]
		m.free = m.free[1:]
		m.generations[inx]++
		m.alive[inx] = true
		return m.make(inx, m.generations[inx])
	}
	inx := uint32(len(m.generations))
	if inx == nullIndex {
		panic("entity: identifier space exhausted")
	}
	m.generations = append(m.generations, 0)
	m.alive = append(m.alive, true)
	return m.make(inx, 0)
}

// Destroy releases an identifier. It returns false if the identifier was
// not alive, which includes stale identifiers of earlier generations.
func (m *Manager[I]) Destroy(i I) bool {
	if !m.IsAlive(i) {
		tracer().Debugf("destroying dead identifier %v", i)
		return false
	}
	inx := i.Index()
	m.alive[inx] = false
	m.free = append(m.free, uint32(inx))
	m.count--
	return true
}

// IsAlive is true if i has been created by this manager, has not been
// destroyed, and its generation is the current one.
func (m *Manager[I]) IsAlive(i I) bool {
	if i.IsNull() {
		return false
	}
	inx := i.Index()
	if inx >= len(m.generations) {
		return false
	}
	return m.alive[inx] && m.generations[inx] == i.Generation()
}

// Count returns the number of live identifiers.
func (m *Manager[I]) Count() int {
	return m.count
}

// Reset destroys all identifiers. Generations are kept, therefore
// identifiers handed out before Reset stay dead forever.
func (m *Manager[I]) Reset() {
	m.free = m.free[:0]
	for inx := range m.alive {
		m.alive[inx] = false
		m.free = append(m.free, uint32(inx))
	}
	m.count = 0
}
