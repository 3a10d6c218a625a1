package storage

import "fmt"

// Key is the type of keys for sparse sets, i.e. one of the generational
// identifiers of package entity.
type Key interface {
	comparable
	Index() int
	Generation() uint32
}

const vacant = -1

// SparseSet maps keys to values with O(1) insert, remove and lookup.
// Values are kept contiguous in a dense array; removal swaps the last
// value into the gap.
//
// There is no ordering guarantee for the dense array. Clients needing tree
// order have to iterate the tree and probe the set.
type SparseSet[K Key, T any] struct {
	sparse []int32 // key index → dense position, or vacant
	keys   []K     // dense position → key
	dense  []T
}

// NewSparseSet creates an empty sparse set.
func NewSparseSet[K Key, T any]() *SparseSet[K, T] {
	return &SparseSet[K, T]{}
}

// Len returns the number of values.
func (s *SparseSet[K, T]) Len() int {
	return len(s.dense)
}

// Keys returns the keys of all values, in dense order.
func (s *SparseSet[K, T]) Keys() []K {
	return s.keys
}

// DenseIndex returns the dense position of the value for k.
func (s *SparseSet[K, T]) DenseIndex(k K) (int, bool) {
	i := k.Index()
	if i < 0 || i >= len(s.sparse) || s.sparse[i] == vacant {
		return 0, false
	}
	d := int(s.sparse[i])
	if s.keys[d] != k { // stale or newer generation
		return 0, false
	}
	return d, true
}

// Has is true if a value for k is present.
func (s *SparseSet[K, T]) Has(k K) bool {
	_, ok := s.DenseIndex(k)
	return ok
}

// Get returns the value for k.
func (s *SparseSet[K, T]) Get(k K) (T, bool) {
	if d, ok := s.DenseIndex(k); ok {
		return s.dense[d], true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer to the value for k, or nil. The pointer is
// invalidated by the next call to Insert or Remove.
func (s *SparseSet[K, T]) GetMut(k K) *T {
	if d, ok := s.DenseIndex(k); ok {
		return &s.dense[d]
	}
	return nil
}

// At returns the value at dense position d.
func (s *SparseSet[K, T]) At(d int) (T, bool) {
	if d < 0 || d >= len(s.dense) {
		var zero T
		return zero, false
	}
	return s.dense[d], true
}

// AtMut returns a pointer to the value at dense position d, or nil.
func (s *SparseSet[K, T]) AtMut(d int) *T {
	if d < 0 || d >= len(s.dense) {
		return nil
	}
	return &s.dense[d]
}

// Insert sets the value for k, overwriting an existing value.
//
// A stale value of an earlier generation of k's index is replaced. Inserting
// a key of an earlier generation than the one present is a programming
// error and panics.
func (s *SparseSet[K, T]) Insert(k K, v T) {
	i := k.Index()
	if i < 0 || i >= MaxIndex {
		panic(fmt.Sprintf("storage: cannot insert key %v", k))
	}
	for len(s.sparse) <= i {
		s.sparse = append(s.sparse, vacant)
	}
	if d := s.sparse[i]; d != vacant {
		present := s.keys[d]
		if present != k && present.Generation() > k.Generation() {
			panic(fmt.Sprintf("storage: inserting stale key %v, slot is owned by %v", k, present))
		}
		s.keys[d] = k
		s.dense[d] = v
		return
	}
	s.sparse[i] = int32(len(s.dense))
	s.keys = append(s.keys, k)
	s.dense = append(s.dense, v)
}

// Remove deletes the value for k and returns it.
func (s *SparseSet[K, T]) Remove(k K) (T, bool) {
	var zero T
	d, ok := s.DenseIndex(k)
	if !ok {
		return zero, false
	}
	v := s.dense[d]
	last := len(s.dense) - 1
	if d != last {
		s.dense[d] = s.dense[last]
		s.keys[d] = s.keys[last]
		s.sparse[s.keys[d].Index()] = int32(d)
	}
	s.sparse[k.Index()] = vacant
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.keys = s.keys[:last]
	return v, true
}

// Clear removes all values.
func (s *SparseSet[K, T]) Clear() {
	s.sparse = s.sparse[:0]
	s.keys = nil
	s.dense = nil
}
