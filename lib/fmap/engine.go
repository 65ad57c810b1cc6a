package fmap

import (
	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

// --------------------------------------------------------------------------
// Map Engine
// --------------------------------------------------------------------------

// Engine is the hash map engine. Keys live in an open-addressing hash block
// (see hashBlock); entries are additionally chained in a doubly-linked list
// in insertion order, which is the order ForEach and the iterators follow.
//
// Hashes are salted with a per-instance random seed so slot distribution is
// not attacker-predictable across instances.
//
// Thread-safety: none. Wrap the engine in a Shared or Atomic view for
// concurrent use.
type Engine[K, V any] struct {
	eq    compare.Equality[K]
	seed  uint64
	block *hashBlock[K, V]
	first *entry[K, V]
	last  *entry[K, V]
	size  int
}

var _ collection.Map[int, int] = (*Engine[int, int])(nil)

// NewEngine creates an empty map engine using the given key equality.
func NewEngine[K, V any](eq compare.Equality[K]) *Engine[K, V] {
	return &Engine[K, V]{
		eq:    eq,
		seed:  compare.GenerateSeed(),
		block: newHashBlock[K, V](eq.Equal),
	}
}

func (m *Engine[K, V]) hashOf(key K) uint64 {
	return m.eq.Hash(key, m.seed)
}

// attachEntry appends the entry to the tail of the insertion-order chain.
func (m *Engine[K, V]) attachEntry(e *entry[K, V]) {
	e.prev = m.last
	if m.last != nil {
		m.last.next = e
	} else {
		m.first = e
	}
	m.last = e
}

// detachEntry splices the entry out of the insertion-order chain.
func (m *Engine[K, V]) detachEntry(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		m.first = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		m.last = e.prev
	}
	e.next, e.prev = nil, nil
}

// --------------------------------------------------------------------------
// Map Contract
// --------------------------------------------------------------------------

func (m *Engine[K, V]) Size() int {
	return m.size
}

// Get returns the value for the key and whether it is present.
func (m *Engine[K, V]) Get(key K) (V, bool) {
	e := m.block.getEntry(key, m.hashOf(key))
	if e == nil {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put associates the key with the value. It returns the previous value and
// whether one was replaced.
func (m *Engine[K, V]) Put(key K, value V) (V, bool, error) {
	hash := m.hashOf(key)
	if e := m.block.getEntry(key, hash); e != nil {
		previous := e.value
		e.value = value
		return previous, true, nil
	}
	e := &entry[K, V]{key: key, value: value, hash: hash}
	m.block.addEntry(e)
	m.attachEntry(e)
	m.size++
	var zero V
	return zero, false, nil
}

// PutIfAbsent inserts only if the key is absent. It returns the value left
// in the map and whether the key was already present.
func (m *Engine[K, V]) PutIfAbsent(key K, value V) (V, bool, error) {
	hash := m.hashOf(key)
	if e := m.block.getEntry(key, hash); e != nil {
		return e.value, true, nil
	}
	e := &entry[K, V]{key: key, value: value, hash: hash}
	m.block.addEntry(e)
	m.attachEntry(e)
	m.size++
	return value, false, nil
}

// Replace updates the value only if the key is present. It returns the
// previous value and whether a replacement happened.
func (m *Engine[K, V]) Replace(key K, value V) (V, bool, error) {
	e := m.block.getEntry(key, m.hashOf(key))
	if e == nil {
		var zero V
		return zero, false, nil
	}
	previous := e.value
	e.value = value
	return previous, true, nil
}

// Remove deletes the key. It returns the removed value and whether the key
// was present; removing an absent key is not an error.
func (m *Engine[K, V]) Remove(key K) (V, bool, error) {
	e := m.block.removeEntry(key, m.hashOf(key))
	if e == nil {
		var zero V
		return zero, false, nil
	}
	m.detachEntry(e)
	m.size--
	return e.value, true, nil
}

func (m *Engine[K, V]) ContainsKey(key K) bool {
	return m.block.getEntry(key, m.hashOf(key)) != nil
}

func (m *Engine[K, V]) Clear() error {
	m.block.clear()
	m.first, m.last = nil, nil
	m.size = 0
	return nil
}

// ForEach visits the entries in insertion order until fn returns false.
func (m *Engine[K, V]) ForEach(fn func(key K, value V) bool) {
	for e := m.first; e != nil; e = e.next {
		if !fn(e.key, e.value) {
			return
		}
	}
}

func (m *Engine[K, V]) KeyComparator() compare.Equality[K] {
	return m.eq
}

// Split partitions the key space into n disjoint shard views of this
// engine. Each shard owns the keys whose unsalted hash falls into its
// residue class; see shardMap.
func (m *Engine[K, V]) Split(n int) []collection.Map[K, V] {
	return shardsOf[K, V](m, n)
}

func (m *Engine[K, V]) Iterator() collection.Iterator[collection.MapEntry[K, V]] {
	return newEntryIterator[K, V](m)
}

func (m *Engine[K, V]) Keys() collection.Iterator[K] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) K { return e.Key })
}

func (m *Engine[K, V]) Values() collection.Iterator[V] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) V { return e.Value })
}

// Clone returns a deep copy preserving insertion order. The copy draws a
// fresh hash seed.
func (m *Engine[K, V]) Clone() collection.Map[K, V] {
	copied := NewEngine[K, V](m.eq)
	for e := m.first; e != nil; e = e.next {
		_, _, _ = copied.Put(e.key, e.value)
	}
	return copied
}
