package fmap

import (
	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Shared View
// --------------------------------------------------------------------------

// SharedMap is a reader/writer-locked view over a map: readers may run
// concurrently with each other, never with a writer. The lock is a
// reader-biased xsync.RBMutex, so uncontended reads stay cheap.
//
// Iteration: ForEach and the iterators take a private copy of the entries
// under a single read-lock acquisition and run outside the lock; iterator
// Remove goes back through this view and therefore takes the write lock.
//
// Shards produced by Split target this view directly and therefore share
// its lock.
type SharedMap[K, V any] struct {
	target collection.Map[K, V]
	mu     *xsync.RBMutex
}

// NewShared wraps the target in a reader/writer-locked view.
func NewShared[K, V any](target collection.Map[K, V]) *SharedMap[K, V] {
	return &SharedMap[K, V]{target: target, mu: xsync.NewRBMutex()}
}

// --------------------------------------------------------------------------
// Read Operations (read lock)
// --------------------------------------------------------------------------

func (m *SharedMap[K, V]) Size() int {
	tok := m.mu.RLock()
	defer m.mu.RUnlock(tok)
	return m.target.Size()
}

func (m *SharedMap[K, V]) Get(key K) (V, bool) {
	tok := m.mu.RLock()
	defer m.mu.RUnlock(tok)
	return m.target.Get(key)
}

func (m *SharedMap[K, V]) ContainsKey(key K) bool {
	tok := m.mu.RLock()
	defer m.mu.RUnlock(tok)
	return m.target.ContainsKey(key)
}

// ForEach takes a private copy of the entries under one read-lock
// acquisition, then runs fn outside the lock.
func (m *SharedMap[K, V]) ForEach(fn func(key K, value V) bool) {
	tok := m.mu.RLock()
	entries := collection.Entries[K, V](m.target)
	m.mu.RUnlock(tok)
	for _, e := range entries {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}

func (m *SharedMap[K, V]) KeyComparator() compare.Equality[K] {
	return m.target.KeyComparator()
}

func (m *SharedMap[K, V]) Clone() collection.Map[K, V] {
	tok := m.mu.RLock()
	defer m.mu.RUnlock(tok)
	return m.target.Clone()
}

// --------------------------------------------------------------------------
// Write Operations (write lock)
// --------------------------------------------------------------------------

func (m *SharedMap[K, V]) Put(key K, value V) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target.Put(key, value)
}

func (m *SharedMap[K, V]) PutIfAbsent(key K, value V) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target.PutIfAbsent(key, value)
}

func (m *SharedMap[K, V]) Replace(key K, value V) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target.Replace(key, value)
}

func (m *SharedMap[K, V]) Remove(key K) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target.Remove(key)
}

func (m *SharedMap[K, V]) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target.Clear()
}

// --------------------------------------------------------------------------
// Composition
// --------------------------------------------------------------------------

// Split partitions the key space into shard views targeting this view, so
// all siblings share the parent's lock.
func (m *SharedMap[K, V]) Split(n int) []collection.Map[K, V] {
	return shardsOf[K, V](m, n)
}

func (m *SharedMap[K, V]) Iterator() collection.Iterator[collection.MapEntry[K, V]] {
	tok := m.mu.RLock()
	entries := collection.Entries[K, V](m.target)
	m.mu.RUnlock(tok)
	return newSliceEntryIterator[K, V](m, entries)
}

func (m *SharedMap[K, V]) Keys() collection.Iterator[K] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) K { return e.Key })
}

func (m *SharedMap[K, V]) Values() collection.Iterator[V] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) V { return e.Value })
}
