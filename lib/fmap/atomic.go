package fmap

import (
	"sync"
	"sync/atomic"

	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

// --------------------------------------------------------------------------
// Atomic View
// --------------------------------------------------------------------------

// AtomicMap is a copy-on-write view over a map. All reads are served
// lock-free from an immutable snapshot; every mutation runs under a mutex
// against the live target and publishes a fresh snapshot before returning.
//
// Multi-step updates go through Update, which hands the caller the live
// target: the update scope sees its own in-progress changes, while all
// other goroutines keep reading the pre-update snapshot. Exactly one new
// snapshot is published when the scope ends, so no reader ever observes a
// partially applied update.
type AtomicMap[K, V any] struct {
	mu     sync.Mutex
	target collection.Map[K, V]
	snap   atomic.Pointer[collection.Map[K, V]]
}

// NewAtomic wraps the target in a copy-on-write view.
func NewAtomic[K, V any](target collection.Map[K, V]) *AtomicMap[K, V] {
	m := &AtomicMap[K, V]{target: target}
	m.publish()
	return m
}

// snapshot returns the current immutable copy used by readers.
func (m *AtomicMap[K, V]) snapshot() collection.Map[K, V] {
	return *m.snap.Load()
}

// publish replaces the reader snapshot with a fresh clone of the target.
// Must be called with the mutex held (or before the view is shared).
func (m *AtomicMap[K, V]) publish() {
	snap := m.target.Clone()
	m.snap.Store(&snap)
}

// Update runs a multi-step mutation as one atomic scope. The function
// receives the live target and sees its own writes immediately; concurrent
// readers keep the previous snapshot until the scope ends.
//
// The returned error is fn's error; the snapshot is republished either way,
// since fn may have partially mutated the target before failing.
func (m *AtomicMap[K, V]) Update(fn func(live collection.Map[K, V]) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := fn(m.target)
	m.publish()
	return err
}

// --------------------------------------------------------------------------
// Read Operations (snapshot, lock-free)
// --------------------------------------------------------------------------

func (m *AtomicMap[K, V]) Size() int {
	return m.snapshot().Size()
}

func (m *AtomicMap[K, V]) Get(key K) (V, bool) {
	return m.snapshot().Get(key)
}

func (m *AtomicMap[K, V]) ContainsKey(key K) bool {
	return m.snapshot().ContainsKey(key)
}

func (m *AtomicMap[K, V]) ForEach(fn func(key K, value V) bool) {
	m.snapshot().ForEach(fn)
}

func (m *AtomicMap[K, V]) KeyComparator() compare.Equality[K] {
	return m.target.KeyComparator()
}

func (m *AtomicMap[K, V]) Clone() collection.Map[K, V] {
	return NewAtomic(m.snapshot().Clone())
}

// Iterator returns a read-only iterator over the current snapshot.
func (m *AtomicMap[K, V]) Iterator() collection.Iterator[collection.MapEntry[K, V]] {
	return NewUnmodifiable(m.snapshot()).Iterator()
}

func (m *AtomicMap[K, V]) Keys() collection.Iterator[K] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) K { return e.Key })
}

func (m *AtomicMap[K, V]) Values() collection.Iterator[V] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) V { return e.Value })
}

// --------------------------------------------------------------------------
// Write Operations (mutex + snapshot republication)
// --------------------------------------------------------------------------

func (m *AtomicMap[K, V]) Put(key K, value V) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	previous, replaced, err := m.target.Put(key, value)
	m.publish()
	return previous, replaced, err
}

func (m *AtomicMap[K, V]) PutIfAbsent(key K, value V) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, present, err := m.target.PutIfAbsent(key, value)
	m.publish()
	return current, present, err
}

func (m *AtomicMap[K, V]) Replace(key K, value V) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	previous, replaced, err := m.target.Replace(key, value)
	m.publish()
	return previous, replaced, err
}

func (m *AtomicMap[K, V]) Remove(key K) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed, present, err := m.target.Remove(key)
	m.publish()
	return removed, present, err
}

func (m *AtomicMap[K, V]) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.target.Clear()
	m.publish()
	return err
}

// --------------------------------------------------------------------------
// Composition
// --------------------------------------------------------------------------

// Split partitions the key space into shard views targeting this view, so
// all siblings share the parent's lock and snapshot discipline.
func (m *AtomicMap[K, V]) Split(n int) []collection.Map[K, V] {
	return shardsOf[K, V](m, n)
}
