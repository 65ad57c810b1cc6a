package fmap

import (
	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

// --------------------------------------------------------------------------
// Unmodifiable View
// --------------------------------------------------------------------------

// unmodifiableMap forwards all reads and rejects every mutation with an
// unsupported-operation error.
type unmodifiableMap[K, V any] struct {
	target collection.Map[K, V]
}

// NewUnmodifiable wraps the target in a read-only view.
func NewUnmodifiable[K, V any](target collection.Map[K, V]) collection.Map[K, V] {
	return &unmodifiableMap[K, V]{target: target}
}

func (m *unmodifiableMap[K, V]) Size() int                          { return m.target.Size() }
func (m *unmodifiableMap[K, V]) Get(key K) (V, bool)                { return m.target.Get(key) }
func (m *unmodifiableMap[K, V]) ContainsKey(key K) bool             { return m.target.ContainsKey(key) }
func (m *unmodifiableMap[K, V]) ForEach(fn func(K, V) bool)         { m.target.ForEach(fn) }
func (m *unmodifiableMap[K, V]) KeyComparator() compare.Equality[K] { return m.target.KeyComparator() }

func (m *unmodifiableMap[K, V]) Put(K, V) (V, bool, error) {
	var zero V
	return zero, false, collection.UnsupportedError("Put")
}

func (m *unmodifiableMap[K, V]) PutIfAbsent(K, V) (V, bool, error) {
	var zero V
	return zero, false, collection.UnsupportedError("PutIfAbsent")
}

func (m *unmodifiableMap[K, V]) Replace(K, V) (V, bool, error) {
	var zero V
	return zero, false, collection.UnsupportedError("Replace")
}

func (m *unmodifiableMap[K, V]) Remove(K) (V, bool, error) {
	var zero V
	return zero, false, collection.UnsupportedError("Remove")
}

func (m *unmodifiableMap[K, V]) Clear() error { return collection.UnsupportedError("Clear") }

func (m *unmodifiableMap[K, V]) Split(n int) []collection.Map[K, V] {
	return shardsOf[K, V](m, n)
}

func (m *unmodifiableMap[K, V]) Iterator() collection.Iterator[collection.MapEntry[K, V]] {
	return &readOnlyIterator[collection.MapEntry[K, V]]{source: m.target.Iterator()}
}

func (m *unmodifiableMap[K, V]) Keys() collection.Iterator[K] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) K { return e.Key })
}

func (m *unmodifiableMap[K, V]) Values() collection.Iterator[V] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) V { return e.Value })
}

func (m *unmodifiableMap[K, V]) Clone() collection.Map[K, V] {
	return NewUnmodifiable(m.target.Clone())
}

// readOnlyIterator forwards traversal and rejects Remove.
type readOnlyIterator[E any] struct {
	source collection.Iterator[E]
}

func (it *readOnlyIterator[E]) HasNext() bool {
	return it.source.HasNext()
}

func (it *readOnlyIterator[E]) Next() (E, error) {
	return it.source.Next()
}

func (it *readOnlyIterator[E]) Remove() error {
	return collection.UnsupportedError("Remove")
}

// --------------------------------------------------------------------------
// Shard View (Split)
// --------------------------------------------------------------------------

// shardMap is one partition of a map's key space: it owns the keys whose
// unsalted hash falls into its residue class modulo the shard count. A
// shard created on a Shared or Atomic view goes through that view, so
// sibling shards share the parent's lock.
//
// Reads of keys outside the shard report absence; writes of such keys are
// rejected, since they would be invisible through this view.
type shardMap[K, V any] struct {
	target collection.Map[K, V]
	index  uint64
	count  uint64
}

// shardsOf partitions the target's key space into n disjoint shard views.
func shardsOf[K, V any](target collection.Map[K, V], n int) []collection.Map[K, V] {
	if n < 1 {
		n = 1
	}
	shards := make([]collection.Map[K, V], n)
	for i := range shards {
		shards[i] = &shardMap[K, V]{target: target, index: uint64(i), count: uint64(n)}
	}
	return shards
}

// ownsKey reports whether the key belongs to this shard. The hash is taken
// with a zero seed so sibling shards over clones of the same map partition
// identically.
func (m *shardMap[K, V]) ownsKey(key K) bool {
	return m.target.KeyComparator().Hash(key, 0)%m.count == m.index
}

func (m *shardMap[K, V]) Size() int {
	n := 0
	m.target.ForEach(func(key K, _ V) bool {
		if m.ownsKey(key) {
			n++
		}
		return true
	})
	return n
}

func (m *shardMap[K, V]) Get(key K) (V, bool) {
	if !m.ownsKey(key) {
		var zero V
		return zero, false
	}
	return m.target.Get(key)
}

func (m *shardMap[K, V]) ContainsKey(key K) bool {
	return m.ownsKey(key) && m.target.ContainsKey(key)
}

func (m *shardMap[K, V]) Put(key K, value V) (V, bool, error) {
	if !m.ownsKey(key) {
		var zero V
		return zero, false, collection.ArgumentError("key outside shard")
	}
	return m.target.Put(key, value)
}

func (m *shardMap[K, V]) PutIfAbsent(key K, value V) (V, bool, error) {
	if !m.ownsKey(key) {
		var zero V
		return zero, false, collection.ArgumentError("key outside shard")
	}
	return m.target.PutIfAbsent(key, value)
}

func (m *shardMap[K, V]) Replace(key K, value V) (V, bool, error) {
	if !m.ownsKey(key) {
		var zero V
		return zero, false, collection.ArgumentError("key outside shard")
	}
	return m.target.Replace(key, value)
}

func (m *shardMap[K, V]) Remove(key K) (V, bool, error) {
	if !m.ownsKey(key) {
		var zero V
		return zero, false, nil
	}
	return m.target.Remove(key)
}

// Clear removes the shard's keys from the target; other shards are
// untouched.
func (m *shardMap[K, V]) Clear() error {
	var owned []K
	m.target.ForEach(func(key K, _ V) bool {
		if m.ownsKey(key) {
			owned = append(owned, key)
		}
		return true
	})
	for _, key := range owned {
		if _, _, err := m.target.Remove(key); err != nil {
			return err
		}
	}
	return nil
}

func (m *shardMap[K, V]) ForEach(fn func(key K, value V) bool) {
	m.target.ForEach(func(key K, value V) bool {
		if !m.ownsKey(key) {
			return true
		}
		return fn(key, value)
	})
}

func (m *shardMap[K, V]) KeyComparator() compare.Equality[K] {
	return m.target.KeyComparator()
}

func (m *shardMap[K, V]) Split(n int) []collection.Map[K, V] {
	return shardsOf[K, V](m, n)
}

func (m *shardMap[K, V]) Iterator() collection.Iterator[collection.MapEntry[K, V]] {
	return newSliceEntryIterator[K, V](m, collection.Entries[K, V](m))
}

func (m *shardMap[K, V]) Keys() collection.Iterator[K] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) K { return e.Key })
}

func (m *shardMap[K, V]) Values() collection.Iterator[V] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) V { return e.Value })
}

// Clone returns an independent engine holding only this shard's entries.
func (m *shardMap[K, V]) Clone() collection.Map[K, V] {
	copied := NewEngine[K, V](m.target.KeyComparator())
	m.ForEach(func(key K, value V) bool {
		_, _, _ = copied.Put(key, value)
		return true
	})
	return copied
}
