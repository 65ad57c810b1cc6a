package fmap

import (
	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
	"github.com/ValentinKolb/fcol/lib/table"
)

// --------------------------------------------------------------------------
// Sorted Map Engine
// --------------------------------------------------------------------------

// SortedEngine is a map whose iteration order is the key order of an
// explicit ordering. Entries live in a fractal table sorted by key; lookups
// and insertions locate their position by binary search, so operations run
// in O(log n) comparisons plus the table's positional cost.
//
// Thread-safety: none. Wrap the engine in a Shared or Atomic view for
// concurrent use.
type SortedEngine[K, V any] struct {
	order   compare.Order[K]
	entries collection.Table[collection.MapEntry[K, V]]
}

var _ collection.SortedMap[int, int] = (*SortedEngine[int, int])(nil)

// NewSortedEngine creates an empty sorted map engine with the given key
// ordering.
func NewSortedEngine[K, V any](order compare.Order[K]) *SortedEngine[K, V] {
	return &SortedEngine[K, V]{
		order:   order,
		entries: table.NewEngine(entryEquality[K, V](order.Equality)),
	}
}

func entryEquality[K, V any](eq compare.Equality[K]) compare.Equality[collection.MapEntry[K, V]] {
	return compare.Equality[collection.MapEntry[K, V]]{
		Equal: func(a, b collection.MapEntry[K, V]) bool { return eq.Equal(a.Key, b.Key) },
		Hash:  func(e collection.MapEntry[K, V], seed uint64) uint64 { return eq.Hash(e.Key, seed) },
	}
}

// search returns the index of the key if present, or the index where it
// would be inserted.
func (m *SortedEngine[K, V]) search(key K) (int, bool) {
	lo, hi := 0, m.entries.Size()
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		e, err := m.entries.Get(mid)
		if err != nil {
			return lo, false
		}
		c := m.order.Compare(e.Key, key)
		switch {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}

// --------------------------------------------------------------------------
// Map Contract
// --------------------------------------------------------------------------

func (m *SortedEngine[K, V]) Size() int {
	return m.entries.Size()
}

func (m *SortedEngine[K, V]) Get(key K) (V, bool) {
	i, found := m.search(key)
	if !found {
		var zero V
		return zero, false
	}
	e, err := m.entries.Get(i)
	if err != nil {
		var zero V
		return zero, false
	}
	return e.Value, true
}

func (m *SortedEngine[K, V]) Put(key K, value V) (V, bool, error) {
	i, found := m.search(key)
	if found {
		previous, err := m.entries.Set(i, collection.MapEntry[K, V]{Key: key, Value: value})
		return previous.Value, true, err
	}
	var zero V
	return zero, false, m.entries.Insert(i, collection.MapEntry[K, V]{Key: key, Value: value})
}

func (m *SortedEngine[K, V]) PutIfAbsent(key K, value V) (V, bool, error) {
	i, found := m.search(key)
	if found {
		e, err := m.entries.Get(i)
		return e.Value, true, err
	}
	return value, false, m.entries.Insert(i, collection.MapEntry[K, V]{Key: key, Value: value})
}

func (m *SortedEngine[K, V]) Replace(key K, value V) (V, bool, error) {
	i, found := m.search(key)
	if !found {
		var zero V
		return zero, false, nil
	}
	previous, err := m.entries.Set(i, collection.MapEntry[K, V]{Key: key, Value: value})
	return previous.Value, true, err
}

func (m *SortedEngine[K, V]) Remove(key K) (V, bool, error) {
	i, found := m.search(key)
	if !found {
		var zero V
		return zero, false, nil
	}
	removed, err := m.entries.Remove(i)
	return removed.Value, err == nil, err
}

func (m *SortedEngine[K, V]) ContainsKey(key K) bool {
	_, found := m.search(key)
	return found
}

func (m *SortedEngine[K, V]) Clear() error {
	return m.entries.Clear()
}

// ForEach visits the entries in ascending key order until fn returns false.
func (m *SortedEngine[K, V]) ForEach(fn func(key K, value V) bool) {
	m.entries.ForEach(func(e collection.MapEntry[K, V]) bool {
		return fn(e.Key, e.Value)
	})
}

func (m *SortedEngine[K, V]) KeyComparator() compare.Equality[K] {
	return m.order.Equality
}

// Split partitions the key space into up to n contiguous key-range views,
// so each partition preserves key order.
func (m *SortedEngine[K, V]) Split(n int) []collection.Map[K, V] {
	return splitSorted[K, V](m, n)
}

func (m *SortedEngine[K, V]) Iterator() collection.Iterator[collection.MapEntry[K, V]] {
	return newSliceEntryIterator[K, V](m, collection.Entries[K, V](m))
}

func (m *SortedEngine[K, V]) Keys() collection.Iterator[K] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) K { return e.Key })
}

func (m *SortedEngine[K, V]) Values() collection.Iterator[V] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) V { return e.Value })
}

func (m *SortedEngine[K, V]) Clone() collection.Map[K, V] {
	return &SortedEngine[K, V]{order: m.order, entries: m.entries.Clone()}
}

// --------------------------------------------------------------------------
// Sorted Map Contract
// --------------------------------------------------------------------------

func (m *SortedEngine[K, V]) KeyOrder() compare.Order[K] {
	return m.order
}

func (m *SortedEngine[K, V]) FirstKey() (K, error) {
	e, err := m.entries.GetFirst()
	if err != nil {
		var zero K
		return zero, collection.EmptyError("FirstKey")
	}
	return e.Key, nil
}

func (m *SortedEngine[K, V]) LastKey() (K, error) {
	e, err := m.entries.GetLast()
	if err != nil {
		var zero K
		return zero, collection.EmptyError("LastKey")
	}
	return e.Key, nil
}

// EntryAfter returns the entry with the smallest key strictly greater than
// the given key.
func (m *SortedEngine[K, V]) EntryAfter(key K) (collection.MapEntry[K, V], bool) {
	i, found := m.search(key)
	if found {
		i++
	}
	if i >= m.entries.Size() {
		return collection.MapEntry[K, V]{}, false
	}
	e, err := m.entries.Get(i)
	if err != nil {
		return collection.MapEntry[K, V]{}, false
	}
	return e, true
}

// EntryBefore returns the entry with the largest key strictly smaller than
// the given key.
func (m *SortedEngine[K, V]) EntryBefore(key K) (collection.MapEntry[K, V], bool) {
	i, _ := m.search(key)
	if i == 0 {
		return collection.MapEntry[K, V]{}, false
	}
	e, err := m.entries.Get(i - 1)
	if err != nil {
		return collection.MapEntry[K, V]{}, false
	}
	return e, true
}

// SubMap returns a view over the key range [from, to). Writes of keys
// outside the range are rejected.
func (m *SortedEngine[K, V]) SubMap(from, to K) collection.SortedMap[K, V] {
	return &subSortedMap[K, V]{
		target:  m,
		from:    from,
		to:      to,
		hasFrom: true,
		hasTo:   true,
	}
}

// --------------------------------------------------------------------------
// Sub-Range View
// --------------------------------------------------------------------------

// subSortedMap is a view over a key range of a sorted map. A missing bound
// means the range is open on that side (used by Split partitions). Reads of
// out-of-range keys report absence; writes of out-of-range keys are
// rejected.
type subSortedMap[K, V any] struct {
	target  collection.SortedMap[K, V]
	from    K
	to      K
	hasFrom bool
	hasTo   bool
}

func (m *subSortedMap[K, V]) inRange(key K) bool {
	order := m.target.KeyOrder()
	if m.hasFrom && order.Compare(key, m.from) < 0 {
		return false
	}
	if m.hasTo && order.Compare(key, m.to) >= 0 {
		return false
	}
	return true
}

func (m *subSortedMap[K, V]) Size() int {
	n := 0
	m.ForEach(func(K, V) bool {
		n++
		return true
	})
	return n
}

func (m *subSortedMap[K, V]) Get(key K) (V, bool) {
	if !m.inRange(key) {
		var zero V
		return zero, false
	}
	return m.target.Get(key)
}

func (m *subSortedMap[K, V]) ContainsKey(key K) bool {
	return m.inRange(key) && m.target.ContainsKey(key)
}

func (m *subSortedMap[K, V]) Put(key K, value V) (V, bool, error) {
	if !m.inRange(key) {
		var zero V
		return zero, false, collection.ArgumentError("key outside sub-map range")
	}
	return m.target.Put(key, value)
}

func (m *subSortedMap[K, V]) PutIfAbsent(key K, value V) (V, bool, error) {
	if !m.inRange(key) {
		var zero V
		return zero, false, collection.ArgumentError("key outside sub-map range")
	}
	return m.target.PutIfAbsent(key, value)
}

func (m *subSortedMap[K, V]) Replace(key K, value V) (V, bool, error) {
	if !m.inRange(key) {
		var zero V
		return zero, false, collection.ArgumentError("key outside sub-map range")
	}
	return m.target.Replace(key, value)
}

func (m *subSortedMap[K, V]) Remove(key K) (V, bool, error) {
	if !m.inRange(key) {
		var zero V
		return zero, false, nil
	}
	return m.target.Remove(key)
}

// Clear removes the view's key range from the target; keys outside the
// range are untouched.
func (m *subSortedMap[K, V]) Clear() error {
	var owned []K
	m.ForEach(func(key K, _ V) bool {
		owned = append(owned, key)
		return true
	})
	for _, key := range owned {
		if _, _, err := m.target.Remove(key); err != nil {
			return err
		}
	}
	return nil
}

func (m *subSortedMap[K, V]) ForEach(fn func(key K, value V) bool) {
	order := m.target.KeyOrder()
	m.target.ForEach(func(key K, value V) bool {
		if m.hasFrom && order.Compare(key, m.from) < 0 {
			return true
		}
		if m.hasTo && order.Compare(key, m.to) >= 0 {
			// The target iterates in key order, nothing further matches.
			return false
		}
		return fn(key, value)
	})
}

func (m *subSortedMap[K, V]) KeyComparator() compare.Equality[K] {
	return m.target.KeyComparator()
}

func (m *subSortedMap[K, V]) Split(n int) []collection.Map[K, V] {
	return splitSorted[K, V](m, n)
}

func (m *subSortedMap[K, V]) Iterator() collection.Iterator[collection.MapEntry[K, V]] {
	return newSliceEntryIterator[K, V](m, collection.Entries[K, V](m))
}

func (m *subSortedMap[K, V]) Keys() collection.Iterator[K] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) K { return e.Key })
}

func (m *subSortedMap[K, V]) Values() collection.Iterator[V] {
	return mapIterator(m.Iterator(), func(e collection.MapEntry[K, V]) V { return e.Value })
}

// Clone returns an independent sorted engine holding only this view's
// entries.
func (m *subSortedMap[K, V]) Clone() collection.Map[K, V] {
	copied := NewSortedEngine[K, V](m.target.KeyOrder())
	m.ForEach(func(key K, value V) bool {
		_, _, _ = copied.Put(key, value)
		return true
	})
	return copied
}

func (m *subSortedMap[K, V]) KeyOrder() compare.Order[K] {
	return m.target.KeyOrder()
}

func (m *subSortedMap[K, V]) FirstKey() (K, error) {
	var first K
	found := false
	m.ForEach(func(key K, _ V) bool {
		first = key
		found = true
		return false
	})
	if !found {
		var zero K
		return zero, collection.EmptyError("FirstKey")
	}
	return first, nil
}

func (m *subSortedMap[K, V]) LastKey() (K, error) {
	var last K
	found := false
	m.ForEach(func(key K, _ V) bool {
		last = key
		found = true
		return true
	})
	if !found {
		var zero K
		return zero, collection.EmptyError("LastKey")
	}
	return last, nil
}

func (m *subSortedMap[K, V]) EntryAfter(key K) (collection.MapEntry[K, V], bool) {
	e, ok := m.target.EntryAfter(key)
	for ok && !m.inRange(e.Key) {
		order := m.target.KeyOrder()
		if m.hasTo && order.Compare(e.Key, m.to) >= 0 {
			return collection.MapEntry[K, V]{}, false
		}
		e, ok = m.target.EntryAfter(e.Key)
	}
	return e, ok
}

func (m *subSortedMap[K, V]) EntryBefore(key K) (collection.MapEntry[K, V], bool) {
	e, ok := m.target.EntryBefore(key)
	for ok && !m.inRange(e.Key) {
		order := m.target.KeyOrder()
		if m.hasFrom && order.Compare(e.Key, m.from) < 0 {
			return collection.MapEntry[K, V]{}, false
		}
		e, ok = m.target.EntryBefore(e.Key)
	}
	return e, ok
}

// SubMap returns a tightened view; the new bounds are intersected with this
// view's bounds.
func (m *subSortedMap[K, V]) SubMap(from, to K) collection.SortedMap[K, V] {
	order := m.target.KeyOrder()
	if m.hasFrom && order.Compare(from, m.from) < 0 {
		from = m.from
	}
	if m.hasTo && order.Compare(to, m.to) > 0 {
		to = m.to
	}
	return &subSortedMap[K, V]{
		target:  m.target,
		from:    from,
		to:      to,
		hasFrom: true,
		hasTo:   true,
	}
}

// --------------------------------------------------------------------------
// Split Helper
// --------------------------------------------------------------------------

// splitSorted partitions the map into up to n contiguous key-range views.
// Boundary keys are taken at evenly spaced positions of the current key
// sequence; the outermost partitions are open-ended so keys inserted beyond
// the current extremes still belong to a partition.
func splitSorted[K, V any](target collection.SortedMap[K, V], n int) []collection.Map[K, V] {
	if n < 1 {
		n = 1
	}
	keys := make([]K, 0, target.Size())
	target.ForEach(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	if n > len(keys) {
		n = len(keys)
	}
	if n <= 1 {
		return []collection.Map[K, V]{
			&subSortedMap[K, V]{target: target},
		}
	}
	parts := make([]collection.Map[K, V], 0, n)
	for i := 0; i < n; i++ {
		sub := &subSortedMap[K, V]{target: target}
		if i > 0 {
			sub.from = keys[i*len(keys)/n]
			sub.hasFrom = true
		}
		if i < n-1 {
			sub.to = keys[(i+1)*len(keys)/n]
			sub.hasTo = true
		}
		parts = append(parts, sub)
	}
	return parts
}
