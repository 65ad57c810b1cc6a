package collection

import (
	"github.com/ValentinKolb/fcol/lib/compare"
)

// --------------------------------------------------------------------------
// Iterator Contract
// --------------------------------------------------------------------------

// Iterator walks the elements of a container in its canonical order.
//
// Remove deletes the element returned by the last call to Next. Calling it
// before any Next, or twice for the same element, returns an illegal-state
// error. Iterators over read-only views return an unsupported-operation
// error from Remove.
type Iterator[E any] interface {
	// HasNext returns whether another element is available.
	HasNext() bool
	// Next returns the next element, or a no-such-element error if the
	// iteration is exhausted.
	Next() (E, error)
	// Remove deletes the element returned by the last Next call.
	Remove() error
}

// --------------------------------------------------------------------------
// Table Contract
// --------------------------------------------------------------------------

// Table is the generic interface for ordered-sequence containers: every
// element is addressable by its index in [0, size), and elements can be
// inserted or removed at any position.
//
// It is implemented by the fractal table engine (package table) and by every
// table view, so views can be stacked transparently: a front-end holds a
// reference to a view chain terminating in an engine, and each call descends
// the chain.
//
// Unless stated otherwise on a concrete implementation, a Table is NOT safe
// for concurrent use; wrap it in a Shared or Atomic view for that.
type Table[E any] interface {
	// Size returns the number of elements.
	Size() int
	// Get returns the element at the given index.
	// Returns an index error if index is outside [0, size).
	Get(index int) (E, error)
	// Set replaces the element at the given index and returns the previous one.
	Set(index int, element E) (E, error)
	// Add appends the element at the end of the table.
	Add(element E) error
	// Insert adds the element at the given index (0 <= index <= size),
	// shifting the shorter of the two sides by one position.
	Insert(index int, element E) error
	// AddFirst inserts the element before the first position.
	AddFirst(element E) error
	// AddLast appends the element after the last position.
	AddLast(element E) error
	// Remove deletes and returns the element at the given index.
	Remove(index int) (E, error)
	// RemoveFirst deletes and returns the first element.
	// Returns an empty error if the table has no elements.
	RemoveFirst() (E, error)
	// RemoveLast deletes and returns the last element.
	RemoveLast() (E, error)
	// GetFirst returns the first element without removing it.
	GetFirst() (E, error)
	// GetLast returns the last element without removing it.
	GetLast() (E, error)
	// Clear removes all elements. Read-only views reject it.
	Clear() error
	// ForEach calls fn for each element in index order until fn returns
	// false or the table is exhausted.
	ForEach(fn func(element E) bool)
	// Comparator returns the element equality strategy of this table.
	Comparator() compare.Equality[E]
	// Split partitions [0, size) into up to n contiguous sub-tables (fewer
	// if size < n). The sub-tables are disjoint and their concatenation in
	// order reproduces the original sequence.
	Split(n int) []Table[E]
	// Iterator returns an iterator over the elements in index order.
	Iterator() Iterator[E]
	// Clone returns a deep structural copy (elements themselves are not copied).
	Clone() Table[E]
}

// --------------------------------------------------------------------------
// Map Contract
// --------------------------------------------------------------------------

// MapEntry is a key-value pair as exposed by map iterators.
type MapEntry[K, V any] struct {
	Key   K
	Value V
}

// Map is the generic interface for associative containers.
//
// Iteration order is deterministic: insertion order for the hash-based
// engine, key order for sorted implementations.
//
// Lookup operations on absent keys are not errors; they report absence via
// the boolean return. The error return of the mutators is reserved for view
// contract violations (read-only views, keys outside a sub-view's range).
type Map[K, V any] interface {
	// Size returns the number of entries.
	Size() int
	// Get returns the value for the key, and whether the key was present.
	Get(key K) (value V, found bool)
	// Put inserts or updates the entry for the key. It returns the previous
	// value and whether one was replaced.
	Put(key K, value V) (previous V, replaced bool, err error)
	// PutIfAbsent inserts the entry only if the key is absent. It returns
	// the current value and whether the key was already present.
	PutIfAbsent(key K, value V) (current V, present bool, err error)
	// Replace updates the value only if the key is present.
	Replace(key K, value V) (previous V, replaced bool, err error)
	// Remove deletes the entry for the key, returning the removed value and
	// whether the key was present. Removing an absent key is a no-op.
	Remove(key K) (removed V, found bool, err error)
	// ContainsKey returns whether the key is present.
	ContainsKey(key K) bool
	// Clear removes all entries. Read-only views reject it.
	Clear() error
	// ForEach calls fn for each entry in iteration order until fn returns
	// false or the map is exhausted.
	ForEach(fn func(key K, value V) bool)
	// KeyComparator returns the key equality strategy of this map.
	KeyComparator() compare.Equality[K]
	// Split partitions the map into up to n disjoint sub-maps covering all
	// entries; used for parallel processing and sharded locking.
	Split(n int) []Map[K, V]
	// Iterator returns an iterator over the entries in iteration order.
	Iterator() Iterator[MapEntry[K, V]]
	// Keys returns an iterator over the keys in iteration order.
	Keys() Iterator[K]
	// Values returns an iterator over the values in iteration order.
	Values() Iterator[V]
	// Clone returns a deep structural copy (keys and values are not copied).
	Clone() Map[K, V]
}

// SortedMap is a Map whose iteration order follows a key Order, with
// neighbor queries and range views on top of the base contract.
type SortedMap[K, V any] interface {
	Map[K, V]

	// KeyOrder returns the key ordering strategy of this map.
	KeyOrder() compare.Order[K]
	// FirstKey returns the smallest key (empty error if the map is empty).
	FirstKey() (K, error)
	// LastKey returns the largest key (empty error if the map is empty).
	LastKey() (K, error)
	// EntryAfter returns the entry with the smallest key strictly greater
	// than the given key.
	EntryAfter(key K) (MapEntry[K, V], bool)
	// EntryBefore returns the entry with the largest key strictly less
	// than the given key.
	EntryBefore(key K) (MapEntry[K, V], bool)
	// SubMap returns a view restricted to keys in [from, to). Writes with
	// keys outside the range fail with an invalid-argument error.
	SubMap(from, to K) SortedMap[K, V]
}
