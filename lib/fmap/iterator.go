package fmap

import (
	"github.com/ValentinKolb/fcol/lib/collection"
)

// entryIterator walks the engine's insertion-order chain. Remove deletes
// the entry returned by the last Next through the engine, so the hash block
// and the chain stay consistent.
type entryIterator[K, V any] struct {
	engine  *Engine[K, V]
	next    *entry[K, V]
	current *entry[K, V]
}

func newEntryIterator[K, V any](engine *Engine[K, V]) *entryIterator[K, V] {
	return &entryIterator[K, V]{engine: engine, next: engine.first}
}

func (it *entryIterator[K, V]) HasNext() bool {
	return it.next != nil
}

func (it *entryIterator[K, V]) Next() (collection.MapEntry[K, V], error) {
	if it.next == nil {
		return collection.MapEntry[K, V]{}, collection.NoSuchElementError()
	}
	it.current = it.next
	it.next = it.next.next
	return collection.MapEntry[K, V]{Key: it.current.key, Value: it.current.value}, nil
}

func (it *entryIterator[K, V]) Remove() error {
	if it.current == nil {
		return collection.IllegalStateError("Remove called without a prior Next")
	}
	_, _, err := it.engine.Remove(it.current.key)
	it.current = nil
	return err
}

// mapIterator adapts an iterator by transforming each element; Remove
// forwards to the source.
func mapIterator[A, B any](source collection.Iterator[A], fn func(A) B) collection.Iterator[B] {
	return &mappedIterator[A, B]{source: source, fn: fn}
}

type mappedIterator[A, B any] struct {
	source collection.Iterator[A]
	fn     func(A) B
}

func (it *mappedIterator[A, B]) HasNext() bool {
	return it.source.HasNext()
}

func (it *mappedIterator[A, B]) Next() (B, error) {
	a, err := it.source.Next()
	if err != nil {
		var zero B
		return zero, err
	}
	return it.fn(a), nil
}

func (it *mappedIterator[A, B]) Remove() error {
	return it.source.Remove()
}

// sliceEntryIterator iterates a detached copy of entries; Remove deletes
// the last returned key from the backing map.
type sliceEntryIterator[K, V any] struct {
	target  collection.Map[K, V]
	entries []collection.MapEntry[K, V]
	index   int
	visited bool
}

func newSliceEntryIterator[K, V any](target collection.Map[K, V], entries []collection.MapEntry[K, V]) *sliceEntryIterator[K, V] {
	return &sliceEntryIterator[K, V]{target: target, entries: entries}
}

func (it *sliceEntryIterator[K, V]) HasNext() bool {
	return it.index < len(it.entries)
}

func (it *sliceEntryIterator[K, V]) Next() (collection.MapEntry[K, V], error) {
	if it.index >= len(it.entries) {
		return collection.MapEntry[K, V]{}, collection.NoSuchElementError()
	}
	e := it.entries[it.index]
	it.index++
	it.visited = true
	return e, nil
}

func (it *sliceEntryIterator[K, V]) Remove() error {
	if !it.visited {
		return collection.IllegalStateError("Remove called without a prior Next")
	}
	it.visited = false
	_, _, err := it.target.Remove(it.entries[it.index-1].Key)
	return err
}
