package table

import (
	"github.com/ValentinKolb/fcol/lib/collection"
)

// tableIterator walks any collection.Table by index. Every access goes
// through the target's contract methods, so the iterator inherits the
// concurrency discipline of the view it was created on (a Shared view locks
// per step, an unmodifiable view rejects Remove, ...).
type tableIterator[E any] struct {
	target       collection.Table[E]
	nextIndex    int
	currentIndex int
}

func newTableIterator[E any](target collection.Table[E]) collection.Iterator[E] {
	return &tableIterator[E]{target: target, currentIndex: -1}
}

func (it *tableIterator[E]) HasNext() bool {
	return it.nextIndex < it.target.Size()
}

func (it *tableIterator[E]) Next() (E, error) {
	if it.nextIndex >= it.target.Size() {
		var zero E
		return zero, collection.NoSuchElementError()
	}
	it.currentIndex = it.nextIndex
	it.nextIndex++
	return it.target.Get(it.currentIndex)
}

func (it *tableIterator[E]) Remove() error {
	if it.currentIndex < 0 {
		return collection.IllegalStateError("Remove without a preceding Next")
	}
	if _, err := it.target.Remove(it.currentIndex); err != nil {
		return err
	}
	it.nextIndex--
	it.currentIndex = -1
	return nil
}
