package table

import (
	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

// --------------------------------------------------------------------------
// Sorted View
// --------------------------------------------------------------------------

// sortedTable keeps the target in ascending order according to an explicit
// ordering. Add locates the insertion point by binary search; the positional
// mutations (Set, Insert, AddFirst, AddLast) are rejected because they could
// break the ordering invariant. Reads and removals forward unchanged.
//
// The view assumes the target is already sorted when it is wrapped; use Sort
// first if it is not.
type sortedTable[E any] struct {
	target collection.Table[E]
	order  compare.Order[E]
}

// NewSorted wraps the target in an order-preserving view. The target must
// already be sorted according to the given ordering.
func NewSorted[E any](target collection.Table[E], order compare.Order[E]) collection.Table[E] {
	return &sortedTable[E]{target: target, order: order}
}

// insertionPoint returns the lowest index whose element does not compare
// below the given one (binary search).
func (t *sortedTable[E]) insertionPoint(element E) int {
	lo, hi := 0, t.target.Size()
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		e, err := t.target.Get(mid)
		if err != nil {
			return lo
		}
		if t.order.Compare(e, element) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Add inserts the element at its sorted position.
func (t *sortedTable[E]) Add(element E) error {
	return t.target.Insert(t.insertionPoint(element), element)
}

// IndexOf returns the index of the first element equal to the given one, or
// -1. Runs in O(log n) element accesses.
func (t *sortedTable[E]) IndexOf(element E) int {
	i := t.insertionPoint(element)
	if i >= t.target.Size() {
		return -1
	}
	e, err := t.target.Get(i)
	if err != nil || !t.order.Equal(e, element) {
		return -1
	}
	return i
}

func (t *sortedTable[E]) Set(int, E) (E, error) {
	var zero E
	return zero, collection.UnsupportedError("Set")
}

func (t *sortedTable[E]) Insert(int, E) error { return collection.UnsupportedError("Insert") }
func (t *sortedTable[E]) AddFirst(E) error    { return collection.UnsupportedError("AddFirst") }
func (t *sortedTable[E]) AddLast(E) error     { return collection.UnsupportedError("AddLast") }

func (t *sortedTable[E]) Size() int                     { return t.target.Size() }
func (t *sortedTable[E]) Get(index int) (E, error)      { return t.target.Get(index) }
func (t *sortedTable[E]) GetFirst() (E, error)          { return t.target.GetFirst() }
func (t *sortedTable[E]) GetLast() (E, error)           { return t.target.GetLast() }
func (t *sortedTable[E]) Remove(index int) (E, error)   { return t.target.Remove(index) }
func (t *sortedTable[E]) RemoveFirst() (E, error)       { return t.target.RemoveFirst() }
func (t *sortedTable[E]) RemoveLast() (E, error)        { return t.target.RemoveLast() }
func (t *sortedTable[E]) Clear() error                  { return t.target.Clear() }
func (t *sortedTable[E]) ForEach(fn func(E) bool)       { t.target.ForEach(fn) }

func (t *sortedTable[E]) Comparator() compare.Equality[E] { return t.order.Equality }

func (t *sortedTable[E]) Split(n int) []collection.Table[E] {
	return splitOf[E](t, n)
}

func (t *sortedTable[E]) Iterator() collection.Iterator[E] {
	return newTableIterator[E](t)
}

func (t *sortedTable[E]) Clone() collection.Table[E] {
	return NewSorted(t.target.Clone(), t.order)
}
