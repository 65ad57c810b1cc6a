package table

import (
	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

// --------------------------------------------------------------------------
// Mapped View
// --------------------------------------------------------------------------

// mappedTable presents the target through an element transformation. The
// view is read-only: the transformation is one-way, so mutations cannot be
// translated back to target elements.
type mappedTable[E, R any] struct {
	target collection.Table[E]
	fn     func(E) R
	cmp    compare.Equality[R]
}

// NewMapped returns a read-only view applying fn to every element of the
// target. The given equality describes the transformed elements.
func NewMapped[E, R any](target collection.Table[E], fn func(E) R, cmp compare.Equality[R]) collection.Table[R] {
	return &mappedTable[E, R]{target: target, fn: fn, cmp: cmp}
}

func (t *mappedTable[E, R]) Size() int { return t.target.Size() }

func (t *mappedTable[E, R]) Get(index int) (R, error) {
	e, err := t.target.Get(index)
	if err != nil {
		var zero R
		return zero, err
	}
	return t.fn(e), nil
}

func (t *mappedTable[E, R]) GetFirst() (R, error) {
	e, err := t.target.GetFirst()
	if err != nil {
		var zero R
		return zero, err
	}
	return t.fn(e), nil
}

func (t *mappedTable[E, R]) GetLast() (R, error) {
	e, err := t.target.GetLast()
	if err != nil {
		var zero R
		return zero, err
	}
	return t.fn(e), nil
}

func (t *mappedTable[E, R]) ForEach(fn func(element R) bool) {
	t.target.ForEach(func(e E) bool {
		return fn(t.fn(e))
	})
}

func (t *mappedTable[E, R]) Set(int, R) (R, error) {
	var zero R
	return zero, collection.UnsupportedError("Set")
}

func (t *mappedTable[E, R]) Add(R) error        { return collection.UnsupportedError("Add") }
func (t *mappedTable[E, R]) Insert(int, R) error { return collection.UnsupportedError("Insert") }
func (t *mappedTable[E, R]) AddFirst(R) error   { return collection.UnsupportedError("AddFirst") }
func (t *mappedTable[E, R]) AddLast(R) error    { return collection.UnsupportedError("AddLast") }

func (t *mappedTable[E, R]) Remove(int) (R, error) {
	var zero R
	return zero, collection.UnsupportedError("Remove")
}

func (t *mappedTable[E, R]) RemoveFirst() (R, error) {
	var zero R
	return zero, collection.UnsupportedError("RemoveFirst")
}

func (t *mappedTable[E, R]) RemoveLast() (R, error) {
	var zero R
	return zero, collection.UnsupportedError("RemoveLast")
}

func (t *mappedTable[E, R]) Clear() error { return collection.UnsupportedError("Clear") }

func (t *mappedTable[E, R]) Comparator() compare.Equality[R] { return t.cmp }

func (t *mappedTable[E, R]) Split(n int) []collection.Table[R] {
	return splitOf[R](t, n)
}

func (t *mappedTable[E, R]) Iterator() collection.Iterator[R] {
	return newTableIterator[R](t)
}

func (t *mappedTable[E, R]) Clone() collection.Table[R] {
	return NewMapped(t.target.Clone(), t.fn, t.cmp)
}

// --------------------------------------------------------------------------
// Filtered View
// --------------------------------------------------------------------------

// filteredTable exposes only the target elements matching a predicate.
// Indices address matching elements in target order, so positional reads and
// removals scan the target. Add appends to the target after checking the
// predicate; positional insertion is not supported because an index in the
// view does not pin a unique position in the target.
type filteredTable[E any] struct {
	target collection.Table[E]
	match  func(E) bool
}

// NewFiltered returns a view over the target elements matching the
// predicate.
func NewFiltered[E any](target collection.Table[E], match func(E) bool) collection.Table[E] {
	return &filteredTable[E]{target: target, match: match}
}

// targetIndex resolves a view index to the target index of the index-th
// matching element, or -1 if out of range.
func (t *filteredTable[E]) targetIndex(index int) int {
	if index < 0 {
		return -1
	}
	pos := -1
	seen := 0
	i := 0
	t.target.ForEach(func(e E) bool {
		if t.match(e) {
			if seen == index {
				pos = i
				return false
			}
			seen++
		}
		i++
		return true
	})
	return pos
}

func (t *filteredTable[E]) Size() int {
	n := 0
	t.target.ForEach(func(e E) bool {
		if t.match(e) {
			n++
		}
		return true
	})
	return n
}

func (t *filteredTable[E]) Get(index int) (E, error) {
	i := t.targetIndex(index)
	if i < 0 {
		var zero E
		return zero, collection.IndexError(index, t.Size())
	}
	return t.target.Get(i)
}

func (t *filteredTable[E]) GetFirst() (E, error) {
	e, err := t.Get(0)
	if err != nil {
		var zero E
		return zero, collection.EmptyError("GetFirst")
	}
	return e, nil
}

func (t *filteredTable[E]) GetLast() (E, error) {
	size := t.Size()
	if size == 0 {
		var zero E
		return zero, collection.EmptyError("GetLast")
	}
	return t.Get(size - 1)
}

// Add appends the element to the target; elements the predicate rejects are
// refused since they would be invisible through this view.
func (t *filteredTable[E]) Add(element E) error {
	if !t.match(element) {
		return collection.ArgumentError("element rejected by filter predicate")
	}
	return t.target.Add(element)
}

func (t *filteredTable[E]) AddLast(element E) error { return t.Add(element) }

func (t *filteredTable[E]) AddFirst(element E) error {
	if !t.match(element) {
		return collection.ArgumentError("element rejected by filter predicate")
	}
	return t.target.AddFirst(element)
}

func (t *filteredTable[E]) Set(int, E) (E, error) {
	var zero E
	return zero, collection.UnsupportedError("Set")
}

func (t *filteredTable[E]) Insert(int, E) error { return collection.UnsupportedError("Insert") }

func (t *filteredTable[E]) Remove(index int) (E, error) {
	i := t.targetIndex(index)
	if i < 0 {
		var zero E
		return zero, collection.IndexError(index, t.Size())
	}
	return t.target.Remove(i)
}

func (t *filteredTable[E]) RemoveFirst() (E, error) {
	if t.Size() == 0 {
		var zero E
		return zero, collection.EmptyError("RemoveFirst")
	}
	return t.Remove(0)
}

func (t *filteredTable[E]) RemoveLast() (E, error) {
	size := t.Size()
	if size == 0 {
		var zero E
		return zero, collection.EmptyError("RemoveLast")
	}
	return t.Remove(size - 1)
}

// Clear removes the matching elements from the target; non-matching
// elements are untouched.
func (t *filteredTable[E]) Clear() error {
	for i := t.target.Size() - 1; i >= 0; i-- {
		e, err := t.target.Get(i)
		if err != nil {
			return err
		}
		if t.match(e) {
			if _, err := t.target.Remove(i); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *filteredTable[E]) ForEach(fn func(element E) bool) {
	t.target.ForEach(func(e E) bool {
		if !t.match(e) {
			return true
		}
		return fn(e)
	})
}

func (t *filteredTable[E]) Comparator() compare.Equality[E] { return t.target.Comparator() }

func (t *filteredTable[E]) Split(n int) []collection.Table[E] {
	return splitOf[E](t, n)
}

func (t *filteredTable[E]) Iterator() collection.Iterator[E] {
	return newTableIterator[E](t)
}

func (t *filteredTable[E]) Clone() collection.Table[E] {
	return NewFiltered(t.target.Clone(), t.match)
}
