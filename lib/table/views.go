package table

import (
	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

// --------------------------------------------------------------------------
// Unmodifiable View
// --------------------------------------------------------------------------

// unmodifiableTable forwards all reads and rejects every mutation with an
// unsupported-operation error.
type unmodifiableTable[E any] struct {
	target collection.Table[E]
}

// NewUnmodifiable wraps the target in a read-only view.
func NewUnmodifiable[E any](target collection.Table[E]) collection.Table[E] {
	return &unmodifiableTable[E]{target: target}
}

func (t *unmodifiableTable[E]) Size() int                       { return t.target.Size() }
func (t *unmodifiableTable[E]) Get(index int) (E, error)        { return t.target.Get(index) }
func (t *unmodifiableTable[E]) GetFirst() (E, error)            { return t.target.GetFirst() }
func (t *unmodifiableTable[E]) GetLast() (E, error)             { return t.target.GetLast() }
func (t *unmodifiableTable[E]) ForEach(fn func(E) bool)         { t.target.ForEach(fn) }
func (t *unmodifiableTable[E]) Comparator() compare.Equality[E] { return t.target.Comparator() }

func (t *unmodifiableTable[E]) Set(int, E) (E, error) {
	var zero E
	return zero, collection.UnsupportedError("Set")
}

func (t *unmodifiableTable[E]) Add(E) error       { return collection.UnsupportedError("Add") }
func (t *unmodifiableTable[E]) Insert(int, E) error {
	return collection.UnsupportedError("Insert")
}
func (t *unmodifiableTable[E]) AddFirst(E) error { return collection.UnsupportedError("AddFirst") }
func (t *unmodifiableTable[E]) AddLast(E) error  { return collection.UnsupportedError("AddLast") }

func (t *unmodifiableTable[E]) Remove(int) (E, error) {
	var zero E
	return zero, collection.UnsupportedError("Remove")
}

func (t *unmodifiableTable[E]) RemoveFirst() (E, error) {
	var zero E
	return zero, collection.UnsupportedError("RemoveFirst")
}

func (t *unmodifiableTable[E]) RemoveLast() (E, error) {
	var zero E
	return zero, collection.UnsupportedError("RemoveLast")
}

func (t *unmodifiableTable[E]) Clear() error { return collection.UnsupportedError("Clear") }

func (t *unmodifiableTable[E]) Split(n int) []collection.Table[E] {
	return splitOf[E](t, n)
}

func (t *unmodifiableTable[E]) Iterator() collection.Iterator[E] {
	return newTableIterator[E](t)
}

func (t *unmodifiableTable[E]) Clone() collection.Table[E] {
	return NewUnmodifiable(t.target.Clone())
}

// --------------------------------------------------------------------------
// Reversed View
// --------------------------------------------------------------------------

// reversedTable presents the target in the opposite index order; mutations
// are forwarded with mirrored indices.
type reversedTable[E any] struct {
	target collection.Table[E]
}

// NewReversed wraps the target in a view with reversed index order.
func NewReversed[E any](target collection.Table[E]) collection.Table[E] {
	return &reversedTable[E]{target: target}
}

func (t *reversedTable[E]) Size() int { return t.target.Size() }

func (t *reversedTable[E]) Get(index int) (E, error) {
	if index < 0 || index >= t.Size() {
		var zero E
		return zero, collection.IndexError(index, t.Size())
	}
	return t.target.Get(t.Size() - 1 - index)
}

func (t *reversedTable[E]) Set(index int, element E) (E, error) {
	if index < 0 || index >= t.Size() {
		var zero E
		return zero, collection.IndexError(index, t.Size())
	}
	return t.target.Set(t.Size()-1-index, element)
}

func (t *reversedTable[E]) Add(element E) error     { return t.target.AddFirst(element) }
func (t *reversedTable[E]) AddFirst(element E) error { return t.target.AddLast(element) }
func (t *reversedTable[E]) AddLast(element E) error  { return t.target.AddFirst(element) }

func (t *reversedTable[E]) Insert(index int, element E) error {
	if index < 0 || index > t.Size() {
		return collection.IndexError(index, t.Size())
	}
	return t.target.Insert(t.Size()-index, element)
}

func (t *reversedTable[E]) Remove(index int) (E, error) {
	if index < 0 || index >= t.Size() {
		var zero E
		return zero, collection.IndexError(index, t.Size())
	}
	return t.target.Remove(t.Size() - 1 - index)
}

func (t *reversedTable[E]) RemoveFirst() (E, error) { return t.target.RemoveLast() }
func (t *reversedTable[E]) RemoveLast() (E, error)  { return t.target.RemoveFirst() }
func (t *reversedTable[E]) GetFirst() (E, error)    { return t.target.GetLast() }
func (t *reversedTable[E]) GetLast() (E, error)     { return t.target.GetFirst() }
func (t *reversedTable[E]) Clear() error            { return t.target.Clear() }

func (t *reversedTable[E]) ForEach(fn func(element E) bool) {
	for i := t.target.Size(); i > 0; i-- {
		e, err := t.target.Get(i - 1)
		if err != nil {
			return
		}
		if !fn(e) {
			return
		}
	}
}

func (t *reversedTable[E]) Comparator() compare.Equality[E] { return t.target.Comparator() }

func (t *reversedTable[E]) Split(n int) []collection.Table[E] {
	return splitOf[E](t, n)
}

func (t *reversedTable[E]) Iterator() collection.Iterator[E] {
	return newTableIterator[E](t)
}

func (t *reversedTable[E]) Clone() collection.Table[E] {
	return NewReversed(t.target.Clone())
}
