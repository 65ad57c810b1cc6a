package table

import (
	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

// --------------------------------------------------------------------------
// Table Engine
// --------------------------------------------------------------------------

// Engine is the default collection.Table implementation, built on fractal
// blocks. No more than 3/4 of the allocated capacity is ever wasted: the
// capacity doubles when full and halves once the size drops to a quarter,
// down to a floor of 16 slots.
//
// Thread-safety: the engine is NOT safe for concurrent use. Wrap it in a
// Shared or Atomic view for concurrent access.
type Engine[E any] struct {
	cmp      compare.Equality[E]
	fractal  *block[E] // nil if empty (capacity 0)
	size     int
	capacity int // Actual memory allocated is usually far less than capacity since inner blocks can be nil.
}

// NewEngine creates an empty table engine with the given element comparator.
func NewEngine[E any](cmp compare.Equality[E]) *Engine[E] {
	return &Engine[E]{cmp: cmp}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see collection/interface.go)
// --------------------------------------------------------------------------

func (t *Engine[E]) Size() int {
	return t.size
}

func (t *Engine[E]) Get(index int) (E, error) {
	if index < 0 || index >= t.size {
		var zero E
		return zero, collection.IndexError(index, t.size)
	}
	return t.fractal.get(index), nil
}

func (t *Engine[E]) Set(index int, element E) (E, error) {
	if index < 0 || index >= t.size {
		var zero E
		return zero, collection.IndexError(index, t.size)
	}
	return t.fractal.set(index, element), nil
}

func (t *Engine[E]) Add(element E) error {
	return t.AddLast(element)
}

func (t *Engine[E]) Insert(index int, element E) error {
	switch {
	case index == 0:
		return t.AddFirst(element)
	case index == t.size:
		return t.AddLast(element)
	case index < 0 || index > t.size:
		return collection.IndexError(index, t.size)
	}
	t.checkUpsize()
	// Shift whichever side is shorter.
	if index >= (t.size >> 1) {
		t.fractal.shiftRight(element, index, t.size-index)
	} else {
		t.fractal.shiftLeft(element, index-1, index)
		t.fractal.offset--
	}
	t.size++
	return nil
}

func (t *Engine[E]) AddFirst(element E) error {
	t.checkUpsize()
	t.fractal.offset--
	t.fractal.set(0, element)
	t.size++
	return nil
}

func (t *Engine[E]) AddLast(element E) error {
	t.checkUpsize()
	t.fractal.set(t.size, element)
	t.size++
	return nil
}

func (t *Engine[E]) Remove(index int) (E, error) {
	var zero E
	if index < 0 || index >= t.size {
		return zero, collection.IndexError(index, t.size)
	}
	removed := t.fractal.get(index)
	// Shift whichever side is shorter.
	if index >= (t.size >> 1) {
		t.fractal.shiftLeft(zero, t.size-1, t.size-index-1)
	} else {
		t.fractal.shiftRight(zero, 0, index)
		t.fractal.offset++
	}
	t.size--
	t.checkDownsize()
	return removed, nil
}

func (t *Engine[E]) RemoveFirst() (E, error) {
	var zero E
	if t.size == 0 {
		return zero, collection.EmptyError("RemoveFirst")
	}
	first := t.fractal.set(0, zero)
	t.fractal.offset++
	t.size--
	t.checkDownsize()
	return first, nil
}

func (t *Engine[E]) RemoveLast() (E, error) {
	var zero E
	if t.size == 0 {
		return zero, collection.EmptyError("RemoveLast")
	}
	t.size--
	last := t.fractal.set(t.size, zero)
	t.checkDownsize()
	return last, nil
}

func (t *Engine[E]) GetFirst() (E, error) {
	if t.size == 0 {
		var zero E
		return zero, collection.EmptyError("GetFirst")
	}
	return t.fractal.get(0), nil
}

func (t *Engine[E]) GetLast() (E, error) {
	if t.size == 0 {
		var zero E
		return zero, collection.EmptyError("GetLast")
	}
	return t.fractal.get(t.size - 1), nil
}

func (t *Engine[E]) Clear() error {
	t.fractal = nil
	t.capacity = 0
	t.size = 0
	return nil
}

func (t *Engine[E]) ForEach(fn func(element E) bool) {
	for i := 0; i < t.size; i++ {
		if !fn(t.fractal.get(i)) {
			return
		}
	}
}

func (t *Engine[E]) Comparator() compare.Equality[E] {
	return t.cmp
}

func (t *Engine[E]) Split(n int) []collection.Table[E] {
	return splitOf[E](t, n)
}

func (t *Engine[E]) Iterator() collection.Iterator[E] {
	return newTableIterator[E](t)
}

func (t *Engine[E]) Clone() collection.Table[E] {
	copied := NewEngine(t.cmp)
	t.ForEach(func(e E) bool {
		_ = copied.AddLast(e)
		return true
	})
	return copied
}

// --------------------------------------------------------------------------
// Capacity Management
// --------------------------------------------------------------------------

// Capacity returns the current capacity (size <= capacity <= 4*size, down to
// the minimum capacity floor of 16).
func (t *Engine[E]) Capacity() int {
	return t.capacity
}

func (t *Engine[E]) checkUpsize() {
	if t.size >= t.capacity {
		if t.fractal == nil {
			t.fractal = newLeaf[E]()
		} else {
			t.fractal = t.fractal.upsize()
		}
		t.capacity = t.fractal.capacity()
	}
}

func (t *Engine[E]) checkDownsize() {
	if t.capacity > minLeafSize && t.size <= (t.capacity>>2) {
		t.fractal = t.fractal.downsize(t.size)
		t.capacity = t.fractal.capacity()
	}
}
