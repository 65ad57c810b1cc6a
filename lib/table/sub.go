package table

import (
	"fmt"

	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

// --------------------------------------------------------------------------
// Sub-Range View
// --------------------------------------------------------------------------

// subTable is a view over the index range [from, to) of a target table.
// All calls forward with an index offset, so a sub-table created on a Shared
// or Atomic view automatically shares that view's lock. Insertions and
// removals through the sub-table adjust its own upper bound; sibling
// sub-tables produced by Split are assumed to be used on disjoint ranges.
type subTable[E any] struct {
	target collection.Table[E]
	from   int
	to     int
}

// NewSub returns a view over the index range [from, to) of the target.
func NewSub[E any](target collection.Table[E], from, to int) (collection.Table[E], error) {
	if from < 0 || to > target.Size() || from > to {
		return nil, collection.IndexError(from, target.Size())
	}
	return &subTable[E]{target: target, from: from, to: to}, nil
}

func (t *subTable[E]) Size() int {
	return t.to - t.from
}

func (t *subTable[E]) Get(index int) (E, error) {
	if index < 0 || index >= t.Size() {
		var zero E
		return zero, collection.IndexError(index, t.Size())
	}
	return t.target.Get(index + t.from)
}

func (t *subTable[E]) Set(index int, element E) (E, error) {
	if index < 0 || index >= t.Size() {
		var zero E
		return zero, collection.IndexError(index, t.Size())
	}
	return t.target.Set(index+t.from, element)
}

func (t *subTable[E]) Add(element E) error {
	return t.Insert(t.Size(), element)
}

func (t *subTable[E]) Insert(index int, element E) error {
	if index < 0 || index > t.Size() {
		return collection.IndexError(index, t.Size())
	}
	if err := t.target.Insert(index+t.from, element); err != nil {
		return err
	}
	t.to++
	return nil
}

func (t *subTable[E]) AddFirst(element E) error {
	return t.Insert(0, element)
}

func (t *subTable[E]) AddLast(element E) error {
	return t.Insert(t.Size(), element)
}

func (t *subTable[E]) Remove(index int) (E, error) {
	if index < 0 || index >= t.Size() {
		var zero E
		return zero, collection.IndexError(index, t.Size())
	}
	removed, err := t.target.Remove(index + t.from)
	if err != nil {
		return removed, err
	}
	t.to--
	return removed, nil
}

func (t *subTable[E]) RemoveFirst() (E, error) {
	if t.Size() == 0 {
		var zero E
		return zero, collection.EmptyError("RemoveFirst")
	}
	return t.Remove(0)
}

func (t *subTable[E]) RemoveLast() (E, error) {
	if t.Size() == 0 {
		var zero E
		return zero, collection.EmptyError("RemoveLast")
	}
	return t.Remove(t.Size() - 1)
}

func (t *subTable[E]) GetFirst() (E, error) {
	if t.Size() == 0 {
		var zero E
		return zero, collection.EmptyError("GetFirst")
	}
	return t.Get(0)
}

func (t *subTable[E]) GetLast() (E, error) {
	if t.Size() == 0 {
		var zero E
		return zero, collection.EmptyError("GetLast")
	}
	return t.Get(t.Size() - 1)
}

func (t *subTable[E]) Clear() error {
	for i := t.Size(); i > 0; i-- {
		if _, err := t.Remove(i - 1); err != nil {
			return err
		}
	}
	return nil
}

func (t *subTable[E]) ForEach(fn func(element E) bool) {
	for i := 0; i < t.Size(); i++ {
		e, err := t.Get(i)
		if err != nil {
			return
		}
		if !fn(e) {
			return
		}
	}
}

func (t *subTable[E]) Comparator() compare.Equality[E] {
	return t.target.Comparator()
}

func (t *subTable[E]) Split(n int) []collection.Table[E] {
	subs := make([]collection.Table[E], 0, n)
	for _, r := range splitRanges(t.Size(), n) {
		subs = append(subs, &subTable[E]{target: t.target, from: t.from + r[0], to: t.from + r[1]})
	}
	return subs
}

func (t *subTable[E]) Iterator() collection.Iterator[E] {
	return newTableIterator[E](t)
}

func (t *subTable[E]) Clone() collection.Table[E] {
	copied := NewEngine(t.Comparator())
	t.ForEach(func(e E) bool {
		_ = copied.AddLast(e)
		return true
	})
	return copied
}

// --------------------------------------------------------------------------
// Split Helpers
// --------------------------------------------------------------------------

// splitRanges partitions [0, size) into up to n contiguous half-open ranges
// (fewer if size < n). The first size%n ranges are one element longer, so
// the sizes differ by at most one.
func splitRanges(size, n int) [][2]int {
	if n < 1 {
		panic(fmt.Sprintf("invalid number of partitions: %d", n))
	}
	if n > size {
		n = size
	}
	ranges := make([][2]int, 0, n)
	base, extra := 0, 0
	if n > 0 {
		base, extra = size/n, size%n
	}
	from := 0
	for i := 0; i < n; i++ {
		length := base
		if i < extra {
			length++
		}
		ranges = append(ranges, [2]int{from, from + length})
		from += length
	}
	return ranges
}

// splitOf partitions the target's index range into up to n contiguous
// sub-views targeting the given table.
func splitOf[E any](target collection.Table[E], n int) []collection.Table[E] {
	subs := make([]collection.Table[E], 0, n)
	for _, r := range splitRanges(target.Size(), n) {
		subs = append(subs, &subTable[E]{target: target, from: r[0], to: r[1]})
	}
	return subs
}
