package table

import (
	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Shared View
// --------------------------------------------------------------------------

// SharedTable is a reader/writer-locked view over a table: readers may run
// concurrently with each other, never with a writer. The lock is a
// reader-biased xsync.RBMutex, so uncontended reads stay cheap.
//
// Iteration: ForEach takes a private copy under a single read-lock
// acquisition and runs the caller's function outside the lock. Iterator
// locks per step (every Next/Remove goes through a locked method).
//
// Sub-views produced by Split target this view directly and therefore share
// its lock.
type SharedTable[E any] struct {
	target collection.Table[E]
	mu     *xsync.RBMutex
}

// NewShared wraps the target in a reader/writer-locked view.
func NewShared[E any](target collection.Table[E]) *SharedTable[E] {
	return &SharedTable[E]{target: target, mu: xsync.NewRBMutex()}
}

// --------------------------------------------------------------------------
// Read Operations (read lock)
// --------------------------------------------------------------------------

func (t *SharedTable[E]) Size() int {
	tok := t.mu.RLock()
	defer t.mu.RUnlock(tok)
	return t.target.Size()
}

func (t *SharedTable[E]) Get(index int) (E, error) {
	tok := t.mu.RLock()
	defer t.mu.RUnlock(tok)
	return t.target.Get(index)
}

func (t *SharedTable[E]) GetFirst() (E, error) {
	tok := t.mu.RLock()
	defer t.mu.RUnlock(tok)
	return t.target.GetFirst()
}

func (t *SharedTable[E]) GetLast() (E, error) {
	tok := t.mu.RLock()
	defer t.mu.RUnlock(tok)
	return t.target.GetLast()
}

// ForEach takes a private copy of the elements under one read-lock
// acquisition, then runs fn outside the lock. This avoids holding the lock
// across caller-supplied code.
func (t *SharedTable[E]) ForEach(fn func(element E) bool) {
	tok := t.mu.RLock()
	elements := collection.ToSlice[E](t.target)
	t.mu.RUnlock(tok)
	for _, e := range elements {
		if !fn(e) {
			return
		}
	}
}

func (t *SharedTable[E]) Comparator() compare.Equality[E] {
	return t.target.Comparator()
}

func (t *SharedTable[E]) Clone() collection.Table[E] {
	tok := t.mu.RLock()
	defer t.mu.RUnlock(tok)
	return t.target.Clone()
}

// --------------------------------------------------------------------------
// Write Operations (write lock)
// --------------------------------------------------------------------------

func (t *SharedTable[E]) Set(index int, element E) (E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target.Set(index, element)
}

func (t *SharedTable[E]) Add(element E) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target.Add(element)
}

func (t *SharedTable[E]) Insert(index int, element E) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target.Insert(index, element)
}

func (t *SharedTable[E]) AddFirst(element E) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target.AddFirst(element)
}

func (t *SharedTable[E]) AddLast(element E) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target.AddLast(element)
}

func (t *SharedTable[E]) Remove(index int) (E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target.Remove(index)
}

func (t *SharedTable[E]) RemoveFirst() (E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target.RemoveFirst()
}

func (t *SharedTable[E]) RemoveLast() (E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target.RemoveLast()
}

func (t *SharedTable[E]) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target.Clear()
}

// --------------------------------------------------------------------------
// Composition
// --------------------------------------------------------------------------

// Split partitions the view into contiguous sub-views targeting this view,
// so all siblings share the parent's lock.
func (t *SharedTable[E]) Split(n int) []collection.Table[E] {
	return splitOf[E](t, n)
}

func (t *SharedTable[E]) Iterator() collection.Iterator[E] {
	return newTableIterator[E](t)
}
