package table

import (
	"sync"
	"sync/atomic"

	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

// --------------------------------------------------------------------------
// Atomic View
// --------------------------------------------------------------------------

// AtomicTable is a copy-on-write view over a table. All reads are served
// lock-free from an immutable snapshot; every mutation runs under a mutex
// against the live target and publishes a fresh snapshot before returning.
//
// Multi-step updates go through Update, which hands the caller the live
// target: the update scope sees its own in-progress changes, while all
// other goroutines keep reading the pre-update snapshot. Exactly one new
// snapshot is published when the scope ends, so no reader ever observes a
// partially applied update.
type AtomicTable[E any] struct {
	mu     sync.Mutex
	target collection.Table[E]
	snap   atomic.Pointer[collection.Table[E]]
}

// NewAtomic wraps the target in a copy-on-write view.
func NewAtomic[E any](target collection.Table[E]) *AtomicTable[E] {
	t := &AtomicTable[E]{target: target}
	t.publish()
	return t
}

// snapshot returns the current immutable copy used by readers.
func (t *AtomicTable[E]) snapshot() collection.Table[E] {
	return *t.snap.Load()
}

// publish replaces the reader snapshot with a fresh clone of the target.
// Must be called with the mutex held (or before the view is shared).
func (t *AtomicTable[E]) publish() {
	snap := t.target.Clone()
	t.snap.Store(&snap)
}

// Update runs a multi-step mutation as one atomic scope. The function
// receives the live target and sees its own writes immediately; concurrent
// readers keep the previous snapshot until the scope ends.
//
// The returned error is fn's error; the snapshot is republished either way,
// since fn may have partially mutated the target before failing.
func (t *AtomicTable[E]) Update(fn func(live collection.Table[E]) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := fn(t.target)
	t.publish()
	return err
}

// --------------------------------------------------------------------------
// Read Operations (snapshot, lock-free)
// --------------------------------------------------------------------------

func (t *AtomicTable[E]) Size() int {
	return t.snapshot().Size()
}

func (t *AtomicTable[E]) Get(index int) (E, error) {
	return t.snapshot().Get(index)
}

func (t *AtomicTable[E]) GetFirst() (E, error) {
	return t.snapshot().GetFirst()
}

func (t *AtomicTable[E]) GetLast() (E, error) {
	return t.snapshot().GetLast()
}

func (t *AtomicTable[E]) ForEach(fn func(element E) bool) {
	t.snapshot().ForEach(fn)
}

func (t *AtomicTable[E]) Comparator() compare.Equality[E] {
	return t.target.Comparator()
}

func (t *AtomicTable[E]) Clone() collection.Table[E] {
	return NewAtomic(t.snapshot().Clone())
}

// Iterator returns a read-only iterator over the current snapshot.
func (t *AtomicTable[E]) Iterator() collection.Iterator[E] {
	return NewUnmodifiable(t.snapshot()).Iterator()
}

// --------------------------------------------------------------------------
// Write Operations (mutex + snapshot republication)
// --------------------------------------------------------------------------

func (t *AtomicTable[E]) Set(index int, element E) (E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	previous, err := t.target.Set(index, element)
	t.publish()
	return previous, err
}

func (t *AtomicTable[E]) Add(element E) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.target.Add(element)
	t.publish()
	return err
}

func (t *AtomicTable[E]) Insert(index int, element E) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.target.Insert(index, element)
	t.publish()
	return err
}

func (t *AtomicTable[E]) AddFirst(element E) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.target.AddFirst(element)
	t.publish()
	return err
}

func (t *AtomicTable[E]) AddLast(element E) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.target.AddLast(element)
	t.publish()
	return err
}

func (t *AtomicTable[E]) Remove(index int) (E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	removed, err := t.target.Remove(index)
	t.publish()
	return removed, err
}

func (t *AtomicTable[E]) RemoveFirst() (E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	removed, err := t.target.RemoveFirst()
	t.publish()
	return removed, err
}

func (t *AtomicTable[E]) RemoveLast() (E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	removed, err := t.target.RemoveLast()
	t.publish()
	return removed, err
}

func (t *AtomicTable[E]) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.target.Clear()
	t.publish()
	return err
}

// --------------------------------------------------------------------------
// Composition
// --------------------------------------------------------------------------

// Split partitions the view into contiguous sub-views targeting this view,
// so all siblings share the parent's lock and snapshot discipline.
func (t *AtomicTable[E]) Split(n int) []collection.Table[E] {
	return splitOf[E](t, n)
}
