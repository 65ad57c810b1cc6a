package table

import (
	"fmt"
	"runtime"

	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
	"golang.org/x/sync/errgroup"
)

// --------------------------------------------------------------------------
// Parallel View
// --------------------------------------------------------------------------

// ParallelTable fans bulk operations out over disjoint sub-views processed
// by concurrent workers. The target is split into concurrency+1 partitions:
// concurrency of them are dispatched to worker goroutines, the last one is
// processed on the calling goroutine, and the call joins before returning.
// A worker failure (error or panic) is re-raised to the caller after all
// workers have completed; siblings are never cancelled early.
//
// Only the bulk operations (ForEach, Do) are parallel; everything else
// forwards to the target unchanged. The partitions are disjoint, so no
// locking is applied — wrap the target in a Shared view first if workers
// mutate overlapping state.
type ParallelTable[E any] struct {
	target      collection.Table[E]
	concurrency int
}

// NewParallel wraps the target in a parallel view with the given worker
// count (<= 0 selects runtime.GOMAXPROCS(0)).
func NewParallel[E any](target collection.Table[E], concurrency int) *ParallelTable[E] {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &ParallelTable[E]{target: target, concurrency: concurrency}
}

// Do splits the target into concurrency+1 disjoint sub-views and runs fn
// once per sub-view, concurrently. It returns the first error after all
// workers have finished.
func (t *ParallelTable[E]) Do(fn func(sub collection.Table[E]) error) error {
	subs := t.target.Split(t.concurrency + 1)
	if len(subs) == 0 {
		return nil
	}
	runPart := func(sub collection.Table[E]) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("parallel worker panic: %v", r)
			}
		}()
		return fn(sub)
	}
	var g errgroup.Group
	for _, sub := range subs[1:] {
		sub := sub
		g.Go(func() error { return runPart(sub) })
	}
	// The calling goroutine needs to work too.
	callerErr := runPart(subs[0])
	if err := g.Wait(); err != nil {
		return err
	}
	return callerErr
}

// ForEach calls fn for every element, processed concurrently per partition.
// Iteration order across partitions is not defined and fn must be safe for
// concurrent invocation. A false return stops the worker's own partition
// only.
func (t *ParallelTable[E]) ForEach(fn func(element E) bool) {
	_ = t.Do(func(sub collection.Table[E]) error {
		sub.ForEach(fn)
		return nil
	})
}

// --------------------------------------------------------------------------
// Forwarded Operations
// --------------------------------------------------------------------------

func (t *ParallelTable[E]) Size() int                       { return t.target.Size() }
func (t *ParallelTable[E]) Get(index int) (E, error)        { return t.target.Get(index) }
func (t *ParallelTable[E]) GetFirst() (E, error)            { return t.target.GetFirst() }
func (t *ParallelTable[E]) GetLast() (E, error)             { return t.target.GetLast() }
func (t *ParallelTable[E]) Set(i int, e E) (E, error)       { return t.target.Set(i, e) }
func (t *ParallelTable[E]) Add(e E) error                   { return t.target.Add(e) }
func (t *ParallelTable[E]) Insert(i int, e E) error         { return t.target.Insert(i, e) }
func (t *ParallelTable[E]) AddFirst(e E) error              { return t.target.AddFirst(e) }
func (t *ParallelTable[E]) AddLast(e E) error               { return t.target.AddLast(e) }
func (t *ParallelTable[E]) Remove(i int) (E, error)         { return t.target.Remove(i) }
func (t *ParallelTable[E]) RemoveFirst() (E, error)         { return t.target.RemoveFirst() }
func (t *ParallelTable[E]) RemoveLast() (E, error)          { return t.target.RemoveLast() }
func (t *ParallelTable[E]) Clear() error                    { return t.target.Clear() }
func (t *ParallelTable[E]) Comparator() compare.Equality[E] { return t.target.Comparator() }

func (t *ParallelTable[E]) Split(n int) []collection.Table[E] {
	return t.target.Split(n)
}

func (t *ParallelTable[E]) Iterator() collection.Iterator[E] {
	return t.target.Iterator()
}

func (t *ParallelTable[E]) Clone() collection.Table[E] {
	return NewParallel(t.target.Clone(), t.concurrency)
}
