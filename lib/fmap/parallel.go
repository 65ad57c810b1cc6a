package fmap

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

// ParallelMap fans bulk operations out over disjoint key shards processed
// by concurrent workers. The target is split into concurrency+1 shards:
// concurrency of them are dispatched to worker goroutines, the last one is
// processed on the calling goroutine, and the call joins before returning.
// A worker failure (error or panic) is re-raised to the caller after all
// workers have completed; siblings are never cancelled early.
//
// Only the bulk operations (ForEach, Do) are parallel; everything else
// forwards to the target unchanged. The shards are disjoint, so no locking
// is applied; wrap the target in a Shared view first if workers mutate
// overlapping state.
type ParallelMap[K, V any] struct {
	target      collection.Map[K, V]
	concurrency int
}

// NewParallel wraps the target in a parallel view with the given worker
// count (<= 0 selects runtime.GOMAXPROCS(0)).
func NewParallel[K, V any](target collection.Map[K, V], concurrency int) *ParallelMap[K, V] {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &ParallelMap[K, V]{target: target, concurrency: concurrency}
}

// Do splits the target into concurrency+1 disjoint shards and runs fn once
// per shard, concurrently. It returns the first error after all workers
// have finished.
func (m *ParallelMap[K, V]) Do(fn func(shard collection.Map[K, V]) error) error {
	shards := m.target.Split(m.concurrency + 1)
	if len(shards) == 0 {
		return nil
	}
	runShard := func(shard collection.Map[K, V]) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("parallel worker panic: %v", r)
			}
		}()
		return fn(shard)
	}
	var g errgroup.Group
	for _, shard := range shards[1:] {
		shard := shard
		g.Go(func() error { return runShard(shard) })
	}
	// The calling goroutine needs to work too.
	callerErr := runShard(shards[0])
	if err := g.Wait(); err != nil {
		return err
	}
	return callerErr
}

// ForEach calls fn for every entry, processed concurrently per shard.
// Iteration order across shards is not defined and fn must be safe for
// concurrent invocation. A false return stops the worker's own shard only.
func (m *ParallelMap[K, V]) ForEach(fn func(key K, value V) bool) {
	_ = m.Do(func(shard collection.Map[K, V]) error {
		shard.ForEach(fn)
		return nil
	})
}

// --------------------------------------------------------------------------
// Forwarded Operations
// --------------------------------------------------------------------------

func (m *ParallelMap[K, V]) Size() int                           { return m.target.Size() }
func (m *ParallelMap[K, V]) Get(key K) (V, bool)                 { return m.target.Get(key) }
func (m *ParallelMap[K, V]) ContainsKey(key K) bool              { return m.target.ContainsKey(key) }
func (m *ParallelMap[K, V]) Put(k K, v V) (V, bool, error)       { return m.target.Put(k, v) }
func (m *ParallelMap[K, V]) PutIfAbsent(k K, v V) (V, bool, error) {
	return m.target.PutIfAbsent(k, v)
}
func (m *ParallelMap[K, V]) Replace(k K, v V) (V, bool, error)   { return m.target.Replace(k, v) }
func (m *ParallelMap[K, V]) Remove(key K) (V, bool, error)       { return m.target.Remove(key) }
func (m *ParallelMap[K, V]) Clear() error                        { return m.target.Clear() }
func (m *ParallelMap[K, V]) KeyComparator() compare.Equality[K]  { return m.target.KeyComparator() }

func (m *ParallelMap[K, V]) Split(n int) []collection.Map[K, V] {
	return m.target.Split(n)
}

func (m *ParallelMap[K, V]) Iterator() collection.Iterator[collection.MapEntry[K, V]] {
	return m.target.Iterator()
}

func (m *ParallelMap[K, V]) Keys() collection.Iterator[K] {
	return m.target.Keys()
}

func (m *ParallelMap[K, V]) Values() collection.Iterator[V] {
	return m.target.Values()
}

func (m *ParallelMap[K, V]) Clone() collection.Map[K, V] {
	return NewParallel(m.target.Clone(), m.concurrency)
}
