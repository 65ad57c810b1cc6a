// Package table provides a fractal-based table engine with worst-case
// bounded operation cost, plus composable views layered on top of it.
//
// The engine stores elements in a recursive block structure whose depth
// grows logarithmically with capacity. Inserts and removals at either end
// run in constant amortized time; positional inserts and removals shift the
// shorter side of the table through the block structure, touching a bounded
// number of slots per level.
//
// Views wrap any table without copying it:
//
//   - NewShared: reader/writer-locked access for concurrent use
//   - NewAtomic: lock-free snapshot reads with copy-on-write updates
//   - NewParallel: bulk operations fanned out over worker goroutines
//   - NewSub: a window over an index range
//   - NewReversed, NewSorted, NewUnmodifiable, NewMapped, NewFiltered
//
// Views compose: Split on a Shared or Atomic view yields sub-views that go
// through the parent, so they inherit its locking discipline.
package table
