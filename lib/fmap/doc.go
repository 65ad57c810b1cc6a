// Package fmap provides the hash and sorted map engines plus the map side
// of the view layer.
//
// Engine stores entries in an open-addressing hash block with linear
// probing and back-shift deletion; a doubly-linked entry chain gives
// deterministic insertion-order iteration. SortedEngine keeps its entries
// in a fractal table ordered by key, adding ordered traversal
// (EntryAfter/EntryBefore) and key-range sub-maps.
//
// The concurrency views mirror the table package: NewShared wraps a map in
// a reader/writer lock, NewAtomic serves reads from copy-on-write
// snapshots, NewParallel fans bulk operations out over disjoint key shards.
// Split partitions a hash map by key-hash residue and a sorted map by
// contiguous key ranges.
package fmap
