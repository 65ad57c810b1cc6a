// Package collection defines the service contracts shared by all container
// implementations and views in this repository.
//
// The package focuses on:
//   - A unified Table interface for ordered-sequence containers
//   - A unified Map interface for associative containers (plus SortedMap)
//   - A common iterator protocol with well-defined failure modes
//   - A standardized error taxonomy with return codes
//
// Key Components:
//
//   - Table Interface: index-addressable sequence operations (get/set,
//     insert/remove anywhere, first/last access), splitting into disjoint
//     contiguous sub-tables, iteration and cloning. Implemented by the
//     fractal table engine (package table) and by every table view, so
//     views can be stacked transparently.
//
//   - Map Interface: associative operations (get/put/remove, putIfAbsent,
//     replace), deterministic iteration order, splitting into disjoint
//     sub-maps. SortedMap adds neighbor queries and range views.
//
//   - Error Type: all contract violations (index out of range, operation on
//     an empty container, mutation of a read-only view, iterator misuse,
//     write outside a sub-view's key range) are reported synchronously as
//     *Error values carrying a RetCode. Nothing is retried internally.
//
// Concurrency is not part of the base contracts: engines are single-threaded
// and views add the desired discipline (see the Shared, Atomic and Parallel
// views in packages table and fmap).
package collection
