// Package compare provides the pluggable equality, hashing and ordering
// strategies the collection containers are parameterized over.
//
// A container never compares or hashes its elements directly; it always goes
// through an Equality (equality test + seeded hash) or an Order (Equality
// plus three-way comparison). This keeps the container logic independent of
// the element type and allows custom notions of equality (case-insensitive
// strings, identity, ...) without changing the container.
//
// The hash functions are seeded per container instance so that no two
// containers share a probe sequence.
package compare
