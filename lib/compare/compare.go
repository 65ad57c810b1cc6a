package compare

import (
	"crypto/rand"
	"encoding/binary"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Strategy Types
// --------------------------------------------------------------------------

// Equality bundles the equality test and the hash function for one element
// or key type. Every container is parameterized over one or two of these.
//
// The hash function takes a per-container seed so that two containers never
// share a probe sequence (see GenerateSeed).
type Equality[T any] struct {
	Equal func(a, b T) bool
	Hash  func(v T, seed uint64) uint64
}

// Order extends Equality with a three-way comparison
// (negative if a < b, zero if equal, positive if a > b).
type Order[T any] struct {
	Equality[T]
	Compare func(a, b T) int
}

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

// Of builds an Equality for a comparable type from a hash function.
func Of[T comparable](hash func(v T, seed uint64) uint64) Equality[T] {
	return Equality[T]{
		Equal: func(a, b T) bool { return a == b },
		Hash:  hash,
	}
}

// OrderOf builds an Order from an Equality and a three-way comparison.
func OrderOf[T any](eq Equality[T], cmp func(a, b T) int) Order[T] {
	return Order[T]{Equality: eq, Compare: cmp}
}

// Ints returns the natural order for int elements.
// Hashing combines the value with the seed (identity hashing, the integer
// domain is assumed well distributed already).
func Ints() Order[int] {
	return OrderOf(Of[int](func(v int, seed uint64) uint64 {
		return uint64(v) ^ seed
	}), func(a, b int) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
}

// Uint64s returns the natural order for uint64 elements.
func Uint64s() Order[uint64] {
	return OrderOf(Of[uint64](func(v uint64, seed uint64) uint64 {
		return v ^ seed
	}), func(a, b uint64) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
}

// Strings returns the lexical order for string elements.
func Strings() Order[string] {
	return OrderOf(Of[string](HashString), strings.Compare)
}

// --------------------------------------------------------------------------
// Hash Functions
// --------------------------------------------------------------------------

// HashString generates a hash value for a string with a seed.
// This function uses the FNV-1a hash algorithm, which is fast and has good
// distribution.
func HashString(s string, seed uint64) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)

	// Start with the offset combined with the seed for uniqueness
	hash := uint64(offset64) ^ seed

	for i := 0; i < len(s); i++ {
		hash ^= uint64(s[i])
		hash *= prime64
	}

	return hash
}

// GenerateSeed creates a random seed for internal hash distribution
func GenerateSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// Fallback with the current time, only as a last resort
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}
