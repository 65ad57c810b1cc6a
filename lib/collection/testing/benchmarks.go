package testing

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/ValentinKolb/fcol/lib/collection"
)

// RunTableBenchmarks runs all benchmarks for a Table implementation.
func RunTableBenchmarks(b *testing.B, name string, factory TableFactory) {
	b.Run(name, func(b *testing.B) {
		b.Run("AddLast", func(b *testing.B) {
			benchmarkAddLast(b, factory())
		})

		b.Run("AddFirst", func(b *testing.B) {
			benchmarkAddFirst(b, factory())
		})

		b.Run("Get", func(b *testing.B) {
			benchmarkGet(b, factory())
		})

		b.Run("InsertMiddle", func(b *testing.B) {
			benchmarkInsertMiddle(b, factory())
		})

		b.Run("RemoveFirst", func(b *testing.B) {
			benchmarkRemoveFirst(b, factory())
		})

		b.Run("ForEach", func(b *testing.B) {
			benchmarkForEach(b, factory())
		})
	})
}

// RunMapBenchmarks runs all benchmarks for a Map implementation.
func RunMapBenchmarks(b *testing.B, name string, factory MapFactory) {
	b.Run(name, func(b *testing.B) {
		b.Run("Put", func(b *testing.B) {
			benchmarkPut(b, factory())
		})

		b.Run("PutExisting", func(b *testing.B) {
			benchmarkPutExisting(b, factory())
		})

		b.Run("MapGet", func(b *testing.B) {
			benchmarkMapGet(b, factory())
		})

		b.Run("MapRemove", func(b *testing.B) {
			benchmarkMapRemove(b, factory())
		})

		b.Run("MixedUsage", func(b *testing.B) {
			benchmarkMixedUsage(b, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Table benchmark functions
// --------------------------------------------------------------------------

func benchmarkAddLast(b *testing.B, table collection.Table[int]) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = table.AddLast(i)
	}
}

func benchmarkAddFirst(b *testing.B, table collection.Table[int]) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = table.AddFirst(i)
	}
}

func benchmarkGet(b *testing.B, table collection.Table[int]) {
	const size = 100000
	for i := 0; i < size; i++ {
		_ = table.AddLast(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = table.Get(i % size)
	}
}

func benchmarkInsertMiddle(b *testing.B, table collection.Table[int]) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = table.Insert(table.Size()/2, i)
	}
}

func benchmarkRemoveFirst(b *testing.B, table collection.Table[int]) {
	for i := 0; i < b.N; i++ {
		_ = table.AddLast(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = table.RemoveFirst()
	}
}

func benchmarkForEach(b *testing.B, table collection.Table[int]) {
	const size = 10000
	for i := 0; i < size; i++ {
		_ = table.AddLast(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sum := 0
		table.ForEach(func(v int) bool {
			sum += v
			return true
		})
	}
}

// --------------------------------------------------------------------------
// Map benchmark functions
// --------------------------------------------------------------------------

func benchmarkPut(b *testing.B, m collection.Map[int, string]) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = m.Put(i, "value")
	}
}

func benchmarkPutExisting(b *testing.B, m collection.Map[int, string]) {
	const size = 10000
	for i := 0; i < size; i++ {
		_, _, _ = m.Put(i, "value")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = m.Put(i%size, "updated")
	}
}

func benchmarkMapGet(b *testing.B, m collection.Map[int, string]) {
	const size = 100000
	for i := 0; i < size; i++ {
		_, _, _ = m.Put(i, fmt.Sprintf("value-%d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Get(i % size)
	}
}

func benchmarkMapRemove(b *testing.B, m collection.Map[int, string]) {
	for i := 0; i < b.N; i++ {
		_, _, _ = m.Put(i, "value")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = m.Remove(i)
	}
}

func benchmarkMixedUsage(b *testing.B, m collection.Map[int, string]) {
	rng := rand.New(rand.NewSource(42))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := rng.Intn(10000)
		switch rng.Intn(10) {
		case 0, 1, 2, 3:
			_, _, _ = m.Put(key, "value")
		case 4:
			_, _, _ = m.Remove(key)
		default:
			_, _ = m.Get(key)
		}
	}
}
