package table

import (
	"math/rand"
	"testing"

	"github.com/ValentinKolb/fcol/lib/collection"
	ctesting "github.com/ValentinKolb/fcol/lib/collection/testing"
	"github.com/ValentinKolb/fcol/lib/compare"
)

func TestEngineConformance(t *testing.T) {
	ctesting.RunTableTests(t, "Engine", func() collection.Table[int] {
		return NewEngine(compare.Ints().Equality)
	})
}

func TestSharedConformance(t *testing.T) {
	ctesting.RunTableTests(t, "Shared", func() collection.Table[int] {
		return NewShared[int](NewEngine(compare.Ints().Equality))
	})
}

func TestAtomicConformance(t *testing.T) {
	ctesting.RunTableTests(t, "Atomic", func() collection.Table[int] {
		return NewAtomic[int](NewEngine(compare.Ints().Equality))
	})
}

func TestStackedViewConformance(t *testing.T) {
	// Views must stack transparently.
	ctesting.RunTableTests(t, "Shared(Atomic)", func() collection.Table[int] {
		return NewShared[int](NewAtomic[int](NewEngine(compare.Ints().Equality)))
	})
}

// The engine must behave exactly like a plain slice under a random sequence
// of mutations.
func TestEngineAgainstModel(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	engine := NewEngine(compare.Ints().Equality)
	var model []int

	for step := 0; step < 20000; step++ {
		op := rng.Intn(10)
		switch {
		case op < 3: // AddLast
			v := rng.Int()
			if err := engine.AddLast(v); err != nil {
				t.Fatalf("step %d: AddLast failed: %v", step, err)
			}
			model = append(model, v)

		case op < 5: // AddFirst
			v := rng.Int()
			if err := engine.AddFirst(v); err != nil {
				t.Fatalf("step %d: AddFirst failed: %v", step, err)
			}
			model = append([]int{v}, model...)

		case op < 7: // Insert at random index
			v := rng.Int()
			i := rng.Intn(len(model) + 1)
			if err := engine.Insert(i, v); err != nil {
				t.Fatalf("step %d: Insert(%d) failed: %v", step, i, err)
			}
			model = append(model[:i], append([]int{v}, model[i:]...)...)

		case op < 9: // Remove at random index
			if len(model) == 0 {
				continue
			}
			i := rng.Intn(len(model))
			got, err := engine.Remove(i)
			if err != nil {
				t.Fatalf("step %d: Remove(%d) failed: %v", step, i, err)
			}
			if got != model[i] {
				t.Fatalf("step %d: Remove(%d) = %d, want %d", step, i, got, model[i])
			}
			model = append(model[:i], model[i+1:]...)

		default: // Set at random index
			if len(model) == 0 {
				continue
			}
			i := rng.Intn(len(model))
			v := rng.Int()
			previous, err := engine.Set(i, v)
			if err != nil {
				t.Fatalf("step %d: Set(%d) failed: %v", step, i, err)
			}
			if previous != model[i] {
				t.Fatalf("step %d: Set(%d) returned %d, want %d", step, i, previous, model[i])
			}
			model[i] = v
		}

		if engine.Size() != len(model) {
			t.Fatalf("step %d: size %d, want %d", step, engine.Size(), len(model))
		}
		// Spot-check a few random indices every step, full check periodically.
		if step%500 == 499 {
			for i, want := range model {
				got, err := engine.Get(i)
				if err != nil || got != want {
					t.Fatalf("step %d: Get(%d) = %d, %v; want %d", step, i, got, err, want)
				}
			}
		} else if len(model) > 0 {
			i := rng.Intn(len(model))
			got, err := engine.Get(i)
			if err != nil || got != model[i] {
				t.Fatalf("step %d: Get(%d) = %d, %v; want %d", step, i, got, err, model[i])
			}
		}
	}
}

// Capacity stays within a factor of four of the size through growth and
// shrink cycles, down to the 16-slot floor.
func TestEngineCapacityInvariant(t *testing.T) {
	engine := NewEngine(compare.Ints().Equality)

	check := func(when string) {
		t.Helper()
		capacity := engine.Capacity()
		size := engine.Size()
		if size > capacity {
			t.Fatalf("%s: size %d exceeds capacity %d", when, size, capacity)
		}
		if capacity > 16 && size*4 < capacity {
			t.Fatalf("%s: capacity %d more than 4x size %d", when, capacity, size)
		}
	}

	for i := 0; i < 100000; i++ {
		if err := engine.AddLast(i); err != nil {
			t.Fatalf("AddLast(%d) failed: %v", i, err)
		}
	}
	check("after growth")

	for engine.Size() > 0 {
		if _, err := engine.RemoveLast(); err != nil {
			t.Fatalf("RemoveLast failed: %v", err)
		}
		if engine.Size()%1000 == 0 {
			check("during shrink")
		}
	}
	check("after shrink")
}

// Head insertion with wrap-around: the offset walks backwards through the
// circular structure.
func TestEngineCircularWrap(t *testing.T) {
	engine := NewEngine(compare.Ints().Equality)

	const n = 5000
	for i := 0; i < n; i++ {
		// Alternate ends so the offset crosses the array boundary often.
		if i%2 == 0 {
			if err := engine.AddFirst(i); err != nil {
				t.Fatalf("AddFirst failed: %v", err)
			}
		} else {
			if err := engine.AddLast(i); err != nil {
				t.Fatalf("AddLast failed: %v", err)
			}
		}
	}

	if engine.Size() != n {
		t.Fatalf("size %d, want %d", engine.Size(), n)
	}

	// Evens descend at the front, odds ascend at the back.
	front, err := engine.Get(0)
	if err != nil || front != n-2 {
		t.Errorf("Get(0) = %d, %v; want %d", front, err, n-2)
	}
	back, err := engine.GetLast()
	if err != nil || back != n-1 {
		t.Errorf("GetLast = %d, %v; want %d", back, err, n-1)
	}
}

func TestEngineDeepRecursion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large structure test in short mode")
	}

	engine := NewEngine(compare.Ints().Equality)

	// Beyond 1024*1024 elements the structure is at least three levels deep.
	const n = 1 << 21
	for i := 0; i < n; i++ {
		if err := engine.AddLast(i); err != nil {
			t.Fatalf("AddLast(%d) failed: %v", i, err)
		}
	}

	for _, i := range []int{0, 1, 1023, 1024, 1<<20 - 1, 1 << 20, n - 1} {
		v, err := engine.Get(i)
		if err != nil || v != i {
			t.Fatalf("Get(%d) = %d, %v", i, v, err)
		}
	}
}

func BenchmarkEngine(b *testing.B) {
	ctesting.RunTableBenchmarks(b, "Engine", func() collection.Table[int] {
		return NewEngine(compare.Ints().Equality)
	})
}
