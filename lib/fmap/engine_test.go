package fmap

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/ValentinKolb/fcol/lib/collection"
	ctesting "github.com/ValentinKolb/fcol/lib/collection/testing"
	"github.com/ValentinKolb/fcol/lib/compare"
)

func TestEngineConformance(t *testing.T) {
	ctesting.RunMapTests(t, "Engine", func() collection.Map[int, string] {
		return NewEngine[int, string](compare.Ints().Equality)
	})
}

func TestSharedConformance(t *testing.T) {
	ctesting.RunMapTests(t, "Shared", func() collection.Map[int, string] {
		return NewShared[int, string](NewEngine[int, string](compare.Ints().Equality))
	})
}

func TestAtomicConformance(t *testing.T) {
	ctesting.RunMapTests(t, "Atomic", func() collection.Map[int, string] {
		return NewAtomic[int, string](NewEngine[int, string](compare.Ints().Equality))
	})
}

func TestStackedViewConformance(t *testing.T) {
	// Views must stack transparently.
	ctesting.RunMapTests(t, "Shared(Atomic)", func() collection.Map[int, string] {
		return NewShared[int, string](NewAtomic[int, string](NewEngine[int, string](compare.Ints().Equality)))
	})
}

// Iteration follows insertion order, across removals and re-insertions.
func TestEngineInsertionOrder(t *testing.T) {
	m := NewEngine[int, string](compare.Ints().Equality)

	for _, k := range []int{5, 3, 8, 1} {
		if _, _, err := m.Put(k, fmt.Sprintf("value-%d", k)); err != nil {
			t.Fatalf("Put(%d) failed: %v", k, err)
		}
	}

	var keys []int
	m.ForEach(func(k int, _ string) bool {
		keys = append(keys, k)
		return true
	})
	assertKeys(t, keys, 5, 3, 8, 1)

	// Overwriting a value keeps the original position.
	if _, _, err := m.Put(3, "updated"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	keys = nil
	m.ForEach(func(k int, _ string) bool {
		keys = append(keys, k)
		return true
	})
	assertKeys(t, keys, 5, 3, 8, 1)

	// Removing and re-inserting moves the key to the tail.
	if _, _, err := m.Remove(3); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, _, err := m.Put(3, "again"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	keys = nil
	m.ForEach(func(k int, _ string) bool {
		keys = append(keys, k)
		return true
	})
	assertKeys(t, keys, 5, 8, 1, 3)
}

func assertKeys(t *testing.T, got []int, want ...int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("keys %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys %v, want %v", got, want)
		}
	}
}

// A degenerate hash forces every key into the same probe chain; lookups and
// back-shift deletion must still be correct.
func TestEngineCollisions(t *testing.T) {
	colliding := compare.Equality[int]{
		Equal: func(a, b int) bool { return a == b },
		Hash:  func(int, uint64) uint64 { return 42 },
	}
	m := NewEngine[int, string](colliding)

	const n = 200
	for i := 0; i < n; i++ {
		if _, _, err := m.Put(i, fmt.Sprintf("value-%d", i)); err != nil {
			t.Fatalf("Put(%d) failed: %v", i, err)
		}
	}
	for i := 0; i < n; i++ {
		if v, ok := m.Get(i); !ok || v != fmt.Sprintf("value-%d", i) {
			t.Fatalf("Get(%d) = %q, %v", i, v, ok)
		}
	}

	// Remove from the middle of the probe chain.
	for i := 0; i < n; i += 3 {
		if _, present, err := m.Remove(i); err != nil || !present {
			t.Fatalf("Remove(%d) = %v, %v", i, present, err)
		}
	}
	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		if i%3 == 0 {
			if ok {
				t.Fatalf("removed key %d still reachable", i)
			}
		} else if !ok || v != fmt.Sprintf("value-%d", i) {
			t.Fatalf("Get(%d) after removals = %q, %v", i, v, ok)
		}
	}
}

// The engine must behave exactly like the built-in map under a random
// sequence of mutations.
func TestEngineAgainstModel(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	engine := NewEngine[int, int](compare.Ints().Equality)
	model := make(map[int]int)

	for step := 0; step < 20000; step++ {
		key := rng.Intn(500)
		switch rng.Intn(10) {
		case 0, 1, 2, 3:
			v := rng.Int()
			previous, replaced, err := engine.Put(key, v)
			if err != nil {
				t.Fatalf("step %d: Put failed: %v", step, err)
			}
			if want, ok := model[key]; ok != replaced || (ok && previous != want) {
				t.Fatalf("step %d: Put(%d) = %d, %v; model %d, %v", step, key, previous, replaced, want, ok)
			}
			model[key] = v

		case 4, 5:
			removed, present, err := engine.Remove(key)
			if err != nil {
				t.Fatalf("step %d: Remove failed: %v", step, err)
			}
			if want, ok := model[key]; ok != present || (ok && removed != want) {
				t.Fatalf("step %d: Remove(%d) = %d, %v; model %d, %v", step, key, removed, present, want, ok)
			}
			delete(model, key)

		case 6:
			v := rng.Int()
			_, present, err := engine.PutIfAbsent(key, v)
			if err != nil {
				t.Fatalf("step %d: PutIfAbsent failed: %v", step, err)
			}
			if _, ok := model[key]; ok != present {
				t.Fatalf("step %d: PutIfAbsent(%d) present %v, model %v", step, key, present, ok)
			}
			if !present {
				model[key] = v
			}

		default:
			got, ok := engine.Get(key)
			want, modelOk := model[key]
			if ok != modelOk || (ok && got != want) {
				t.Fatalf("step %d: Get(%d) = %d, %v; model %d, %v", step, key, got, ok, want, modelOk)
			}
		}

		if engine.Size() != len(model) {
			t.Fatalf("step %d: size %d, want %d", step, engine.Size(), len(model))
		}
	}
}

func TestUnmodifiableMapRejectsMutation(t *testing.T) {
	m := NewEngine[int, string](compare.Ints().Equality)
	if _, _, err := m.Put(1, "one"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	view := NewUnmodifiable[int, string](m)

	if _, _, err := view.Put(2, "two"); err == nil {
		t.Error("Put should fail")
	}
	if _, _, err := view.Remove(1); err == nil {
		t.Error("Remove should fail")
	}
	if err := view.Clear(); err == nil {
		t.Error("Clear should fail")
	}

	if v, ok := view.Get(1); !ok || v != "one" {
		t.Errorf("Get(1) = %q, %v", v, ok)
	}
}

func BenchmarkEngine(b *testing.B) {
	ctesting.RunMapBenchmarks(b, "Engine", func() collection.Map[int, string] {
		return NewEngine[int, string](compare.Ints().Equality)
	})
}
