package fmap

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/fcol/lib/collection"
	ctesting "github.com/ValentinKolb/fcol/lib/collection/testing"
	"github.com/ValentinKolb/fcol/lib/compare"
)

func TestSortedEngineConformance(t *testing.T) {
	ctesting.RunSortedMapTests(t, "SortedEngine", func() collection.SortedMap[int, string] {
		return NewSortedEngine[int, string](compare.Ints())
	})
}

func TestSortedEngineStringKeys(t *testing.T) {
	m := NewSortedEngine[string, int](compare.Strings())

	words := []string{"pear", "apple", "orange", "banana"}
	for i, w := range words {
		if _, _, err := m.Put(w, i); err != nil {
			t.Fatalf("Put(%q) failed: %v", w, err)
		}
	}

	var keys []string
	m.ForEach(func(k string, _ int) bool {
		keys = append(keys, k)
		return true
	})

	want := []string{"apple", "banana", "orange", "pear"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys %v, want %v", keys, want)
		}
	}
}

func TestSortedEngineSplitPreservesOrder(t *testing.T) {
	m := NewSortedEngine[int, string](compare.Ints())
	const n = 100
	for i := 0; i < n; i++ {
		if _, _, err := m.Put(i, fmt.Sprintf("value-%d", i)); err != nil {
			t.Fatalf("Put(%d) failed: %v", i, err)
		}
	}

	parts := m.Split(4)

	// Concatenating the partitions in order must reproduce the key order.
	var keys []int
	for _, part := range parts {
		part.ForEach(func(k int, _ string) bool {
			keys = append(keys, k)
			return true
		})
	}
	if len(keys) != n {
		t.Fatalf("partitions cover %d keys, want %d", len(keys), n)
	}
	for i, k := range keys {
		if k != i {
			t.Fatalf("concatenated keys: index %d = %d, want %d", i, k, i)
		}
	}
}

func TestSubMapOfSubMapTightensBounds(t *testing.T) {
	m := NewSortedEngine[int, string](compare.Ints())
	for i := 0; i < 20; i++ {
		if _, _, err := m.Put(i, "v"); err != nil {
			t.Fatalf("Put(%d) failed: %v", i, err)
		}
	}

	outer := m.SubMap(5, 15)
	inner := outer.SubMap(0, 100)

	// The inner bounds are clamped to the outer range.
	if inner.Size() != 10 {
		t.Errorf("inner size = %d, want 10", inner.Size())
	}
	if _, _, err := inner.Put(3, "v"); err == nil {
		t.Error("Put outside the outer range should fail")
	}
}

func TestSortedSubMapTraversal(t *testing.T) {
	m := NewSortedEngine[int, string](compare.Ints())
	for _, k := range []int{10, 20, 30, 40, 50} {
		if _, _, err := m.Put(k, "v"); err != nil {
			t.Fatalf("Put(%d) failed: %v", k, err)
		}
	}

	sub := m.SubMap(15, 45)

	if first, err := sub.FirstKey(); err != nil || first != 20 {
		t.Errorf("FirstKey = %d, %v; want 20", first, err)
	}
	if last, err := sub.LastKey(); err != nil || last != 40 {
		t.Errorf("LastKey = %d, %v; want 40", last, err)
	}

	// EntryAfter/EntryBefore honor the bounds.
	if e, ok := sub.EntryAfter(20); !ok || e.Key != 30 {
		t.Errorf("EntryAfter(20) = %v, %v; want key 30", e, ok)
	}
	if _, ok := sub.EntryAfter(40); ok {
		t.Error("EntryAfter(40) should report absence inside the bounds")
	}
	if e, ok := sub.EntryBefore(30); !ok || e.Key != 20 {
		t.Errorf("EntryBefore(30) = %v, %v; want key 20", e, ok)
	}
	if _, ok := sub.EntryBefore(20); ok {
		t.Error("EntryBefore(20) should report absence inside the bounds")
	}
}
