package testing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ValentinKolb/fcol/lib/collection"
)

// MapFactory is a function that creates a fresh, empty instance of a Map
// implementation.
type MapFactory func() collection.Map[int, string]

// SortedMapFactory is a function that creates a fresh, empty instance of a
// SortedMap implementation.
type SortedMapFactory func() collection.SortedMap[int, string]

// RunMapTests runs a comprehensive test suite for a Map implementation.
func RunMapTests(t *testing.T, name string, factory MapFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("PutGet", func(t *testing.T) {
			testPutGet(t, factory())
		})

		t.Run("PutIfAbsent", func(t *testing.T) {
			testPutIfAbsent(t, factory())
		})

		t.Run("Replace", func(t *testing.T) {
			testReplace(t, factory())
		})

		t.Run("Remove", func(t *testing.T) {
			testMapRemove(t, factory())
		})

		t.Run("ManyKeys", func(t *testing.T) {
			testManyKeys(t, factory())
		})

		t.Run("Iterator", func(t *testing.T) {
			testMapIterator(t, factory())
		})

		t.Run("KeysValues", func(t *testing.T) {
			testKeysValues(t, factory())
		})

		t.Run("Split", func(t *testing.T) {
			testMapSplit(t, factory())
		})

		t.Run("Clear", func(t *testing.T) {
			testMapClear(t, factory())
		})

		t.Run("Clone", func(t *testing.T) {
			testMapClone(t, factory())
		})
	})
}

// RunSortedMapTests runs RunMapTests plus the ordered-traversal suite for a
// SortedMap implementation.
func RunSortedMapTests(t *testing.T, name string, factory SortedMapFactory) {
	RunMapTests(t, name, func() collection.Map[int, string] { return factory() })

	t.Run(name, func(t *testing.T) {
		t.Run("KeyOrder", func(t *testing.T) {
			testKeyOrder(t, factory())
		})

		t.Run("FirstLastKey", func(t *testing.T) {
			testFirstLastKey(t, factory())
		})

		t.Run("EntryAfterBefore", func(t *testing.T) {
			testEntryAfterBefore(t, factory())
		})

		t.Run("SubMap", func(t *testing.T) {
			testSubMap(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Map test functions
// --------------------------------------------------------------------------

func testPutGet(t *testing.T, m collection.Map[int, string]) {
	if _, _, err := m.Put(1, "one"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	v, ok := m.Get(1)
	if !ok || v != "one" {
		t.Errorf("Get(1) = %q, %v; want \"one\", true", v, ok)
	}

	// Overwrite returns the previous value.
	previous, replaced, err := m.Put(1, "uno")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !replaced || previous != "one" {
		t.Errorf("Put overwrite = %q, %v; want \"one\", true", previous, replaced)
	}
	if m.Size() != 1 {
		t.Errorf("overwrite must not change size, got %d", m.Size())
	}

	if _, ok := m.Get(2); ok {
		t.Error("Get of absent key should report absence")
	}
	if m.ContainsKey(2) {
		t.Error("ContainsKey of absent key should be false")
	}
}

func testPutIfAbsent(t *testing.T, m collection.Map[int, string]) {
	v, present, err := m.PutIfAbsent(1, "one")
	if err != nil {
		t.Fatalf("PutIfAbsent failed: %v", err)
	}
	if present || v != "one" {
		t.Errorf("PutIfAbsent on absent key = %q, %v; want \"one\", false", v, present)
	}

	v, present, err = m.PutIfAbsent(1, "uno")
	if err != nil {
		t.Fatalf("PutIfAbsent failed: %v", err)
	}
	if !present || v != "one" {
		t.Errorf("PutIfAbsent on present key = %q, %v; want \"one\", true", v, present)
	}

	got, _ := m.Get(1)
	if got != "one" {
		t.Errorf("PutIfAbsent must not overwrite, got %q", got)
	}
}

func testReplace(t *testing.T, m collection.Map[int, string]) {
	// Replace on an absent key is a no-op.
	_, replaced, err := m.Replace(1, "one")
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if replaced {
		t.Error("Replace on absent key should report no replacement")
	}
	if m.ContainsKey(1) {
		t.Error("Replace on absent key must not insert")
	}

	if _, _, err := m.Put(1, "one"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	previous, replaced, err := m.Replace(1, "uno")
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if !replaced || previous != "one" {
		t.Errorf("Replace = %q, %v; want \"one\", true", previous, replaced)
	}
}

func testMapRemove(t *testing.T, m collection.Map[int, string]) {
	// Remove of an absent key is a no-op, not an error.
	_, present, err := m.Remove(1)
	if err != nil {
		t.Fatalf("Remove of absent key failed: %v", err)
	}
	if present {
		t.Error("Remove of absent key should report absence")
	}

	if _, _, err := m.Put(1, "one"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	removed, present, err := m.Remove(1)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !present || removed != "one" {
		t.Errorf("Remove = %q, %v; want \"one\", true", removed, present)
	}
	if m.ContainsKey(1) {
		t.Error("key still present after Remove")
	}
	if m.Size() != 0 {
		t.Errorf("expected size 0 after Remove, got %d", m.Size())
	}
}

// Put 10,000 distinct keys, remove the even ones and verify the survivors.
func testManyKeys(t *testing.T, m collection.Map[int, string]) {
	const n = 10000

	for i := 0; i < n; i++ {
		if _, _, err := m.Put(i, fmt.Sprintf("value-%d", i)); err != nil {
			t.Fatalf("Put(%d) failed: %v", i, err)
		}
	}
	if m.Size() != n {
		t.Fatalf("expected size %d, got %d", n, m.Size())
	}

	for i := 0; i < n; i += 2 {
		if _, present, err := m.Remove(i); err != nil || !present {
			t.Fatalf("Remove(%d) = %v, %v", i, present, err)
		}
	}
	if m.Size() != n/2 {
		t.Fatalf("expected size %d after removals, got %d", n/2, m.Size())
	}

	for i := 0; i < n; i++ {
		v, ok := m.Get(i)
		if i%2 == 0 {
			if ok {
				t.Fatalf("removed key %d still present", i)
			}
		} else {
			if !ok || v != fmt.Sprintf("value-%d", i) {
				t.Fatalf("Get(%d) = %q, %v", i, v, ok)
			}
		}
	}
}

func testMapIterator(t *testing.T, m collection.Map[int, string]) {
	const n = 100

	for i := 0; i < n; i++ {
		if _, _, err := m.Put(i, fmt.Sprintf("value-%d", i)); err != nil {
			t.Fatalf("Put(%d) failed: %v", i, err)
		}
	}

	seen := make(map[int]bool)
	it := m.Iterator()
	for it.HasNext() {
		e, err := it.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if seen[e.Key] {
			t.Fatalf("key %d yielded twice", e.Key)
		}
		seen[e.Key] = true
		if e.Value != fmt.Sprintf("value-%d", e.Key) {
			t.Errorf("entry %d has value %q", e.Key, e.Value)
		}
	}
	if len(seen) != n {
		t.Errorf("iterated %d entries, want %d", len(seen), n)
	}

	// Iterator removal deletes from the map; iterators over snapshot or
	// read-only views reject Remove instead.
	it = m.Iterator()
	if err := it.Remove(); err == nil {
		t.Error("Remove without prior Next should fail")
	}
	e, err := it.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if err := it.Remove(); err != nil {
		var colErr *collection.Error
		if errors.As(err, &colErr) && colErr.Code == collection.RetCUnsupportedOperation {
			return
		}
		t.Fatalf("Remove failed: %v", err)
	}
	if m.ContainsKey(e.Key) {
		t.Errorf("key %d still present after iterator Remove", e.Key)
	}
}

func testKeysValues(t *testing.T, m collection.Map[int, string]) {
	for i := 0; i < 10; i++ {
		if _, _, err := m.Put(i, fmt.Sprintf("value-%d", i)); err != nil {
			t.Fatalf("Put(%d) failed: %v", i, err)
		}
	}

	keys := make(map[int]bool)
	it := m.Keys()
	for it.HasNext() {
		k, err := it.Next()
		if err != nil {
			t.Fatalf("Keys Next failed: %v", err)
		}
		keys[k] = true
	}
	if len(keys) != 10 {
		t.Errorf("Keys yielded %d keys, want 10", len(keys))
	}

	values := make(map[string]bool)
	vit := m.Values()
	for vit.HasNext() {
		v, err := vit.Next()
		if err != nil {
			t.Fatalf("Values Next failed: %v", err)
		}
		values[v] = true
	}
	if len(values) != 10 {
		t.Errorf("Values yielded %d values, want 10", len(values))
	}
}

func testMapSplit(t *testing.T, m collection.Map[int, string]) {
	const n = 100

	for i := 0; i < n; i++ {
		if _, _, err := m.Put(i, fmt.Sprintf("value-%d", i)); err != nil {
			t.Fatalf("Put(%d) failed: %v", i, err)
		}
	}

	shards := m.Split(4)
	if len(shards) == 0 || len(shards) > 4 {
		t.Fatalf("Split(4) returned %d shards", len(shards))
	}

	// Shards are disjoint and cover every key.
	seen := make(map[int]int)
	total := 0
	for _, shard := range shards {
		total += shard.Size()
		shard.ForEach(func(k int, _ string) bool {
			seen[k]++
			return true
		})
	}
	if total != n {
		t.Errorf("shard sizes sum to %d, want %d", total, n)
	}
	if len(seen) != n {
		t.Errorf("shards cover %d keys, want %d", len(seen), n)
	}
	for k, count := range seen {
		if count != 1 {
			t.Errorf("key %d appears in %d shards", k, count)
		}
	}
}

func testMapClear(t *testing.T, m collection.Map[int, string]) {
	for i := 0; i < 100; i++ {
		if _, _, err := m.Put(i, "v"); err != nil {
			t.Fatalf("Put(%d) failed: %v", i, err)
		}
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if m.Size() != 0 {
		t.Errorf("expected size 0 after Clear, got %d", m.Size())
	}

	// The map must be usable again.
	if _, _, err := m.Put(1, "one"); err != nil {
		t.Fatalf("Put after Clear failed: %v", err)
	}
	if v, ok := m.Get(1); !ok || v != "one" {
		t.Errorf("Get(1) after Clear = %q, %v", v, ok)
	}
}

func testMapClone(t *testing.T, m collection.Map[int, string]) {
	for i := 0; i < 20; i++ {
		if _, _, err := m.Put(i, fmt.Sprintf("value-%d", i)); err != nil {
			t.Fatalf("Put(%d) failed: %v", i, err)
		}
	}

	clone := m.Clone()
	if clone.Size() != 20 {
		t.Fatalf("clone size %d, want 20", clone.Size())
	}

	// Mutating the original must not affect the clone.
	if _, _, err := m.Put(0, "changed"); err != nil {
		t.Fatalf("Put on original failed: %v", err)
	}
	if v, _ := clone.Get(0); v != "value-0" {
		t.Errorf("clone observed mutation of original: Get(0) = %q", v)
	}
}

// --------------------------------------------------------------------------
// Sorted map test functions
// --------------------------------------------------------------------------

func testKeyOrder(t *testing.T, m collection.SortedMap[int, string]) {
	// Insert out of order; iteration must be in key order.
	for _, k := range []int{5, 3, 8, 1, 9, 2} {
		if _, _, err := m.Put(k, fmt.Sprintf("value-%d", k)); err != nil {
			t.Fatalf("Put(%d) failed: %v", k, err)
		}
	}

	want := []int{1, 2, 3, 5, 8, 9}
	var got []int
	m.ForEach(func(k int, _ string) bool {
		got = append(got, k)
		return true
	})
	if len(got) != len(want) {
		t.Fatalf("iterated keys %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("iterated keys %v, want %v", got, want)
		}
	}
}

func testFirstLastKey(t *testing.T, m collection.SortedMap[int, string]) {
	if _, err := m.FirstKey(); err == nil {
		t.Error("FirstKey on empty map should fail")
	} else {
		requireCode(t, err, collection.RetCEmpty)
	}
	if _, err := m.LastKey(); err == nil {
		t.Error("LastKey on empty map should fail")
	}

	for _, k := range []int{42, 7, 99} {
		if _, _, err := m.Put(k, "v"); err != nil {
			t.Fatalf("Put(%d) failed: %v", k, err)
		}
	}

	first, err := m.FirstKey()
	if err != nil || first != 7 {
		t.Errorf("FirstKey = %d, %v; want 7", first, err)
	}
	last, err := m.LastKey()
	if err != nil || last != 99 {
		t.Errorf("LastKey = %d, %v; want 99", last, err)
	}
}

func testEntryAfterBefore(t *testing.T, m collection.SortedMap[int, string]) {
	for _, k := range []int{10, 20, 30} {
		if _, _, err := m.Put(k, fmt.Sprintf("value-%d", k)); err != nil {
			t.Fatalf("Put(%d) failed: %v", k, err)
		}
	}

	// Strictly-after, from a present and from an absent key.
	if e, ok := m.EntryAfter(10); !ok || e.Key != 20 {
		t.Errorf("EntryAfter(10) = %v, %v; want key 20", e, ok)
	}
	if e, ok := m.EntryAfter(15); !ok || e.Key != 20 {
		t.Errorf("EntryAfter(15) = %v, %v; want key 20", e, ok)
	}
	if _, ok := m.EntryAfter(30); ok {
		t.Error("EntryAfter(last) should report absence")
	}

	if e, ok := m.EntryBefore(30); !ok || e.Key != 20 {
		t.Errorf("EntryBefore(30) = %v, %v; want key 20", e, ok)
	}
	if e, ok := m.EntryBefore(25); !ok || e.Key != 20 {
		t.Errorf("EntryBefore(25) = %v, %v; want key 20", e, ok)
	}
	if _, ok := m.EntryBefore(10); ok {
		t.Error("EntryBefore(first) should report absence")
	}
}

func testSubMap(t *testing.T, m collection.SortedMap[int, string]) {
	for i := 0; i < 10; i++ {
		if _, _, err := m.Put(i, fmt.Sprintf("value-%d", i)); err != nil {
			t.Fatalf("Put(%d) failed: %v", i, err)
		}
	}

	sub := m.SubMap(3, 7)

	if sub.Size() != 4 {
		t.Errorf("SubMap(3, 7) size = %d, want 4", sub.Size())
	}

	// In-range reads and writes go through.
	if v, ok := sub.Get(3); !ok || v != "value-3" {
		t.Errorf("sub Get(3) = %q, %v", v, ok)
	}
	if _, _, err := sub.Put(5, "five"); err != nil {
		t.Errorf("sub Put(5) failed: %v", err)
	}
	if v, _ := m.Get(5); v != "five" {
		t.Errorf("sub-map write not visible through parent, got %q", v)
	}

	// Out-of-range reads report absence, writes are rejected.
	if _, ok := sub.Get(8); ok {
		t.Error("sub Get of out-of-range key should report absence")
	}
	if _, _, err := sub.Put(8, "v"); err == nil {
		t.Error("sub Put of out-of-range key should fail")
	} else {
		requireCode(t, err, collection.RetCInvalidArgument)
	}
	if _, _, err := sub.Put(7, "v"); err == nil {
		t.Error("sub Put of upper bound should fail, the range is half-open")
	}

	// The sub-map iterates its range in key order.
	var keys []int
	sub.ForEach(func(k int, _ string) bool {
		keys = append(keys, k)
		return true
	})
	want := []int{3, 4, 5, 6}
	if len(keys) != len(want) {
		t.Fatalf("sub keys %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("sub keys %v, want %v", keys, want)
		}
	}
}
