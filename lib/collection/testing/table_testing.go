package testing

import (
	"errors"
	"testing"

	"github.com/ValentinKolb/fcol/lib/collection"
)

// TableFactory is a function that creates a fresh, empty instance of a
// Table implementation.
type TableFactory func() collection.Table[int]

// RunTableTests runs a comprehensive test suite for a Table implementation.
func RunTableTests(t *testing.T, name string, factory TableFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("AddGet", func(t *testing.T) {
			testAddGet(t, factory())
		})

		t.Run("AddFirst", func(t *testing.T) {
			testAddFirst(t, factory())
		})

		t.Run("FIFO", func(t *testing.T) {
			testFIFO(t, factory())
		})

		t.Run("SetReplace", func(t *testing.T) {
			testSetReplace(t, factory())
		})

		t.Run("InsertShift", func(t *testing.T) {
			testInsertShift(t, factory())
		})

		t.Run("RemoveMiddle", func(t *testing.T) {
			testRemoveMiddle(t, factory())
		})

		t.Run("IndexErrors", func(t *testing.T) {
			testIndexErrors(t, factory())
		})

		t.Run("EmptyErrors", func(t *testing.T) {
			testEmptyErrors(t, factory())
		})

		t.Run("Iterator", func(t *testing.T) {
			testTableIterator(t, factory())
		})

		t.Run("IteratorRemove", func(t *testing.T) {
			testTableIteratorRemove(t, factory())
		})

		t.Run("Split", func(t *testing.T) {
			testTableSplit(t, factory())
		})

		t.Run("Clear", func(t *testing.T) {
			testTableClear(t, factory())
		})

		t.Run("Clone", func(t *testing.T) {
			testTableClone(t, factory())
		})

		t.Run("ForEachStop", func(t *testing.T) {
			testForEachStop(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// requireCode fails the test unless err carries the expected return code.
func requireCode(t testing.TB, err error, code collection.RetCode) {
	t.Helper()
	var colErr *collection.Error
	if !errors.As(err, &colErr) {
		t.Fatalf("expected collection error with code %d, got %v", code, err)
	}
	if colErr.Code != code {
		t.Fatalf("expected error code %d, got %d (%v)", code, colErr.Code, err)
	}
}

func mustAdd(t testing.TB, table collection.Table[int], elements ...int) {
	t.Helper()
	for _, e := range elements {
		if err := table.AddLast(e); err != nil {
			t.Fatalf("AddLast(%d) failed: %v", e, err)
		}
	}
}

func fill(t testing.TB, table collection.Table[int], n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := table.AddLast(i); err != nil {
			t.Fatalf("AddLast(%d) failed: %v", i, err)
		}
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testAddGet(t *testing.T, table collection.Table[int]) {
	const n = 1000

	fill(t, table, n)

	if table.Size() != n {
		t.Fatalf("expected size %d, got %d", n, table.Size())
	}

	for i := 0; i < n; i++ {
		v, err := table.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", i, err)
		}
		if v != i {
			t.Errorf("Get(%d) = %d, want %d", i, v, i)
		}
	}
}

func testAddFirst(t *testing.T, table collection.Table[int]) {
	const n = 500

	for i := 1; i <= n; i++ {
		if err := table.AddFirst(i); err != nil {
			t.Fatalf("AddFirst(%d) failed: %v", i, err)
		}
	}

	first, err := table.Get(0)
	if err != nil {
		t.Fatalf("Get(0) failed: %v", err)
	}
	if first != n {
		t.Errorf("Get(0) = %d, want %d", first, n)
	}

	last, err := table.GetLast()
	if err != nil {
		t.Fatalf("GetLast failed: %v", err)
	}
	if last != 1 {
		t.Errorf("GetLast = %d, want 1", last)
	}
}

// Elements added at the tail and removed at the head must come out in
// insertion order, across several capacity doublings and shrinks.
func testFIFO(t *testing.T, table collection.Table[int]) {
	const n = 1000

	for i := 1; i <= n; i++ {
		if err := table.AddLast(i); err != nil {
			t.Fatalf("AddLast(%d) failed: %v", i, err)
		}
	}

	for i := 1; i <= n; i++ {
		v, err := table.RemoveFirst()
		if err != nil {
			t.Fatalf("RemoveFirst #%d failed: %v", i, err)
		}
		if v != i {
			t.Fatalf("RemoveFirst #%d = %d, want %d", i, v, i)
		}
	}

	if table.Size() != 0 {
		t.Errorf("expected empty table, got size %d", table.Size())
	}
}

func testSetReplace(t *testing.T, table collection.Table[int]) {
	mustAdd(t, table, 10, 20, 30)

	previous, err := table.Set(1, 99)
	if err != nil {
		t.Fatalf("Set(1, 99) failed: %v", err)
	}
	if previous != 20 {
		t.Errorf("Set returned previous %d, want 20", previous)
	}

	v, _ := table.Get(1)
	if v != 99 {
		t.Errorf("Get(1) = %d, want 99", v)
	}

	if table.Size() != 3 {
		t.Errorf("Set must not change size, got %d", table.Size())
	}
}

func testInsertShift(t *testing.T, table collection.Table[int]) {
	const n = 100

	fill(t, table, n)

	// Insert in the front half and in the back half.
	if err := table.Insert(10, -1); err != nil {
		t.Fatalf("Insert(10) failed: %v", err)
	}
	if err := table.Insert(90, -2); err != nil {
		t.Fatalf("Insert(90) failed: %v", err)
	}

	if table.Size() != n+2 {
		t.Fatalf("expected size %d, got %d", n+2, table.Size())
	}

	checks := map[int]int{9: 9, 10: -1, 11: 10, 90: -2, 101: 99}
	for index, want := range checks {
		v, err := table.Get(index)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", index, err)
		}
		if v != want {
			t.Errorf("Get(%d) = %d, want %d", index, v, want)
		}
	}
}

func testRemoveMiddle(t *testing.T, table collection.Table[int]) {
	fill(t, table, 10)

	removed, err := table.Remove(5)
	if err != nil {
		t.Fatalf("Remove(5) failed: %v", err)
	}
	if removed != 5 {
		t.Errorf("Remove(5) = %d, want 5", removed)
	}

	want := []int{0, 1, 2, 3, 4, 6, 7, 8, 9}
	got := collection.ToSlice[int](table)
	if len(got) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func testIndexErrors(t *testing.T, table collection.Table[int]) {
	mustAdd(t, table, 1, 2, 3)

	if _, err := table.Get(3); err == nil {
		t.Error("Get(size) should fail")
	} else {
		requireCode(t, err, collection.RetCIndexOutOfRange)
	}

	if _, err := table.Get(-1); err == nil {
		t.Error("Get(-1) should fail")
	}

	if _, err := table.Set(3, 0); err == nil {
		t.Error("Set(size) should fail")
	}

	if err := table.Insert(4, 0); err == nil {
		t.Error("Insert(size+1) should fail")
	}

	if _, err := table.Remove(3); err == nil {
		t.Error("Remove(size) should fail")
	}
}

func testEmptyErrors(t *testing.T, table collection.Table[int]) {
	if _, err := table.RemoveFirst(); err == nil {
		t.Error("RemoveFirst on empty table should fail")
	} else {
		requireCode(t, err, collection.RetCEmpty)
	}

	if _, err := table.RemoveLast(); err == nil {
		t.Error("RemoveLast on empty table should fail")
	}

	if _, err := table.GetFirst(); err == nil {
		t.Error("GetFirst on empty table should fail")
	}

	if _, err := table.GetLast(); err == nil {
		t.Error("GetLast on empty table should fail")
	}
}

func testTableIterator(t *testing.T, table collection.Table[int]) {
	fill(t, table, 50)

	it := table.Iterator()
	i := 0
	for it.HasNext() {
		v, err := it.Next()
		if err != nil {
			t.Fatalf("Next failed at %d: %v", i, err)
		}
		if v != i {
			t.Errorf("iteration element %d = %d, want %d", i, v, i)
		}
		i++
	}
	if i != 50 {
		t.Errorf("iterated %d elements, want 50", i)
	}

	if _, err := it.Next(); err == nil {
		t.Error("Next past the end should fail")
	} else {
		requireCode(t, err, collection.RetCNoSuchElement)
	}
}

func testTableIteratorRemove(t *testing.T, table collection.Table[int]) {
	fill(t, table, 10)

	// Probe for removal support; iterators over snapshot or read-only views
	// reject Remove.
	probe := table.Iterator()
	if _, err := probe.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if err := probe.Remove(); err != nil {
		var colErr *collection.Error
		if errors.As(err, &colErr) && colErr.Code == collection.RetCUnsupportedOperation {
			t.Skip()
		}
		t.Fatalf("Remove failed: %v", err)
	}

	// The probe removed element 0; removing twice for the same element is a
	// protocol violation.
	if err := probe.Remove(); err == nil {
		t.Error("second Remove should fail")
	}

	it := table.Iterator()

	// Remove before any Next violates the iterator protocol.
	if err := it.Remove(); err == nil {
		t.Error("Remove without prior Next should fail")
	} else {
		requireCode(t, err, collection.RetCIllegalState)
	}

	// Remove the remaining even elements.
	for it.HasNext() {
		v, err := it.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if v%2 == 0 {
			if err := it.Remove(); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
		}
	}

	want := []int{1, 3, 5, 7, 9}
	got := collection.ToSlice[int](table)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func testTableSplit(t *testing.T, table collection.Table[int]) {
	fill(t, table, 10)

	subs := table.Split(4)
	if len(subs) != 4 {
		t.Fatalf("expected 4 sub-views, got %d", len(subs))
	}

	// Partitions are contiguous, disjoint and cover all elements, with
	// sizes differing by at most one.
	var all []int
	minSize, maxSize := subs[0].Size(), subs[0].Size()
	for _, sub := range subs {
		if sub.Size() < minSize {
			minSize = sub.Size()
		}
		if sub.Size() > maxSize {
			maxSize = sub.Size()
		}
		all = append(all, collection.ToSlice[int](sub)...)
	}
	if maxSize-minSize > 1 {
		t.Errorf("partition sizes differ by more than one: min %d, max %d", minSize, maxSize)
	}
	if len(all) != 10 {
		t.Fatalf("partitions cover %d elements, want 10", len(all))
	}
	for i, v := range all {
		if v != i {
			t.Errorf("concatenated partitions: index %d = %d, want %d", i, v, i)
		}
	}

	// More partitions than elements yields one partition per element.
	small := table.Split(100)
	if len(small) != 10 {
		t.Errorf("Split(100) of 10 elements returned %d sub-views, want 10", len(small))
	}
}

func testTableClear(t *testing.T, table collection.Table[int]) {
	fill(t, table, 100)

	if err := table.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if table.Size() != 0 {
		t.Errorf("expected size 0 after Clear, got %d", table.Size())
	}

	// The table must be usable again.
	mustAdd(t, table, 42)
	v, err := table.Get(0)
	if err != nil || v != 42 {
		t.Errorf("Get(0) after Clear = %d, %v; want 42", v, err)
	}
}

func testTableClone(t *testing.T, table collection.Table[int]) {
	fill(t, table, 20)

	clone := table.Clone()
	if clone.Size() != 20 {
		t.Fatalf("clone size %d, want 20", clone.Size())
	}

	// Mutating the original must not affect the clone.
	if _, err := table.Set(0, -1); err != nil {
		t.Fatalf("Set on original failed: %v", err)
	}
	v, err := clone.Get(0)
	if err != nil {
		t.Fatalf("Get on clone failed: %v", err)
	}
	if v != 0 {
		t.Errorf("clone observed mutation of original: Get(0) = %d, want 0", v)
	}
}

func testForEachStop(t *testing.T, table collection.Table[int]) {
	fill(t, table, 100)

	visited := 0
	table.ForEach(func(v int) bool {
		visited++
		return visited < 10
	})
	if visited != 10 {
		t.Errorf("ForEach visited %d elements after early stop, want 10", visited)
	}
}
