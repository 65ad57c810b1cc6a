package table

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

func TestSortSmall(t *testing.T) {
	table := newTable(t, 5, 3, 8, 1, 9, 2)

	if err := SortOrdered[int](table, compare.Ints()); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}

	assertElements(t, table, 1, 2, 3, 5, 8, 9)
}

func TestSortEdgeCases(t *testing.T) {
	// Empty and single-element tables are no-ops.
	empty := NewEngine(compare.Ints().Equality)
	if err := SortOrdered[int](empty, compare.Ints()); err != nil {
		t.Fatalf("Sort of empty table failed: %v", err)
	}

	single := newTable(t, 42)
	if err := SortOrdered[int](single, compare.Ints()); err != nil {
		t.Fatalf("Sort of single element failed: %v", err)
	}
	assertElements(t, single, 42)

	// Already sorted and reverse sorted.
	sorted := newTable(t, 1, 2, 3, 4, 5)
	if err := SortOrdered[int](sorted, compare.Ints()); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	assertElements(t, sorted, 1, 2, 3, 4, 5)

	reversed := newTable(t, 5, 4, 3, 2, 1)
	if err := SortOrdered[int](reversed, compare.Ints()); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	assertElements(t, reversed, 1, 2, 3, 4, 5)

	// Duplicates.
	dupes := newTable(t, 3, 1, 3, 1, 3)
	if err := SortOrdered[int](dupes, compare.Ints()); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}
	assertElements(t, dupes, 1, 1, 3, 3, 3)
}

func TestSortRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	table := NewEngine(compare.Ints().Equality)
	want := make([]int, 1000)
	for i := range want {
		v := rng.Intn(100)
		want[i] = v
		if err := table.AddLast(v); err != nil {
			t.Fatalf("AddLast failed: %v", err)
		}
	}
	sort.Ints(want)

	if err := SortOrdered[int](table, compare.Ints()); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}

	got := collection.ToSlice[int](table)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d = %d, want %d", i, got[i], want[i])
		}
	}
}

// Sorting a split sub-view only reorders that range.
func TestSortSubView(t *testing.T) {
	table := newTable(t, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0)

	subs := table.Split(2)
	if err := SortOrdered[int](subs[1], compare.Ints()); err != nil {
		t.Fatalf("Sort of sub-view failed: %v", err)
	}

	assertElements(t, table, 9, 8, 7, 6, 5, 0, 1, 2, 3, 4)
}

func TestSortDescending(t *testing.T) {
	table := newTable(t, 1, 5, 3)

	if err := Sort[int](table, func(a, b int) int { return b - a }); err != nil {
		t.Fatalf("Sort failed: %v", err)
	}

	assertElements(t, table, 5, 3, 1)
}
