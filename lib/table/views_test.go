package table

import (
	"errors"
	"strconv"
	"testing"

	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

func requireCode(t *testing.T, err error, code collection.RetCode) {
	t.Helper()
	var colErr *collection.Error
	if !errors.As(err, &colErr) {
		t.Fatalf("expected collection error with code %d, got %v", code, err)
	}
	if colErr.Code != code {
		t.Fatalf("expected error code %d, got %d (%v)", code, colErr.Code, err)
	}
}

func newTable(t *testing.T, elements ...int) collection.Table[int] {
	t.Helper()
	engine := NewEngine(compare.Ints().Equality)
	if err := collection.AddAll[int](engine, elements...); err != nil {
		t.Fatalf("AddAll failed: %v", err)
	}
	return engine
}

func assertElements(t *testing.T, table collection.Table[int], want ...int) {
	t.Helper()
	got := collection.ToSlice[int](table)
	if len(got) != len(want) {
		t.Fatalf("elements %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("elements %v, want %v", got, want)
		}
	}
}

// --------------------------------------------------------------------------
// Unmodifiable
// --------------------------------------------------------------------------

func TestUnmodifiableRejectsMutation(t *testing.T) {
	view := NewUnmodifiable[int](newTable(t, 1, 2, 3))

	if err := view.Add(4); err == nil {
		t.Error("Add should fail")
	} else {
		requireCode(t, err, collection.RetCUnsupportedOperation)
	}
	if _, err := view.Set(0, 9); err == nil {
		t.Error("Set should fail")
	}
	if _, err := view.Remove(0); err == nil {
		t.Error("Remove should fail")
	}
	if err := view.Clear(); err == nil {
		t.Error("Clear should fail")
	}

	// Reads still work.
	if view.Size() != 3 {
		t.Errorf("Size = %d, want 3", view.Size())
	}
	if v, err := view.Get(1); err != nil || v != 2 {
		t.Errorf("Get(1) = %d, %v", v, err)
	}
}

func TestUnmodifiableReflectsTarget(t *testing.T) {
	target := newTable(t, 1, 2, 3)
	view := NewUnmodifiable[int](target)

	if err := target.AddLast(4); err != nil {
		t.Fatalf("AddLast failed: %v", err)
	}
	if view.Size() != 4 {
		t.Errorf("view must reflect target mutations, size %d", view.Size())
	}
}

// --------------------------------------------------------------------------
// Reversed
// --------------------------------------------------------------------------

func TestReversedReads(t *testing.T) {
	view := NewReversed[int](newTable(t, 1, 2, 3, 4))

	assertElements(t, view, 4, 3, 2, 1)

	if v, _ := view.GetFirst(); v != 4 {
		t.Errorf("GetFirst = %d, want 4", v)
	}
	if v, _ := view.GetLast(); v != 1 {
		t.Errorf("GetLast = %d, want 1", v)
	}
}

func TestReversedMutations(t *testing.T) {
	target := newTable(t, 1, 2, 3)
	view := NewReversed[int](target)

	// Add appends at the view's tail, i.e. the target's head.
	if err := view.Add(0); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	assertElements(t, target, 0, 1, 2, 3)
	assertElements(t, view, 3, 2, 1, 0)

	if _, err := view.Set(0, 9); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	assertElements(t, target, 0, 1, 2, 9)

	if v, err := view.Remove(0); err != nil || v != 9 {
		t.Fatalf("Remove(0) = %d, %v", v, err)
	}
	assertElements(t, target, 0, 1, 2)
}

func TestReversedTwiceIsIdentity(t *testing.T) {
	target := newTable(t, 1, 2, 3)
	view := NewReversed(NewReversed[int](target))
	assertElements(t, view, 1, 2, 3)
}

// --------------------------------------------------------------------------
// Sub-Range
// --------------------------------------------------------------------------

func TestSubRange(t *testing.T) {
	target := newTable(t, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	sub, err := NewSub[int](target, 2, 6)
	if err != nil {
		t.Fatalf("NewSub failed: %v", err)
	}

	assertElements(t, sub, 2, 3, 4, 5)

	// Writes go through to the target at the offset position.
	if _, err := sub.Set(0, -1); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, _ := target.Get(2); v != -1 {
		t.Errorf("target.Get(2) = %d, want -1", v)
	}

	// Insert grows the sub-range.
	if err := sub.Insert(1, 99); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if sub.Size() != 5 {
		t.Errorf("sub size = %d, want 5", sub.Size())
	}
	if target.Size() != 11 {
		t.Errorf("target size = %d, want 11", target.Size())
	}

	// Out-of-range construction fails.
	if _, err := NewSub[int](target, 5, 100); err == nil {
		t.Error("NewSub beyond target size should fail")
	}
	if _, err := NewSub[int](target, 6, 3); err == nil {
		t.Error("NewSub with from > to should fail")
	}
}

func TestSubClear(t *testing.T) {
	target := newTable(t, 0, 1, 2, 3, 4, 5)
	sub, err := NewSub[int](target, 1, 4)
	if err != nil {
		t.Fatalf("NewSub failed: %v", err)
	}

	if err := sub.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if sub.Size() != 0 {
		t.Errorf("sub size = %d, want 0", sub.Size())
	}
	assertElements(t, target, 0, 4, 5)
}

// --------------------------------------------------------------------------
// Sorted
// --------------------------------------------------------------------------

func TestSortedViewAdd(t *testing.T) {
	view := NewSorted[int](NewEngine(compare.Ints().Equality), compare.Ints())

	for _, v := range []int{5, 3, 8, 1, 9, 2} {
		if err := view.Add(v); err != nil {
			t.Fatalf("Add(%d) failed: %v", v, err)
		}
	}

	assertElements(t, view, 1, 2, 3, 5, 8, 9)
}

func TestSortedViewRejectsPositionalMutation(t *testing.T) {
	view := NewSorted[int](NewEngine(compare.Ints().Equality), compare.Ints())

	if err := view.Insert(0, 1); err == nil {
		t.Error("Insert should fail")
	} else {
		requireCode(t, err, collection.RetCUnsupportedOperation)
	}
	if _, err := view.Set(0, 1); err == nil {
		t.Error("Set should fail")
	}
	if err := view.AddFirst(1); err == nil {
		t.Error("AddFirst should fail")
	}
	if err := view.AddLast(1); err == nil {
		t.Error("AddLast should fail")
	}
}

// --------------------------------------------------------------------------
// Mapped
// --------------------------------------------------------------------------

func TestMappedView(t *testing.T) {
	target := newTable(t, 1, 2, 3)
	view := NewMapped[int, string](target, strconv.Itoa, compare.Strings().Equality)

	if view.Size() != 3 {
		t.Errorf("Size = %d, want 3", view.Size())
	}
	if v, err := view.Get(1); err != nil || v != "2" {
		t.Errorf("Get(1) = %q, %v", v, err)
	}

	var got []string
	view.ForEach(func(s string) bool {
		got = append(got, s)
		return true
	})
	if len(got) != 3 || got[0] != "1" || got[2] != "3" {
		t.Errorf("ForEach yielded %v", got)
	}

	if err := view.Add("4"); err == nil {
		t.Error("mapped view must be read-only")
	} else {
		requireCode(t, err, collection.RetCUnsupportedOperation)
	}
}

// --------------------------------------------------------------------------
// Filtered
// --------------------------------------------------------------------------

func TestFilteredView(t *testing.T) {
	target := newTable(t, 1, 2, 3, 4, 5, 6)
	even := func(v int) bool { return v%2 == 0 }
	view := NewFiltered[int](target, even)

	if view.Size() != 3 {
		t.Errorf("Size = %d, want 3", view.Size())
	}
	assertElements(t, view, 2, 4, 6)

	if v, err := view.Get(1); err != nil || v != 4 {
		t.Errorf("Get(1) = %d, %v; want 4", v, err)
	}

	// Matching elements may be added, non-matching ones are rejected.
	if err := view.Add(8); err != nil {
		t.Errorf("Add(8) failed: %v", err)
	}
	if err := view.Add(7); err == nil {
		t.Error("Add of non-matching element should fail")
	} else {
		requireCode(t, err, collection.RetCInvalidArgument)
	}

	// Removal through the view removes from the target.
	if v, err := view.Remove(0); err != nil || v != 2 {
		t.Fatalf("Remove(0) = %d, %v; want 2", v, err)
	}
	assertElements(t, target, 1, 3, 4, 5, 6, 8)

	// Clear removes only the matching elements.
	if err := view.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	assertElements(t, target, 1, 3, 5)
}
