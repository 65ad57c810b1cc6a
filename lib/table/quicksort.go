package table

import (
	"github.com/ValentinKolb/fcol/lib/collection"
	"github.com/ValentinKolb/fcol/lib/compare"
)

// --------------------------------------------------------------------------
// In-Place Sort
// --------------------------------------------------------------------------

// Sort orders the table in place using an in-place quicksort running against
// the table's Get/Set operations, so it works on any table or view that
// supports positional writes.
func Sort[E any](t collection.Table[E], cmp func(a, b E) int) error {
	return quicksort(t, 0, t.Size()-1, cmp)
}

// SortOrdered sorts the table with the given ordering.
func SortOrdered[E any](t collection.Table[E], order compare.Order[E]) error {
	return Sort(t, order.Compare)
}

func quicksort[E any](t collection.Table[E], first, last int, cmp func(a, b E) int) error {
	if first >= last {
		return nil
	}
	pivot, err := partition(t, first, last, cmp)
	if err != nil {
		return err
	}
	if err := quicksort(t, first, pivot-1, cmp); err != nil {
		return err
	}
	return quicksort(t, pivot+1, last, cmp)
}

// partition arranges [first, last] around the first element as pivot and
// returns the pivot's final index.
func partition[E any](t collection.Table[E], first, last int, cmp func(a, b E) int) (int, error) {
	pivot, err := t.Get(first)
	if err != nil {
		return 0, err
	}
	up, down := first, last
	for {
		for up < last {
			e, err := t.Get(up)
			if err != nil {
				return 0, err
			}
			if cmp(e, pivot) > 0 {
				break
			}
			up++
		}
		for down > first {
			e, err := t.Get(down)
			if err != nil {
				return 0, err
			}
			if cmp(e, pivot) <= 0 {
				break
			}
			down--
		}
		if up >= down {
			break
		}
		if err := swap(t, up, down); err != nil {
			return 0, err
		}
	}
	// Move the pivot into its slot.
	e, err := t.Get(down)
	if err != nil {
		return 0, err
	}
	if _, err := t.Set(first, e); err != nil {
		return 0, err
	}
	if _, err := t.Set(down, pivot); err != nil {
		return 0, err
	}
	return down, nil
}

func swap[E any](t collection.Table[E], i, j int) error {
	a, err := t.Get(i)
	if err != nil {
		return err
	}
	b, err := t.Set(j, a)
	if err != nil {
		return err
	}
	_, err = t.Set(i, b)
	return err
}
