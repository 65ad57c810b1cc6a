package collection

// --------------------------------------------------------------------------
// Table Helper Functions
// --------------------------------------------------------------------------

// Contains reports whether the table holds an element equal to the given one
// per the table's comparator.
func Contains[E any](t Table[E], element E) bool {
	return IndexOf(t, element) >= 0
}

// IndexOf returns the index of the first element equal to the given one per
// the table's comparator, or -1 if none matches.
func IndexOf[E any](t Table[E], element E) int {
	eq := t.Comparator().Equal
	index := -1
	i := 0
	t.ForEach(func(e E) bool {
		if eq(e, element) {
			index = i
			return false
		}
		i++
		return true
	})
	return index
}

// AddAll appends all given elements in order.
func AddAll[E any](t Table[E], elements ...E) error {
	for _, e := range elements {
		if err := t.AddLast(e); err != nil {
			return err
		}
	}
	return nil
}

// ToSlice copies the table's elements into a fresh slice in index order.
func ToSlice[E any](t Table[E]) []E {
	out := make([]E, 0, t.Size())
	t.ForEach(func(e E) bool {
		out = append(out, e)
		return true
	})
	return out
}

// --------------------------------------------------------------------------
// Map Helper Functions
// --------------------------------------------------------------------------

// Entries copies the map's entries into a fresh slice in iteration order.
func Entries[K, V any](m Map[K, V]) []MapEntry[K, V] {
	out := make([]MapEntry[K, V], 0, m.Size())
	m.ForEach(func(k K, v V) bool {
		out = append(out, MapEntry[K, V]{Key: k, Value: v})
		return true
	})
	return out
}

// PutAll inserts all given entries in order.
func PutAll[K, V any](m Map[K, V], entries ...MapEntry[K, V]) error {
	for _, e := range entries {
		if _, _, err := m.Put(e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}
