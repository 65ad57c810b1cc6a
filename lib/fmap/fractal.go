package fmap

const (
	// emptinessLevel bounds the load factor of a hash block: the block grows
	// when fewer than 1/(1<<emptinessLevel) of its slots would stay free and
	// shrinks when it is less than 1/(1<<(emptinessLevel+1)) full.
	emptinessLevel = 2

	// initialBlockCapacity is the slot count of a fresh hash block.
	initialBlockCapacity = 1 << (emptinessLevel + 1)
)

// entry is a key/value pair stored in a hash block. The hash is cached so
// probing and resizing never recompute it; next/prev chain the entries in
// insertion order.
type entry[K, V any] struct {
	key   K
	value V
	hash  uint64
	next  *entry[K, V]
	prev  *entry[K, V]
}

// hashBlock is an open-addressing slot array with linear probing. Slot
// lookup starts at hash & mask and walks forward to the first match or free
// slot; removal back-shifts displaced entries instead of leaving tombstones,
// so a probe chain is always contiguous.
type hashBlock[K, V any] struct {
	slots []*entry[K, V]
	count int
	equal func(a, b K) bool
}

func newHashBlock[K, V any](equal func(a, b K) bool) *hashBlock[K, V] {
	return &hashBlock[K, V]{
		slots: make([]*entry[K, V], initialBlockCapacity),
		equal: equal,
	}
}

// indexOf returns the slot holding the given key, or -1 if absent.
func (b *hashBlock[K, V]) indexOf(key K, hash uint64) int {
	mask := uint64(len(b.slots) - 1)
	i := int(hash & mask)
	for {
		e := b.slots[i]
		if e == nil {
			return -1
		}
		if e.hash == hash && b.equal(e.key, key) {
			return i
		}
		i = int(uint64(i+1) & mask)
	}
}

// getEntry returns the entry for the given key, or nil.
func (b *hashBlock[K, V]) getEntry(key K, hash uint64) *entry[K, V] {
	i := b.indexOf(key, hash)
	if i < 0 {
		return nil
	}
	return b.slots[i]
}

// addEntry places a new entry, growing the block first if the insertion
// would violate the emptiness invariant. The caller guarantees the key is
// not already present.
func (b *hashBlock[K, V]) addEntry(e *entry[K, V]) {
	if (b.count+1)<<emptinessLevel > len(b.slots) {
		b.resize(len(b.slots) << 1)
	}
	b.place(e)
	b.count++
}

// place probes from the entry's ideal slot to the first free one.
func (b *hashBlock[K, V]) place(e *entry[K, V]) {
	mask := uint64(len(b.slots) - 1)
	i := int(e.hash & mask)
	for b.slots[i] != nil {
		i = int(uint64(i+1) & mask)
	}
	b.slots[i] = e
}

// removeEntry removes and returns the entry for the given key, or nil if
// absent. After clearing the slot it walks the probe chain forward and
// back-shifts every entry whose ideal slot is no longer reachable through
// the hole, keeping the open-addressing invariant without tombstones.
func (b *hashBlock[K, V]) removeEntry(key K, hash uint64) *entry[K, V] {
	i := b.indexOf(key, hash)
	if i < 0 {
		return nil
	}
	removed := b.slots[i]
	b.slots[i] = nil
	mask := len(b.slots) - 1
	j := i
	for {
		j = (j + 1) & mask
		e := b.slots[j]
		if e == nil {
			break
		}
		ideal := int(e.hash & uint64(mask))
		// Shift e into the hole if its ideal slot does not lie in the
		// cyclic range (i, j].
		if (j > i && (ideal <= i || ideal > j)) || (j < i && ideal <= i && ideal > j) {
			b.slots[i] = e
			b.slots[j] = nil
			i = j
		}
	}
	b.count--
	if len(b.slots) > initialBlockCapacity && b.count<<(emptinessLevel+1) <= len(b.slots) {
		b.resize(len(b.slots) >> 1)
	}
	return removed
}

// resize reallocates the slot array and re-probes every entry into it.
func (b *hashBlock[K, V]) resize(capacity int) {
	old := b.slots
	b.slots = make([]*entry[K, V], capacity)
	for _, e := range old {
		if e != nil {
			b.place(e)
		}
	}
}

func (b *hashBlock[K, V]) clear() {
	b.slots = make([]*entry[K, V], initialBlockCapacity)
	b.count = 0
}
