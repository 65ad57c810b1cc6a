package table

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

// Constants for the fractal block geometry
const (
	blockShift  = 10              // Index bits delegated to each nesting level
	maxLeafSize = 1 << blockShift // Maximum slot array length (1024)
	minLeafSize = 16              // Initial slot array length of the root leaf
)

// --------------------------------------------------------------------------
// Fractal Block
// --------------------------------------------------------------------------

// block is the recursive storage primitive of the table engine: an array of
// slots whose entries are either raw elements (leaf, shift == 0) or nested
// blocks of the same shape (shift > 0). The structure is self-similar at any
// scale, which is what makes insertion/deletion cost independent of the
// total size.
//
// offset is the index of the first element (modulo the block capacity); all
// index arithmetic is circular. Children are owned exclusively and allocated
// lazily on first use of a slot.
type block[E any] struct {
	// offset is the index of the first element (modulo length << shift).
	offset int
	// shift is the index shift, zero for leaf blocks.
	shift int
	// slots holds raw elements (leaf blocks only).
	slots []E
	// kids holds nested blocks (non-leaf blocks only). A nil kid has never
	// been touched and stands for a run of zero values.
	kids []*block[E]
}

// newLeaf creates the initial root block.
func newLeaf[E any]() *block[E] {
	return &block[E]{shift: 0, slots: make([]E, minLeafSize)}
}

// newInner creates an empty block one level deeper than the given shift.
func newInner[E any](shift int) *block[E] {
	return &block[E]{shift: shift, kids: make([]*block[E], 2)}
}

// length returns the slot array length (power of two).
func (b *block[E]) length() int {
	if b.shift == 0 {
		return len(b.slots)
	}
	return len(b.kids)
}

// capacity returns the number of elements this block can hold.
func (b *block[E]) capacity() int {
	return b.length() << b.shift
}

// child returns the nested block at slot i, allocating it on first use.
// Children are always allocated at full size so sibling boundaries stay
// aligned to multiples of 1 << shift.
func (b *block[E]) child(i int) *block[E] {
	if c := b.kids[i]; c != nil {
		return c
	}
	var c *block[E]
	if b.shift-blockShift == 0 {
		c = &block[E]{shift: 0, slots: make([]E, maxLeafSize)}
	} else {
		c = &block[E]{shift: b.shift - blockShift, kids: make([]*block[E], maxLeafSize)}
	}
	b.kids[i] = c
	return c
}

// --------------------------------------------------------------------------
// Element Access
// --------------------------------------------------------------------------

// get returns the element at the given index (modulo capacity).
// It never mutates the structure, so concurrent readers are safe as long as
// no writer is active.
func (b *block[E]) get(index int) E {
	i := ((index + b.offset) >> b.shift) & (b.length() - 1)
	if b.shift == 0 {
		return b.slots[i]
	}
	c := b.kids[i]
	if c == nil {
		var zero E
		return zero
	}
	return c.get(index + b.offset)
}

// set replaces the element at the given index (modulo capacity) and returns
// the previous element.
func (b *block[E]) set(index int, element E) E {
	i := ((index + b.offset) >> b.shift) & (b.length() - 1)
	if b.shift != 0 {
		return b.child(i).set(index+b.offset, element)
	}
	previous := b.slots[i]
	b.slots[i] = element
	return previous
}

// --------------------------------------------------------------------------
// Shift Operations
// --------------------------------------------------------------------------

// shiftLeft moves the elements (]last - length, last] modulo capacity) one
// position to the left and stores the inserted element at position last.
// No shift if length (modulo capacity) is zero.
//
// At leaf level this is an array copy with a single wrap split; at non-leaf
// levels only the boundary elements move between adjacent children while the
// interior children adjust their offset, which keeps the cost proportional
// to the distance, not to the block size.
func (b *block[E]) shiftLeft(inserted E, last, length int) {
	mask := (b.length() << b.shift) - 1
	tail := (last + b.offset) & mask
	head := (last + b.offset - length) & mask
	switch {
	case b.shift == 0:
		n := tail - head
		if head > tail { // Wrapping
			copy(b.slots[head:mask], b.slots[head+1:mask+1])
			b.slots[mask] = b.slots[0]
			n = tail
		}
		copy(b.slots[tail-n:tail], b.slots[tail-n+1:tail+1])
		b.slots[tail] = inserted
	case (head <= tail) && ((head >> b.shift) == (tail >> b.shift)):
		// Shift local to one child (no wrapping).
		b.child(head >> b.shift).shiftLeft(inserted, tail, length)
	default:
		low := head >> b.shift
		high := 0
		if low != b.length()-1 {
			high = low + 1
		}
		b.child(low).shiftLeft(b.child(high).get(0), -1, mask-head)
		for high != (tail >> b.shift) {
			low = high
			high = 0
			if low != b.length()-1 {
				high = low + 1
			}
			b.child(low).offset++ // Full shift left.
			b.child(low).set(-1, b.child(high).get(0))
		}
		b.child(high).shiftLeft(inserted, tail, tail)
	}
}

// shiftRight moves the elements ([first, first + length[ modulo capacity)
// one position to the right and stores the inserted element at position
// first. No shift if length (modulo capacity) is zero.
func (b *block[E]) shiftRight(inserted E, first, length int) {
	mask := (b.length() << b.shift) - 1
	head := (first + b.offset) & mask
	tail := (first + b.offset + length) & mask
	switch {
	case b.shift == 0:
		n := tail - head
		if head > tail { // Wrapping
			copy(b.slots[1:tail+1], b.slots[0:tail])
			b.slots[0] = b.slots[mask]
			n = mask - head
		}
		copy(b.slots[head+1:head+1+n], b.slots[head:head+n])
		b.slots[head] = inserted
	case (head <= tail) && ((head >> b.shift) == (tail >> b.shift)):
		// Shift local to one child (no wrapping).
		b.child(head >> b.shift).shiftRight(inserted, head, length)
	default:
		high := tail >> b.shift
		low := b.length() - 1
		if high != 0 {
			low = high - 1
		}
		b.child(high).shiftRight(b.child(low).get(-1), 0, tail)
		for low != (head >> b.shift) {
			high = low
			low = b.length() - 1
			if high != 0 {
				low = high - 1
			}
			b.child(high).offset-- // Full shift right.
			b.child(high).set(0, b.child(low).get(-1))
		}
		b.child(low).shiftRight(inserted, head, mask-head)
	}
}

// --------------------------------------------------------------------------
// Structural Resize
// --------------------------------------------------------------------------

// upsize doubles the capacity of this block and returns the new root: the
// slot array is doubled in place until it reaches the maximum block size,
// after which the block is wrapped as the first child of a new, deeper
// block (increasing the shift).
func (b *block[E]) upsize() *block[E] {
	b.offset &= (b.length() << b.shift) - 1 // Makes it positive.
	if b.length() >= maxLeafSize {          // Creates outer fractal.
		t := newInner[E](b.shift + blockShift)
		t.offset = b.offset
		b.offset = 0
		t.kids[0] = b
		t.kids[1] = b.extract(0, t.offset)
		return t
	}
	i := b.offset >> b.shift
	if b.shift == 0 {
		tmp := make([]E, len(b.slots)<<1)
		copy(tmp[i:], b.slots[i:])
		copy(tmp[len(b.slots):], b.slots[:i])
		b.slots = tmp
	} else {
		tmp := make([]*block[E], len(b.kids)<<1)
		copy(tmp[i:], b.kids[i:])
		copy(tmp[len(b.kids):], b.kids[:i])
		tmp[len(b.kids)+i] = b.child(i).extract(0, b.offset)
		b.kids = tmp
	}
	return b
}

// downsize halves the capacity of this block and returns the new root.
// Sub-block boundaries are first aligned against the offset (shifting at
// most one level's worth of elements, whichever direction is shorter), then
// the unused half of the slot array is discarded.
func (b *block[E]) downsize(minSize int) *block[E] {
	if b.length() == 1 {
		c := b.child(0)
		c.offset += b.offset
		return c.downsize(minSize)
	}
	length := b.length() >> 1 // New length.
	alignment := b.offset & ((1 << b.shift) - 1)
	if alignment != 0 { // Align subtables.
		var zero E
		if alignment <= (1 << (b.shift - 1)) { // Left shift.
			for i := 0; i < alignment; i++ {
				b.shiftLeft(zero, minSize-1, minSize)
				b.offset--
			}
		} else { // Right shift.
			alignment = (1 << b.shift) - alignment
			for i := 0; i < alignment; i++ {
				b.shiftRight(zero, 0, minSize)
				b.offset++
			}
		}
	}
	i := (b.offset >> b.shift) & (b.length() - 1)
	if b.shift == 0 {
		tmp := make([]E, length)
		if i+length > len(b.slots) { // Wrapping
			copy(tmp[len(b.slots)-i:], b.slots[:i-length])
			length = len(b.slots) - i
		}
		copy(tmp, b.slots[i:i+length])
		b.slots = tmp
	} else {
		tmp := make([]*block[E], length)
		if i+length > len(b.kids) { // Wrapping
			copy(tmp[len(b.kids)-i:], b.kids[:i-length])
			length = len(b.kids) - i
		}
		copy(tmp, b.kids[i:i+length])
		b.kids = tmp
	}
	b.offset = 0
	return b
}

// extract removes the elements ([first, first + length[ modulo capacity)
// from this block and returns them as a new block of the same shape.
// Nothing is extracted if length (modulo capacity) is zero.
func (b *block[E]) extract(first, length int) *block[E] {
	result := &block[E]{shift: b.shift, offset: b.offset}
	if b.shift == 0 {
		result.slots = make([]E, len(b.slots))
	} else {
		result.kids = make([]*block[E], len(b.kids))
	}
	mask := (b.length() << b.shift) - 1
	head := (first + b.offset) & mask
	tail := (first + b.offset + length) & mask
	hh := head >> b.shift
	tt := tail >> b.shift
	if hh != tt {
		n := tt - hh
		if head > tail { // Wrapping
			b.moveSlots(result, 0, 0, tt)
			n = b.length() - hh
		}
		b.moveSlots(result, hh, hh, n)
		if b.shift != 0 {
			b.kids[hh] = result.child(hh).extract(0, head)
			result.kids[tt] = b.child(tt).extract(0, tail)
		}
	} else { // Head and tail in the same child.
		if head > tail { // Wrapping.
			b.switchWith(result)
			b.kids[hh] = result.child(hh).extract(tail, head-tail)
		} else if b.shift != 0 {
			result.kids[hh] = b.child(hh).extract(head, tail-head)
		}
	}
	return result
}

// moveSlots copies n slots from this block into dst and clears the source
// slots (so extracted elements are not referenced twice).
func (b *block[E]) moveSlots(dst *block[E], from, to, n int) {
	if b.shift == 0 {
		var zero E
		copy(dst.slots[to:to+n], b.slots[from:from+n])
		for i := from; i < from+n; i++ {
			b.slots[i] = zero
		}
		return
	}
	copy(dst.kids[to:to+n], b.kids[from:from+n])
	for i := from; i < from+n; i++ {
		b.kids[i] = nil
	}
}

// switchWith exchanges the slot arrays of the two blocks.
func (b *block[E]) switchWith(that *block[E]) {
	b.slots, that.slots = that.slots, b.slots
	b.kids, that.kids = that.kids, b.kids
}
