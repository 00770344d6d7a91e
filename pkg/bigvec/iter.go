package bigvec

// Iterator walks the records of a vector front to back, decoding one
// record per step. The length is snapshotted when the iterator is
// created and never re-read; restarting means creating a new iterator.
// Iteration allocates nothing proportional to the record count.
type Iterator[T any] struct {
	vec  *Vec[T]
	len  int
	next int
	cur  T
	err  error
}

// Iter returns an iterator over the current records.
func (v *Vec[T]) Iter() *Iterator[T] {
	return &Iterator[T]{vec: v, len: int(v.Len())}
}

// Next advances to the following record. It returns false when the
// snapshot is exhausted or a record failed to decode; check Err to tell
// the two apart.
func (it *Iterator[T]) Next() bool {
	if it.err != nil || it.next >= it.len {
		return false
	}
	it.cur, it.err = it.vec.codec.Decode(it.vec.record(it.next))
	if it.err != nil {
		return false
	}
	it.next++
	return true
}

// Value returns the record decoded by the last successful Next.
func (it *Iterator[T]) Value() T {
	return it.cur
}

// Err returns the decode error that stopped iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}

// SlotIterator walks the records of a vector as mutable slots rather
// than decoded copies. The usual slot discipline applies to every slot
// it yields: no record-moving operation may run while any are held.
type SlotIterator[T any] struct {
	vec  *Vec[T]
	len  int
	next int
	cur  Slot[T]
}

// Slots returns a mutable iterator over the current records.
func (v *Vec[T]) Slots() *SlotIterator[T] {
	return &SlotIterator[T]{vec: v, len: int(v.Len())}
}

// Next advances to the following record, returning false when the
// snapshot is exhausted.
func (it *SlotIterator[T]) Next() bool {
	if it.next >= it.len {
		return false
	}
	it.cur = Slot[T]{raw: it.vec.record(it.next), codec: it.vec.codec}
	it.next++
	return true
}

// Value returns the slot selected by the last successful Next.
func (it *SlotIterator[T]) Value() Slot[T] {
	return it.cur
}
