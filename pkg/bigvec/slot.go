package bigvec

import "github.com/ssargent/brisinga/pkg/codec"

// Slot is a checked mutable window over a single record. It replaces
// free-standing references into the buffer: every read and write goes
// through the codec against a byte range that was bounds-checked when
// the slot was handed out, and the window is capped so it cannot reach
// neighbouring records.
//
// A slot aliases the vector's buffer. It must not outlive the vector
// view it came from, and while a slot is live no operation that moves
// records (Retain, InsertInOrder) may run; after one does, the slot
// may point at a different record's bytes.
type Slot[T any] struct {
	raw   []byte
	codec codec.Codec[T]
}

// Get decodes the record currently in the slot.
func (s Slot[T]) Get() (T, error) {
	return s.codec.Decode(s.raw)
}

// Set overwrites the record in the slot.
func (s Slot[T]) Set(elem T) error {
	return s.codec.Encode(elem, s.raw)
}

// Raw exposes the record's bytes for predicate-style inspection.
func (s Slot[T]) Raw() []byte {
	return s.raw
}
