package bigvec

import (
	"encoding/binary"
	"fmt"

	"github.com/ssargent/brisinga/pkg/codec"
)

// lenPrefixSize is the width of the record-count prefix at the start of
// every vector buffer.
const lenPrefixSize = 4

// Vec is a growable collection of fixed-width records living entirely
// inside a caller-provided byte buffer. The buffer starts with a 4-byte
// little-endian record count; record i occupies bytes
// [4+i*W, 4+(i+1)*W) where W is the codec's record width. Capacity is
// the full length of the buffer and is never grown by the vector;
// callers needing more room must provision a larger buffer and carry
// the bytes over.
//
// No operation ever materializes the whole collection off the buffer:
// bulk transformations work through overlap-safe block moves and keep
// working memory independent of the record count.
//
// A Vec is not safe for concurrent use, and no two live views should
// share one buffer.
type Vec[T any] struct {
	buf     []byte
	codec   codec.Codec[T]
	width   int
	scratch []byte
}

// New wraps buf in an unordered vector view. The buffer must be large
// enough for the length prefix, and the recorded count must fit the
// buffer; otherwise New fails with ErrBufferTooSmall and the buffer is
// left untouched.
func New[T any](buf []byte, c codec.Codec[T]) (*Vec[T], error) {
	width := c.Size()
	if width <= 0 {
		return nil, fmt.Errorf("bigvec: codec reports record width %d", width)
	}
	if len(buf) < lenPrefixSize {
		return nil, fmt.Errorf("bigvec: buffer of %d bytes cannot hold the length prefix: %w",
			len(buf), ErrBufferTooSmall)
	}
	v := &Vec[T]{buf: buf, codec: c, width: width, scratch: make([]byte, width)}
	if lenPrefixSize+int(v.Len())*width > len(buf) {
		return nil, fmt.Errorf("bigvec: recorded count %d exceeds buffer capacity: %w",
			v.Len(), ErrBufferTooSmall)
	}
	return v, nil
}

// Len returns the number of records currently stored.
func (v *Vec[T]) Len() uint32 {
	return binary.LittleEndian.Uint32(v.buf[:lenPrefixSize])
}

// IsEmpty reports whether the vector has no records.
func (v *Vec[T]) IsEmpty() bool {
	return v.Len() == 0
}

// Cap returns the maximum number of records the buffer can hold.
func (v *Vec[T]) Cap() int {
	return (len(v.buf) - lenPrefixSize) / v.width
}

// Width returns the fixed record width in bytes.
func (v *Vec[T]) Width() int {
	return v.width
}

func (v *Vec[T]) setLen(n uint32) {
	binary.LittleEndian.PutUint32(v.buf[:lenPrefixSize], n)
}

// offset returns the byte offset of record i. The caller has already
// bounds-checked i.
func (v *Vec[T]) offset(i int) int {
	return lenPrefixSize + i*v.width
}

// record returns the byte window of record i, capped so the window
// cannot reach past its own end.
func (v *Vec[T]) record(i int) []byte {
	start := v.offset(i)
	end := start + v.width
	return v.buf[start:end:end]
}

// Push appends a record at the end without regard for ordering.
//
// Deprecated: Push breaks the sorted-set invariant that InsertInOrder
// and Find rely on; use it only for collections that are never
// searched. It remains for buffers written before ordering was
// enforced.
func (v *Vec[T]) Push(elem T) error {
	n := int(v.Len())
	if lenPrefixSize+(n+1)*v.width > len(v.buf) {
		return fmt.Errorf("bigvec: push of record %d: %w", n, ErrCapacityExceeded)
	}
	if err := v.codec.Encode(elem, v.scratch); err != nil {
		return err
	}
	copy(v.record(n)[:v.width], v.scratch)
	v.setLen(uint32(n + 1))
	return nil
}

// Retain keeps every record the predicate accepts and discards the
// rest, preserving the survivors' relative order. The predicate sees
// each record's raw encoding. Each contiguous run of survivors is
// shifted left in one block move, so total data movement is linear in
// the buffer and working memory is constant.
func (v *Vec[T]) Retain(predicate func(rec []byte) bool) error {
	n := int(v.Len())
	removed := 0
	dst := lenPrefixSize
	dataEnd := v.offset(n)

	for start := lenPrefixSize; start < dataEnd; start += v.width {
		if predicate(v.buf[start : start+v.width]) {
			continue
		}
		gap := removed * v.width
		if removed > 0 {
			copy(v.buf[dst:start-gap], v.buf[dst+gap:start])
		}
		dst = start - gap
		removed++
	}

	if removed > 0 {
		gap := removed * v.width
		copy(v.buf[dst:dataEnd-gap], v.buf[dst+gap:dataEnd])
	}
	v.setLen(uint32(n - removed))
	return nil
}

// Get returns a decoded copy of record i, or ErrIndexOutOfRange when i
// is not a live index.
func (v *Vec[T]) Get(i int) (T, error) {
	if i < 0 || i >= int(v.Len()) {
		var zero T
		return zero, fmt.Errorf("bigvec: index %d with length %d: %w", i, v.Len(), ErrIndexOutOfRange)
	}
	return v.codec.Decode(v.record(i))
}

// Slot returns a checked mutable window over record i. See Slot's
// documentation for the aliasing discipline.
func (v *Vec[T]) Slot(i int) (Slot[T], error) {
	if i < 0 || i >= int(v.Len()) {
		return Slot[T]{}, fmt.Errorf("bigvec: index %d with length %d: %w", i, v.Len(), ErrIndexOutOfRange)
	}
	return Slot[T]{raw: v.record(i), codec: v.codec}, nil
}

// MutSlice returns n mutable slots over the contiguous records
// [skip, skip+n). It fails with ErrIndexOutOfRange, returning no slots,
// when the range reaches past the current length. The returned slots
// cover disjoint byte ranges by construction; while any of them is
// live, no other operation may touch the vector.
func (v *Vec[T]) MutSlice(skip, n int) ([]Slot[T], error) {
	if skip < 0 || n < 0 || skip+n > int(v.Len()) {
		return nil, fmt.Errorf("bigvec: records [%d, %d) with length %d: %w",
			skip, skip+n, v.Len(), ErrIndexOutOfRange)
	}
	slots := make([]Slot[T], n)
	for i := range slots {
		slots[i] = Slot[T]{raw: v.record(skip + i), codec: v.codec}
	}
	return slots, nil
}

// OrderedVec is a Vec whose records form a sorted set: strictly
// ascending by the codec's order, no duplicate keys. The invariant is
// maintained by InsertInOrder; mixing Push into the same buffer breaks
// it, after which search results are undefined.
type OrderedVec[T any] struct {
	Vec[T]
	cmp func(a, b T) int
}

// NewOrdered wraps buf in a sorted vector view.
func NewOrdered[T any](buf []byte, c codec.OrderedCodec[T]) (*OrderedVec[T], error) {
	v, err := New[T](buf, c)
	if err != nil {
		return nil, err
	}
	return &OrderedVec[T]{Vec: *v, cmp: c.Compare}, nil
}

// BinarySearch locates elem's key. It returns (index, true) when a
// record with the same key exists, and (insertion point, false)
// otherwise; the insertion point is the index in [0, Len()] at which
// elem would keep the records ascending. A decode failure of a probed
// record is returned as an error.
func (v *OrderedVec[T]) BinarySearch(elem T) (int, bool, error) {
	lo, hi := 0, int(v.Len())
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		cur, err := v.codec.Decode(v.record(mid))
		if err != nil {
			return 0, false, err
		}
		switch c := v.cmp(cur, elem); {
		case c == 0:
			return mid, true, nil
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false, nil
}

// InsertInOrder places elem at its sorted position. It fails with
// ErrDuplicateKey when a record with the same key is already present
// and with ErrCapacityExceeded when the buffer has no room; in both
// cases the buffer is unchanged. The tail is shifted right in a single
// block move before the new record is written.
func (v *OrderedVec[T]) InsertInOrder(elem T) error {
	index, found, err := v.BinarySearch(elem)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("bigvec: record already present at index %d: %w", index, ErrDuplicateKey)
	}

	n := int(v.Len())
	if lenPrefixSize+(n+1)*v.width > len(v.buf) {
		return fmt.Errorf("bigvec: insert of record %d: %w", n, ErrCapacityExceeded)
	}
	if err := v.codec.Encode(elem, v.scratch); err != nil {
		return err
	}

	start := v.offset(index)
	dataEnd := v.offset(n)
	copy(v.buf[start+v.width:dataEnd+v.width], v.buf[start:dataEnd])
	copy(v.buf[start:start+v.width], v.scratch)
	v.setLen(uint32(n + 1))
	return nil
}

// Find returns a decoded copy of the record matching elem's key, and
// whether one exists.
func (v *OrderedVec[T]) Find(elem T) (T, bool, error) {
	index, found, err := v.BinarySearch(elem)
	if err != nil || !found {
		var zero T
		return zero, false, err
	}
	rec, err := v.Get(index)
	return rec, err == nil, err
}

// FindSlot returns a mutable slot over the record matching elem's key,
// and whether one exists. Rewriting the record's key through the slot
// breaks the sorted-set invariant; only the payload should change.
func (v *OrderedVec[T]) FindSlot(elem T) (Slot[T], bool, error) {
	index, found, err := v.BinarySearch(elem)
	if err != nil || !found {
		return Slot[T]{}, false, err
	}
	slot, err := v.Slot(index)
	return slot, err == nil, err
}
