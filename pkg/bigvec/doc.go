// Package bigvec provides an in-place vector of fixed-width binary
// records over a caller-provided, fixed-capacity byte buffer.
//
// The package exists for constrained execution environments where
// "deserialize the whole collection, mutate, reserialize" is
// infeasible: every operation works directly on the buffer, and bulk
// transformations keep their working memory independent of the record
// count.
//
// # Buffer Layout
//
// A vector buffer is laid out as:
//
//	[Count(4)][Record 0(W)][Record 1(W)]...[Record Count-1(W)]
//
// Fields:
//   - Count: 32-bit record count (little-endian)
//   - Record i: the fixed-width encoding of the i-th element, W bytes,
//     produced by the codec supplied at view construction
//
// Capacity equals the full length of the buffer and is fixed for the
// lifetime of the view. Growing a collection means provisioning a
// larger buffer externally and copying the bytes over; the vector never
// reallocates.
//
// # Views
//
// A Vec or OrderedVec is a short-lived view: construct one over an
// existing buffer, perform an operation, discard it. The buffer
// persists; the view does not. Between operations the invariants hold
// that 4 + Count*W never exceeds the buffer length and the records are
// contiguous with no gaps.
//
// OrderedVec additionally treats the records as a sorted set: strictly
// ascending with no duplicate keys. That invariant is maintained by
// InsertInOrder and assumed by BinarySearch and Find. Mixing Push into
// a searched buffer breaks it, which is why Push is deprecated.
//
// # Failure Semantics
//
// Every mutating operation validates capacity, bounds and uniqueness
// before writing any byte, the length prefix included. On error the
// buffer is byte-for-byte unchanged; there is no partial length update
// and no partial move. Errors are typed (ErrCapacityExceeded,
// ErrIndexOutOfRange, ErrDuplicateKey, ErrBufferTooSmall) and never
// retried internally, since retrying is meaningless without a larger
// buffer.
//
// # Aliasing Discipline
//
// Slot values returned by Slot, MutSlice, FindSlot and SlotIterator
// alias the underlying buffer. Each covers exactly one record's byte
// range, capped so it cannot reach a neighbour, and the slots of one
// MutSlice call are disjoint by construction. While any slot is live,
// no operation that moves records may run on the same buffer, and a
// vector must never be shared between goroutines. Execution is
// single-threaded by contract: operations complete synchronously, with
// no internal blocking or cancellation.
//
// # Performance
//
// Retain performs a single left-to-right scan and shifts each surviving
// run with one overlap-safe block move, so compaction moves O(n) bytes
// total rather than O(n^2). InsertInOrder costs O(log n) comparisons
// plus one block move of the tail. Iteration decodes one record at a
// time and never materializes the collection.
package bigvec
