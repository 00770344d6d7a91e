package codec

import "fmt"

// Codec packs and unpacks a single fixed-width record type.
//
// Implementations must use a constant width: Size() returns the same
// value for the lifetime of the codec, and Encode/Decode operate on
// exactly Size() bytes.
type Codec[T any] interface {
	// Size returns the encoded width of one record in bytes.
	Size() int

	// Encode writes the fixed-width encoding of elem into dst.
	// dst is exactly Size() bytes long.
	Encode(elem T, dst []byte) error

	// Decode reads one record from src, which is exactly Size() bytes long.
	Decode(src []byte) (T, error)
}

// OrderedCodec extends Codec with the strict total order required by
// sorted collections. Compare must be consistent: exactly one of
// Compare(a, b) < 0, == 0, > 0 holds for any pair.
type OrderedCodec[T any] interface {
	Codec[T]

	// Compare returns a negative number if a sorts before b, zero if
	// they carry the same key, and a positive number otherwise.
	Compare(a, b T) int
}

// checkWidth verifies that a buffer handed to Encode or Decode matches
// the codec's fixed width.
func checkWidth(got, want int) error {
	if got != want {
		return fmt.Errorf("codec: buffer is %d bytes, record width is %d", got, want)
	}
	return nil
}
