package codec

import "encoding/binary"

// U64Width is the encoded size of a U64Codec record.
const U64Width = 8

// U64Codec packs unsigned 64-bit values as 8 little-endian bytes,
// ordered numerically. It is the simplest useful record type and the
// one the CLI and HTTP API operate on.
type U64Codec struct{}

// Size returns the record width in bytes.
func (U64Codec) Size() int { return U64Width }

// Encode writes v into dst as 8 little-endian bytes.
func (U64Codec) Encode(v uint64, dst []byte) error {
	if err := checkWidth(len(dst), U64Width); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(dst, v)
	return nil
}

// Decode reads an 8-byte little-endian value from src.
func (U64Codec) Decode(src []byte) (uint64, error) {
	if err := checkWidth(len(src), U64Width); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(src), nil
}

// Compare orders values numerically.
func (U64Codec) Compare(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
