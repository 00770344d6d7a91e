package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/ssargent/brisinga/pkg/fee"
)

// FeeWidth is the encoded size of a fee record.
const FeeWidth = 16

// FeeCodec packs fee ratios as [numerator(8)][denominator(8)], both
// little-endian. Decoded values are re-validated, since stored bytes
// can encode any bit pattern. Fees are ordered by rate, so two fees
// that reduce to the same ratio collide as duplicate keys.
type FeeCodec struct{}

// Size returns the record width in bytes.
func (FeeCodec) Size() int { return FeeWidth }

// Encode writes f into dst.
func (FeeCodec) Encode(f fee.Fee, dst []byte) error {
	if err := checkWidth(len(dst), FeeWidth); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(dst[0:8], f.Numerator())
	binary.LittleEndian.PutUint64(dst[8:16], f.Denominator())
	return nil
}

// Decode reads and validates a fee from src.
func (FeeCodec) Decode(src []byte) (fee.Fee, error) {
	if err := checkWidth(len(src), FeeWidth); err != nil {
		return fee.Fee{}, err
	}
	var f fee.Fee
	if err := f.UnmarshalBinary(src); err != nil {
		return fee.Fee{}, err
	}
	if err := f.Check(); err != nil {
		return fee.Fee{}, fmt.Errorf("codec: stored fee is invalid: %w", err)
	}
	return f, nil
}

// Compare orders fees by rate.
func (FeeCodec) Compare(a, b fee.Fee) int {
	return a.Compare(b)
}
