// Package fee provides a rational fee ratio with validated bounds.
//
// A Fee is a numerator/denominator pair representing a proportional
// rate. Denominators are capped at MaxPrecision, chosen so that the
// product of any two valid denominators fits in a uint64. That bound is
// what makes the cross-multiplication comparisons and the widened
// arithmetic in Apply overflow-safe; it is enforced by New and Check,
// never re-checked by the operations themselves.
package fee

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// MaxPrecision is the largest allowed denominator. It must stay below
// sqrt(math.MaxUint64) so that denominator * denominator cannot
// overflow.
const MaxPrecision uint64 = 1_000_000_000

// encodedSize is the width of a binary-encoded Fee.
const encodedSize = 16

// Errors returned by New and Check.
var (
	ErrInvalidDenominator = &Error{"denominator must be between 1 and MaxPrecision"}
	ErrTooHigh            = &Error{"numerator exceeds denominator"}
)

// Error represents a fee validation error.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Fee is an immutable proportional rate. The zero value is not valid;
// use New or Zero.
type Fee struct {
	numerator   uint64
	denominator uint64
}

// New builds a validated Fee. It fails with ErrInvalidDenominator when
// denominator is zero or above MaxPrecision, and with ErrTooHigh when
// the ratio exceeds 1.
func New(numerator, denominator uint64) (Fee, error) {
	f := Fee{numerator: numerator, denominator: denominator}
	if err := f.Check(); err != nil {
		return Fee{}, err
	}
	return f, nil
}

// Zero returns the canonical zero rate, 0/1.
func Zero() Fee {
	return Fee{numerator: 0, denominator: 1}
}

// Check re-validates a fee. Values rehydrated from storage can carry
// arbitrary bit patterns, so callers must Check them before any other
// operation; Apply, Compare and Mul all assume a checked value.
func (f Fee) Check() error {
	if f.denominator == 0 || f.denominator > MaxPrecision {
		return ErrInvalidDenominator
	}
	if f.numerator > f.denominator {
		return ErrTooHigh
	}
	return nil
}

// Numerator returns the numerator of the ratio.
func (f Fee) Numerator() uint64 { return f.numerator }

// Denominator returns the denominator of the ratio.
func (f Fee) Denominator() uint64 { return f.denominator }

// IsZero reports whether the fee takes nothing.
func (f Fee) IsZero() bool { return f.numerator == 0 }

// Apply returns floor(amount * numerator / denominator), the portion of
// amount charged by this fee. The intermediate product is computed at
// 128-bit width, and numerator <= denominator guarantees the result
// never exceeds amount.
func (f Fee) Apply(amount uint64) uint64 {
	hi, lo := bits.Mul64(amount, f.numerator)
	// Div64 cannot trap here: denominator > 0 and the quotient is at
	// most amount, so hi < denominator.
	quo, _ := bits.Div64(hi, lo, f.denominator)
	return quo
}

// Equal reports whether two fees represent the same rate, so 1/2 and
// 2/4 compare equal.
func (f Fee) Equal(other Fee) bool {
	return f.Compare(other) == 0
}

// Compare orders fees by rate without floating-point arithmetic, using
// cross-multiplication: a/b vs c/d is decided by a*d vs c*b. Both
// products fit in a uint64 because denominators are capped at
// MaxPrecision.
func (f Fee) Compare(other Fee) int {
	left := f.numerator * other.denominator
	right := other.numerator * f.denominator
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

// Mul composes two fees into the rate obtained by applying both. When
// the combined denominator would exceed MaxPrecision, numerator and
// denominator are both divided by max(2, denominator/MaxPrecision),
// truncating toward zero. The truncation loses precision, and a small
// numerator can round to zero; that is the documented price of keeping
// denominators bounded for future compositions.
func (f Fee) Mul(other Fee) Fee {
	numerator := f.numerator * other.numerator
	denominator := f.denominator * other.denominator
	if denominator > MaxPrecision {
		divisor := denominator / MaxPrecision
		if divisor < 2 {
			divisor = 2
		}
		numerator /= divisor
		denominator /= divisor
	}
	return Fee{numerator: numerator, denominator: denominator}
}

// String formats the fee as "numerator/denominator".
func (f Fee) String() string {
	return fmt.Sprintf("%d/%d", f.numerator, f.denominator)
}

// MarshalBinary encodes the fee as 16 little-endian bytes:
// [numerator(8)][denominator(8)].
func (f Fee) MarshalBinary() ([]byte, error) {
	buf := make([]byte, encodedSize)
	binary.LittleEndian.PutUint64(buf[0:8], f.numerator)
	binary.LittleEndian.PutUint64(buf[8:16], f.denominator)
	return buf, nil
}

// UnmarshalBinary decodes a fee from 16 little-endian bytes. It does
// not validate the decoded value; callers must Check it before use.
func (f *Fee) UnmarshalBinary(data []byte) error {
	if len(data) != encodedSize {
		return fmt.Errorf("fee: encoded fee is %d bytes, want %d", len(data), encodedSize)
	}
	f.numerator = binary.LittleEndian.Uint64(data[0:8])
	f.denominator = binary.LittleEndian.Uint64(data[8:16])
	return nil
}
