package fee

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	tests := map[string]struct {
		numerator   uint64
		denominator uint64
		wantErr     error
	}{
		"zero denominator":            {1, 0, ErrInvalidDenominator},
		"denominator above cap":       {1, MaxPrecision + 1, ErrInvalidDenominator},
		"numerator over denominator":  {3, 2, ErrTooHigh},
		"valid half":                  {1, 2, nil},
		"valid full rate":             {7, 7, nil},
		"valid zero numerator":        {0, 5, nil},
		"denominator exactly the cap": {1, MaxPrecision, nil},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := New(tt.numerator, tt.denominator)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.numerator, f.Numerator())
			assert.Equal(t, tt.denominator, f.Denominator())
		})
	}
}

func TestZero(t *testing.T) {
	z := Zero()
	require.NoError(t, z.Check())
	assert.True(t, z.IsZero())
	assert.Zero(t, z.Apply(123456))
}

func TestApply(t *testing.T) {
	tests := map[string]struct {
		numerator   uint64
		denominator uint64
		amount      uint64
		want        uint64
	}{
		"half":                        {1, 2, 100, 50},
		"floor division":              {1, 3, 100, 33},
		"full rate returns amount":    {5, 5, 100, 100},
		"zero amount":                 {1, 2, 0, 0},
		"widened multiply, max input": {1, 2, math.MaxUint64, math.MaxUint64 / 2},
		"large numerator, max input":  {MaxPrecision - 1, MaxPrecision, math.MaxUint64, 18446744055262807541},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := New(tt.numerator, tt.denominator)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Apply(tt.amount))
		})
	}
}

func TestApply_NeverExceedsAmount(t *testing.T) {
	fees := []Fee{
		mustNew(t, 0, 1),
		mustNew(t, 1, MaxPrecision),
		mustNew(t, 1, 2),
		mustNew(t, MaxPrecision-1, MaxPrecision),
		mustNew(t, MaxPrecision, MaxPrecision),
	}
	amounts := []uint64{0, 1, 2, 999, math.MaxUint64 / 2, math.MaxUint64}

	for _, f := range fees {
		for _, amount := range amounts {
			assert.LessOrEqual(t, f.Apply(amount), amount, "fee %s, amount %d", f, amount)
		}
	}
}

func TestCompareAndEqual(t *testing.T) {
	half := mustNew(t, 1, 2)
	alsoHalf := mustNew(t, 2, 4)
	third := mustNew(t, 1, 3)

	assert.True(t, half.Equal(alsoHalf))
	assert.Zero(t, half.Compare(alsoHalf))
	assert.Equal(t, 1, half.Compare(third))
	assert.Equal(t, -1, third.Compare(half))
	assert.False(t, half.Equal(third))

	// Cross multiplication at the precision cap stays in range.
	big1 := mustNew(t, MaxPrecision-1, MaxPrecision)
	big2 := mustNew(t, MaxPrecision, MaxPrecision)
	assert.Equal(t, -1, big1.Compare(big2))
}

func TestMul(t *testing.T) {
	t.Run("small denominators compose exactly", func(t *testing.T) {
		got := mustNew(t, 1, 2).Mul(mustNew(t, 2, 3))
		assert.True(t, got.Equal(mustNew(t, 2, 6)))
		require.NoError(t, got.Check())
	})

	t.Run("rescales past the precision cap", func(t *testing.T) {
		f := mustNew(t, MaxPrecision/2, MaxPrecision)
		got := f.Mul(f)

		require.NoError(t, got.Check())
		assert.LessOrEqual(t, got.Denominator(), MaxPrecision)

		// Both sides were divided by the same divisor, so the rate is
		// preserved up to truncation: here everything divides evenly
		// and the product is exactly 1/4.
		assert.True(t, got.Equal(mustNew(t, 1, 4)))
	})

	t.Run("small numerators can truncate to zero", func(t *testing.T) {
		tiny := mustNew(t, 1, MaxPrecision)
		got := tiny.Mul(tiny)

		require.NoError(t, got.Check())
		assert.True(t, got.IsZero())
	})

	t.Run("composing with zero is zero", func(t *testing.T) {
		got := Zero().Mul(mustNew(t, 1, 2))
		require.NoError(t, got.Check())
		assert.True(t, got.IsZero())
	})
}

func TestCheck_UntrustedValues(t *testing.T) {
	raw, err := mustNew(t, 3, 4).MarshalBinary()
	require.NoError(t, err)

	var f Fee
	require.NoError(t, f.UnmarshalBinary(raw))
	require.NoError(t, f.Check())
	assert.True(t, f.Equal(mustNew(t, 3, 4)))

	// Arbitrary bytes can decode into an invalid ratio; Check catches it.
	var bogus Fee
	require.NoError(t, bogus.UnmarshalBinary(make([]byte, 16)))
	assert.ErrorIs(t, bogus.Check(), ErrInvalidDenominator)

	assert.Error(t, bogus.UnmarshalBinary([]byte{1, 2, 3}))
}

func mustNew(t *testing.T, numerator, denominator uint64) Fee {
	t.Helper()
	f, err := New(numerator, denominator)
	require.NoError(t, err)
	return f
}
