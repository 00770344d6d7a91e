package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/brisinga/pkg/fee"
)

func TestU64Codec(t *testing.T) {
	c := U64Codec{}
	require.Equal(t, U64Width, c.Size())

	buf := make([]byte, U64Width)
	require.NoError(t, c.Encode(0xDEADBEEF, buf))
	// Little-endian: low byte first.
	assert.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE, 0, 0, 0, 0}, buf)

	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEF), got)

	assert.Error(t, c.Encode(1, make([]byte, 7)))
	_, err = c.Decode(make([]byte, 9))
	assert.Error(t, err)

	assert.Equal(t, -1, c.Compare(1, 2))
	assert.Equal(t, 0, c.Compare(2, 2))
	assert.Equal(t, 1, c.Compare(3, 2))
}

func TestEntryCodec(t *testing.T) {
	c := EntryCodec{}
	require.Equal(t, EntryWidth, c.Size())

	in := Entry{ID: 42, Weight: 1000, Flags: 7}
	buf := make([]byte, EntryWidth)
	require.NoError(t, c.Encode(in, buf))

	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	t.Run("ordered by ID alone", func(t *testing.T) {
		assert.Equal(t, -1, c.Compare(Entry{ID: 1, Weight: 999}, Entry{ID: 2}))
		assert.Equal(t, 0, c.Compare(Entry{ID: 5, Weight: 1}, Entry{ID: 5, Weight: 2}))
		assert.Equal(t, 1, c.Compare(Entry{ID: 9}, Entry{ID: 2, Weight: 999}))
	})

	assert.Error(t, c.Encode(in, make([]byte, EntryWidth-1)))
}

func TestFeeCodec(t *testing.T) {
	c := FeeCodec{}
	require.Equal(t, FeeWidth, c.Size())

	half, err := fee.New(1, 2)
	require.NoError(t, err)

	buf := make([]byte, FeeWidth)
	require.NoError(t, c.Encode(half, buf))

	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.True(t, got.Equal(half))

	t.Run("rejects invalid stored bytes", func(t *testing.T) {
		_, err := c.Decode(make([]byte, FeeWidth)) // 0/0 bit pattern
		assert.ErrorIs(t, err, fee.ErrInvalidDenominator)
	})

	t.Run("orders by rate", func(t *testing.T) {
		third, err := fee.New(1, 3)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Compare(half, third))
	})
}
