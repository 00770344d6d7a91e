package storage

import (
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *BufferStore {
	t.Helper()
	s, err := OpenMem()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBufferStore_CreateAndRead(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create(4+8*16, BufferMeta{Codec: "u64", Width: 8})
	require.NoError(t, err)

	buf, meta, err := s.Read(id)
	require.NoError(t, err)
	assert.Len(t, buf, 4+8*16)
	assert.Equal(t, "u64", meta.Codec)
	assert.Equal(t, 8, meta.Width)
	assert.False(t, meta.CreatedAt.IsZero())

	// A fresh buffer is all zeroes: an empty vector.
	for _, b := range buf {
		require.Zero(t, b)
	}
}

func TestBufferStore_CreateRejectsTinyCapacity(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create(3, BufferMeta{Codec: "u64", Width: 8})
	assert.Error(t, err)
}

func TestBufferStore_SaveRoundTrip(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create(16, BufferMeta{Codec: "u64", Width: 8})
	require.NoError(t, err)

	buf, _, err := s.Read(id)
	require.NoError(t, err)
	buf[4] = 0xAB
	require.NoError(t, s.Save(id, buf))

	got, _, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), got[4])

	t.Run("reads are private copies", func(t *testing.T) {
		first, _, err := s.Read(id)
		require.NoError(t, err)
		first[4] = 0xCD

		second, _, err := s.Read(id)
		require.NoError(t, err)
		assert.Equal(t, byte(0xAB), second[4])
	})

	t.Run("save refuses a resized buffer", func(t *testing.T) {
		assert.Error(t, s.Save(id, make([]byte, 32)))
	})
}

func TestBufferStore_Update(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create(16, BufferMeta{Codec: "u64", Width: 8})
	require.NoError(t, err)

	require.NoError(t, s.Update(id, func(buf []byte, meta BufferMeta) error {
		assert.Equal(t, 8, meta.Width)
		buf[5] = 0x42
		return nil
	}))

	got, _, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), got[5])

	t.Run("a failing callback persists nothing", func(t *testing.T) {
		wantErr := assert.AnError
		err := s.Update(id, func(buf []byte, _ BufferMeta) error {
			buf[5] = 0xFF
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)

		got, _, err := s.Read(id)
		require.NoError(t, err)
		assert.Equal(t, byte(0x42), got[5])
	})
}

func TestBufferStore_Grow(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create(12, BufferMeta{Codec: "u64", Width: 8})
	require.NoError(t, err)

	buf, _, err := s.Read(id)
	require.NoError(t, err)
	buf[4] = 0x77
	require.NoError(t, s.Save(id, buf))

	require.NoError(t, s.Grow(id, 28))

	grown, _, err := s.Read(id)
	require.NoError(t, err)
	assert.Len(t, grown, 28)
	assert.Equal(t, byte(0x77), grown[4])
	for _, b := range grown[12:] {
		require.Zero(t, b)
	}

	t.Run("cannot shrink", func(t *testing.T) {
		assert.Error(t, s.Grow(id, 12))
	})
}

func TestBufferStore_Delete(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create(16, BufferMeta{Codec: "u64", Width: 8})
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))

	_, _, err = s.Read(id)
	assert.ErrorIs(t, err, ErrBufferNotFound)

	assert.ErrorIs(t, s.Delete(id), ErrBufferNotFound)
}

func TestBufferStore_UnknownID(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Read(ksuid.New())
	assert.ErrorIs(t, err, ErrBufferNotFound)
}

func TestBufferStore_List(t *testing.T) {
	s := newTestStore(t)

	infos, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, infos)

	first, err := s.Create(16, BufferMeta{Codec: "u64", Width: 8})
	require.NoError(t, err)
	second, err := s.Create(44, BufferMeta{Codec: "entry", Width: 20})
	require.NoError(t, err)

	infos, err = s.List()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	byID := map[string]BufferInfo{}
	for _, info := range infos {
		byID[info.ID.String()] = info
	}
	assert.Equal(t, 16, byID[first.String()].Capacity)
	assert.Equal(t, "entry", byID[second.String()].Meta.Codec)
	assert.Equal(t, 44, byID[second.String()].Capacity)
}
