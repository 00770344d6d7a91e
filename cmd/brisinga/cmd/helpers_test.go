package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/brisinga/pkg/codec"
	"github.com/ssargent/brisinga/pkg/storage"
)

func newTestStore(t *testing.T) *storage.BufferStore {
	t.Helper()
	buffers, err := storage.OpenMem()
	require.NoError(t, err)
	t.Cleanup(func() { _ = buffers.Close() })
	return buffers
}

func TestCreateVector(t *testing.T) {
	buffers := newTestStore(t)

	t.Run("Successful creation", func(t *testing.T) {
		id, err := createVector(buffers, 16)
		assert.NoError(t, err)

		length, capacity, meta, err := vectorStats(buffers, id)
		assert.NoError(t, err)
		assert.Equal(t, 0, length)
		assert.Equal(t, 16, capacity)
		assert.Equal(t, u64CodecName, meta.Codec)
		assert.Equal(t, codec.U64Width, meta.Width)
	})

	t.Run("Rejects non-positive capacity", func(t *testing.T) {
		_, err := createVector(buffers, 0)
		assert.Error(t, err)

		_, err = createVector(buffers, -3)
		assert.Error(t, err)
	})
}

func TestInsertAndList(t *testing.T) {
	buffers := newTestStore(t)
	id, err := createVector(buffers, 8)
	require.NoError(t, err)

	t.Run("Values come back sorted", func(t *testing.T) {
		err := insertValues(buffers, id, []uint64{6, 2, 8, 4})
		assert.NoError(t, err)

		elements, err := listElements(buffers, id, 0, -1)
		assert.NoError(t, err)
		assert.Equal(t, []uint64{2, 4, 6, 8}, elements)
	})

	t.Run("Duplicate insert fails", func(t *testing.T) {
		err := insertValues(buffers, id, []uint64{6})
		assert.Error(t, err)
	})

	t.Run("Paging", func(t *testing.T) {
		elements, err := listElements(buffers, id, 1, 2)
		assert.NoError(t, err)
		assert.Equal(t, []uint64{4, 6}, elements)
	})
}

func TestRetainRange(t *testing.T) {
	buffers := newTestStore(t)
	id, err := createVector(buffers, 8)
	require.NoError(t, err)
	require.NoError(t, insertValues(buffers, id, []uint64{1, 2, 3, 4, 5}))

	survivors, err := retainRange(buffers, id, 2, 4)
	assert.NoError(t, err)
	assert.Equal(t, 3, survivors)

	elements, err := listElements(buffers, id, 0, -1)
	assert.NoError(t, err)
	assert.Equal(t, []uint64{2, 3, 4}, elements)
}

func TestParseVectorID(t *testing.T) {
	buffers := newTestStore(t)
	id, err := createVector(buffers, 4)
	require.NoError(t, err)

	parsed, err := parseVectorID(id.String())
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = parseVectorID("not-a-ksuid")
	assert.Error(t, err)
}
