package cmd

import (
	"fmt"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/brisinga/pkg/bigvec"
	"github.com/ssargent/brisinga/pkg/codec"
	"github.com/ssargent/brisinga/pkg/storage"
)

// u64CodecName tags buffers holding sorted uint64 records, the only
// record shape the CLI operates on.
const u64CodecName = "u64"

// createVector provisions a zeroed buffer sized for capacity records.
func createVector(buffers *storage.BufferStore, capacity int) (ksuid.KSUID, error) {
	if capacity <= 0 {
		return ksuid.Nil, fmt.Errorf("capacity must be positive, got %d", capacity)
	}
	return buffers.Create(4+codec.U64Width*capacity, storage.BufferMeta{
		Codec: u64CodecName,
		Width: codec.U64Width,
	})
}

// insertValues places each value at its sorted position, stopping at the
// first failure. Earlier successful inserts stay persisted.
func insertValues(buffers *storage.BufferStore, id ksuid.KSUID, values []uint64) error {
	for _, value := range values {
		err := buffers.Update(id, func(buf []byte, meta storage.BufferMeta) error {
			v, err := openU64(buf, meta)
			if err != nil {
				return err
			}
			return v.InsertInOrder(value)
		})
		if err != nil {
			return fmt.Errorf("inserting %d: %w", value, err)
		}
	}
	return nil
}

// listElements returns a page of elements from the vector.
func listElements(buffers *storage.BufferStore, id ksuid.KSUID, skip, limit int) ([]uint64, error) {
	buf, meta, err := buffers.Read(id)
	if err != nil {
		return nil, err
	}
	v, err := openU64(buf, meta)
	if err != nil {
		return nil, err
	}

	var elements []uint64
	it := v.Iter()
	for i := 0; it.Next(); i++ {
		if i < skip {
			continue
		}
		if limit >= 0 && len(elements) >= limit {
			break
		}
		elements = append(elements, it.Value())
	}
	return elements, it.Err()
}

// retainRange drops every element outside [min, max] and returns the
// surviving length.
func retainRange(buffers *storage.BufferStore, id ksuid.KSUID, min, max uint64) (int, error) {
	u64 := codec.U64Codec{}
	var survivors int
	err := buffers.Update(id, func(buf []byte, meta storage.BufferMeta) error {
		v, err := openU64(buf, meta)
		if err != nil {
			return err
		}
		if err := v.Retain(func(rec []byte) bool {
			value, err := u64.Decode(rec)
			if err != nil {
				return true
			}
			return value >= min && value <= max
		}); err != nil {
			return err
		}
		survivors = int(v.Len())
		return nil
	})
	return survivors, err
}

// vectorStats reports the length, record capacity and metadata of a vector.
func vectorStats(buffers *storage.BufferStore, id ksuid.KSUID) (length, capacity int, meta storage.BufferMeta, err error) {
	buf, meta, err := buffers.Read(id)
	if err != nil {
		return 0, 0, storage.BufferMeta{}, err
	}
	v, err := openU64(buf, meta)
	if err != nil {
		return 0, 0, storage.BufferMeta{}, err
	}
	return int(v.Len()), v.Cap(), meta, nil
}

func openU64(buf []byte, meta storage.BufferMeta) (*bigvec.OrderedVec[uint64], error) {
	if meta.Codec != u64CodecName {
		return nil, fmt.Errorf("buffer holds %q records, this command operates on %q", meta.Codec, u64CodecName)
	}
	return bigvec.NewOrdered(buf, codec.U64Codec{})
}

func parseVectorID(raw string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(raw)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("invalid vector ID %q: %w", raw, err)
	}
	return id, nil
}
