package codec

import "encoding/binary"

// EntryWidth is the encoded size of an Entry record.
const EntryWidth = 20

// Entry is a composite fixed-width record: a 64-bit key, a 64-bit
// weight and a 32-bit flag field. Entries are keyed and ordered by ID
// alone; weight and flags are mutable payload.
type Entry struct {
	ID     uint64
	Weight uint64
	Flags  uint32
}

// EntryCodec packs an Entry into 20 little-endian bytes:
//
//	[ID(8)][Weight(8)][Flags(4)]
type EntryCodec struct{}

// Size returns the record width in bytes.
func (EntryCodec) Size() int { return EntryWidth }

// Encode writes e into dst.
func (EntryCodec) Encode(e Entry, dst []byte) error {
	if err := checkWidth(len(dst), EntryWidth); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(dst[0:8], e.ID)
	binary.LittleEndian.PutUint64(dst[8:16], e.Weight)
	binary.LittleEndian.PutUint32(dst[16:20], e.Flags)
	return nil
}

// Decode reads an Entry from src.
func (EntryCodec) Decode(src []byte) (Entry, error) {
	if err := checkWidth(len(src), EntryWidth); err != nil {
		return Entry{}, err
	}
	return Entry{
		ID:     binary.LittleEndian.Uint64(src[0:8]),
		Weight: binary.LittleEndian.Uint64(src[8:16]),
		Flags:  binary.LittleEndian.Uint32(src[16:20]),
	}, nil
}

// Compare orders entries by ID only. Two entries with the same ID are
// the same record as far as a sorted collection is concerned, whatever
// their payload says.
func (EntryCodec) Compare(a, b Entry) int {
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}
