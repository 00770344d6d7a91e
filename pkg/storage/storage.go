// Package storage provisions the byte buffers that bigvec views operate
// on. The vector core never allocates or grows a buffer; this package
// is the external owner that creates buffers, hands copies to callers,
// persists mutated bytes, and grows a buffer on the caller's behalf
// when a collection needs more room.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/segmentio/ksuid"
)

// Key prefixes inside pebble. Buffer bytes and buffer metadata live in
// separate keyspaces so metadata can be scanned without touching data.
var (
	bufPrefix  = []byte("buf:")
	metaPrefix = []byte("meta:")
)

// minBufferSize is the smallest useful buffer: the vector length prefix.
const minBufferSize = 4

// ErrBufferNotFound is returned when no buffer exists under the given ID.
var ErrBufferNotFound = errors.New("storage: buffer not found")

// BufferMeta describes how to interpret a stored buffer.
type BufferMeta struct {
	Codec     string    `json:"codec"`      // codec name, e.g. "u64"
	Width     int       `json:"width"`      // record width in bytes
	CreatedAt time.Time `json:"created_at"` // provisioning time
}

// BufferInfo pairs a buffer's ID with its metadata and current capacity.
type BufferInfo struct {
	ID       ksuid.KSUID `json:"id"`
	Capacity int         `json:"capacity"`
	Meta     BufferMeta  `json:"meta"`
}

// BufferStore persists fixed-capacity buffers in pebble, keyed by
// KSUID. Reads hand back private copies; mutations are read-modify-save
// cycles, serialized by the store's lock so concurrent API or CLI
// callers cannot interleave partial updates of the same buffer.
type BufferStore struct {
	db *pebble.DB
	mu sync.Mutex
}

// Open opens (creating if needed) a buffer store at path.
func Open(path string) (*BufferStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("storage: opening %s: %w", path, err)
	}
	return &BufferStore{db: db}, nil
}

// OpenMem opens an in-memory buffer store, used by tests and throwaway
// sessions.
func OpenMem() (*BufferStore, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, fmt.Errorf("storage: opening in-memory store: %w", err)
	}
	return &BufferStore{db: db}, nil
}

// Create provisions a zeroed buffer of the given capacity. A zeroed
// buffer is a valid empty vector: its length prefix reads zero.
func (s *BufferStore) Create(capacity int, meta BufferMeta) (ksuid.KSUID, error) {
	if capacity < minBufferSize {
		return ksuid.Nil, fmt.Errorf("storage: capacity %d is below the %d-byte minimum", capacity, minBufferSize)
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := ksuid.New()
	if err := s.db.Set(bufKey(id), make([]byte, capacity), pebble.NoSync); err != nil {
		return ksuid.Nil, err
	}
	if err := s.putMeta(id, meta); err != nil {
		return ksuid.Nil, err
	}
	return id, nil
}

// Read returns a private copy of the buffer and its metadata. Callers
// mutate the copy through a vector view and persist it with Save.
func (s *BufferStore) Read(id ksuid.KSUID) ([]byte, BufferMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(id)
}

func (s *BufferStore) read(id ksuid.KSUID) ([]byte, BufferMeta, error) {
	data, closer, err := s.db.Get(bufKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, BufferMeta{}, fmt.Errorf("storage: buffer %s: %w", id, ErrBufferNotFound)
		}
		return nil, BufferMeta{}, err
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	if err := closer.Close(); err != nil {
		return nil, BufferMeta{}, err
	}

	meta, err := s.getMeta(id)
	if err != nil {
		return nil, BufferMeta{}, err
	}
	return buf, meta, nil
}

// Save persists a mutated buffer. The buffer must already exist and the
// capacity must be unchanged; growth goes through Grow so that capacity
// changes are always deliberate.
func (s *BufferStore) Save(id ksuid.KSUID, buf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, _, err := s.read(id)
	if err != nil {
		return err
	}
	if len(buf) != len(existing) {
		return fmt.Errorf("storage: buffer %s is %d bytes, refusing to save %d (use Grow)",
			id, len(existing), len(buf))
	}
	return s.db.Set(bufKey(id), buf, pebble.NoSync)
}

// Update reads the buffer, applies fn to the copy, and persists the
// result if fn succeeds. This is the read-modify-write cycle every
// mutating CLI and API operation goes through, held under one lock
// acquisition.
func (s *BufferStore) Update(id ksuid.KSUID, fn func(buf []byte, meta BufferMeta) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, meta, err := s.read(id)
	if err != nil {
		return err
	}
	if err := fn(buf, meta); err != nil {
		return err
	}
	return s.db.Set(bufKey(id), buf, pebble.NoSync)
}

// Grow reprovisions the buffer at a larger capacity, carrying the
// existing bytes over and zero-padding the tail. The stored collection
// is untouched; only the headroom changes.
func (s *BufferStore) Grow(id ksuid.KSUID, capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, _, err := s.read(id)
	if err != nil {
		return err
	}
	if capacity <= len(buf) {
		return fmt.Errorf("storage: buffer %s already has %d bytes, cannot grow to %d",
			id, len(buf), capacity)
	}
	grown := make([]byte, capacity)
	copy(grown, buf)
	return s.db.Set(bufKey(id), grown, pebble.NoSync)
}

// Delete removes a buffer and its metadata.
func (s *BufferStore) Delete(id ksuid.KSUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getMeta(id); err != nil {
		return err
	}
	if err := s.db.Delete(bufKey(id), pebble.NoSync); err != nil {
		return err
	}
	return s.db.Delete(metaKey(id), pebble.NoSync)
}

// List returns every stored buffer in KSUID order, which follows
// creation time.
func (s *BufferStore) List() ([]BufferInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: metaPrefix,
		UpperBound: append(append([]byte{}, metaPrefix...), 0xFF),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var infos []BufferInfo
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(metaPrefix):])
		if err != nil {
			return nil, fmt.Errorf("storage: malformed meta key: %w", err)
		}
		var meta BufferMeta
		if err := json.Unmarshal(iter.Value(), &meta); err != nil {
			return nil, fmt.Errorf("storage: metadata for %s: %w", id, err)
		}

		buf, closer, err := s.db.Get(bufKey(id))
		if err != nil {
			return nil, err
		}
		capacity := len(buf)
		if err := closer.Close(); err != nil {
			return nil, err
		}

		infos = append(infos, BufferInfo{ID: id, Capacity: capacity, Meta: meta})
	}
	return infos, iter.Error()
}

// Close shuts the store down.
func (s *BufferStore) Close() error {
	return s.db.Close()
}

func (s *BufferStore) putMeta(id ksuid.KSUID, meta BufferMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("storage: encoding metadata: %w", err)
	}
	return s.db.Set(metaKey(id), data, pebble.NoSync)
}

func (s *BufferStore) getMeta(id ksuid.KSUID) (BufferMeta, error) {
	data, closer, err := s.db.Get(metaKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return BufferMeta{}, fmt.Errorf("storage: buffer %s: %w", id, ErrBufferNotFound)
		}
		return BufferMeta{}, err
	}
	defer closer.Close()

	var meta BufferMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return BufferMeta{}, fmt.Errorf("storage: metadata for %s: %w", id, err)
	}
	return meta, nil
}

func bufKey(id ksuid.KSUID) []byte {
	return append(append([]byte{}, bufPrefix...), id.Bytes()...)
}

func metaKey(id ksuid.KSUID) []byte {
	return append(append([]byte{}, metaPrefix...), id.Bytes()...)
}
