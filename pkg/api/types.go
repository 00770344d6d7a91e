package api

import (
	"github.com/segmentio/ksuid"

	"github.com/ssargent/brisinga/pkg/storage"
)

// APIResponse represents a standard API response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Port   int
	APIKey string
}

// Buffers is the storage surface the handlers need. It is satisfied by
// *storage.BufferStore and narrow enough to fake in tests.
type Buffers interface {
	Create(capacity int, meta storage.BufferMeta) (ksuid.KSUID, error)
	Read(id ksuid.KSUID) ([]byte, storage.BufferMeta, error)
	Update(id ksuid.KSUID, fn func(buf []byte, meta storage.BufferMeta) error) error
	Grow(id ksuid.KSUID, capacity int) error
	Delete(id ksuid.KSUID) error
	List() ([]storage.BufferInfo, error)
}

// CreateVectorRequest provisions a new vector buffer sized for Capacity
// u64 records.
type CreateVectorRequest struct {
	Capacity int `json:"capacity"`
}

// VectorResponse describes one stored vector.
type VectorResponse struct {
	ID       string   `json:"id"`
	Length   int      `json:"length"`
	Capacity int      `json:"capacity"` // in records
	Width    int      `json:"width"`
	Elements []uint64 `json:"elements,omitempty"`
}

// InsertElementRequest adds one element at its sorted position.
type InsertElementRequest struct {
	Value uint64 `json:"value"`
}

// RetainRequest keeps only the elements inside [Min, Max].
type RetainRequest struct {
	Min uint64 `json:"min"`
	Max uint64 `json:"max"`
}

// GrowRequest reprovisions the buffer for Capacity records.
type GrowRequest struct {
	Capacity int `json:"capacity"`
}

// FeeRatio is a numerator/denominator pair in request bodies.
type FeeRatio struct {
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// FeeApplyRequest applies a fee ratio to an amount.
type FeeApplyRequest struct {
	Fee    FeeRatio `json:"fee"`
	Amount uint64   `json:"amount"`
}

// FeeApplyResponse carries the charged portion and what is left.
type FeeApplyResponse struct {
	Charged   uint64 `json:"charged"`
	Remainder uint64 `json:"remainder"`
}

// FeeComposeRequest composes two fee ratios.
type FeeComposeRequest struct {
	First  FeeRatio `json:"first"`
	Second FeeRatio `json:"second"`
}
