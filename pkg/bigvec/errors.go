package bigvec

// Errors returned by vector operations. Every mutating operation
// validates fully before writing a single byte, so on any of these the
// underlying buffer is exactly as it was before the call.
var (
	ErrCapacityExceeded = &VecError{"buffer capacity exceeded"}
	ErrIndexOutOfRange  = &VecError{"index out of range"}
	ErrDuplicateKey     = &VecError{"key already present"}
	ErrBufferTooSmall   = &VecError{"buffer too small for its contents"}
)

// VecError represents a vector error.
type VecError struct {
	Message string
}

func (e *VecError) Error() string {
	return e.Message
}
