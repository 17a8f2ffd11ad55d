package pixbuf

import (
	imageinterop "github.com/wippyai/image-interop"
	"github.com/wippyai/image-interop/errors"
)

// HeapAllocator allocates pixel storage on the Go heap.
// Free is a no-op; the garbage collector reclaims released storage.
type HeapAllocator struct{}

var _ imageinterop.Allocator = HeapAllocator{}

// Alloc returns a zeroed slice of size bytes.
func (HeapAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.AllocationFailed(errors.PhaseAlloc, size)
	}
	return make([]byte, size), nil
}

// Free does nothing.
func (HeapAllocator) Free([]byte) {}
