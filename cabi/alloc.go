package cabi

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	imageinterop "github.com/wippyai/image-interop"
	"github.com/wippyai/image-interop/errors"
)

// CAllocator allocates pixel storage with the C allocator.
type CAllocator struct{}

var _ imageinterop.Allocator = CAllocator{}

// Alloc returns size bytes of uninitialized C memory.
func (CAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.AllocationFailed(errors.PhaseAlloc, size)
	}
	p := C.malloc(C.size_t(size))
	if p == nil {
		return nil, errors.AllocationFailed(errors.PhaseAlloc, size)
	}
	return unsafe.Slice((*byte)(p), size), nil
}

// Free releases storage obtained from Alloc.
func (CAllocator) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	C.free(unsafe.Pointer(unsafe.SliceData(buf)))
}
