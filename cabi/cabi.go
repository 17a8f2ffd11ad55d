package cabi

import (
	"math"
	"sync"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/image-interop/decode"
)

var current atomic.Pointer[decode.Decoder]

func init() {
	current.Store(DefaultConfig().Decoder())
}

func setDecoder(d *decode.Decoder) {
	current.Store(d)
}

// liveSet records pointers handed to C and their sizes.
type liveSet struct {
	mu    sync.Mutex
	sizes map[uintptr]int
}

var live = &liveSet{sizes: make(map[uintptr]int)}

func (s *liveSet) add(p unsafe.Pointer, size int) {
	s.mu.Lock()
	s.sizes[uintptr(p)] = size
	s.mu.Unlock()
}

func (s *liveSet) take(p unsafe.Pointer) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	size, ok := s.sizes[uintptr(p)]
	if ok {
		delete(s.sizes, uintptr(p))
	}
	return size, ok
}

func (s *liveSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sizes)
}

// Live returns the number of buffers returned by Load and not yet freed.
func Live() int {
	return live.len()
}

// Load decodes length bytes at buffer. On success it writes the geometry to
// x, y and comp and returns C-allocated pixels that must be passed to Free.
// On failure it returns nil and leaves the outputs untouched.
func Load(buffer unsafe.Pointer, length int, x, y, comp *int32) unsafe.Pointer {
	if buffer == nil || length <= 0 {
		return nil
	}
	data := unsafe.Slice((*byte)(buffer), length)

	buf, err := current.Load().Decode(data)
	if err != nil {
		Logger().Debug("load_image_from_memory failed", zap.Int("len", length), zap.Error(err))
		return nil
	}
	if buf.Width() > math.MaxInt32 || buf.Height() > math.MaxInt32 {
		_ = buf.Release()
		return nil
	}

	w, h, c := buf.Width(), buf.Height(), buf.Components()
	pix, err := buf.Detach()
	if err != nil {
		return nil
	}
	ptr := unsafe.Pointer(unsafe.SliceData(pix))
	live.add(ptr, len(pix))

	if x != nil {
		*x = int32(w)
	}
	if y != nil {
		*y = int32(h)
	}
	if comp != nil {
		*comp = int32(c)
	}
	Logger().Debug("load_image_from_memory",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("components", c),
		zap.Uintptr("pixels", uintptr(ptr)),
	)
	return ptr
}

// Free releases pixels returned by Load. nil and pointers that are not live
// are ignored.
func Free(pixels unsafe.Pointer) {
	if pixels == nil {
		return
	}
	size, ok := live.take(pixels)
	if !ok {
		Logger().Debug("free_image ignored unknown pointer", zap.Uintptr("pixels", uintptr(pixels)))
		return
	}
	CAllocator{}.Free(unsafe.Slice((*byte)(pixels), size))
}

// Pixels returns a view of the live buffer at p, or nil if p is not live.
// The view is valid until Free(p).
func Pixels(p unsafe.Pointer) []byte {
	live.mu.Lock()
	size, ok := live.sizes[uintptr(p)]
	live.mu.Unlock()
	if !ok {
		return nil
	}
	return unsafe.Slice((*byte)(p), size)
}
