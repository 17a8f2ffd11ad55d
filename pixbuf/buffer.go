package pixbuf

import (
	"math"
	"sync/atomic"

	imageinterop "github.com/wippyai/image-interop"
	"github.com/wippyai/image-interop/errors"
)

// Buffer is a decoded image owned by exactly one holder.
type Buffer struct {
	alloc      imageinterop.Allocator
	pix        []byte
	width      int
	height     int
	components int
	released   atomic.Bool
}

// Size returns width*height*components, or an error if it does not fit in an int.
func Size(width, height, components int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, errors.InvalidInput(errors.PhaseAlloc, "image dimensions must be positive")
	}
	if LayoutFor(components) == LayoutUnknown {
		return 0, errors.New(errors.PhaseAlloc, errors.KindInvalidInput).
			Value(components).
			Detail("components must be 1-4, got %d", components).
			Build()
	}
	n := uint64(width) * uint64(height)
	if n > math.MaxInt/uint64(components) {
		return 0, errors.Overflow(errors.PhaseAlloc, n*uint64(components), "int")
	}
	return int(n) * components, nil
}

// New allocates an uninitialized buffer for the given geometry.
func New(alloc imageinterop.Allocator, width, height, components int) (*Buffer, error) {
	size, err := Size(width, height, components)
	if err != nil {
		return nil, err
	}
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	pix, err := alloc.Alloc(size)
	if err != nil {
		return nil, err
	}
	if len(pix) != size {
		alloc.Free(pix)
		return nil, errors.AllocationFailed(errors.PhaseAlloc, size)
	}
	return &Buffer{
		alloc:      alloc,
		pix:        pix,
		width:      width,
		height:     height,
		components: components,
	}, nil
}

// Wrap adopts heap pixels without copying. len(pix) must equal the geometry size.
func Wrap(pix []byte, width, height, components int) (*Buffer, error) {
	size, err := Size(width, height, components)
	if err != nil {
		return nil, err
	}
	if len(pix) != size {
		return nil, errors.New(errors.PhaseAlloc, errors.KindInvalidInput).
			Detail("pixel slice has %d bytes, geometry needs %d", len(pix), size).
			Build()
	}
	return &Buffer{
		alloc:      HeapAllocator{},
		pix:        pix,
		width:      width,
		height:     height,
		components: components,
	}, nil
}

func (b *Buffer) Width() int      { return b.width }
func (b *Buffer) Height() int     { return b.height }
func (b *Buffer) Components() int { return b.components }

// Stride returns bytes per row.
func (b *Buffer) Stride() int { return b.width * b.components }

// Len returns the pixel byte count; it does not change on release.
func (b *Buffer) Len() int { return b.width * b.height * b.components }

// Layout returns the channel layout.
func (b *Buffer) Layout() Layout { return LayoutFor(b.components) }

// Bytes returns the pixel storage, or nil once released.
func (b *Buffer) Bytes() []byte {
	if b.released.Load() {
		return nil
	}
	return b.pix
}

// Released reports whether Release or Detach has been called.
func (b *Buffer) Released() bool {
	return b.released.Load()
}

// Release returns the storage to its allocator. Only the first call frees.
func (b *Buffer) Release() error {
	if !b.released.CompareAndSwap(false, true) {
		return errors.AlreadyReleased()
	}
	pix := b.pix
	b.pix = nil
	b.alloc.Free(pix)
	return nil
}

// Detach transfers the storage to the caller, who becomes responsible for
// freeing it with the same allocator. The Buffer is marked released.
func (b *Buffer) Detach() ([]byte, error) {
	if !b.released.CompareAndSwap(false, true) {
		return nil, errors.AlreadyReleased()
	}
	pix := b.pix
	b.pix = nil
	return pix, nil
}

// Allocator returns the allocator that owns the storage.
func (b *Buffer) Allocator() imageinterop.Allocator {
	return b.alloc
}

// Row returns the pixels of row y, or nil if y is out of range or the buffer is released.
func (b *Buffer) Row(y int) []byte {
	pix := b.Bytes()
	if pix == nil || y < 0 || y >= b.height {
		return nil
	}
	stride := b.Stride()
	return pix[y*stride : (y+1)*stride]
}
