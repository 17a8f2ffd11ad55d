// Package pixbuf provides decoded pixel buffers with release-once ownership.
//
// A Buffer holds width × height × components bytes in row-major order along
// with the Allocator that produced the storage. Ownership is linear: the
// holder calls Release exactly once, after which Bytes returns nil and a
// second Release returns an errors.KindReleased error instead of freeing
// storage twice.
//
//	buf, err := pixbuf.New(pixbuf.HeapAllocator{}, 64, 64, 4)
//	if err != nil {
//	    return err
//	}
//	defer buf.Release()
//
// Detach hands the raw storage to another owner (for example a C
// caller) and marks the Buffer released without freeing.
//
// # Layouts
//
// Component counts map to layouts:
//
//	1  Grayscale
//	2  GrayscaleAlpha
//	3  RGB
//	4  RGBA
//
// Convert rewrites pixels between any two layouts. Expand widens gray
// layouts to RGB/RGBA for consumers without native gray textures.
package pixbuf
