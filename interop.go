package imageinterop

// Memory is a linear address space owned by a foreign caller.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	WriteU32(offset uint32, value uint32) error
}

// MemorySizer provides the current size of a Memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator provides pixel storage that may outlive the call that produced it.
type Allocator interface {
	// Alloc returns a zeroed or uninitialized slice of exactly size bytes.
	Alloc(size int) ([]byte, error)
	// Free returns storage obtained from Alloc.
	Free(buf []byte)
}
