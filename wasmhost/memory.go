package wasmhost

import (
	"github.com/tetratelabs/wazero/api"

	imageinterop "github.com/wippyai/image-interop"
	"github.com/wippyai/image-interop/errors"
)

var (
	_ imageinterop.Memory      = (*Memory)(nil)
	_ imageinterop.MemorySizer = (*Memory)(nil)
)

// Memory adapts a guest's linear memory.
type Memory struct {
	mem api.Memory
}

// WrapMemory returns nil if mem is nil.
func WrapMemory(mem api.Memory) *Memory {
	if mem == nil {
		return nil
	}
	return &Memory{mem: mem}
}

// Read returns a view of guest memory. The view is invalidated by memory growth.
func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseHost, offset, length, m.Size())
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseHost, offset, uint32(len(data)), m.Size())
	}
	return nil
}

// WriteU32 writes a little-endian u32.
func (m *Memory) WriteU32(offset, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return errors.OutOfBounds(errors.PhaseHost, offset, 4, m.Size())
	}
	return nil
}

// ReadU32 reads a little-endian u32.
func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseHost, offset, 4, m.Size())
	}
	return v, nil
}

func (m *Memory) Size() uint32 {
	return m.mem.Size()
}

// fits reports whether length bytes at offset lie inside memory.
func (m *Memory) fits(offset, length uint32) bool {
	end := uint64(offset) + uint64(length)
	return end <= uint64(m.mem.Size())
}
