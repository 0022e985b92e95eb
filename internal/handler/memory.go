package handler

import "fmt"

// Memory serves accesses straight from a fixed buffer, used for ROM and
// fixed RAM. The buffer is owned by the region it was allocated for and must
// cover every offset the space routes to the handler.
type Memory[T Native] struct {
	entry

	buf []T
}

// NewMemory returns a handler backed by buf.
func NewMemory[T Native](space Owner, loc Location, flags Flags, buf []T) *Memory[T] {
	return &Memory[T]{
		entry: newEntry[T](space, loc, flags),
		buf:   buf,
	}
}

// Read returns the element at offset.
func (h *Memory[T]) Read(offset uint32, _ T) T {
	return h.buf[offset]
}

// ReadInterruptible returns the element at offset, memory never stalls.
func (h *Memory[T]) ReadInterruptible(offset uint32, _ T) T {
	return h.buf[offset]
}

// ReadFlags returns the element at offset and the handler flags.
func (h *Memory[T]) ReadFlags(offset uint32, _ T) (T, Flags) {
	return h.buf[offset], h.flags
}

// LookupFlags returns the handler flags.
func (h *Memory[T]) LookupFlags(uint32, T) Flags {
	return h.flags
}

// Write merges the lanes of data selected by mask into the element at
// offset, leaving the other lanes untouched.
func (h *Memory[T]) Write(offset uint32, data, mask T) {
	p := &h.buf[offset]
	*p = *p&^mask | data&mask
}

// WriteInterruptible behaves like Write.
func (h *Memory[T]) WriteInterruptible(offset uint32, data, mask T) {
	p := &h.buf[offset]
	*p = *p&^mask | data&mask
}

// WriteFlags behaves like Write and returns the handler flags.
func (h *Memory[T]) WriteFlags(offset uint32, data, mask T) Flags {
	p := &h.buf[offset]
	*p = *p&^mask | data&mask
	return h.flags
}

// Ptr returns the buffer starting at offset.
func (h *Memory[T]) Ptr(offset uint32) []T {
	return h.buf[offset:]
}

func (h *Memory[T]) Name() string {
	return fmt.Sprintf("memory@%x", h.base)
}
