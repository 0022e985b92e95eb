package space

import "github.com/retroenv/retrobus/internal/handler"

func (s *Space[T]) reader(address uint32) (handler.Reader[T], uint32) {
	address &= s.addressMask
	m := lookup(s.reads, address)
	return m.handler, s.offset(address, m.base)
}

func (s *Space[T]) writer(address uint32) (handler.Writer[T], uint32) {
	address &= s.addressMask
	m := lookup(s.writes, address)
	return m.handler, s.offset(address, m.base)
}

// Read reads the native unit at address. Address bits outside of the space
// are ignored.
func (s *Space[T]) Read(address uint32, mask T) T {
	h, offset := s.reader(address)
	return h.Read(offset, mask)
}

// ReadInterruptible reads the native unit at address through the
// interruptible path of the handler.
func (s *Space[T]) ReadInterruptible(address uint32, mask T) T {
	h, offset := s.reader(address)
	return h.ReadInterruptible(offset, mask)
}

// ReadFlags reads the native unit at address and returns the handler flags.
func (s *Space[T]) ReadFlags(address uint32, mask T) (T, handler.Flags) {
	h, offset := s.reader(address)
	return h.ReadFlags(offset, mask)
}

// LookupFlags returns the flags of the read handler at address without
// accessing it.
func (s *Space[T]) LookupFlags(address uint32, mask T) handler.Flags {
	h, offset := s.reader(address)
	return h.LookupFlags(offset, mask)
}

// LookupWriteFlags returns the flags of the write handler at address without
// accessing it.
func (s *Space[T]) LookupWriteFlags(address uint32, mask T) handler.Flags {
	h, offset := s.writer(address)
	return h.LookupFlags(offset, mask)
}

// Write writes the lanes of data selected by mask to address.
func (s *Space[T]) Write(address uint32, data, mask T) {
	h, offset := s.writer(address)
	h.Write(offset, data, mask)
}

// WriteInterruptible writes to address through the interruptible path of
// the handler.
func (s *Space[T]) WriteInterruptible(address uint32, data, mask T) {
	h, offset := s.writer(address)
	h.WriteInterruptible(offset, data, mask)
}

// WriteFlags writes to address and returns the handler flags.
func (s *Space[T]) WriteFlags(address uint32, data, mask T) handler.Flags {
	h, offset := s.writer(address)
	return h.WriteFlags(offset, data, mask)
}
