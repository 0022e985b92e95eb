// Package handler provides the terminal bus handlers an address space routes
// every resolved access to: direct memory, banked memory, unmapped and no-op.
//
// Handlers are generic over the native transfer type of the bus. Each width is
// its own instantiation, so no handler branches on the access width at run
// time. Offsets passed to a handler are already expressed in native units
// relative to the start of the mapping the handler was installed for.
package handler

import "github.com/retroenv/retrobus/internal/unmaplog"

// Reader is the read side of a terminal handler.
type Reader[T Native] interface {
	// Read returns the value stored at offset. Lanes outside mask carry
	// unspecified bits.
	Read(offset uint32, mask T) T
	// ReadInterruptible behaves like Read but may suspend the calling core
	// for devices that can stall the bus.
	ReadInterruptible(offset uint32, mask T) T
	// ReadFlags performs the read and returns the handler flags with it.
	ReadFlags(offset uint32, mask T) (T, Flags)
	// LookupFlags returns the handler flags without performing an access.
	LookupFlags(offset uint32, mask T) Flags
	// Ptr returns the backing storage starting at offset, or nil.
	Ptr(offset uint32) []T
	// Name returns a diagnostic label.
	Name() string
}

// Writer is the write side of a terminal handler.
type Writer[T Native] interface {
	// Write stores the lanes of data selected by mask at offset.
	Write(offset uint32, data, mask T)
	// WriteInterruptible behaves like Write but may suspend the calling core
	// for devices that can stall the bus.
	WriteInterruptible(offset uint32, data, mask T)
	// WriteFlags performs the write and returns the handler flags.
	WriteFlags(offset uint32, data, mask T) Flags
	// LookupFlags returns the handler flags without performing an access.
	LookupFlags(offset uint32, mask T) Flags
	// Ptr returns the backing storage starting at offset, or nil.
	Ptr(offset uint32) []T
	// Name returns a diagnostic label.
	Name() string
}

// Handler serves both directions of an access.
type Handler[T Native] interface {
	Reader[T]
	Writer[T]
}

// Owner is the address space a handler is installed in.
type Owner interface {
	// Name identifies the space in diagnostics.
	Name() string
	// Unmap returns the fill value for reads from absent storage. Handlers
	// truncate it to their width.
	Unmap() uint64
	// LogUnmap reports whether unmapped accesses are reported at all.
	LogUnmap() bool
	// ReportUnmapped receives an unmapped access for diagnostics.
	ReportUnmapped(access unmaplog.Access)
}

// Location fixes where a handler sits in the space of its owner.
type Location struct {
	Base  uint32 // byte address that offset zero maps to
	Shift int    // address shift of the bus
}

var (
	_ Handler[uint8]  = (*Memory[uint8])(nil)
	_ Handler[uint16] = (*Banked[uint16])(nil)
	_ Handler[uint32] = (*Unmapped[uint32])(nil)
	_ Handler[uint64] = (*Nop[uint64])(nil)
)
