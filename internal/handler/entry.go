package handler

import "github.com/retroenv/retrobus/internal/unmaplog"

// entry holds the state shared by all handler kinds. It is immutable after
// construction.
type entry struct {
	space     Owner
	flags     Flags
	base      uint32
	unitShift int
	width     int
}

func newEntry[T Native](space Owner, loc Location, flags Flags) entry {
	return entry{
		space:     space,
		flags:     flags,
		base:      loc.Base,
		unitShift: UnitShift[T](loc.Shift),
		width:     WidthBits[T](),
	}
}

// Flags returns the flags of the handler.
func (e *entry) Flags() Flags {
	return e.flags
}

// Base returns the byte address that offset zero maps to.
func (e *entry) Base() uint32 {
	return e.base
}

// address converts an offset into a byte address of the owning space.
func (e *entry) address(offset uint32) uint64 {
	return uint64(e.base) + ByteAddress(offset, e.unitShift)
}

// report hands an unmapped access to the owning space, which decides whether
// and how often it ends up in the log.
func (e *entry) report(write bool, offset uint32, data, mask uint64) {
	e.space.ReportUnmapped(unmaplog.Access{
		Space:   e.space.Name(),
		Write:   write,
		Width:   e.width,
		Offset:  offset,
		Address: e.address(offset),
		Mask:    mask,
		Data:    data,
	})
}
