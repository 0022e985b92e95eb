package handler

// Unmapped terminates accesses to addresses without a backing device. Reads
// return the fill value of the owning space, writes are dropped and both are
// reported to the space when it has unmapped logging enabled.
type Unmapped[T Native] struct {
	entry
}

// NewUnmapped returns an unmapped handler. FlagUnmapped is always set.
func NewUnmapped[T Native](space Owner, loc Location, flags Flags) *Unmapped[T] {
	return &Unmapped[T]{
		entry: newEntry[T](space, loc, flags|FlagUnmapped),
	}
}

// Read reports the access and returns the fill value.
func (h *Unmapped[T]) Read(offset uint32, mask T) T {
	if h.space.LogUnmap() {
		h.report(false, offset, 0, uint64(mask))
	}
	return T(h.space.Unmap())
}

// ReadInterruptible behaves like Read.
func (h *Unmapped[T]) ReadInterruptible(offset uint32, mask T) T {
	return h.Read(offset, mask)
}

// ReadFlags behaves like Read and returns the handler flags.
func (h *Unmapped[T]) ReadFlags(offset uint32, mask T) (T, Flags) {
	return h.Read(offset, mask), h.flags
}

// LookupFlags returns the handler flags. It never reports the access.
func (h *Unmapped[T]) LookupFlags(uint32, T) Flags {
	return h.flags
}

// Write reports the access and drops the data.
func (h *Unmapped[T]) Write(offset uint32, data, mask T) {
	if h.space.LogUnmap() {
		h.report(true, offset, uint64(data), uint64(mask))
	}
}

// WriteInterruptible behaves like Write.
func (h *Unmapped[T]) WriteInterruptible(offset uint32, data, mask T) {
	h.Write(offset, data, mask)
}

// WriteFlags behaves like Write and returns the handler flags.
func (h *Unmapped[T]) WriteFlags(offset uint32, data, mask T) Flags {
	h.Write(offset, data, mask)
	return h.flags
}

// Ptr always returns nil.
func (h *Unmapped[T]) Ptr(uint32) []T {
	return nil
}

func (h *Unmapped[T]) Name() string {
	return "unmapped"
}
