package handler

// Nop silently terminates accesses to addresses that are known to be absent.
// It returns the same values as Unmapped but never reports an access and does
// not carry FlagUnmapped.
type Nop[T Native] struct {
	entry
}

// NewNop returns a no-op handler. FlagUnmapped is cleared from flags.
func NewNop[T Native](space Owner, loc Location, flags Flags) *Nop[T] {
	return &Nop[T]{
		entry: newEntry[T](space, loc, flags&^FlagUnmapped),
	}
}

func (h *Nop[T]) Read(uint32, T) T {
	return T(h.space.Unmap())
}

func (h *Nop[T]) ReadInterruptible(uint32, T) T {
	return T(h.space.Unmap())
}

func (h *Nop[T]) ReadFlags(uint32, T) (T, Flags) {
	return T(h.space.Unmap()), h.flags
}

func (h *Nop[T]) LookupFlags(uint32, T) Flags {
	return h.flags
}

func (h *Nop[T]) Write(uint32, T, T) {}

func (h *Nop[T]) WriteInterruptible(uint32, T, T) {}

func (h *Nop[T]) WriteFlags(uint32, T, T) Flags {
	return h.flags
}

// Ptr always returns nil.
func (h *Nop[T]) Ptr(uint32) []T {
	return nil
}

func (h *Nop[T]) Name() string {
	return "nop"
}
