package handler

import "github.com/retroenv/retrobus/internal/bank"

// Banked serves accesses through a memory bank. The current buffer of the
// bank is fetched on every access, a bank switch is visible to the very next
// access without touching the handler.
type Banked[T Native] struct {
	entry

	bank *bank.Bank[T]
}

// NewBanked returns a handler reading and writing through b. The handler
// does not own the bank.
func NewBanked[T Native](space Owner, loc Location, flags Flags, b *bank.Bank[T]) *Banked[T] {
	return &Banked[T]{
		entry: newEntry[T](space, loc, flags),
		bank:  b,
	}
}

// Read returns the element at offset of the current bank buffer.
func (h *Banked[T]) Read(offset uint32, _ T) T {
	return h.bank.Base()[offset]
}

// ReadInterruptible behaves like Read.
func (h *Banked[T]) ReadInterruptible(offset uint32, _ T) T {
	return h.bank.Base()[offset]
}

// ReadFlags returns the element at offset and the handler flags.
func (h *Banked[T]) ReadFlags(offset uint32, _ T) (T, Flags) {
	return h.bank.Base()[offset], h.flags
}

// LookupFlags returns the handler flags.
func (h *Banked[T]) LookupFlags(uint32, T) Flags {
	return h.flags
}

// Write merges the lanes of data selected by mask into the current bank
// buffer.
func (h *Banked[T]) Write(offset uint32, data, mask T) {
	p := &h.bank.Base()[offset]
	*p = *p&^mask | data&mask
}

// WriteInterruptible behaves like Write.
func (h *Banked[T]) WriteInterruptible(offset uint32, data, mask T) {
	p := &h.bank.Base()[offset]
	*p = *p&^mask | data&mask
}

// WriteFlags behaves like Write and returns the handler flags.
func (h *Banked[T]) WriteFlags(offset uint32, data, mask T) Flags {
	p := &h.bank.Base()[offset]
	*p = *p&^mask | data&mask
	return h.flags
}

// Ptr returns the current bank buffer starting at offset, or nil if the bank
// is not bound to any buffer yet.
func (h *Banked[T]) Ptr(offset uint32) []T {
	base := h.bank.Base()
	if base == nil {
		return nil
	}
	return base[offset:]
}

// Name returns the name of the bank.
func (h *Banked[T]) Name() string {
	return h.bank.Name()
}
