package space

import (
	"fmt"
	"io"

	"github.com/retroenv/retrobus/internal/handler"
)

// DisableSideEffects suspends the reporting of unmapped accesses until the
// returned function is called. Calls can be nested.
func (s *Space[T]) DisableSideEffects() (restore func()) {
	s.sideEffectsDisabled++
	return func() {
		s.sideEffectsDisabled--
	}
}

// SideEffectsDisabled returns whether side effects are currently suspended.
func (s *Space[T]) SideEffectsDisabled() bool {
	return s.sideEffectsDisabled > 0
}

// Peek returns the native unit at address without calling the read entry
// point of its handler. Addresses without backing storage return the fill
// value of the space.
func (s *Space[T]) Peek(address uint32) T {
	h, offset := s.reader(address)
	if ptr := h.Ptr(offset); ptr != nil {
		return ptr[0]
	}
	return T(s.unmap)
}

// Poke stores data at address directly in the backing storage of the write
// handler. It returns false if the address has no backing storage.
func (s *Space[T]) Poke(address uint32, data T) bool {
	h, offset := s.writer(address)
	ptr := h.Ptr(offset)
	if ptr == nil {
		return false
	}
	ptr[0] = data
	return true
}

// Describe writes the current address map of the space to w.
func (s *Space[T]) Describe(w io.Writer) error {
	digits := (s.cfg.AddressBits + 3) / 4
	if _, err := fmt.Fprintf(w, "%s space, %d address bits, %d bit data\n",
		s.cfg.Name, s.cfg.AddressBits, handler.WidthBits[T]()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, m := range s.reads {
		if _, err := fmt.Fprintf(w, "  read  %0*X-%0*X %s\n", digits, m.start, digits, m.end, m.handler.Name()); err != nil {
			return fmt.Errorf("writing read mapping: %w", err)
		}
	}
	for _, m := range s.writes {
		if _, err := fmt.Fprintf(w, "  write %0*X-%0*X %s\n", digits, m.start, digits, m.end, m.handler.Name()); err != nil {
			return fmt.Errorf("writing write mapping: %w", err)
		}
	}
	return nil
}
