// Package bank provides memory banks, named indirections that select which
// buffer a banked handler currently serves accesses from.
package bank

import (
	"errors"
	"fmt"
)

// ErrEntry is returned when an entry that was never configured is selected.
var ErrEntry = errors.New("bank entry not configured")

// Bank is a runtime-rebindable buffer selection. It is mutated by machine
// logic only and read by handlers on every access, all on the emulation
// thread.
type Bank[T any] struct {
	name    string
	entries [][]T
	current int
	base    []T
}

// New returns an unbound bank.
func New[T any](name string) *Bank[T] {
	return &Bank[T]{
		name:    name,
		current: -1,
	}
}

// Name returns the name of the bank.
func (b *Bank[T]) Name() string {
	return b.name
}

// Base returns the buffer the bank currently points at.
func (b *Bank[T]) Base() []T {
	return b.base
}

// SetBase points the bank at buf directly, bypassing the entry table.
func (b *Bank[T]) SetBase(buf []T) {
	b.base = buf
	b.current = -1
}

// ConfigureEntry sets the buffer of entry index, growing the entry table as
// needed. If index is the selected entry the bank is rebound to buf.
func (b *Bank[T]) ConfigureEntry(index int, buf []T) error {
	if index < 0 {
		return fmt.Errorf("configuring entry %d of bank '%s': %w", index, b.name, ErrEntry)
	}
	for len(b.entries) <= index {
		b.entries = append(b.entries, nil)
	}
	b.entries[index] = buf
	if index == b.current {
		b.base = buf
	}
	return nil
}

// ConfigureEntries splits buf into count entries of stride elements each,
// numbered from first.
func (b *Bank[T]) ConfigureEntries(first, count int, buf []T, stride int) error {
	if stride <= 0 {
		return fmt.Errorf("invalid stride %d for bank '%s'", stride, b.name)
	}
	if count*stride > len(buf) {
		return fmt.Errorf("bank '%s' needs %d elements for %d entries but buffer has %d",
			b.name, count*stride, count, len(buf))
	}

	for i := range count {
		start := i * stride
		if err := b.ConfigureEntry(first+i, buf[start:start+stride:start+stride]); err != nil {
			return err
		}
	}
	return nil
}

// SetEntry selects entry index as the current buffer.
func (b *Bank[T]) SetEntry(index int) error {
	if index < 0 || index >= len(b.entries) || b.entries[index] == nil {
		return fmt.Errorf("selecting entry %d of bank '%s': %w", index, b.name, ErrEntry)
	}
	b.current = index
	b.base = b.entries[index]
	return nil
}

// Entry returns the selected entry, or -1 if the bank was bound with SetBase
// or never bound.
func (b *Bank[T]) Entry() int {
	return b.current
}

// Entries returns the number of configured entry slots.
func (b *Bank[T]) Entries() int {
	return len(b.entries)
}
