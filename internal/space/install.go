package space

import (
	"fmt"

	"github.com/retroenv/retrobus/internal/bank"
	"github.com/retroenv/retrobus/internal/handler"
	"github.com/retroenv/retrogolib/log"
)

// Option modifies how a handler gets installed.
type Option func(*installOptions)

type installOptions struct {
	flags handler.Flags
}

// WithFlags sets user flags on the installed handlers. Category bits are
// ignored, they are owned by the handlers.
func WithFlags(flags handler.Flags) Option {
	return func(opts *installOptions) {
		opts.flags |= flags & handler.UserMask
	}
}

func applyOptions(options []Option) installOptions {
	var opts installOptions
	for _, option := range options {
		option(&opts)
	}
	return opts
}

// checkRange validates an inclusive address range.
func (s *Space[T]) checkRange(start, end uint32) error {
	unit := uint64(s.UnitBytes())
	switch {
	case start > end:
		return fmt.Errorf("%w: start %X after end %X", ErrRange, start, end)
	case end > s.addressMask:
		return fmt.Errorf("%w: end %X outside of %d bit space", ErrRange, end, s.cfg.AddressBits)
	case uint64(start)%unit != 0, (uint64(end)+1)%unit != 0:
		return fmt.Errorf("%w: %X-%X not aligned to %d", ErrRange, start, end, unit)
	}
	return nil
}

// units returns the number of native elements an inclusive range spans.
func (s *Space[T]) units(start, end uint32) uint64 {
	return (uint64(end) - uint64(start) + 1) >> s.unitShift
}

func (s *Space[T]) checkBuffer(start, end uint32, buf []T) error {
	if units := s.units(start, end); uint64(len(buf)) < units {
		return fmt.Errorf("%w: %X-%X needs %d elements, got %d", ErrBuffer, start, end, units, len(buf))
	}
	return nil
}

func (s *Space[T]) location(start uint32) handler.Location {
	return handler.Location{Base: start, Shift: s.cfg.Shift}
}

// installRead routes reads from the range to h, offsets are relative to base.
func (s *Space[T]) installRead(start, end, base uint32, h handler.Reader[T]) {
	s.logger.Debug("Installing read handler",
		log.String("space", s.cfg.Name),
		log.Hex("start", start),
		log.Hex("end", end),
		log.String("handler", h.Name()))
	s.reads = insert(s.reads, mapping[handler.Reader[T]]{start: start, end: end, base: base, handler: h})
}

// installWrite routes writes to the range to h, offsets are relative to base.
func (s *Space[T]) installWrite(start, end, base uint32, h handler.Writer[T]) {
	s.logger.Debug("Installing write handler",
		log.String("space", s.cfg.Name),
		log.Hex("start", start),
		log.Hex("end", end),
		log.String("handler", h.Name()))
	s.writes = insert(s.writes, mapping[handler.Writer[T]]{start: start, end: end, base: base, handler: h})
}

// InstallRead installs a custom read handler over the range. Offset zero of
// the handler maps to start.
func (s *Space[T]) InstallRead(start, end uint32, h handler.Reader[T]) error {
	if err := s.checkRange(start, end); err != nil {
		return err
	}
	s.installRead(start, end, start, h)
	return nil
}

// InstallWrite installs a custom write handler over the range. Offset zero
// of the handler maps to start.
func (s *Space[T]) InstallWrite(start, end uint32, h handler.Writer[T]) error {
	if err := s.checkRange(start, end); err != nil {
		return err
	}
	s.installWrite(start, end, start, h)
	return nil
}

// InstallRAM maps buf for reading and writing. The same buffer can be
// installed over multiple ranges to mirror it.
func (s *Space[T]) InstallRAM(start, end uint32, buf []T, options ...Option) error {
	h, err := s.memory(start, end, buf, options)
	if err != nil {
		return fmt.Errorf("installing ram: %w", err)
	}
	s.installRead(start, end, start, h)
	s.installWrite(start, end, start, h)
	return nil
}

// InstallROM maps buf for reading. Writes to the range are unmapped.
func (s *Space[T]) InstallROM(start, end uint32, buf []T, options ...Option) error {
	h, err := s.memory(start, end, buf, options)
	if err != nil {
		return fmt.Errorf("installing rom: %w", err)
	}
	s.installRead(start, end, start, h)
	s.installWrite(start, end, start, handler.NewUnmapped[T](s, s.location(start), h.Flags()))
	return nil
}

// InstallWriteOnly maps buf for writing. Reads from the range are unmapped.
func (s *Space[T]) InstallWriteOnly(start, end uint32, buf []T, options ...Option) error {
	h, err := s.memory(start, end, buf, options)
	if err != nil {
		return fmt.Errorf("installing write only memory: %w", err)
	}
	s.installRead(start, end, start, handler.NewUnmapped[T](s, s.location(start), h.Flags()))
	s.installWrite(start, end, start, h)
	return nil
}

func (s *Space[T]) memory(start, end uint32, buf []T, options []Option) (*handler.Memory[T], error) {
	if err := s.checkRange(start, end); err != nil {
		return nil, err
	}
	if err := s.checkBuffer(start, end, buf); err != nil {
		return nil, err
	}
	opts := applyOptions(options)
	return handler.NewMemory(s, s.location(start), opts.flags, buf), nil
}

// InstallBank maps the bank for reading and writing. The buffer the bank
// currently points to is used on every access, it has to cover the range
// whenever an access happens.
func (s *Space[T]) InstallBank(start, end uint32, b *bank.Bank[T], options ...Option) error {
	h, err := s.banked(start, end, b, options)
	if err != nil {
		return fmt.Errorf("installing bank: %w", err)
	}
	s.installRead(start, end, start, h)
	s.installWrite(start, end, start, h)
	return nil
}

// InstallReadBank maps the bank for reading.
func (s *Space[T]) InstallReadBank(start, end uint32, b *bank.Bank[T], options ...Option) error {
	h, err := s.banked(start, end, b, options)
	if err != nil {
		return fmt.Errorf("installing read bank: %w", err)
	}
	s.installRead(start, end, start, h)
	return nil
}

// InstallWriteBank maps the bank for writing.
func (s *Space[T]) InstallWriteBank(start, end uint32, b *bank.Bank[T], options ...Option) error {
	h, err := s.banked(start, end, b, options)
	if err != nil {
		return fmt.Errorf("installing write bank: %w", err)
	}
	s.installWrite(start, end, start, h)
	return nil
}

func (s *Space[T]) banked(start, end uint32, b *bank.Bank[T], options []Option) (*handler.Banked[T], error) {
	if err := s.checkRange(start, end); err != nil {
		return nil, err
	}
	opts := applyOptions(options)
	return handler.NewBanked(s, s.location(start), opts.flags, b), nil
}

// UnmapRead marks reads from the range as unmapped.
func (s *Space[T]) UnmapRead(start, end uint32) error {
	if err := s.checkRange(start, end); err != nil {
		return err
	}
	s.installRead(start, end, 0, s.unmapped)
	return nil
}

// UnmapWrite marks writes to the range as unmapped.
func (s *Space[T]) UnmapWrite(start, end uint32) error {
	if err := s.checkRange(start, end); err != nil {
		return err
	}
	s.installWrite(start, end, 0, s.unmapped)
	return nil
}

// UnmapReadWrite marks all accesses to the range as unmapped.
func (s *Space[T]) UnmapReadWrite(start, end uint32) error {
	if err := s.UnmapRead(start, end); err != nil {
		return err
	}
	return s.UnmapWrite(start, end)
}

// NopRead silently ignores reads from the range.
func (s *Space[T]) NopRead(start, end uint32) error {
	if err := s.checkRange(start, end); err != nil {
		return err
	}
	s.installRead(start, end, 0, s.nop)
	return nil
}

// NopWrite silently ignores writes to the range.
func (s *Space[T]) NopWrite(start, end uint32) error {
	if err := s.checkRange(start, end); err != nil {
		return err
	}
	s.installWrite(start, end, 0, s.nop)
	return nil
}

// NopReadWrite silently ignores all accesses to the range.
func (s *Space[T]) NopReadWrite(start, end uint32) error {
	if err := s.NopRead(start, end); err != nil {
		return err
	}
	return s.NopWrite(start, end)
}
