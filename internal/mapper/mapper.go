// Package mapper builds the CPU address space of an NES cartridge.
package mapper

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrobus/internal/bank"
	"github.com/retroenv/retrobus/internal/config"
	"github.com/retroenv/retrobus/internal/space"
	"github.com/retroenv/retrobus/internal/unmaplog"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
)

// CPU memory map.
const (
	ramSize     = 0x0800
	ramEnd      = 0x1fff
	ppuStart    = 0x2000
	ppuEnd      = 0x3fff
	apuStart    = 0x4000
	apuEnd      = 0x401f
	prgRAMStart = 0x6000
	prgRAMEnd   = 0x7fff
	prgRAMSize  = 0x2000

	switchableStart = 0x8000
	switchableEnd   = 0xbfff
	fixedStart      = 0xc000
	fixedEnd        = 0xffff

	// BankWindowSize is the size of a switchable PRG bank.
	BankWindowSize = 0x4000
)

// supported mapper numbers.
const (
	NROM  = 0
	UxROM = 2
	CNROM = 3
)

// ErrNoPRG is returned for cartridges without program data.
var ErrNoPRG = errors.New("cartridge contains no PRG data")

// System is the CPU side of a cartridge mapped into an address space.
type System struct {
	logger *log.Logger

	CPU    *space.Space[uint8]
	PRG    *bank.Bank[uint8] // switchable window at $8000-$BFFF
	RAM    []uint8
	PRGRAM []uint8

	mapper byte
	prg    []uint8
}

// New creates the CPU address space for the cartridge. Unmapped accesses are
// reported to sink.
func New(logger *log.Logger, cart *cartridge.Cartridge, cfg config.Space, sink unmaplog.Sink) (*System, error) {
	if len(cart.PRG) == 0 {
		return nil, ErrNoPRG
	}

	cpu, err := space.New[uint8](logger, cfg, sink)
	if err != nil {
		return nil, fmt.Errorf("creating cpu space: %w", err)
	}

	sys := &System{
		logger: logger,
		CPU:    cpu,
		PRG:    bank.New[uint8]("prg"),
		RAM:    make([]uint8, ramSize),
		PRGRAM: make([]uint8, prgRAMSize),
		mapper: cart.Mapper,
		prg:    padPRG(cart.PRG),
	}

	if err := sys.mapInternal(); err != nil {
		return nil, err
	}
	if err := sys.mapCartridge(); err != nil {
		return nil, err
	}
	return sys, nil
}

// padPRG extends PRG data to a multiple of the bank window size, the padding
// reads as zero.
func padPRG(prg []byte) []uint8 {
	remainder := len(prg) % BankWindowSize
	if remainder == 0 {
		return prg
	}
	padded := make([]uint8, len(prg)+BankWindowSize-remainder)
	copy(padded, prg)
	return padded
}

// mapInternal maps the console side of the memory map.
func (s *System) mapInternal() error {
	for start := uint32(0); start < ramEnd; start += ramSize {
		if err := s.CPU.InstallRAM(start, start+ramSize-1, s.RAM); err != nil {
			return fmt.Errorf("mapping internal ram: %w", err)
		}
	}

	// PPU and APU registers are outside of this model, accesses are known
	// to be harmless.
	if err := s.CPU.NopReadWrite(ppuStart, ppuEnd); err != nil {
		return fmt.Errorf("mapping ppu registers: %w", err)
	}
	if err := s.CPU.NopReadWrite(apuStart, apuEnd); err != nil {
		return fmt.Errorf("mapping apu registers: %w", err)
	}
	return nil
}

// mapCartridge maps PRG RAM and the PRG banks of the cartridge.
func (s *System) mapCartridge() error {
	if err := s.CPU.InstallRAM(prgRAMStart, prgRAMEnd, s.PRGRAM); err != nil {
		return fmt.Errorf("mapping prg ram: %w", err)
	}

	banks := len(s.prg) / BankWindowSize
	if err := s.PRG.ConfigureEntries(0, banks, s.prg, BankWindowSize); err != nil {
		return fmt.Errorf("configuring prg banks: %w", err)
	}
	if err := s.PRG.SetEntry(0); err != nil {
		return fmt.Errorf("selecting prg bank: %w", err)
	}

	last := s.prg[(banks-1)*BankWindowSize:]
	if err := s.CPU.InstallROM(fixedStart, fixedEnd, last); err != nil {
		return fmt.Errorf("mapping fixed prg bank: %w", err)
	}

	switch s.mapper {
	case NROM:
		// NROM-128 repeats its only bank, NROM-256 maps both banks in order
		if err := s.CPU.InstallReadBank(switchableStart, switchableEnd, s.PRG); err != nil {
			return fmt.Errorf("mapping prg bank: %w", err)
		}

	case CNROM:
		if err := s.CPU.InstallReadBank(switchableStart, switchableEnd, s.PRG); err != nil {
			return fmt.Errorf("mapping prg bank: %w", err)
		}
		// CHR bank register, CHR memory is not part of the CPU space
		if err := s.CPU.NopWrite(switchableStart, fixedEnd); err != nil {
			return fmt.Errorf("mapping chr bank register: %w", err)
		}

	case UxROM:
		if err := s.CPU.InstallReadBank(switchableStart, switchableEnd, s.PRG); err != nil {
			return fmt.Errorf("mapping prg bank: %w", err)
		}
		if err := s.CPU.InstallWrite(switchableStart, fixedEnd, newBankSelect(s.logger, s.PRG)); err != nil {
			return fmt.Errorf("mapping bank select register: %w", err)
		}

	default:
		s.logger.Warn("Support for this mapper is experimental, only the default PRG bank layout is mapped",
			log.Uint8("mapper", s.mapper))
		if err := s.CPU.InstallReadBank(switchableStart, switchableEnd, s.PRG); err != nil {
			return fmt.Errorf("mapping prg bank: %w", err)
		}
	}
	return nil
}

// Mapper returns the mapper number of the cartridge.
func (s *System) Mapper() byte {
	return s.mapper
}

// Banks returns the number of PRG banks that can be selected.
func (s *System) Banks() int {
	return s.PRG.Entries()
}

// SelectBank maps PRG bank index into the switchable window.
func (s *System) SelectBank(index int) error {
	if err := s.PRG.SetEntry(index); err != nil {
		return fmt.Errorf("selecting prg bank: %w", err)
	}
	s.logger.Debug("Selected PRG bank", log.Int("bank", index))
	return nil
}
