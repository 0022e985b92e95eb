package mapper

import (
	"github.com/retroenv/retrobus/internal/bank"
	"github.com/retroenv/retrobus/internal/handler"
	"github.com/retroenv/retrogolib/log"
)

// bankSelect is the UxROM bank register. Any write to the PRG area selects
// the bank for the switchable window, bank numbers wrap around the number of
// available banks.
type bankSelect struct {
	logger *log.Logger
	bank   *bank.Bank[uint8]
}

var _ handler.Writer[uint8] = (*bankSelect)(nil)

func newBankSelect(logger *log.Logger, b *bank.Bank[uint8]) *bankSelect {
	return &bankSelect{
		logger: logger,
		bank:   b,
	}
}

func (b *bankSelect) Write(_ uint32, data, mask uint8) {
	index := int(data&mask) % b.bank.Entries()
	if index == b.bank.Entry() {
		return
	}
	// all entries below Entries are configured, selecting can not fail
	_ = b.bank.SetEntry(index)
	b.logger.Debug("Switched PRG bank", log.Int("bank", index))
}

func (b *bankSelect) WriteInterruptible(offset uint32, data, mask uint8) {
	b.Write(offset, data, mask)
}

func (b *bankSelect) WriteFlags(offset uint32, data, mask uint8) handler.Flags {
	b.Write(offset, data, mask)
	return 0
}

func (b *bankSelect) LookupFlags(uint32, uint8) handler.Flags {
	return 0
}

// Ptr returns nil, the register has no backing storage.
func (b *bankSelect) Ptr(uint32) []uint8 {
	return nil
}

func (b *bankSelect) Name() string {
	return "uxrom bank select"
}
