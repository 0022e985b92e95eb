package mapper

import (
	"errors"
	"testing"

	"github.com/retroenv/retrobus/internal/config"
	"github.com/retroenv/retrobus/internal/unmaplog"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type countingSink struct {
	accesses []unmaplog.Access
}

func (c *countingSink) Unmapped(access unmaplog.Access) {
	c.accesses = append(c.accesses, access)
}

func (c *countingSink) Summary(unmaplog.Summary) {}

// buildPRG returns PRG data where the first byte of every bank holds the bank
// number.
func buildPRG(banks int) []byte {
	prg := make([]byte, banks*BankWindowSize)
	for i := range banks {
		prg[i*BankWindowSize] = byte(i)
	}
	return prg
}

func newTestSystem(t *testing.T, cart *cartridge.Cartridge) (*System, *countingSink) {
	t.Helper()
	cfg := config.NewSpace("program", 16)
	cfg.LogUnmap = true
	sink := &countingSink{}

	sys, err := New(log.NewTestLogger(t), cart, cfg, sink)
	assert.NoError(t, err)
	return sys, sink
}

func TestNew_InternalRAMMirror(t *testing.T) {
	sys, sink := newTestSystem(t, &cartridge.Cartridge{PRG: buildPRG(1)})

	sys.CPU.Write(0x0010, 0x42, 0xff)
	for _, address := range []uint32{0x0010, 0x0810, 0x1010, 0x1810} {
		assert.Equal(t, uint8(0x42), sys.CPU.Read(address, 0xff))
	}
	assert.Equal(t, uint8(0x42), sys.RAM[0x10])
	assert.Equal(t, 0, len(sink.accesses))
}

func TestNew_Registers(t *testing.T) {
	sys, sink := newTestSystem(t, &cartridge.Cartridge{PRG: buildPRG(1)})

	assert.Equal(t, uint8(0xff), sys.CPU.Read(0x2002, 0xff))
	sys.CPU.Write(0x4014, 0x02, 0xff)
	assert.Equal(t, 0, len(sink.accesses))

	assert.Equal(t, uint8(0xff), sys.CPU.Read(0x5000, 0xff))
	assert.Equal(t, 1, len(sink.accesses))
	assert.Equal(t, uint64(0x5000), sink.accesses[0].Address)
}

func TestNew_PRGRAM(t *testing.T) {
	sys, _ := newTestSystem(t, &cartridge.Cartridge{PRG: buildPRG(1)})

	sys.CPU.Write(0x7fff, 0x5a, 0xff)
	assert.Equal(t, uint8(0x5a), sys.PRGRAM[0x1fff])
}

func TestNew_NROM128Mirror(t *testing.T) {
	prg := buildPRG(1)
	prg[0x3ffc] = 0x00
	prg[0x3ffd] = 0xc0
	sys, sink := newTestSystem(t, &cartridge.Cartridge{PRG: prg})

	assert.Equal(t, 1, sys.Banks())
	assert.Equal(t, uint8(0xc0), sys.CPU.Read(0xfffd, 0xff))
	assert.Equal(t, uint8(0xc0), sys.CPU.Read(0xbffd, 0xff))

	// ROM writes are unmapped
	sys.CPU.Write(0x8000, 0x01, 0xff)
	assert.Equal(t, 1, len(sink.accesses))
	assert.Equal(t, uint8(0), prg[0])
}

func TestNew_NROM256(t *testing.T) {
	sys, _ := newTestSystem(t, &cartridge.Cartridge{PRG: buildPRG(2)})

	assert.Equal(t, uint8(0), sys.CPU.Read(0x8000, 0xff))
	assert.Equal(t, uint8(1), sys.CPU.Read(0xc000, 0xff))
}

func TestNew_UxROMBankSelect(t *testing.T) {
	sys, sink := newTestSystem(t, &cartridge.Cartridge{PRG: buildPRG(8), Mapper: UxROM})

	assert.Equal(t, UxROM, int(sys.Mapper()))
	assert.Equal(t, 8, sys.Banks())
	assert.Equal(t, uint8(7), sys.CPU.Read(0xc000, 0xff))
	assert.Equal(t, uint8(0), sys.CPU.Read(0x8000, 0xff))

	sys.CPU.Write(0xc123, 0x05, 0xff)
	assert.Equal(t, uint8(5), sys.CPU.Read(0x8000, 0xff))
	assert.Equal(t, 5, sys.PRG.Entry())

	// bank numbers wrap around
	sys.CPU.Write(0x8000, 0x0a, 0xff)
	assert.Equal(t, uint8(2), sys.CPU.Read(0x8000, 0xff))
	assert.Equal(t, uint8(7), sys.CPU.Read(0xc000, 0xff))

	assert.False(t, sys.CPU.LookupWriteFlags(0x8000, 0xff).Unmapped())
	assert.Equal(t, 0, len(sink.accesses))
}

func TestSystem_SelectBank(t *testing.T) {
	sys, _ := newTestSystem(t, &cartridge.Cartridge{PRG: buildPRG(4), Mapper: 1})

	assert.NoError(t, sys.SelectBank(2))
	assert.Equal(t, uint8(2), sys.CPU.Peek(0x8000))
	assert.Equal(t, uint8(3), sys.CPU.Peek(0xc000))

	err := sys.SelectBank(4)
	assert.ErrorContains(t, err, "selecting prg bank")
	assert.Equal(t, uint8(2), sys.CPU.Peek(0x8000))
}

func TestPadPRG(t *testing.T) {
	assert.Equal(t, BankWindowSize, len(padPRG(make([]byte, 100))))
	assert.Equal(t, 2*BankWindowSize, len(padPRG(make([]byte, BankWindowSize+1))))

	prg := make([]byte, BankWindowSize)
	padded := padPRG(prg)
	assert.True(t, &padded[0] == &prg[0])
}

func TestNew_NoPRG(t *testing.T) {
	_, err := New(log.NewTestLogger(t), &cartridge.Cartridge{}, config.NewSpace("program", 16), &countingSink{})
	assert.True(t, errors.Is(err, ErrNoPRG))
}

func TestNew_CNROMBankRegister(t *testing.T) {
	sys, sink := newTestSystem(t, &cartridge.Cartridge{PRG: buildPRG(2), Mapper: CNROM})

	sys.CPU.Write(0x8000, 0x01, 0xff)
	sys.CPU.Write(0xffff, 0x03, 0xff)
	assert.Equal(t, 0, len(sink.accesses))
	assert.False(t, sys.CPU.LookupWriteFlags(0x8000, 0xff).Unmapped())
	assert.False(t, sys.CPU.LookupWriteFlags(0xffff, 0xff).Unmapped())

	// the write does not switch PRG banks
	assert.Equal(t, uint8(0), sys.CPU.Read(0x8000, 0xff))
	assert.Equal(t, uint8(1), sys.CPU.Read(0xc000, 0xff))
}

func TestNew_NROMWriteUnmapped(t *testing.T) {
	sys, sink := newTestSystem(t, &cartridge.Cartridge{PRG: buildPRG(1)})

	sys.CPU.Write(0x8000, 0x01, 0xff)
	assert.Equal(t, 1, len(sink.accesses))
	assert.True(t, sys.CPU.LookupWriteFlags(0x8000, 0xff).Unmapped())
}

func TestNew_InvalidSpace(t *testing.T) {
	cfg := config.NewSpace("program", 0)
	_, err := New(log.NewTestLogger(t), &cartridge.Cartridge{PRG: buildPRG(1)}, cfg, &countingSink{})
	assert.ErrorContains(t, err, "creating cpu space")
}
