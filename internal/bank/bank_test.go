package bank

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestBank_SetBase(t *testing.T) {
	b := New[uint16]("rombank")
	assert.Equal(t, "rombank", b.Name())
	assert.True(t, b.Base() == nil)
	assert.Equal(t, -1, b.Entry())

	buf := []uint16{0xAAAA, 0xBBBB}
	b.SetBase(buf)
	assert.Equal(t, uint16(0xAAAA), b.Base()[0])
	assert.Equal(t, -1, b.Entry())
}

func TestBank_ConfigureEntries(t *testing.T) {
	data := []uint8{0, 1, 2, 3, 4, 5, 6, 7}
	b := New[uint8]("prg")

	assert.NoError(t, b.ConfigureEntries(0, 4, data, 2))
	assert.Equal(t, 4, b.Entries())

	assert.NoError(t, b.SetEntry(2))
	assert.Equal(t, 2, b.Entry())
	assert.Equal(t, 2, len(b.Base()))
	assert.Equal(t, uint8(4), b.Base()[0])
	assert.Equal(t, uint8(5), b.Base()[1])

	// entries alias the configured region
	b.Base()[0] = 0x44
	assert.Equal(t, uint8(0x44), data[4])
}

func TestBank_ConfigureEntriesErrors(t *testing.T) {
	b := New[uint8]("prg")
	assert.Error(t, b.ConfigureEntries(0, 4, make([]uint8, 7), 2))
	assert.Error(t, b.ConfigureEntries(0, 1, make([]uint8, 7), 0))
	assert.Error(t, b.ConfigureEntry(-1, nil))
}

func TestBank_SetEntryUnknown(t *testing.T) {
	b := New[uint8]("prg")
	err := b.SetEntry(0)
	assert.True(t, errors.Is(err, ErrEntry))

	assert.NoError(t, b.ConfigureEntry(3, []uint8{1}))
	assert.True(t, errors.Is(b.SetEntry(1), ErrEntry))
	assert.NoError(t, b.SetEntry(3))
}

func TestBank_ReconfigureSelectedEntry(t *testing.T) {
	b := New[uint32]("vram")
	assert.NoError(t, b.ConfigureEntry(0, []uint32{1}))
	assert.NoError(t, b.SetEntry(0))

	assert.NoError(t, b.ConfigureEntry(0, []uint32{2}))
	assert.Equal(t, uint32(2), b.Base()[0])
}
