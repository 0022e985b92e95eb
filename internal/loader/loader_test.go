package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrobus/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load binary file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x01, 0x02, 0x03, 0x04})

		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile},
			Flags:      options.Flags{Binary: true},
		}

		cart, err := New().Load(opts)
		assert.NoError(t, err)
		assert.NotNil(t, cart)
		assert.Equal(t, byte(0x01), cart.PRG[0])
	})

	t.Run("load NES file with valid header", func(t *testing.T) {
		tmpFile := createTempFile(t, buildMinimalNESROM(1, 0))

		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		}

		cart, err := New().Load(opts)
		assert.NoError(t, err)
		assert.NotNil(t, cart)
		assert.Equal(t, 16384, len(cart.PRG))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: "/nonexistent/file.nes"},
		}

		_, err := New().Load(opts)
		assert.ErrorContains(t, err, "opening file")
	})
}

func TestLoadFromBytes(t *testing.T) {
	t.Run("load binary data", func(t *testing.T) {
		data := []byte{0xEA, 0xEA, 0xEA}

		cart, err := New().LoadFromBytes(data, true)
		assert.NoError(t, err)
		// LoadBuffer pads to minimum PRG bank size
		assert.True(t, len(cart.PRG) >= len(data))
		assert.Equal(t, byte(0xEA), cart.PRG[2])
	})

	t.Run("load NES ROM with mapper 2", func(t *testing.T) {
		cart, err := New().LoadFromBytes(buildMinimalNESROM(4, 2), false)
		assert.NoError(t, err)
		assert.Equal(t, byte(2), cart.Mapper)
		assert.Equal(t, 4*16384, len(cart.PRG))
	})

	t.Run("error on invalid NES header", func(t *testing.T) {
		_, err := New().LoadFromBytes(make([]byte, 100), false)
		assert.ErrorContains(t, err, "loading cartridge")
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.bin")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}

// buildMinimalNESROM creates a minimal iNES image with the given number of
// 16KB PRG banks and mapper number.
func buildMinimalNESROM(prgBanks, mapper byte) []byte {
	const nesHeaderSize = 16
	const prgBankSize = 16384

	data := make([]byte, nesHeaderSize+int(prgBanks)*prgBankSize)
	copy(data[0:4], []byte{'N', 'E', 'S', 0x1A})
	data[4] = prgBanks
	data[6] = mapper << 4
	data[7] = mapper & 0xF0
	return data
}
