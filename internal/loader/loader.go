// Package loader handles cartridge file loading operations.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrobus/internal/options"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

// Loader handles loading cartridge files from disk.
type Loader struct{}

// New creates a new cartridge loader.
func New() *Loader {
	return &Loader{}
}

// Load loads and parses the cartridge file named by the options. Raw binary
// images without iNES header are loaded as a single PRG area.
func (l *Loader) Load(opts options.Program) (*cartridge.Cartridge, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	return l.load(file, opts.Binary)
}

// LoadFromBytes parses a cartridge image held in memory.
func (l *Loader) LoadFromBytes(data []byte, binary bool) (*cartridge.Cartridge, error) {
	return l.load(bytes.NewReader(data), binary)
}

func (l *Loader) load(reader io.Reader, binary bool) (*cartridge.Cartridge, error) {
	var cart *cartridge.Cartridge
	var err error
	if binary {
		cart, err = cartridge.LoadBuffer(reader)
	} else {
		cart, err = cartridge.LoadFile(reader)
	}
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}
	return cart, nil
}
