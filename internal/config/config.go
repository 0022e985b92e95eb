// Package config handles application configuration and setup
package config

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Unmap selects the value reads from absent storage return.
type Unmap string

// supported fill polarities.
const (
	UnmapHigh Unmap = "high" // all bits set
	UnmapLow  Unmap = "low"  // all bits clear
)

// MaxAddressBits is the widest address bus a space can be configured with.
const MaxAddressBits = 32

var errInvalid = errors.New("invalid space configuration")

// Space configures an address space.
type Space struct {
	Name        string // diagnostic name, e.g. "program"
	AddressBits int    // width of the address bus
	Shift       int    // address shift of the bus, negative for word addressing
	Unmap       Unmap  // fill value polarity
	LogUnmap    bool   // report unmapped accesses
	LogLimit    int    // distinct unmapped addresses reported, 0 for no limit
}

// NewSpace returns a space configuration with default settings.
func NewSpace(name string, addressBits int) Space {
	return Space{
		Name:        name,
		AddressBits: addressBits,
		Unmap:       UnmapHigh,
		LogLimit:    64,
	}
}

// Validate checks the configuration for consistency.
func (s Space) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", errInvalid)
	}
	if s.AddressBits <= 0 || s.AddressBits > MaxAddressBits {
		return fmt.Errorf("%w: address bits %d out of range 1-%d", errInvalid, s.AddressBits, MaxAddressBits)
	}
	if s.Shift < -3 || s.Shift > 3 {
		return fmt.Errorf("%w: address shift %d out of range", errInvalid, s.Shift)
	}
	switch s.Unmap {
	case UnmapHigh, UnmapLow:
	default:
		return fmt.Errorf("%w: unsupported unmap value '%s'", errInvalid, s.Unmap)
	}
	if s.LogLimit < 0 {
		return fmt.Errorf("%w: negative log limit %d", errInvalid, s.LogLimit)
	}
	return nil
}

// UnmapValue returns the fill value as a full 64 bit word. Handlers truncate
// it to their width.
func (s Space) UnmapValue() uint64 {
	if s.Unmap == UnmapLow {
		return 0
	}
	return ^uint64(0)
}

// AddressMask returns the mask of valid byte addresses.
func (s Space) AddressMask() uint32 {
	if s.AddressBits >= 32 {
		return ^uint32(0)
	}
	return 1<<s.AddressBits - 1
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
