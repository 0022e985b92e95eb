// Package options contains the program options.
package options

import "github.com/retroenv/retrobus/internal/config"

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	Binary   bool   `flag:"binary" usage:"treat input as raw binary without header"`
	Bank     int    `flag:"bank" usage:"PRG bank selected in the switchable window"`
	Peek     string `flag:"peek" usage:"hex dump ADDR[:LEN] without side effects"`
	Trace    int    `flag:"trace" usage:"number of instructions to walk from the reset vector"`
	Unmap    string `flag:"unmap" usage:"value of unmapped reads: low, high" default:"high"`
	LogUnmap bool   `flag:"logunmap" usage:"log unmapped memory accesses"`
	LogLimit int    `flag:"loglimit" usage:"distinct unmapped addresses to log" default:"64"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the bus probe.
type Program struct {
	Parameters
	Flags
}

// Probe defines what the probe does with the address space it builds.
type Probe struct {
	Space config.Space // CPU address space settings

	Bank        int    // PRG bank entry to select
	PeekAddress uint32 // first address to dump
	PeekLength  uint32 // number of bytes to dump, 0 disables the dump
	TraceSteps  int    // instructions to trace, 0 disables tracing
}

// NewProbe returns probe options with the default settings of a 16 bit CPU
// address space.
func NewProbe() Probe {
	return Probe{
		Space: config.NewSpace("program", 16),
	}
}
