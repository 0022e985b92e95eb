// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrobus/internal/config"
	"github.com/retroenv/retrobus/internal/options"
)

const defaultPeekLength = 16

// ParseFlags parses command line flags and returns program and probe options
func ParseFlags() (options.Program, options.Probe, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, options.Probe{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Probe{}, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	probe, err := createProbeOptions(opts)
	if err != nil {
		return opts, options.Probe{}, err
	}
	return opts, probe, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrobus [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// createProbeOptions creates probe options based on program options
func createProbeOptions(opts options.Program) (options.Probe, error) {
	probe := options.NewProbe()
	probe.Bank = opts.Bank
	probe.TraceSteps = opts.Trace

	probe.Space.Unmap = config.Unmap(strings.ToLower(opts.Unmap))
	probe.Space.LogUnmap = opts.LogUnmap
	probe.Space.LogLimit = opts.LogLimit
	if err := probe.Space.Validate(); err != nil {
		return options.Probe{}, fmt.Errorf("validating options: %w", err)
	}

	if opts.Bank < 0 {
		return options.Probe{}, fmt.Errorf("invalid bank %d", opts.Bank)
	}
	if opts.Trace < 0 {
		return options.Probe{}, fmt.Errorf("invalid trace count %d", opts.Trace)
	}

	if opts.Peek != "" {
		address, length, err := parsePeek(opts.Peek)
		if err != nil {
			return options.Probe{}, err
		}
		if uint64(length) > uint64(probe.Space.AddressMask())+1 {
			return options.Probe{}, fmt.Errorf("peek length %X exceeds the %d bit address space", length, probe.Space.AddressBits)
		}
		probe.PeekAddress = address
		probe.PeekLength = length
	}
	return probe, nil
}

// parsePeek parses a hex address with an optional hex length, for example
// 8000 or $8000:20.
func parsePeek(s string) (uint32, uint32, error) {
	addressPart, lengthPart, hasLength := strings.Cut(s, ":")

	address, err := parseHex(addressPart)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing peek address '%s': %w", addressPart, err)
	}

	length := uint64(defaultPeekLength)
	if hasLength {
		length, err = parseHex(lengthPart)
		if err != nil {
			return 0, 0, fmt.Errorf("parsing peek length '%s': %w", lengthPart, err)
		}
		if length == 0 {
			return 0, 0, fmt.Errorf("invalid peek length '%s'", lengthPart)
		}
	}
	return uint32(address), uint32(length), nil
}

func parseHex(s string) (uint64, error) {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing hex value: %w", err)
	}
	return value, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.BoolVar(&opts.Binary, "binary", false, "read input file as raw binary file without any header")
	flags.IntVar(&opts.Bank, "bank", 0, "PRG bank to select in the switchable $8000-$BFFF window")
	flags.StringVar(&opts.Peek, "peek", "", "hex dump ADDR[:LEN] (hex) of the CPU address space without side effects")
	flags.IntVar(&opts.Trace, "trace", 0, "number of instructions to walk from the reset vector")
	flags.StringVar(&opts.Unmap, "unmap", string(config.UnmapHigh), "value returned by unmapped reads (low/high)")
	flags.BoolVar(&opts.LogUnmap, "logunmap", false, "log accesses to unmapped memory")
	flags.IntVar(&opts.LogLimit, "loglimit", 64, "number of distinct unmapped addresses to log, 0 for no limit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
