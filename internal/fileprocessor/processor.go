// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrobus/internal/app"
	"github.com/retroenv/retrobus/internal/loader"
	"github.com/retroenv/retrobus/internal/mapper"
	"github.com/retroenv/retrobus/internal/options"
	"github.com/retroenv/retrobus/internal/space"
	"github.com/retroenv/retrobus/internal/trace"
	"github.com/retroenv/retrobus/internal/unmaplog"
	"github.com/retroenv/retrogolib/arch/cpu/m6502"
	"github.com/retroenv/retrogolib/log"
)

const dumpLineSize = 16

// ProcessFile handles the complete file processing workflow: the cartridge
// is loaded and mapped into a CPU address space, which is then inspected as
// requested by the probe options. Output is written to w.
func ProcessFile(ctx context.Context, logger *log.Logger, w io.Writer,
	opts options.Program, probe options.Probe) error {

	cart, err := loader.New().Load(opts)
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}
	app.PrintInfo(logger, opts, cart)

	sys, err := mapper.New(logger, cart, probe.Space, unmaplog.NewLoggerSink(logger))
	if err != nil {
		return fmt.Errorf("mapping cartridge: %w", err)
	}
	defer sys.CPU.Reporter().Flush()

	if probe.Bank != 0 {
		if err := sys.SelectBank(probe.Bank); err != nil {
			return err
		}
	}

	if !opts.Quiet {
		if err := sys.CPU.Describe(w); err != nil {
			return fmt.Errorf("describing address space: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("processing file: %w", err)
	}
	if probe.PeekLength > 0 {
		if err := Dump(ctx, w, sys.CPU, probe.PeekAddress, probe.PeekLength); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("processing file: %w", err)
	}
	if probe.TraceSteps > 0 {
		if err := Trace(ctx, logger, w, sys.CPU, probe.TraceSteps); err != nil {
			return err
		}
	}
	return nil
}

// Dump writes a hex dump of length bytes starting at address. Memory is
// read without side effects. The context is checked once per line.
func Dump(ctx context.Context, w io.Writer, cpu *space.Space[uint8], address, length uint32) error {
	restore := cpu.DisableSideEffects()
	defer restore()

	mask := cpu.AddressMask()
	var line strings.Builder
	end := uint64(length)
	for i := uint64(0); i < end; i += dumpLineSize {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("dumping memory: %w", err)
		}

		line.Reset()
		fmt.Fprintf(&line, "%04X:", (address+uint32(i))&mask)

		for j := i; j < min(i+dumpLineSize, end); j++ {
			addr := (address + uint32(j)) & mask
			if cpu.LookupFlags(addr, 0xff).Unmapped() {
				line.WriteString(" --")
				continue
			}
			fmt.Fprintf(&line, " %02X", cpu.Peek(addr))
		}

		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return fmt.Errorf("writing dump: %w", err)
		}
	}
	return nil
}

// Trace walks steps instructions from the reset vector and writes the
// listing to w.
func Trace(ctx context.Context, logger *log.Logger, w io.Writer, cpu *space.Space[uint8], steps int) error {
	restore := cpu.DisableSideEffects()
	defer restore()

	walker := trace.New(logger, cpu)
	logger.Debug("Vectors",
		log.Hex("nmi", walker.ReadWord(m6502.NMIAddress)),
		log.Hex("reset", walker.Reset()),
		log.Hex("irq", walker.ReadWord(m6502.IrqAddress)))

	result, err := walker.Walk(ctx, steps)
	if err != nil {
		return fmt.Errorf("tracing code: %w", err)
	}

	for _, step := range result.Steps {
		if _, err := fmt.Fprintln(w, step.String()); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "; %s after %d instructions\n", result.Stop, len(result.Steps)); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}
