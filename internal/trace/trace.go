// Package trace walks 6502 code through an address space without causing
// any side effects on the bus.
package trace

import (
	"context"
	"fmt"
	"strings"

	"github.com/retroenv/retrobus/internal/handler"
	"github.com/retroenv/retrogolib/arch/cpu/m6502"
	"github.com/retroenv/retrogolib/log"
)

// Memory is the debugger view of an address space.
type Memory interface {
	Peek(address uint32) uint8
	LookupFlags(address uint32, mask uint8) handler.Flags
}

// Stop reasons of a walk.
const (
	StopSteps      = "step limit reached"
	StopUnknown    = "unknown opcode"
	StopIndirect   = "indirect jump"
	StopReturn     = "return without caller"
	StopInterrupt  = "interrupt instruction"
	StopStackLimit = "call depth limit reached"
)

const maxCallDepth = 64

// operandSize maps addressing modes to the number of operand bytes.
var operandSize = map[m6502.AddressingMode]int{
	m6502.ImpliedAddressing:     0,
	m6502.AccumulatorAddressing: 0,
	m6502.ImmediateAddressing:   1,
	m6502.ZeroPageAddressing:    1,
	m6502.ZeroPageXAddressing:   1,
	m6502.ZeroPageYAddressing:   1,
	m6502.RelativeAddressing:    1,
	m6502.IndirectXAddressing:   1,
	m6502.IndirectYAddressing:   1,
	m6502.AbsoluteAddressing:    2,
	m6502.AbsoluteXAddressing:   2,
	m6502.AbsoluteYAddressing:   2,
	m6502.IndirectAddressing:    2,
}

// Step is a single decoded instruction.
type Step struct {
	Address    uint16
	Data       []byte
	Name       string // empty for unknown opcodes
	Addressing m6502.AddressingMode
	Operand    uint16
	Unmapped   bool // at least one byte was fetched from unmapped memory
}

// String returns the step in a disassembly listing format.
func (s Step) String() string {
	hex := make([]string, len(s.Data))
	for i, b := range s.Data {
		hex[i] = fmt.Sprintf("%02X", b)
	}

	line := fmt.Sprintf("%04X  %-8s  %s", s.Address, strings.Join(hex, " "), s.instruction())
	if s.Unmapped {
		line += " ; unmapped"
	}
	return strings.TrimRight(line, " ")
}

func (s Step) instruction() string {
	if s.Name == "" {
		return fmt.Sprintf(".byte $%02X", s.Data[0])
	}

	name := strings.ToUpper(s.Name)
	switch s.Addressing {
	case m6502.ImmediateAddressing:
		return fmt.Sprintf("%s #$%02X", name, s.Operand)
	case m6502.AccumulatorAddressing:
		return name + " A"
	case m6502.ZeroPageAddressing:
		return fmt.Sprintf("%s $%02X", name, s.Operand)
	case m6502.ZeroPageXAddressing:
		return fmt.Sprintf("%s $%02X,X", name, s.Operand)
	case m6502.ZeroPageYAddressing:
		return fmt.Sprintf("%s $%02X,Y", name, s.Operand)
	case m6502.AbsoluteAddressing, m6502.RelativeAddressing:
		return fmt.Sprintf("%s $%04X", name, s.Operand)
	case m6502.AbsoluteXAddressing:
		return fmt.Sprintf("%s $%04X,X", name, s.Operand)
	case m6502.AbsoluteYAddressing:
		return fmt.Sprintf("%s $%04X,Y", name, s.Operand)
	case m6502.IndirectAddressing:
		return fmt.Sprintf("%s ($%04X)", name, s.Operand)
	case m6502.IndirectXAddressing:
		return fmt.Sprintf("%s ($%02X,X)", name, s.Operand)
	case m6502.IndirectYAddressing:
		return fmt.Sprintf("%s ($%02X),Y", name, s.Operand)
	default:
		return name
	}
}

// Result is the outcome of a walk.
type Result struct {
	Start uint16
	Steps []Step
	Stop  string
}

// Walker decodes instructions from memory.
type Walker struct {
	logger *log.Logger
	mem    Memory
}

// New returns a walker reading from mem.
func New(logger *log.Logger, mem Memory) *Walker {
	return &Walker{
		logger: logger,
		mem:    mem,
	}
}

// ReadWord reads a little endian word.
func (w *Walker) ReadWord(address uint16) uint16 {
	low := w.mem.Peek(uint32(address))
	high := w.mem.Peek(uint32(address + 1))
	return uint16(high)<<8 | uint16(low)
}

// Reset returns the address the reset vector points to.
func (w *Walker) Reset() uint16 {
	return w.ReadWord(m6502.ResetAddress)
}

// Walk decodes up to steps instructions starting at the reset vector.
func (w *Walker) Walk(ctx context.Context, steps int) (Result, error) {
	return w.WalkFrom(ctx, w.Reset(), steps)
}

// WalkFrom decodes up to steps instructions starting at pc. Absolute jumps
// and subroutine calls are followed, conditional branches are assumed not to
// be taken.
func (w *Walker) WalkFrom(ctx context.Context, pc uint16, steps int) (Result, error) {
	result := Result{
		Start: pc,
		Stop:  StopSteps,
	}
	var returns []uint16

	for range steps {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("walking code: %w", err)
		}

		step := w.decode(pc)
		result.Steps = append(result.Steps, step)
		next := pc + uint16(len(step.Data))

		switch {
		case step.Name == "":
			result.Stop = StopUnknown
			return result, nil

		case step.Name == m6502.Jmp.Name && step.Addressing == m6502.IndirectAddressing:
			result.Stop = StopIndirect
			return result, nil

		case step.Name == m6502.Jmp.Name:
			next = step.Operand

		case step.Name == m6502.Jsr.Name:
			if len(returns) == maxCallDepth {
				result.Stop = StopStackLimit
				return result, nil
			}
			returns = append(returns, next)
			next = step.Operand

		case step.Name == m6502.Rts.Name:
			if len(returns) == 0 {
				result.Stop = StopReturn
				return result, nil
			}
			next = returns[len(returns)-1]
			returns = returns[:len(returns)-1]

		case step.Name == m6502.Rti.Name, step.Name == m6502.Brk.Name:
			result.Stop = StopInterrupt
			return result, nil
		}

		w.logger.Debug("Traced instruction",
			log.Hex("address", pc),
			log.String("instruction", step.instruction()))
		pc = next
	}
	return result, nil
}

// decode reads the instruction at pc.
func (w *Walker) decode(pc uint16) Step {
	b := w.mem.Peek(uint32(pc))
	step := Step{
		Address:  pc,
		Data:     make([]byte, 1, m6502.MaxOpcodeSize),
		Unmapped: w.mem.LookupFlags(uint32(pc), 0xff).Unmapped(),
	}
	step.Data[0] = b

	opcode := m6502.Opcodes[b]
	if opcode.Instruction == nil {
		return step
	}
	step.Name = opcode.Instruction.Name
	step.Addressing = opcode.Addressing

	for i := range operandSize[opcode.Addressing] {
		address := pc + 1 + uint16(i)
		step.Data = append(step.Data, w.mem.Peek(uint32(address)))
		if w.mem.LookupFlags(uint32(address), 0xff).Unmapped() {
			step.Unmapped = true
		}
	}

	switch len(step.Data) {
	case 2:
		step.Operand = uint16(step.Data[1])
		if step.Addressing == m6502.RelativeAddressing {
			step.Operand = pc + 2 + uint16(int8(step.Data[1]))
		}
	case 3:
		step.Operand = uint16(step.Data[2])<<8 | uint16(step.Data[1])
	}
	return step
}
