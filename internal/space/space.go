// Package space provides a flat address space that routes accesses to the
// terminal bus handlers installed over its address ranges.
package space

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/retroenv/retrobus/internal/config"
	"github.com/retroenv/retrobus/internal/handler"
	"github.com/retroenv/retrobus/internal/unmaplog"
	"github.com/retroenv/retrogolib/log"
)

// Errors returned when installing handlers.
var (
	ErrRange  = errors.New("address range invalid")
	ErrBuffer = errors.New("buffer too small for address range")
)

// mapping routes the inclusive byte address range start-end to a handler.
// base is the byte address the handler offset zero maps to, it stays fixed
// when the mapping gets split by a later install.
type mapping[H any] struct {
	start   uint32
	end     uint32
	base    uint32
	handler H
}

// Space is an address space with a native transfer type T. Every address is
// covered by exactly one read and one write handler at any time, addresses
// without an installed device are served by the unmapped handler.
//
// A space is not safe for concurrent use.
type Space[T handler.Native] struct {
	logger   *log.Logger
	cfg      config.Space
	reporter *unmaplog.Reporter

	unitShift   int
	addressMask uint32
	unmap       uint64
	logUnmap    bool

	sideEffectsDisabled int

	unmapped *handler.Unmapped[T]
	nop      *handler.Nop[T]
	reads    []mapping[handler.Reader[T]]
	writes   []mapping[handler.Writer[T]]
}

// New returns a new address space for the given configuration. Unmapped
// accesses are reported to sink, throttled by the configured log limit.
func New[T handler.Native](logger *log.Logger, cfg config.Space, sink unmaplog.Sink) (*Space[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating space configuration: %w", err)
	}
	unitShift := handler.UnitShift[T](cfg.Shift)
	if unitShift < 0 {
		return nil, fmt.Errorf("address shift %d is not supported for %d bit data", cfg.Shift, handler.WidthBits[T]())
	}

	s := &Space[T]{
		logger:      logger,
		cfg:         cfg,
		reporter:    unmaplog.NewReporter(cfg.Name, sink, cfg.LogLimit),
		unitShift:   unitShift,
		addressMask: cfg.AddressMask(),
		unmap:       cfg.UnmapValue(),
		logUnmap:    cfg.LogUnmap,
	}

	loc := handler.Location{Shift: cfg.Shift}
	s.unmapped = handler.NewUnmapped[T](s, loc, 0)
	s.nop = handler.NewNop[T](s, loc, 0)
	s.reads = []mapping[handler.Reader[T]]{{end: s.addressMask, handler: s.unmapped}}
	s.writes = []mapping[handler.Writer[T]]{{end: s.addressMask, handler: s.unmapped}}
	return s, nil
}

// Name returns the name of the space.
func (s *Space[T]) Name() string {
	return s.cfg.Name
}

// Unmap returns the value reads from absent storage return.
func (s *Space[T]) Unmap() uint64 {
	return s.unmap
}

// LogUnmap returns whether unmapped accesses are reported.
func (s *Space[T]) LogUnmap() bool {
	return s.logUnmap
}

// SetLogUnmap enables or disables reporting of unmapped accesses.
func (s *Space[T]) SetLogUnmap(enabled bool) {
	s.logUnmap = enabled
}

// ReportUnmapped forwards an unmapped access to the reporter of the space.
func (s *Space[T]) ReportUnmapped(access unmaplog.Access) {
	s.reporter.Report(s, access)
}

// AllowLogging returns whether accesses may currently produce log entries.
func (s *Space[T]) AllowLogging() bool {
	return s.sideEffectsDisabled == 0
}

// Reporter returns the unmapped access reporter of the space.
func (s *Space[T]) Reporter() *unmaplog.Reporter {
	return s.reporter
}

// AddressMask returns the mask of valid addresses.
func (s *Space[T]) AddressMask() uint32 {
	return s.addressMask
}

// UnitBytes returns the number of addresses a single native transfer spans.
func (s *Space[T]) UnitBytes() uint32 {
	return 1 << s.unitShift
}

// offset converts an address into the native offset of a mapping.
func (s *Space[T]) offset(address, base uint32) uint32 {
	return handler.NativeOffset(address-base, s.unitShift)
}

// lookup returns the mapping that covers address. The mappings always cover
// the complete address range, so a match is guaranteed.
func lookup[H any](list []mapping[H], address uint32) *mapping[H] {
	i, _ := slices.BinarySearchFunc(list, address, func(m mapping[H], address uint32) int {
		switch {
		case m.end < address:
			return -1
		case m.start > address:
			return 1
		default:
			return 0
		}
	})
	return &list[i]
}

// insert returns list with m installed over its range. Parts of existing
// mappings outside of the range keep their handler and base.
func insert[H any](list []mapping[H], m mapping[H]) []mapping[H] {
	result := make([]mapping[H], 0, len(list)+2)
	for _, cur := range list {
		if cur.end < m.start || cur.start > m.end {
			result = append(result, cur)
			continue
		}
		if cur.start < m.start {
			left := cur
			left.end = m.start - 1
			result = append(result, left)
		}
		if cur.end > m.end {
			right := cur
			right.start = m.end + 1
			result = append(result, right)
		}
	}

	result = append(result, m)
	slices.SortFunc(result, func(a, b mapping[H]) int {
		return cmp.Compare(a.start, b.start)
	})
	return result
}
