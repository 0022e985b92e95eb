package handler

import (
	"fmt"
	"strings"
)

// Flags describes the category of a handler. The low byte holds category
// bits set by the handler itself, the high byte is reserved for option flags
// the owning space combines with them.
type Flags uint16

// handler categories.
const (
	FlagUnmapped Flags = 1 << iota // access hit unmapped space

	CategoryMask Flags = 0x00ff
	UserMask     Flags = 0xff00
)

// UserFlag returns the option flag n of the user range, n must be below 8.
func UserFlag(n uint) Flags {
	return Flags(1 << (8 + n))
}

// Has returns whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Unmapped returns whether the flags mark an unmapped access.
func (f Flags) Unmapped() bool {
	return f&FlagUnmapped != 0
}

// User returns the option flag part of the flags.
func (f Flags) User() Flags {
	return f & UserMask
}

func (f Flags) String() string {
	var parts []string
	if f.Unmapped() {
		parts = append(parts, "unmapped")
	}
	if user := f.User(); user != 0 {
		parts = append(parts, fmt.Sprintf("user=%02x", uint16(user)>>8))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
