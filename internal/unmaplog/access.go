// Package unmaplog reports accesses to unmapped bus addresses. Reports are
// gated by a permission and throttled so that a guest program hammering
// unmapped space can not flood the log.
package unmaplog

import "fmt"

// Access describes a single access that hit unmapped space.
type Access struct {
	Space   string
	Write   bool
	Width   int    // transfer width in bits
	Offset  uint32 // offset in native units as seen by the handler
	Address uint64 // byte address in the space
	Mask    uint64
	Data    uint64 // value written, zero for reads
}

// Kind returns "read" or "write".
func (a Access) Kind() string {
	if a.Write {
		return "write"
	}
	return "read"
}

func (a Access) String() string {
	digits := a.Width / 4
	if a.Write {
		return fmt.Sprintf("%s: unmapped memory write to %04X = %0*X & %0*X",
			a.Space, a.Address, digits, a.Data, digits, a.Mask)
	}
	return fmt.Sprintf("%s: unmapped memory read from %04X & %0*X",
		a.Space, a.Address, digits, a.Mask)
}

// Summary accumulates accesses that were not reported individually.
type Summary struct {
	Space      string
	Repeated   uint64 // further accesses to addresses that were reported before
	Suppressed uint64 // accesses to new addresses after the report limit was hit
}
