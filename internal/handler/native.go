package handler

import "math/bits"

// Native is the set of unsigned types a bus transfers natively.
type Native interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// WidthBits returns the transfer width of T in bits.
func WidthBits[T Native]() int {
	return bits.Len64(uint64(^T(0)))
}

// UnitShift returns the shift that converts a native offset of T into a byte
// address on a bus with the given address shift. A negative result means the
// offset has to be shifted right.
func UnitShift[T Native](addressShift int) int {
	return bits.TrailingZeros(uint(WidthBits[T]()/8)) + addressShift
}

// ByteAddress converts a native offset into a byte address relative to the
// start of a mapping.
func ByteAddress(offset uint32, unitShift int) uint64 {
	if unitShift >= 0 {
		return uint64(offset) << unitShift
	}
	return uint64(offset) >> -unitShift
}

// NativeOffset converts a byte address relative to the start of a mapping
// into a native offset. It is the inverse of ByteAddress.
func NativeOffset(address uint32, unitShift int) uint32 {
	if unitShift >= 0 {
		return address >> unitShift
	}
	return address << -unitShift
}
