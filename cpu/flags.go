package cpu

import (
	"strings"
)

// REG_FLAGS is the register holding the condition and overflow flags.
const REG_FLAGS = 15

// Flags is the content of the flag register.
type Flags uint16

// Flag bits, as written by every arithmetic instruction.
const (
	FLAG_g  = Flags(1 << 0) // twos-complement greater
	FLAG_G  = Flags(1 << 1) // binary greater
	FLAG_EQ = Flags(1 << 2) // equal, or zero result
	FLAG_L  = Flags(1 << 3) // twos-complement less
	FLAG_LT = Flags(1 << 4) // binary less, or negative result
	FLAG_v  = Flags(1 << 5) // twos-complement overflow
	FLAG_V  = Flags(1 << 6) // binary overflow
	FLAG_C  = Flags(1 << 7) // carry
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FLAG_C, "C"},
	{FLAG_V, "V"},
	{FLAG_v, "v"},
	{FLAG_LT, "<"},
	{FLAG_L, "L"},
	{FLAG_EQ, "="},
	{FLAG_G, "G"},
	{FLAG_g, "g"},
}

// Has returns true if all of the bits in mask are set.
func (flags Flags) Has(mask Flags) bool {
	return (flags & mask) == mask
}

// Any returns true if any of the bits in mask are set.
func (flags Flags) Any(mask Flags) bool {
	return (flags & mask) != 0
}

// String returns the set flags, most significant first, '.' for clear ones.
func (flags Flags) String() string {
	var sb strings.Builder
	for _, fn := range flagNames {
		if flags.Has(fn.flag) {
			sb.WriteString(fn.name)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

const signBit = 0x8000

// resultFlags returns the condition flags for a 16-bit arithmetic result.
func resultFlags(result uint16) (flags Flags) {
	switch {
	case result == 0:
		flags |= FLAG_EQ
	case result&signBit != 0:
		flags |= FLAG_L | FLAG_LT | FLAG_G
	default:
		flags |= FLAG_g | FLAG_G
	}
	return
}

// compareFlags returns the flags set by 'cmp' for a compared with b.
//
// Exactly one of eq, G or lt is set by the binary comparison; g or L
// are set by the twos-complement comparison.
func compareFlags(a, b uint16) (flags Flags) {
	if a == b {
		return FLAG_EQ
	}

	if a > b {
		flags |= FLAG_G
	} else {
		flags |= FLAG_LT
	}

	if (a&signBit) != 0 || (b&signBit) != 0 {
		if a > b {
			flags |= FLAG_L
		} else {
			flags |= FLAG_g
		}
	} else if a < b {
		flags |= FLAG_L
	} else {
		flags |= FLAG_g
	}

	return
}
