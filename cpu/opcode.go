package cpu

import (
	"fmt"
)

// CodeOp is the operation selected by the top nibble of an instruction word.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_ADD      = CodeOp(0x0) // add
	OP_SUB      = CodeOp(0x1) // sub
	OP_MUL      = CodeOp(0x2) // mul
	OP_DIV      = CodeOp(0x3) // div
	OP_CMP      = CodeOp(0x4) // cmp
	OP_ADDC     = CodeOp(0x5) // addc
	OP_MULN     = CodeOp(0x6) // muln
	OP_DIVN     = CodeOp(0x7) // divn
	OP_RRR1     = CodeOp(0x8) // rrr1
	OP_RRR2     = CodeOp(0x9) // rrr2
	OP_RRR3     = CodeOp(0xa) // rrr3
	OP_RRR4     = CodeOp(0xb) // rrr4
	OP_TRAP     = CodeOp(0xc) // trap
	OP_RESERVED = CodeOp(0xd) // reserved
	OP_EXP      = CodeOp(0xe) // exp
	OP_RX       = CodeOp(0xf) // rx
)

// CodeRxOp is the RX operation selected by the low nibble of an RX word.
type CodeRxOp int

//go:generate go tool stringer -linecomment -type=CodeRxOp
const (
	RX_LEA     = CodeRxOp(0x0) // lea
	RX_LOAD    = CodeRxOp(0x1) // load
	RX_STORE   = CodeRxOp(0x2) // store
	RX_JUMP    = CodeRxOp(0x3) // jump
	RX_JUMPC0  = CodeRxOp(0x4) // jumpc0
	RX_JUMPC1  = CodeRxOp(0x5) // jumpc1
	RX_JAL     = CodeRxOp(0x6) // jal
	RX_JUMPZ   = CodeRxOp(0x7) // jumpz
	RX_JUMPNZ  = CodeRxOp(0x8) // jumpnz
	RX_TESTSET = CodeRxOp(0x9) // testset
)

// CodeFormat is the encoding format of an instruction.
type CodeFormat int

const (
	FORMAT_RRR = CodeFormat(iota)
	FORMAT_RR
	FORMAT_RX
)

// String returns the conventional name of the format.
func (format CodeFormat) String() string {
	switch format {
	case FORMAT_RRR:
		return "RRR"
	case FORMAT_RR:
		return "RR"
	case FORMAT_RX:
		return "RX"
	}
	return fmt.Sprintf("CodeFormat(%d)", int(format))
}

// Format returns the encoding format used by the operation.
func (op CodeOp) Format() CodeFormat {
	switch op {
	case OP_CMP:
		return FORMAT_RR
	case OP_RX:
		return FORMAT_RX
	}
	return FORMAT_RRR
}

// CodeJump is a jump pseudo-op condition.
type CodeJump int

const (
	JUMP_ALWAYS = CodeJump(iota) // jump
	JUMP_LT                      // jumplt
	JUMP_LE                      // jumple
	JUMP_EQ                      // jumpeq
	JUMP_NE                      // jumpne
	JUMP_GE                      // jumpge
	JUMP_GT                      // jumpgt
)

type jumpEncoding struct {
	name string
	word uint16
	test func(flags Flags) bool
}

// jumpTable holds the fixed encodings of the jump pseudo-ops, and
// the flag predicate tested by each of them.
var jumpTable = [...]jumpEncoding{
	JUMP_ALWAYS: {"jump", 0xf003, func(flags Flags) bool { return true }},
	JUMP_LT:     {"jumplt", 0xf405, func(flags Flags) bool { return flags.Has(FLAG_L) }},
	JUMP_LE:     {"jumple", 0xf004, func(flags Flags) bool { return flags.Any(FLAG_EQ | FLAG_L) }},
	JUMP_EQ:     {"jumpeq", 0xf205, func(flags Flags) bool { return flags.Has(FLAG_EQ) }},
	JUMP_NE:     {"jumpne", 0xf204, func(flags Flags) bool { return !flags.Has(FLAG_EQ) }},
	JUMP_GE:     {"jumpge", 0xf404, func(flags Flags) bool { return flags.Any(FLAG_EQ | FLAG_g) }},
	JUMP_GT:     {"jumpgt", 0xf005, func(flags Flags) bool { return flags.Has(FLAG_g) }},
}

// ParseJump returns the jump condition for a jump mnemonic.
func ParseJump(mnemonic string) (jump CodeJump, ok bool) {
	for n, enc := range jumpTable {
		if enc.name == mnemonic {
			return CodeJump(n), true
		}
	}
	return
}

// String returns the jump mnemonic.
func (jump CodeJump) String() string {
	if jump < 0 || int(jump) >= len(jumpTable) {
		return fmt.Sprintf("CodeJump(%d)", int(jump))
	}
	return jumpTable[jump].name
}

// Taken returns true if the jump is taken with the given flags.
func (jump CodeJump) Taken(flags Flags) bool {
	return jumpTable[jump].test(flags)
}

// CODE_HALT is the encoding of 'trap R0,R0,R0'.
const CODE_HALT = uint16(0xc000)

// Code is a single instruction; RX instructions carry the
// displacement word that follows the instruction word.
type Code struct {
	Word uint16
	Disp uint16
}

// MakeCodeRRR creates an RRR instruction.
func MakeCodeRRR(op CodeOp, rd, ra, rb uint8) Code {
	return Code{
		Word: (uint16(op&0xf) << 12) | (uint16(rd&0xf) << 8) | (uint16(ra&0xf) << 4) | uint16(rb&0xf),
	}
}

// MakeCodeRR creates an RR instruction.
func MakeCodeRR(op CodeOp, ra, rb uint8) Code {
	return MakeCodeRRR(op, 0, ra, rb)
}

// MakeCodeRX creates an RX instruction and its displacement word.
func MakeCodeRX(op CodeRxOp, rd, rx uint8, disp uint16) Code {
	return Code{
		Word: (uint16(OP_RX) << 12) | (uint16(rd&0xf) << 8) | (uint16(rx&0xf) << 4) | uint16(op&0xf),
		Disp: disp,
	}
}

// MakeCodeJump creates a jump pseudo-op with its base register and target.
func MakeCodeJump(jump CodeJump, rx uint8, disp uint16) Code {
	return Code{
		Word: jumpTable[jump].word | (uint16(rx&0xf) << 4),
		Disp: disp,
	}
}

// Op returns the operation from the instruction word.
func (code Code) Op() CodeOp {
	return CodeOp(code.Word >> 12)
}

// Size returns the number of memory words occupied by the instruction.
func (code Code) Size() int {
	if code.Op() == OP_RX {
		return 2
	}
	return 1
}

// RRRDecode decodes and returns the operation and the three register fields.
func (code Code) RRRDecode() (op CodeOp, rd, ra, rb uint8) {
	word := code.Word
	op = CodeOp((word >> 12) & 0xf)
	rd = uint8((word >> 8) & 0xf)
	ra = uint8((word >> 4) & 0xf)
	rb = uint8((word >> 0) & 0xf)
	return
}

// RRDecode decodes and returns the operation and the two register fields.
func (code Code) RRDecode() (op CodeOp, ra, rb uint8) {
	op, _, ra, rb = code.RRRDecode()
	return
}

// RXDecode decodes and returns the RX operation, the destination and
// base registers, and the displacement.
func (code Code) RXDecode() (op CodeRxOp, rd, rx uint8, disp uint16) {
	word := code.Word
	op = CodeRxOp((word >> 0) & 0xf)
	rd = uint8((word >> 8) & 0xf)
	rx = uint8((word >> 4) & 0xf)
	disp = code.Disp
	return
}

// JumpDecode returns the jump pseudo-op encoded by an RX instruction, if any.
func (code Code) JumpDecode() (jump CodeJump, ok bool) {
	if code.Op() != OP_RX {
		return
	}
	base := code.Word & 0xff0f
	for n, enc := range jumpTable {
		if enc.word == base {
			return CodeJump(n), true
		}
	}
	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	switch code.Op().Format() {
	case FORMAT_RRR:
		op, rd, ra, rb := code.RRRDecode()
		out = fmt.Sprintf("%v R%d,R%d,R%d", op, rd, ra, rb)
	case FORMAT_RR:
		op, ra, rb := code.RRDecode()
		out = fmt.Sprintf("%v R%d,R%d", op, ra, rb)
	case FORMAT_RX:
		op, rd, rx, disp := code.RXDecode()
		if jump, ok := code.JumpDecode(); ok {
			out = fmt.Sprintf("%v $%04x[R%d]", jump, disp, rx)
		} else {
			out = fmt.Sprintf("%v R%d,$%04x[R%d]", op, rd, disp, rx)
		}
	}

	return
}
