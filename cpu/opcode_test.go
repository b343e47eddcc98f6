package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		text string
	}){
		{MakeCodeRRR(OP_ADD, 1, 2, 3), "add R1,R2,R3"},
		{MakeCodeRRR(OP_TRAP, 0, 0, 0), "trap R0,R0,R0"},
		{MakeCodeRR(OP_CMP, 4, 5), "cmp R4,R5"},
		{MakeCodeRX(RX_LEA, 1, 0, 1), "lea R1,$0001[R0]"},
		{MakeCodeRX(RX_STORE, 2, 3, 0xabcd), "store R2,$abcd[R3]"},
		{MakeCodeJump(JUMP_ALWAYS, 0, 0x10), "jump $0010[R0]"},
		{MakeCodeJump(JUMP_EQ, 2, 0x10), "jumpeq $0010[R2]"},
		{Code{Word: 0xd123}, "reserved R1,R2,R3"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.code.String())
	}
}

func TestCode_Decode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint16(CODE_HALT), MakeCodeRRR(OP_TRAP, 0, 0, 0).Word)

	code := MakeCodeRX(RX_TESTSET, 7, 8, 0x55aa)
	assert.Equal(OP_RX, code.Op())
	assert.Equal(2, code.Size())
	op, rd, rx, disp := code.RXDecode()
	assert.Equal(RX_TESTSET, op)
	assert.Equal(uint8(7), rd)
	assert.Equal(uint8(8), rx)
	assert.Equal(uint16(0x55aa), disp)

	_, ok := code.JumpDecode()
	assert.False(ok)

	assert.Equal(1, MakeCodeRRR(OP_MUL, 1, 2, 3).Size())
}

func TestCodeJump(t *testing.T) {
	assert := assert.New(t)

	for jump := JUMP_ALWAYS; jump <= JUMP_GT; jump++ {
		parsed, ok := ParseJump(jump.String())
		assert.True(ok)
		assert.Equal(jump, parsed)

		decoded, ok := MakeCodeJump(jump, 3, 0).JumpDecode()
		assert.True(ok)
		assert.Equal(jump, decoded)
	}

	_, ok := ParseJump("jumpxx")
	assert.False(ok)

	table := [](struct {
		jump  CodeJump
		taken []Flags
		not   []Flags
	}){
		{JUMP_ALWAYS, []Flags{0, FLAG_EQ}, nil},
		{JUMP_LT, []Flags{FLAG_L}, []Flags{FLAG_EQ, FLAG_g, FLAG_LT}},
		{JUMP_LE, []Flags{FLAG_L, FLAG_EQ}, []Flags{FLAG_g}},
		{JUMP_EQ, []Flags{FLAG_EQ}, []Flags{FLAG_L, FLAG_g}},
		{JUMP_NE, []Flags{FLAG_L, FLAG_g}, []Flags{FLAG_EQ}},
		{JUMP_GE, []Flags{FLAG_g, FLAG_EQ}, []Flags{FLAG_L}},
		{JUMP_GT, []Flags{FLAG_g}, []Flags{FLAG_EQ, FLAG_L, FLAG_G}},
	}

	for _, entry := range table {
		for _, flags := range entry.taken {
			assert.True(entry.jump.Taken(flags), "%v %v", entry.jump, flags)
		}
		for _, flags := range entry.not {
			assert.False(entry.jump.Taken(flags), "%v %v", entry.jump, flags)
		}
	}
}

func TestCodeOp_Format(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(FORMAT_RRR, OP_ADD.Format())
	assert.Equal(FORMAT_RR, OP_CMP.Format())
	assert.Equal(FORMAT_RX, OP_RX.Format())
	assert.Equal("RX", FORMAT_RX.String())
}
