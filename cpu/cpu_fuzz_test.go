package cpu

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	for op := range 0x10 {
		word := uint16(op<<12) | 0x0123
		f.Add(word, uint16(0x0010), uint16(7), uint16(0), uint16(0))
		f.Add(word, uint16(0xffff), uint16(0xffff), uint16(1), uint16(0x80))
		f.Add(uint16(0xf000)|uint16(op), uint16(0xfffe), uint16(3), uint16(0), uint16(0xffff))
	}
	f.Add(uint16(0xc120), uint16(0), uint16(2), uint16(4), uint16(0))

	f.Fuzz(func(t *testing.T, word uint16, disp uint16, a uint16, b uint16, flags uint16) {
		assert := assert.New(t)

		cpu := NewCpu(&Program{Words: []uint16{word, disp}, Halt: -1})
		for n := range uint8(REGISTER_COUNT) {
			cpu.Register[n].Poke(a*uint16(n) + b)
		}
		cpu.Register[0].Poke(0)
		cpu.Register[REG_FLAGS].Poke(flags)

		var out bytes.Buffer
		cpu.Port = struct {
			io.ByteReader
			io.ByteWriter
		}{strings.NewReader("input"), &out}

		pre := cpu.Register.Values()
		code := Code{Word: word, Disp: disp}

		err := cpu.Step()

		code_str := fmt.Sprintf("0x%04x 0x%04x (%v)\ncpu:%v", word, disp, code, cpu.String())

		assert.Equal(uint16(0), cpu.Register[0].Peek(), code_str)
		assert.Equal(1, cpu.Ticks, code_str)

		if err != nil {
			assert.True(errors.Is(err, ErrOpcode(Code{})), code_str)
			assert.Equal(RUN_ERROR, cpu.State, code_str)
			assert.Equal(pre, cpu.Register.Values(), code_str)
			assert.Equal(uint16(code.Size()), cpu.Pc.Peek(), code_str)

			switch {
			case errors.Is(err, ErrDivideByZero):
				op := code.Op()
				assert.True(op == OP_DIV || op == OP_DIVN, code_str)
			case errors.Is(err, ErrOpcodeReserved):
				assert.Contains([]CodeOp{0xd, 0xe}, code.Op(), code_str)
			case errors.Is(err, ErrOpcodeRx):
				op, _, _, _ := code.RXDecode()
				assert.GreaterOrEqual(op, CodeRxOp(10), code_str)
			case errors.Is(err, ErrOpcodeJump):
				_, ok := code.JumpDecode()
				assert.False(ok, code_str)
			default:
				assert.NoError(err, code_str)
			}

			// A faulted machine does not run again.
			assert.ErrorIs(cpu.Step(), ErrNotRunnable, code_str)
			return
		}

		switch cpu.State {
		case RUN_STEP, RUN_HALTED, RUN_BREAKPOINT:
		default:
			assert.Fail("unexpected state", "%v\n%v", cpu.State, code_str)
		}

		// Only instructions that write R15 change the flags.
		op, rd, _, rb := code.RRRDecode()
		switch {
		case op == OP_RX && rd != REG_FLAGS,
			op == OP_TRAP && rb != REG_FLAGS,
			op >= OP_RRR1 && op <= OP_RRR4:
			assert.Equal(flags, cpu.Register[REG_FLAGS].Peek(), code_str)
		}
	})
}
