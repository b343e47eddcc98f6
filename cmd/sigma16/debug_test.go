package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/sigma16/cpu"
	"github.com/ezrec/sigma16/emulator"
)

const programSum = `; sum 1 to 5
 lea R1,0[R0]
 lea R2,1[R0]
 lea R3,5[R0]
loop add R1,R1,R2
 cmp R1,R3
 jumplt loop[R0]
 store R1,result[R0]
 trap R0,R0,R0
result data 0
`

func newTestDebugger(t *testing.T) (dbg *debugger, out *bytes.Buffer) {
	emu := emulator.NewEmulator()
	require.NoError(t, emu.Assemble(programSum))

	out = &bytes.Buffer{}
	dbg = &debugger{emu: emu, out: out}
	return
}

func TestDebugger(t *testing.T) {
	assert := assert.New(t)

	dbg, out := newTestDebugger(t)

	script := strings.Join([]string{
		"w R1 result $0006",
		"s 4",
		"b 2",
		"u R1 == 3",
		"r",
		"q",
		"s",
	}, "\n")

	err := dbg.loop(strings.NewReader(script), "")
	assert.NoError(err)

	text := out.String()
	assert.Contains(text, "0000 [step] lea R1,$0000[R0] ; 2: lea R1,0[R0]\n")
	assert.Contains(text, "  R1=0001*\n")
	assert.Contains(text, "paused after 8 steps\n")
	assert.Contains(text, "halted after 10 steps\n")

	assert.Equal(cpu.RUN_HALTED, dbg.emu.Cpu.State)
	assert.Equal(uint16(5), dbg.emu.Cpu.Memory.Peek(13))
	assert.Equal([]string{"result"}, dbg.emu.Watches.Symbols)
}

func TestDebugger_Commands(t *testing.T) {
	assert := assert.New(t)

	dbg, out := newTestDebugger(t)

	dbg.command("b", nil)
	assert.Contains(out.String(), "at the start of history\n")

	out.Reset()
	dbg.command("w", []string{"nothere"})
	assert.Equal("nothere: unknown symbol\n", out.String())

	out.Reset()
	dbg.command("u", []string{"R1", "=="})
	assert.Contains(out.String(), "condition 'R1 =='")

	out.Reset()
	dbg.command("p", nil)
	assert.Contains(out.String(), "state: step\n")

	dbg.command("r", []string{"3"})
	assert.Equal(cpu.RUN_INTERRUPTED, dbg.emu.Cpu.State)

	out.Reset()
	dbg.command("reset", nil)
	assert.Equal(cpu.RUN_STEP, dbg.emu.Cpu.State)
	assert.Equal(0, dbg.emu.History.Len())

	out.Reset()
	dbg.command("help", nil)
	assert.Equal(debugHelp, out.String())
}

func TestCount(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1, count(nil, 1))
	assert.Equal(7, count([]string{"7"}, 1))
	assert.Equal(1, count([]string{"x"}, 1))
	assert.Equal(0, count([]string{"-3"}, 0))
}
