package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sigma16/cpu"
)

func TestCondition(t *testing.T) {
	assert := assert.New(t)

	cp := cpu.NewCpu(cpu.Assemble(programSum))
	cp.Register[1].Poke(3)
	cp.Register[cpu.REG_FLAGS].Poke(uint16(cpu.FLAG_EQ))
	cp.Memory.Poke(13, 0x55)
	cp.Pc.Poke(6)

	table := [](struct {
		expr string
		ok   bool
	}){
		{"True", true},
		{"R1 == 3", true},
		{"R1 == 4", false},
		{"R1 > 2 and R0 == 0", true},
		{"PC == loop", true},
		{"result == 13", true},
		{"mem(result) == 0x55", true},
		{"mem(0) == 0xf100", true},
		{"FLAGS & 4 != 0", true},
		{"STATE == 'step'", true},
		{"STATE == 'halted'", false},
		{"0", false},
		{"[]", false},
	}

	for _, entry := range table {
		cond, err := ParseCondition(entry.expr)
		if !assert.NoError(err, entry.expr) {
			continue
		}

		ok, err := cond.Eval(cp)
		assert.NoError(err, entry.expr)
		assert.Equal(entry.ok, ok, entry.expr)
	}
}

func TestCondition_Parse(t *testing.T) {
	assert := assert.New(t)

	for _, expr := range []string{"R1 ==", "(", "if", "R1 == 3)"} {
		cond, err := ParseCondition(expr)
		assert.Nil(cond, expr)

		var ec *ErrCondition
		if assert.ErrorAs(err, &ec, expr) {
			assert.Equal(expr, ec.Expr)
		}
	}
}

func TestCondition_EvalError(t *testing.T) {
	assert := assert.New(t)

	cp := cpu.NewCpu(cpu.Assemble(programSum))

	table := []string{
		"mem(70000)",
		"mem(-1)",
		"mem()",
		"mem('x')",
		"nothere == 1",
		"R1 + 'x'",
	}

	for _, expr := range table {
		cond, err := ParseCondition(expr)
		if !assert.NoError(err, expr) {
			continue
		}

		ok, err := cond.Eval(cp)
		assert.False(ok, expr)

		var ec *ErrCondition
		assert.ErrorAs(err, &ec, expr)
	}

	cond, _ := ParseCondition("mem(70000)")
	_, err := cond.Eval(cp)
	assert.ErrorContains(err, ErrAddressRange(70000).Error())
}
