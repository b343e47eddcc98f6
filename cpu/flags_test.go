package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlags_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("........", Flags(0).String())
	assert.Equal(".....=..", FLAG_EQ.String())
	assert.Equal("CVv<L=Gg", Flags(0xff).String())
	assert.Equal("....L.G.", (FLAG_L | FLAG_G).String())
}

func TestFlags_HasAny(t *testing.T) {
	assert := assert.New(t)

	flags := FLAG_EQ | FLAG_g

	assert.True(flags.Has(FLAG_EQ))
	assert.True(flags.Has(FLAG_EQ | FLAG_g))
	assert.False(flags.Has(FLAG_EQ | FLAG_L))
	assert.True(flags.Any(FLAG_EQ | FLAG_L))
	assert.False(flags.Any(FLAG_L | FLAG_C))
}

func TestResultFlags(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(FLAG_EQ, resultFlags(0))
	assert.Equal(FLAG_g|FLAG_G, resultFlags(1))
	assert.Equal(FLAG_g|FLAG_G, resultFlags(0x7fff))
	assert.Equal(FLAG_L|FLAG_LT|FLAG_G, resultFlags(0x8000))
	assert.Equal(FLAG_L|FLAG_LT|FLAG_G, resultFlags(0xffff))
}

func TestCompareFlags(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		a, b  uint16
		flags Flags
	}){
		{5, 5, FLAG_EQ},
		{0, 0, FLAG_EQ},
		{0xffff, 1, FLAG_G | FLAG_L},
		{1, 0xffff, FLAG_LT | FLAG_g},
		{1, 2, FLAG_LT | FLAG_L},
		{2, 1, FLAG_G | FLAG_g},
		{0x8000, 0x7fff, FLAG_G | FLAG_L},
	}

	for _, entry := range table {
		assert.Equal(entry.flags, compareFlags(entry.a, entry.b), "%04x cmp %04x", entry.a, entry.b)
	}
}
