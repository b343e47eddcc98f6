package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory([]uint16{0xf100, 0x0001, 0xc000})

	assert.Equal([]uint16{0, 1, 2}, mem.Used())
	assert.Empty(mem.Accessed())

	assert.Equal(uint16(0xc000), mem.Read(2))
	assert.Equal([]uint16{2}, mem.Accessed())

	mem.Write(0x1000, 0xbeef)
	mem.Write(0x0010, 0xcafe)
	assert.Equal([]uint16{0, 1, 2, 0x0010, 0x1000}, mem.Used())
	assert.Equal([]uint16{2, 0x1000, 0x0010}, mem.Accessed())

	prior, ok := mem.Prior(0x1000)
	assert.True(ok)
	assert.Equal(uint16(0), prior)

	// The prior value is the one at first access.
	mem.Write(0x1000, 0x0001)
	prior, _ = mem.Prior(0x1000)
	assert.Equal(uint16(0), prior)
	assert.Equal([]uint16{2, 0x1000, 0x0010}, mem.Accessed())

	mem.ResetAccessed()
	assert.Empty(mem.Accessed())
	_, ok = mem.Prior(0x1000)
	assert.False(ok)
	assert.Equal(uint16(0x0001), mem.Peek(0x1000))

	// The used set survives.
	assert.Equal([]uint16{0, 1, 2, 0x0010, 0x1000}, mem.Used())
}

func TestMemory_Added(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory([]uint16{0xf100, 0x0001, 0xc000})

	// Writes to the image are not additions.
	mem.Write(1, 0x0002)
	mem.Write(0x0200, 1)
	mem.Write(0x0100, 2)
	mem.Write(0x0200, 3)
	assert.Equal([]uint16{0x0100, 0x0200}, mem.Added())
	assert.Equal([]uint16{0, 1, 2, 0x0100, 0x0200}, mem.Used())

	mem.Unuse(0x0200)
	mem.Unuse(0x0300)
	assert.Equal([]uint16{0, 1, 2, 0x0100}, mem.Used())

	mem.ResetAccessed()
	assert.Empty(mem.Added())
	assert.Equal([]uint16{0, 1, 2, 0x0100}, mem.Used())
}

func TestMemory_Mark(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory([]uint16{0xf100, 0x0001, 0xc000})

	mem.Mark(2, 0x1234, false)
	mem.Mark(0x0100, 0x5678, true)
	mem.Mark(2, 0x9999, false)

	assert.Equal([]uint16{2, 0x0100}, mem.Accessed())
	assert.Equal([]uint16{0x0100}, mem.Added())
	assert.Equal([]uint16{0, 1, 2, 0x0100}, mem.Used())

	prior, ok := mem.Prior(2)
	assert.True(ok)
	assert.Equal(uint16(0x1234), prior)

	// The words themselves are untouched.
	assert.Equal(uint16(0xc000), mem.Peek(2))
	assert.Equal(uint16(0), mem.Peek(0x0100))
}

func TestMemory_PeekPoke(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(nil)

	mem.Poke(0xffff, 0x1234)
	assert.Equal(uint16(0x1234), mem.Peek(0xffff))
	assert.Empty(mem.Accessed())
	assert.Empty(mem.Used())

	assert.Equal([]uint16{0, 0x1234}, mem.Slice(0xfffe, MEMORY_SIZE))
}
