package cpu

import (
	"slices"
)

// MEMORY_SIZE is the number of addressable 16-bit words.
const MEMORY_SIZE = 65536

// Memory is the flat word-addressed memory.
//
// Every indexed Read or Write marks the address as accessed, remembering the
// value it held before the first access; a Write also adds the address to
// the used set. Peek and Poke bypass the marks.
type Memory struct {
	words    [MEMORY_SIZE]uint16
	used     []uint16          // Sorted.
	added    []uint16          // Sorted; joined the used set since the last reset.
	accessed []uint16          // In order of first access.
	prior    map[uint16]uint16 // Value at first access.
}

// NewMemory creates a memory preloaded with an image, starting at address 0.
func NewMemory(image []uint16) (mem *Memory) {
	mem = &Memory{
		prior: map[uint16]uint16{},
	}

	n := copy(mem.words[:], image)
	mem.used = make([]uint16, n)
	for addr := range n {
		mem.used[addr] = uint16(addr)
	}

	return
}

func (mem *Memory) access(addr uint16) {
	if mem.prior == nil {
		mem.prior = map[uint16]uint16{}
	}
	if _, ok := mem.prior[addr]; ok {
		return
	}
	mem.prior[addr] = mem.words[addr]
	mem.accessed = append(mem.accessed, addr)
}

// Read returns the word at addr, marking it accessed.
func (mem *Memory) Read(addr uint16) uint16 {
	mem.access(addr)
	return mem.words[addr]
}

// Write stores a word at addr, marking it accessed and used.
func (mem *Memory) Write(addr uint16, value uint16) {
	mem.access(addr)
	n, found := slices.BinarySearch(mem.used, addr)
	if !found {
		mem.used = slices.Insert(mem.used, n, addr)
		mem.addUsed(addr)
	}
	mem.words[addr] = value
}

func (mem *Memory) addUsed(addr uint16) {
	n, found := slices.BinarySearch(mem.added, addr)
	if !found {
		mem.added = slices.Insert(mem.added, n, addr)
	}
}

// Peek returns the word at addr without marking it.
func (mem *Memory) Peek(addr uint16) uint16 {
	return mem.words[addr]
}

// Poke stores a word at addr without marking it.
func (mem *Memory) Poke(addr uint16, value uint16) {
	mem.words[addr] = value
}

// Used returns the sorted addresses ever written.
func (mem *Memory) Used() []uint16 {
	return mem.used
}

// Added returns the sorted addresses that joined the used set since the
// last ResetAccessed.
func (mem *Memory) Added() []uint16 {
	return mem.added
}

// Unuse removes addr from the used set.
func (mem *Memory) Unuse(addr uint16) {
	n, found := slices.BinarySearch(mem.used, addr)
	if found {
		mem.used = slices.Delete(mem.used, n, n+1)
	}
}

// Mark marks addr accessed as if its first access saw prior, and as
// having joined the used set if added. The stored word is unchanged.
func (mem *Memory) Mark(addr uint16, prior uint16, added bool) {
	if mem.prior == nil {
		mem.prior = map[uint16]uint16{}
	}
	if _, ok := mem.prior[addr]; !ok {
		mem.prior[addr] = prior
		mem.accessed = append(mem.accessed, addr)
	}
	if added {
		n, found := slices.BinarySearch(mem.used, addr)
		if !found {
			mem.used = slices.Insert(mem.used, n, addr)
		}
		mem.addUsed(addr)
	}
}

// Accessed returns the addresses touched since the last ResetAccessed.
func (mem *Memory) Accessed() []uint16 {
	return mem.accessed
}

// Prior returns the value addr held when it was first accessed since the
// last ResetAccessed.
func (mem *Memory) Prior(addr uint16) (value uint16, ok bool) {
	value, ok = mem.prior[addr]
	return
}

// ResetAccessed clears the accessed and added sets.
func (mem *Memory) ResetAccessed() {
	mem.accessed = mem.accessed[:0]
	mem.added = mem.added[:0]
	clear(mem.prior)
}

// Slice returns a copy of the words in [from, to).
func (mem *Memory) Slice(from, to int) []uint16 {
	return slices.Clone(mem.words[from:to])
}
