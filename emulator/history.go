package emulator

import (
	"slices"

	"github.com/ezrec/sigma16/cpu"
)

// Snapshot is one step of history: the machine state needed to undo a
// single step, linked to the snapshot of the step before it.
type Snapshot struct {
	State     cpu.RunState      // Run state before the step.
	Pc        uint16            // Program counter before the step.
	Ticks     int               // Tick count before the step.
	Registers map[uint8]uint16  // Prior values of the registers altered by the step.
	Memory    map[uint16]uint16 // Prior values of the memory accessed by the step.
	Accessed  []uint8           // Registers read by the step.
	Order     []uint16          // Memory accessed by the step, in order.
	Used      []uint16          // Addresses the step added to the used set.
	Previous  *Snapshot         // Earlier step, or nil at the root.
}

// Record builds the snapshot of the step that just executed on cp, which
// started in state at pc.
func Record(cp *cpu.Cpu, state cpu.RunState, pc uint16, ticks int, previous *Snapshot) (snap *Snapshot) {
	snap = &Snapshot{
		State:     state,
		Pc:        pc,
		Ticks:     ticks,
		Registers: map[uint8]uint16{},
		Memory:    map[uint16]uint16{},
		Previous:  previous,
	}

	for n := range cp.Register {
		value, ok := cp.Register[n].Prior()
		if ok {
			snap.Registers[uint8(n)] = value
		}
		if cp.Register[n].Accessed() {
			snap.Accessed = append(snap.Accessed, uint8(n))
		}
	}

	for _, addr := range cp.Memory.Accessed() {
		value, _ := cp.Memory.Prior(addr)
		snap.Memory[addr] = value
	}
	snap.Order = slices.Clone(cp.Memory.Accessed())
	snap.Used = slices.Clone(cp.Memory.Added())

	return
}

// Undo writes the prior values of the snapshot back into cp, restores the
// access marks left by the previous step, and returns the previous snapshot.
func (snap *Snapshot) Undo(cp *cpu.Cpu) (previous *Snapshot) {
	for n, value := range snap.Registers {
		cp.Register[n].Poke(value)
	}
	for addr, value := range snap.Memory {
		cp.Memory.Poke(addr, value)
	}
	for _, addr := range snap.Used {
		cp.Memory.Unuse(addr)
	}
	cp.Pc.Poke(snap.Pc)
	cp.State = snap.State
	cp.Ticks = snap.Ticks

	cp.ResetAltered()

	previous = snap.Previous
	if previous != nil {
		previous.mark(cp)
	}

	return
}

// mark reapplies the access marks the step left on cp.
func (snap *Snapshot) mark(cp *cpu.Cpu) {
	// Every step fetches, so the program counter is always altered.
	cp.Pc.Mark(snap.Pc, true, false)

	for n := range cp.Register {
		prior, altered := snap.Registers[uint8(n)]
		accessed := slices.Contains(snap.Accessed, uint8(n))
		if altered || accessed {
			cp.Register[n].Mark(prior, altered, accessed)
		}
	}

	for _, addr := range snap.Order {
		_, added := slices.BinarySearch(snap.Used, addr)
		cp.Memory.Mark(addr, snap.Memory[addr], added)
	}
}

// History is a bounded chain of snapshots, most recent first.
type History struct {
	Limit int // Maximum depth; unbounded if zero or less.

	top   *Snapshot
	depth int
}

// Len returns the number of steps that can be undone.
func (hist *History) Len() int {
	return hist.depth
}

// Push adds a snapshot, dropping the oldest beyond the limit.
func (hist *History) Push(snap *Snapshot) {
	hist.top = snap
	hist.depth++

	if hist.Limit <= 0 || hist.depth <= hist.Limit {
		return
	}

	node := hist.top
	for range hist.Limit - 1 {
		node = node.Previous
	}
	node.Previous = nil
	hist.depth = hist.Limit
}

// Top returns the most recent snapshot, or nil.
func (hist *History) Top() *Snapshot {
	return hist.top
}

// Undo reverts cp by the most recent snapshot.
// At the root of the history nothing is done and ok is false.
func (hist *History) Undo(cp *cpu.Cpu) (ok bool) {
	if hist.top == nil {
		return
	}

	hist.top = hist.top.Undo(cp)
	hist.depth--
	ok = true

	return
}

// Clear drops every snapshot.
func (hist *History) Clear() {
	hist.top = nil
	hist.depth = 0
}
