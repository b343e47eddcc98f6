package cpu

import (
	"fmt"
	"iter"
	"slices"

	"github.com/ezrec/sigma16/internal"
)

// Monitor selects the registers, symbols and addresses to watch.
type Monitor struct {
	Registers [REGISTER_COUNT]bool
	Symbols   []string
	Addresses []uint16
}

// Watch is the current value of a watched item.
type Watch struct {
	Name    string // "R3", a symbol name, or "$hhhh".
	Addr    uint16 // Register index or memory address.
	Memory  bool   // True for a memory word.
	Value   uint16
	Altered bool // Changed by the last step.
}

func (w Watch) String() string {
	mark := ""
	if w.Altered {
		mark = "*"
	}
	return fmt.Sprintf("%v=%04x%v", w.Name, w.Value, mark)
}

// WatchRegister adds a register to the monitor.
func (mon *Monitor) WatchRegister(n uint8) {
	mon.Registers[n&0xf] = true
}

// WatchSymbol adds a symbol to the monitor.
func (mon *Monitor) WatchSymbol(name string) {
	if !slices.Contains(mon.Symbols, name) {
		mon.Symbols = append(mon.Symbols, name)
	}
}

// WatchAddress adds a memory address to the monitor.
func (mon *Monitor) WatchAddress(addr uint16) {
	if !slices.Contains(mon.Addresses, addr) {
		mon.Addresses = append(mon.Addresses, addr)
	}
}

func (cpu *Cpu) watchedRegisters() iter.Seq[Watch] {
	return func(yield func(Watch) bool) {
		for n, watched := range cpu.Monitor.Registers {
			if !watched {
				continue
			}
			reg := &cpu.Register[n]
			w := Watch{
				Name:    fmt.Sprintf("R%d", n),
				Addr:    uint16(n),
				Value:   reg.Peek(),
				Altered: reg.Altered(),
			}
			if !yield(w) {
				return
			}
		}
	}
}

func (cpu *Cpu) watchedWord(name string, addr uint16) Watch {
	value := cpu.Memory.Peek(addr)
	prior, accessed := cpu.Memory.Prior(addr)
	return Watch{
		Name:    name,
		Addr:    addr,
		Memory:  true,
		Value:   value,
		Altered: accessed && prior != value,
	}
}

func (cpu *Cpu) watchedSymbols() iter.Seq[Watch] {
	return func(yield func(Watch) bool) {
		for _, name := range cpu.Monitor.Symbols {
			addr, ok := cpu.Symbols[name]
			if !ok {
				continue
			}
			if !yield(cpu.watchedWord(name, addr)) {
				return
			}
		}
	}
}

func (cpu *Cpu) watchedAddresses() iter.Seq[Watch] {
	return func(yield func(Watch) bool) {
		for _, addr := range cpu.Monitor.Addresses {
			if !yield(cpu.watchedWord(fmt.Sprintf("$%04x", addr), addr)) {
				return
			}
		}
	}
}

// Watched returns every watched item: registers, then symbols, then
// addresses. Symbols missing from the symbol table are skipped.
func (cpu *Cpu) Watched() iter.Seq[Watch] {
	return internal.IterSeqConcat(
		cpu.watchedRegisters(),
		cpu.watchedSymbols(),
		cpu.watchedAddresses(),
	)
}

// Monitored returns the watched items altered by the last step.
func (cpu *Cpu) Monitored() iter.Seq[Watch] {
	return internal.IterSeqFilter(cpu.Watched(), func(w Watch) bool {
		return w.Altered
	})
}
