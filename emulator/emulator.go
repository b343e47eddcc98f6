// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"log"
	"strings"

	"github.com/ezrec/sigma16/cpu"
	"github.com/ezrec/sigma16/io"
)

// Emulator is the execution driver: one program, the machine running it,
// the tape port, and the step history.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Machine state of the running program.
	Program  *cpu.Program // Currently loaded program.

	Tape    io.Tape     // Tape port for the trap I/O codes.
	History History     // Step history, for undo.
	Watches cpu.Monitor // Watches applied to the machine on every reset.
}

// NewEmulator creates an emulator with an empty program loaded.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{}
	emu.Load(&cpu.Program{Halt: -1})

	return
}

// Assemble assembles the source text and loads the resulting program.
// The program is loaded even when it has errors, which are returned.
func (emu *Emulator) Assemble(source string) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	emu.Load(prog)

	err = prog.Err()

	return
}

// Load loads a program and resets the machine.
func (emu *Emulator) Load(prog *cpu.Program) {
	emu.Program = prog
	emu.Reset()
}

// Reset replaces the machine with a fresh one for the loaded program,
// and clears the history.
func (emu *Emulator) Reset() {
	if emu.Verbose {
		log.Printf("emu: reset")
	}

	emu.Cpu = cpu.NewCpu(emu.Program)
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Port = &emu.Tape
	emu.Cpu.Monitor = emu.Watches

	emu.Tape.Rewind()
	emu.History.Clear()
}

// LineNo returns the source line of the instruction at the program
// counter, or 0 if it is not from the source.
func (emu *Emulator) LineNo() int {
	return emu.Program.Lines[emu.Cpu.Pc.Peek()]
}

// Code returns the instruction at the program counter.
func (emu *Emulator) Code() (code cpu.Code) {
	pc := emu.Cpu.Pc.Peek()
	code.Word = emu.Cpu.Memory.Peek(pc)
	if code.Op() == cpu.OP_RX {
		code.Disp = emu.Cpu.Memory.Peek(pc + 1)
	}
	return
}

// Resume continues a paused, interrupted or breakpointed machine.
func (emu *Emulator) Resume() {
	switch emu.Cpu.State {
	case cpu.RUN_PAUSED, cpu.RUN_INTERRUPTED, cpu.RUN_BREAKPOINT:
		emu.Cpu.State = cpu.RUN_RUNNING
	}
}

// step executes one instruction, recording it in the history.
func (emu *Emulator) step() (err error) {
	state := emu.Cpu.State
	pc := emu.Cpu.Pc.Peek()
	ticks := emu.Cpu.Ticks
	lineno := emu.LineNo()

	err = emu.Cpu.Step()
	if errors.Is(err, cpu.ErrNotRunnable) {
		return
	}

	emu.History.Push(Record(emu.Cpu, state, pc, ticks, emu.History.Top()))

	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Err: err}
	}

	return
}

// Step executes a single instruction in the step state.
func (emu *Emulator) Step() (err error) {
	origin := emu.Cpu.State
	switch origin {
	case cpu.RUN_PAUSED, cpu.RUN_INTERRUPTED, cpu.RUN_BREAKPOINT, cpu.RUN_RUNNING:
		emu.Cpu.State = cpu.RUN_STEP
	}

	err = emu.step()
	if errors.Is(err, cpu.ErrNotRunnable) {
		return
	}

	if top := emu.History.Top(); top != nil {
		top.State = origin
	}

	return
}

// Back undoes the most recent step. At the start of the history nothing
// is done, and ok is false.
func (emu *Emulator) Back() (ok bool) {
	ok = emu.History.Undo(emu.Cpu)
	if emu.Verbose {
		log.Printf("emu: back: %v (pc %04x)", ok, emu.Cpu.Pc.Peek())
	}
	return
}

// Run executes until the machine leaves the running state, or limit
// instructions have executed, in which case it is interrupted.
// A limit of zero or less is unbounded.
func (emu *Emulator) Run(limit int) (steps int, err error) {
	steps, _, err = emu.RunUntil(nil, limit)
	return
}

// RunUntil is Run, also stopping in the paused state after any step
// where the condition holds.
func (emu *Emulator) RunUntil(cond *Condition, limit int) (steps int, hit bool, err error) {
	switch emu.Cpu.State {
	case cpu.RUN_STEP:
		emu.Cpu.State = cpu.RUN_RUNNING
	default:
		emu.Resume()
	}

	if emu.Cpu.State != cpu.RUN_RUNNING {
		err = cpu.ErrNotRunnable
		return
	}

	for emu.Cpu.State == cpu.RUN_RUNNING {
		if limit > 0 && steps >= limit {
			emu.Cpu.State = cpu.RUN_INTERRUPTED
			break
		}

		err = emu.step()
		if err != nil {
			return
		}
		steps++

		if cond != nil && emu.Cpu.State == cpu.RUN_RUNNING {
			hit, err = cond.Eval(emu.Cpu)
			if err != nil {
				return
			}
			if hit {
				emu.Cpu.State = cpu.RUN_PAUSED
			}
		}
	}

	if emu.Verbose {
		log.Printf("emu: run: %d steps, %v", steps, emu.Cpu.State)
	}

	return
}
