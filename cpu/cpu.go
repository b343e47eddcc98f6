package cpu

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

// RunState is the execution state of the machine.
type RunState int

//go:generate go tool stringer -linecomment -type=RunState
const (
	RUN_ERROR       = RunState(0) // error
	RUN_RUNNING     = RunState(1) // running
	RUN_STEP        = RunState(2) // step
	RUN_PAUSED      = RunState(3) // paused
	RUN_BREAKPOINT  = RunState(4) // breakpoint
	RUN_HALTED      = RunState(5) // halted
	RUN_INTERRUPTED = RunState(6) // interrupted
)

// Runnable returns true for the states that permit executing an instruction.
func (state RunState) Runnable() bool {
	return state == RUN_RUNNING || state == RUN_STEP
}

// Trap codes, selected by the value of the first trap register.
const (
	TRAP_HALT        = 0
	TRAP_READ        = 1 // Non-blocking read.
	TRAP_WRITE       = 2 // Non-blocking write.
	TRAP_READ_WAIT   = 3 // Blocking read.
	TRAP_BREAKPOINT  = 4
	TRAP_USER_OFFSET = 255 // Codes at or above are user traps.
)

// Port is the byte stream collaborator of the trap I/O codes.
type Port interface {
	io.ByteReader
	io.ByteWriter
}

// Cpu is the machine state: program counter, register file, memory and
// run-state.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       Register          // Program counter.
	Register Registers         // General registers; R15 holds the flags.
	Memory   *Memory           // Word addressed memory.
	State    RunState          // Run state.
	Symbols  map[string]uint16 // Symbol table, for display.
	Monitor  Monitor           // Watched registers, symbols and addresses.
	Port     Port              // Trap I/O port; traps 1 to 3 are no-ops if nil.

	Ticks int // Instructions executed.
}

// NewCpu creates a machine loaded with an assembled program.
//
// A program with assembly errors yields a machine in the error state.
func NewCpu(prog *Program) (cpu *Cpu) {
	cpu = &Cpu{
		Memory:  NewMemory(prog.Words),
		State:   RUN_STEP,
		Symbols: prog.Symbols,
	}

	if !prog.Valid() {
		cpu.State = RUN_ERROR
	}

	return
}

// ResetAltered clears the access marks of the registers and memory.
func (cpu *Cpu) ResetAltered() {
	cpu.Pc.ResetAltered()
	cpu.Register.ResetAltered()
	cpu.Memory.ResetAccessed()
}

// setState changes the run state.
func (cpu *Cpu) setState(state RunState) {
	if cpu.Verbose && state != cpu.State {
		log.Printf("cpu: %v -> %v", cpu.State, state)
	}
	cpu.State = state
}

// fault moves the machine to the error state.
func (cpu *Cpu) fault(err error) error {
	cpu.setState(RUN_ERROR)
	return err
}

// effectiveAddress returns base+disp, wrapping sums beyond the top of
// memory by subtracting 0xffff.
func effectiveAddress(base, disp uint16) uint16 {
	sum := uint32(base) + uint32(disp)
	if sum > 0xffff {
		sum -= 0xffff
	}
	return uint16(sum)
}

// Fetch returns the instruction at the program counter, advancing it past
// the instruction and its displacement word.
func (cpu *Cpu) Fetch() (code Code) {
	code.Word = cpu.Memory.Read(cpu.Pc.PostIncrement())
	if code.Op() == OP_RX {
		code.Disp = cpu.Memory.Read(cpu.Pc.PostIncrement())
	}
	return
}

// Step executes a single instruction.
//
// Outside of the running and step states, ErrNotRunnable is returned and
// nothing is changed. A fault leaves the machine in the error state with
// only the program counter advanced.
func (cpu *Cpu) Step() (err error) {
	if !cpu.State.Runnable() {
		err = ErrNotRunnable
		return
	}

	cpu.ResetAltered()

	pc := cpu.Pc.Peek()
	code := cpu.Fetch()

	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	if cpu.Verbose {
		log.Printf("cpu: %04x: %04x %v", pc, code.Word, code)
	}

	cpu.Ticks++

	if code.Op() == OP_RX {
		err = cpu.executeRx(code)
	} else {
		err = cpu.executeRrr(code)
	}

	return
}

// executeRrr executes the RRR and RR format instructions.
func (cpu *Cpu) executeRrr(code Code) (err error) {
	op, rd, ra, rb := code.RRRDecode()
	reg := &cpu.Register

	switch op {
	case OP_ADD, OP_ADDC:
		a := uint32(reg.Get(ra))
		b := uint32(reg.Get(rb))
		sum := a + b
		if op == OP_ADDC && reg.Flags().Has(FLAG_C) {
			sum++
		}
		result := uint16(sum)
		flags := resultFlags(result)
		if (a^sum)&(b^sum)&signBit != 0 {
			flags |= FLAG_v
		}
		if sum > 0xffff {
			flags |= FLAG_V | FLAG_C
		}
		reg.Set(rd, result)
		reg.SetFlags(flags)
	case OP_SUB:
		a := reg.Get(ra)
		b := reg.Get(rb)
		result := a - b
		flags := resultFlags(result)
		if (a^b)&(a^result)&signBit != 0 {
			flags |= FLAG_v
		}
		if a < b {
			flags |= FLAG_V | FLAG_C
		}
		reg.Set(rd, result)
		reg.SetFlags(flags)
	case OP_MUL:
		product := uint32(reg.Get(ra)) * uint32(reg.Get(rb))
		result := uint16(product)
		flags := resultFlags(result)
		if product>>16 != 0 {
			flags |= FLAG_v
		}
		reg.Set(rd, result)
		reg.SetFlags(flags)
	case OP_DIV:
		a := reg.Get(ra)
		b := reg.Get(rb)
		if b == 0 {
			return cpu.fault(ErrDivideByZero)
		}
		reg.Set(rd, a/b)
		reg.Set(REG_FLAGS, a%b)
	case OP_CMP:
		reg.SetFlags(compareFlags(reg.Get(ra), reg.Get(rb)))
	case OP_MULN:
		product := uint32(reg.Get(ra)) * uint32(reg.Get(rb))
		reg.Set(rd, uint16(product))
		reg.Set(REG_FLAGS, uint16(product>>16))
	case OP_DIVN:
		// The low half is or-ed with the high mask, so the dividend
		// always has its upper 16 bits set.
		dividend := (uint32(reg.Get(REG_FLAGS)) << 16) | uint32(reg.Get(ra)) | 0xffff0000
		divisor := uint32(reg.Get(rb))
		if divisor == 0 {
			return cpu.fault(ErrDivideByZero)
		}
		reg.Set(rd, uint16(dividend/divisor))
		reg.Set(REG_FLAGS, uint16(dividend%divisor))
	case OP_RRR1, OP_RRR2, OP_RRR3, OP_RRR4:
		// Reserved for expansion; no effect.
	case OP_TRAP:
		err = cpu.trap(rd, ra, rb)
	default:
		return cpu.fault(ErrOpcodeReserved)
	}

	return
}

// executeRx executes the RX format instructions.
func (cpu *Cpu) executeRx(code Code) (err error) {
	op, rd, rx, disp := code.RXDecode()
	reg := &cpu.Register

	switch op {
	case RX_LEA:
		reg.Set(rd, reg.Get(rx)+disp)
	case RX_LOAD:
		ea := effectiveAddress(reg.Get(rx), disp)
		reg.Set(rd, cpu.Memory.Read(ea))
	case RX_STORE:
		ea := effectiveAddress(reg.Get(rx), disp)
		cpu.Memory.Write(ea, reg.Get(rd))
	case RX_JUMP:
		cpu.Pc.Set(effectiveAddress(reg.Get(rx), disp))
	case RX_JUMPC0, RX_JUMPC1:
		jump, ok := code.JumpDecode()
		if !ok {
			return cpu.fault(ErrOpcodeJump)
		}
		if jump.Taken(reg.Flags()) {
			cpu.Pc.Set(effectiveAddress(reg.Get(rx), disp))
		}
	case RX_JAL:
		ea := effectiveAddress(reg.Get(rx), disp)
		reg.Set(rd, cpu.Pc.Peek())
		cpu.Pc.Set(ea)
	case RX_JUMPZ:
		if reg.Get(rd) == 0 {
			cpu.Pc.Set(effectiveAddress(reg.Get(rx), disp))
		}
	case RX_JUMPNZ:
		if reg.Get(rd) != 0 {
			cpu.Pc.Set(effectiveAddress(reg.Get(rx), disp))
		}
	case RX_TESTSET:
		ea := effectiveAddress(reg.Get(rx), disp)
		reg.Set(rd, cpu.Memory.Read(ea))
		cpu.Memory.Write(ea, 1)
	default:
		return cpu.fault(ErrOpcodeRx)
	}

	return
}

// trap dispatches on the value of R[ra]; R[rb] is the buffer address
// and R[rc] the word count for the I/O codes.
func (cpu *Cpu) trap(ra, rb, rc uint8) (err error) {
	code := cpu.Register.Get(ra)
	if code >= TRAP_USER_OFFSET {
		if cpu.Verbose {
			log.Printf("cpu: trap: user %d", code)
		}
		return
	}

	switch code {
	case TRAP_HALT:
		if cpu.Verbose {
			log.Printf("cpu: trap: halt")
		}
		cpu.setState(RUN_HALTED)
	case TRAP_READ, TRAP_READ_WAIT:
		if cpu.Verbose {
			log.Printf("cpu: trap: read")
		}
		cpu.portRead(rb, rc)
	case TRAP_WRITE:
		if cpu.Verbose {
			log.Printf("cpu: trap: write")
		}
		cpu.portWrite(rb, rc)
	case TRAP_BREAKPOINT:
		if cpu.Verbose {
			log.Printf("cpu: trap: breakpoint")
		}
		cpu.setState(RUN_BREAKPOINT)
	default:
		if cpu.Verbose {
			log.Printf("cpu: trap: unknown %d", code)
		}
	}

	return
}

// portRead reads up to R[rc] bytes into memory starting at R[rb], one
// byte per word. R[rc] is set to the count read.
func (cpu *Cpu) portRead(rb, rc uint8) {
	if cpu.Port == nil {
		return
	}

	addr := cpu.Register.Get(rb)
	count := cpu.Register.Get(rc)
	var n uint16
	for ; n < count; n++ {
		b, err := cpu.Port.ReadByte()
		if err != nil {
			break
		}
		cpu.Memory.Write(addr+n, uint16(b))
	}
	cpu.Register.Set(rc, n)
}

// portWrite writes the low bytes of R[rc] words of memory starting at
// R[rb]. R[rc] is set to the count written.
func (cpu *Cpu) portWrite(rb, rc uint8) {
	if cpu.Port == nil {
		return
	}

	addr := cpu.Register.Get(rb)
	count := cpu.Register.Get(rc)
	var n uint16
	for ; n < count; n++ {
		err := cpu.Port.WriteByte(byte(cpu.Memory.Read(addr + n)))
		if err != nil {
			break
		}
	}
	cpu.Register.Set(rc, n)
}

// String returns the machine state: run state, program counter, flags,
// registers (altered ones starred) and the used memory.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "state: %v\n", cpu.State)
	fmt.Fprintf(&sb, "   pc: %04x\n", cpu.Pc.Peek())
	fmt.Fprintf(&sb, "flags: %v\n", Flags(cpu.Register[REG_FLAGS].Peek()))

	for n := range cpu.Register {
		mark := ' '
		if cpu.Register[n].Altered() {
			mark = '*'
		}
		fmt.Fprintf(&sb, "% 5s:%c%04x\n", fmt.Sprintf("R%d", n), mark, cpu.Register[n].Peek())
	}

	const perRow = 8
	row := -1
	for _, addr := range cpu.Memory.Used() {
		if int(addr)/perRow != row {
			if row >= 0 {
				sb.WriteByte('\n')
			}
			row = int(addr) / perRow
			fmt.Fprintf(&sb, " %04x:", row*perRow)
		}
		fmt.Fprintf(&sb, " %04x", cpu.Memory.Peek(addr))
	}
	if row >= 0 {
		sb.WriteByte('\n')
	}

	text = sb.String()

	return
}
