package cpu

// REGISTER_COUNT is the number of general registers.
const REGISTER_COUNT = 16

// Register is a 16-bit register that tracks whether it has been read or
// written since the last reset of its access marks.
type Register struct {
	value    uint16
	prior    uint16
	altered  bool
	accessed bool
}

// Get returns the register value, marking it accessed.
func (r *Register) Get() uint16 {
	r.accessed = true
	return r.value
}

// Peek returns the register value without marking it.
func (r *Register) Peek() uint16 {
	return r.value
}

// Set sets the register value, marking it altered.
func (r *Register) Set(value uint16) {
	if !r.altered {
		r.prior = r.value
		r.altered = true
	}
	r.value = value
}

// Poke sets the register value without marking it.
func (r *Register) Poke(value uint16) {
	r.value = value
}

// PostIncrement returns the register value, then increments it.
func (r *Register) PostIncrement() (value uint16) {
	value = r.value
	r.Set(value + 1)
	return
}

// Altered returns true if the register was written since the last reset.
func (r *Register) Altered() bool {
	return r.altered
}

// Accessed returns true if the register was read since the last reset.
func (r *Register) Accessed() bool {
	return r.accessed
}

// Prior returns the value the register held before its first write
// since the last reset.
func (r *Register) Prior() (value uint16, ok bool) {
	return r.prior, r.altered
}

// Mark sets the access marks directly, with prior as the value before the
// first write. The register value is unchanged.
func (r *Register) Mark(prior uint16, altered, accessed bool) {
	r.prior = prior
	r.altered = altered
	r.accessed = accessed
}

// ResetAltered clears the altered and accessed marks.
func (r *Register) ResetAltered() {
	r.altered = false
	r.accessed = false
}

// Registers is the general register file. R0 always reads as zero.
type Registers [REGISTER_COUNT]Register

// Get returns the value of register n, marking it accessed.
func (rf *Registers) Get(n uint8) uint16 {
	return rf[n&0xf].Get()
}

// Set sets the value of register n, marking it altered.
// Writes to R0 are discarded.
func (rf *Registers) Set(n uint8, value uint16) {
	n &= 0xf
	if n == 0 {
		return
	}
	rf[n].Set(value)
}

// Flags returns the content of the flag register.
func (rf *Registers) Flags() Flags {
	return Flags(rf.Get(REG_FLAGS))
}

// SetFlags overwrites the flag register.
func (rf *Registers) SetFlags(flags Flags) {
	rf.Set(REG_FLAGS, uint16(flags))
}

// Values returns a copy of the register values.
func (rf *Registers) Values() (values [REGISTER_COUNT]uint16) {
	for n := range rf {
		values[n] = rf[n].value
	}
	return
}

// ResetAltered clears the altered and accessed marks of every register.
func (rf *Registers) ResetAltered() {
	for n := range rf {
		rf[n].ResetAltered()
	}
}
