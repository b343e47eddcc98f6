// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// asmState is the position of the assembler within a source line.
type asmState int

const (
	stateNewline     = asmState(iota) // At the start of a line.
	stateLabel                        // After a label at the start of a line.
	stateInstruction                  // After an instruction, awaiting its arguments.
	stateComplete                     // After a complete statement.
)

type labelDef struct {
	addr   uint16
	lineno int
}

type patchRequest struct {
	addr   uint16
	lineno int
}

// Assembler is a single pass assembler for the Sigma16 instruction set.
//
// Errors never stop the pass; they are collected in the Program, which is
// produced on a best-effort basis.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	source    string
	lines     []string
	words     []uint16
	lineOf    map[uint16]int
	code      []uint16
	label     map[string]labelDef
	patch     map[string][]patchRequest
	registers []int
	halt      int
	errors    []*ErrSyntax

	lineno int
	state  asmState
	opener TokenKind // Instruction awaiting its arguments.
	skip   bool      // Skip to the end of the line.

	overflow bool // Memory is full; nothing more is emitted.
}

// Assemble assembles source text into a Program.
func Assemble(source string) *Program {
	asm := &Assembler{}
	return asm.Assemble(source)
}

// Parse assembles an input stream into a Program.
// Only a failure to read the input is returned as an error; assembly
// errors are in the Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	text, err := io.ReadAll(input)
	if err != nil {
		return
	}

	prog = asm.Assemble(string(text))

	return
}

// reset the assembler state for a new source text.
func (asm *Assembler) reset(source string) {
	asm.source = source
	asm.lines = strings.Split(source, "\n")
	asm.words = nil
	asm.lineOf = map[uint16]int{}
	asm.code = nil
	asm.label = map[string]labelDef{}
	asm.patch = map[string][]patchRequest{}
	asm.registers = []int{REG_FLAGS}
	asm.halt = -1
	asm.errors = nil

	asm.lineno = 1
	asm.state = stateNewline
	asm.opener = TOKEN_IGNORE
	asm.skip = false
	asm.overflow = false
}

// Assemble assembles source text into a Program.
func (asm *Assembler) Assemble(source string) (prog *Program) {
	asm.reset(source)

	for tok, err := range Lex(source) {
		if err != nil {
			if !asm.skip {
				asm.fail(err, f("Check the spelling of the instruction and its operands."))
				asm.skip = true
			}
			continue
		}

		if asm.Verbose && tok.Kind != TOKEN_IGNORE {
			log.Printf("asm: %d: %v", asm.lineno, tok)
		}

		asm.token(tok)
	}

	asm.finish()

	prog = &Program{
		Source:    source,
		Words:     slices.Clip(asm.words),
		Symbols:   map[string]uint16{},
		Lines:     asm.lineOf,
		Code:      asm.code,
		Registers: asm.registers,
		Halt:      asm.halt,
		Errors:    asm.errors,
	}
	for name, def := range asm.label {
		prog.Symbols[name] = def.addr
	}

	return
}

// line returns the text of a 1-based source line.
func (asm *Assembler) line(lineno int) string {
	if lineno < 1 || lineno > len(asm.lines) {
		return ""
	}
	return strings.TrimRight(asm.lines[lineno-1], "\r")
}

// failAt records an error at a source line.
func (asm *Assembler) failAt(lineno int, err error, resolution string) {
	if asm.Verbose {
		log.Printf("asm: %d: error: %v", lineno, err)
	}
	asm.errors = append(asm.errors, &ErrSyntax{
		LineNo:     lineno,
		Line:       asm.line(lineno),
		Err:        err,
		Resolution: resolution,
	})
}

// fail records an error at the current source line.
func (asm *Assembler) fail(err error, resolution string) {
	asm.failAt(asm.lineno, err, resolution)
}

// token validates and encodes a single token.
func (asm *Assembler) token(tok Token) {
	switch tok.Kind {
	case TOKEN_IGNORE:
		return
	case TOKEN_NEWLINE:
		asm.endLine()
		asm.lineno++
		return
	}

	if asm.skip {
		return
	}

	err, resolution := asm.validate(tok)
	if err != nil {
		asm.fail(err, resolution)
		asm.skip = true
		return
	}

	asm.encode(tok)
}

// endLine checks that the line did not end while an instruction was
// awaiting its arguments, and resets the line state.
func (asm *Assembler) endLine() {
	if asm.state == stateInstruction && !asm.skip {
		asm.fail(ErrArgumentMismatch, f("Add the %v arguments to the instruction.", asm.opener))
	}
	asm.state = stateNewline
	asm.opener = TOKEN_IGNORE
	asm.skip = false
}

// validate checks the token order within a line.
func (asm *Assembler) validate(tok Token) (err error, resolution string) {
	if asm.state == stateInstruction {
		switch tok.Kind {
		case TOKEN_RRR_ARG, TOKEN_RR_ARG, TOKEN_IRX_ARG:
		default:
			return ErrArgumentMismatch, f("Add the %v arguments to the instruction.", asm.opener)
		}
	}

	switch tok.Kind {
	case TOKEN_LABEL:
		if asm.state != stateNewline {
			return ErrLabelMisplaced, f("Put the label '%v' on a new line.", tok.Text)
		}
		asm.state = stateLabel
	case TOKEN_RRR, TOKEN_RR, TOKEN_IRX:
		if asm.state != stateNewline && asm.state != stateLabel {
			return ErrInstructionNotOnNewLine, f("Start the instruction on a new line.")
		}
		asm.state = stateInstruction
		asm.opener = tok.Kind
	case TOKEN_DATA, TOKEN_JUMP:
		if asm.state != stateNewline && asm.state != stateLabel {
			return ErrInstructionNotOnNewLine, f("Start the instruction on a new line.")
		}
		asm.state = stateComplete
	case TOKEN_RRR_ARG, TOKEN_RR_ARG, TOKEN_IRX_ARG:
		arg, _ := asm.opener.Argument()
		if asm.state != stateInstruction || arg != tok.Kind {
			return ErrArgumentMismatch, f("Expected %v arguments for a %v instruction; either the arguments or the instruction is incorrect.", tok.Kind, asm.opener)
		}
		asm.state = stateComplete
	}

	return
}

// full returns true once memory has no room for another word, reporting
// it the first time.
func (asm *Assembler) full() bool {
	if len(asm.words) < MEMORY_SIZE {
		return false
	}
	if !asm.overflow {
		asm.fail(ErrProgramTooLarge, f("Reduce the size of the program."))
		asm.overflow = true
	}
	return true
}

// emit appends a word at the cursor.
func (asm *Assembler) emit(word uint16) {
	if asm.full() {
		return
	}
	asm.lineOf[uint16(len(asm.words))] = asm.lineno
	asm.words = append(asm.words, word)
}

// cursor returns the address of the next word to emit.
func (asm *Assembler) cursor() uint16 {
	return uint16(len(asm.words))
}

// define records a label at an address.
func (asm *Assembler) define(name string, addr uint16) {
	if asm.full() {
		return
	}
	if _, reserved := keywords[name]; reserved {
		asm.fail(ErrLabelReserved(name), f("'%v' is an instruction mnemonic; choose another label name.", name))
		return
	}
	def, ok := asm.label[name]
	if ok {
		asm.fail(ErrLabelDuplicate, f("Label '%v' is already defined on line %d; rename one of them.", name, def.lineno))
		return
	}
	asm.label[name] = labelDef{addr: addr, lineno: asm.lineno}
}

// reference records a patch request for the word at addr.
// Addresses beyond the end of memory are never emitted, so are ignored.
func (asm *Assembler) reference(name string, addr int) {
	if addr >= MEMORY_SIZE {
		return
	}
	asm.patch[name] = append(asm.patch[name], patchRequest{addr: uint16(addr), lineno: asm.lineno})
}

// useRegister records a register referenced by the program.
func (asm *Assembler) useRegister(reg uint8) {
	if !slices.Contains(asm.registers, int(reg)) {
		asm.registers = append(asm.registers, int(reg))
	}
}

// encode emits the words for a validated token.
func (asm *Assembler) encode(tok Token) {
	switch tok.Kind {
	case TOKEN_LABEL:
		asm.define(tok.Text, asm.cursor())
	case TOKEN_RRR, TOKEN_RR, TOKEN_IRX:
		if asm.full() {
			return
		}
		asm.code = append(asm.code, asm.cursor())
		asm.emit(tok.Word)
	case TOKEN_RRR_ARG:
		asm.encodeRegisters(tok.Text, 3)
	case TOKEN_RR_ARG:
		asm.encodeRegisters(tok.Text, 2)
	case TOKEN_IRX_ARG:
		asm.encodeRx(tok.Text)
	case TOKEN_DATA:
		asm.encodeData(tok.Text)
	case TOKEN_JUMP:
		asm.encodeJump(tok.Text)
	}
}

// operandFail records an invalid operand.
func (asm *Assembler) operandFail(err error) {
	var reserved ErrLabelReserved
	if errors.As(err, &reserved) {
		asm.fail(err, f("'%v' is an instruction mnemonic; choose another label name.", string(reserved)))
		return
	}
	asm.fail(err, f("Registers are R0 to R15; numbers are decimal 0 to 65535, or $ followed by four hex digits."))
}

// parseRegister parses a register name.
func (asm *Assembler) parseRegister(name string) (reg uint8, err error) {
	if len(name) < 2 || (name[0] != 'R' && name[0] != 'r') {
		err = ErrParseRegister(name)
		return
	}
	value, perr := strconv.ParseUint(name[1:], 10, 8)
	if perr != nil || value >= REGISTER_COUNT {
		err = ErrParseRegister(name)
		return
	}

	reg = uint8(value)
	asm.useRegister(reg)

	return
}

var reIdent = regexp.MustCompile(`^` + lexIdent + `$`)

// parseValue parses a decimal or $hex literal, or a label reference.
func (asm *Assembler) parseValue(word string) (value uint16, label string, err error) {
	switch {
	case strings.HasPrefix(word, "$"):
		if len(word) != 5 {
			err = ErrParseNumber(word)
			return
		}
		v, perr := strconv.ParseUint(word[1:], 16, 16)
		if perr != nil {
			err = ErrParseNumber(word)
			return
		}
		value = uint16(v)
	case len(word) > 0 && word[0] >= '0' && word[0] <= '9':
		v, perr := strconv.ParseUint(word, 10, 16)
		if perr != nil {
			err = ErrParseNumber(word)
			return
		}
		value = uint16(v)
	case reIdent.MatchString(word):
		if _, reserved := keywords[word]; reserved {
			err = ErrLabelReserved(word)
			return
		}
		label = word
	default:
		err = ErrParseNumber(word)
	}

	return
}

// encodeRegisters merges register operands into the instruction word.
// The operands are taken in reverse, the last one going to the
// lowest nibble.
func (asm *Assembler) encodeRegisters(text string, count int) {
	if asm.overflow {
		return
	}

	args := strings.Split(text, ",")
	slices.Reverse(args)

	var bits uint16
	var failed bool
	for n, arg := range args[:count] {
		reg, err := asm.parseRegister(arg)
		if err != nil {
			asm.operandFail(err)
			failed = true
			continue
		}
		bits |= uint16(reg) << (4 * n)
	}

	at := len(asm.words) - 1
	if at < 0 {
		return
	}
	asm.words[at] |= bits
	if !failed && asm.words[at] == CODE_HALT && asm.halt < 0 {
		asm.halt = at
	}
}

var reRxArg = regexp.MustCompile(`^([Rr][0-9]+),(.+)\[([Rr][0-9]+)\]$`)

// encodeRx merges the RX register operands into the instruction word and
// emits the displacement word.
func (asm *Assembler) encodeRx(text string) {
	if asm.overflow {
		return
	}

	match := reRxArg.FindStringSubmatch(text)
	if match == nil {
		asm.operandFail(ErrParseRegister(text))
		asm.emit(0)
		return
	}

	var bits uint16
	rd, err := asm.parseRegister(match[1])
	if err != nil {
		asm.operandFail(err)
	}
	rx, err := asm.parseRegister(match[3])
	if err != nil {
		asm.operandFail(err)
	}
	bits = (uint16(rd) << 8) | (uint16(rx) << 4)

	if at := len(asm.words) - 1; at >= 0 {
		asm.words[at] |= bits
	}

	disp, label, err := asm.parseValue(match[2])
	if err != nil {
		asm.operandFail(err)
	}
	if len(label) != 0 {
		asm.reference(label, len(asm.words))
	}
	asm.emit(disp)
}

var reData = regexp.MustCompile(`^(?:(` + lexIdent + `)[ \t]+)?data[ \t]+(\S+)$`)

// encodeData emits a data word, defining its label if present.
func (asm *Assembler) encodeData(text string) {
	match := reData.FindStringSubmatch(text)
	if match == nil {
		asm.fail(ErrDataMalformed, f("Use 'label data value', where value is a number or a label."))
		asm.emit(0)
		return
	}

	if len(match[1]) != 0 {
		asm.define(match[1], asm.cursor())
	}

	value, label, err := asm.parseValue(match[2])
	if err != nil {
		asm.operandFail(err)
	}
	if len(label) != 0 {
		asm.reference(label, len(asm.words))
	}
	asm.emit(value)
}

var reJump = regexp.MustCompile(`^(jump(?:lt|le|eq|ne|ge|gt)?)[ \t]+(?:(` + lexIdent + `)|\$([0-9A-Fa-f]{4}))(?:\[([Rr][0-9]+)\])?$`)

// encodeJump emits a jump pseudo-op as an RX instruction pair.
func (asm *Assembler) encodeJump(text string) {
	if asm.full() {
		return
	}
	addr := asm.cursor()
	asm.code = append(asm.code, addr)

	match := reJump.FindStringSubmatch(text)
	if match == nil {
		asm.fail(ErrJumpMalformed, f("Use 'jump label[Rn]' or 'jump $hhhh[Rn]', with an optional lt, le, eq, ne, ge or gt suffix."))
		asm.emit(0)
		asm.emit(0)
		return
	}

	// Matched by the expression above, so always valid.
	jump, _ := ParseJump(match[1])

	var rx uint8
	if len(match[4]) != 0 {
		var err error
		rx, err = asm.parseRegister(match[4])
		if err != nil {
			asm.operandFail(err)
		}
	}

	var disp uint16
	if len(match[2]) != 0 {
		if _, reserved := keywords[match[2]]; reserved {
			asm.operandFail(ErrLabelReserved(match[2]))
		} else {
			asm.reference(match[2], int(addr)+1)
		}
	} else {
		v, _ := strconv.ParseUint(match[3], 16, 16)
		disp = uint16(v)
	}

	code := MakeCodeJump(jump, rx, disp)
	asm.emit(code.Word)
	asm.emit(code.Disp)
}

// finish resolves the patch requests and checks for a halt instruction.
func (asm *Assembler) finish() {
	asm.endLine()

	for _, name := range slices.Sorted(maps.Keys(asm.label)) {
		def := asm.label[name]
		requests, ok := asm.patch[name]
		if !ok {
			if asm.Verbose {
				log.Printf("asm: %d: label %v not used", def.lineno, name)
			}
			continue
		}
		for _, req := range requests {
			if int(req.addr) < len(asm.words) {
				if asm.Verbose {
					log.Printf("asm: patch 0x%04x := %v (0x%04x)", req.addr, name, def.addr)
				}
				asm.words[req.addr] = def.addr
			}
		}
		delete(asm.patch, name)
	}

	type unresolved struct {
		name string
		patchRequest
	}
	var missing []unresolved
	for _, name := range slices.Sorted(maps.Keys(asm.patch)) {
		for _, req := range asm.patch[name] {
			missing = append(missing, unresolved{name: name, patchRequest: req})
		}
	}
	slices.SortStableFunc(missing, func(a, b unresolved) int {
		return a.lineno - b.lineno
	})
	for _, req := range missing {
		asm.failAt(req.lineno, ErrLabelMissing(req.name), f("Define the label '%v', or check its spelling.", req.name))
	}

	if asm.halt < 0 {
		last := max(1, len(asm.lines))
		if len(asm.lines) > 1 && asm.lines[len(asm.lines)-1] == "" {
			last--
		}
		asm.failAt(last, ErrHaltMissing, f("Add \"trap R0,R0,R0\" at the end of the program."))
	}

	slices.Sort(asm.registers)
	asm.registers = slices.Compact(asm.registers)
}
