package cpu

import (
	"errors"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Program is an assembled memory image, with its symbol table, the
// source line of every word, and the assembly errors.
type Program struct {
	Source    string            // Source text.
	Words     []uint16          // Memory image, loaded at address 0.
	Symbols   map[string]uint16 // Label addresses.
	Lines     map[uint16]int    // Source line of each word.
	Code      []uint16          // Addresses of the instructions.
	Registers []int             // Registers referenced by the program.
	Halt      int               // Address of the first halt instruction, or -1.
	Errors    []*ErrSyntax      // Assembly errors, in source order.
}

// Debug locates the source of a memory word.
type Debug struct {
	Addr   uint16
	LineNo int
	Line   string
}

// Valid returns true if the program assembled without errors.
func (prog *Program) Valid() bool {
	return len(prog.Errors) == 0
}

// Err returns all of the assembly errors joined, or nil.
func (prog *Program) Err() error {
	errs := make([]error, len(prog.Errors))
	for n, err := range prog.Errors {
		errs[n] = err
	}
	return errors.Join(errs...)
}

// SourceLine returns the text of a 1-based source line.
func (prog *Program) SourceLine(lineno int) string {
	lines := strings.Split(prog.Source, "\n")
	if lineno < 1 || lineno > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[lineno-1], "\r")
}

// LineCount returns the number of source lines.
func (prog *Program) LineCount() int {
	if len(prog.Source) == 0 {
		return 0
	}
	return len(strings.Split(strings.TrimSuffix(prog.Source, "\n"), "\n"))
}

// Debug returns the source line that generated the word at addr.
func (prog *Program) Debug(addr uint16) (dbg Debug, ok bool) {
	lineno, ok := prog.Lines[addr]
	if !ok {
		return
	}

	dbg = Debug{
		Addr:   addr,
		LineNo: lineno,
		Line:   prog.SourceLine(lineno),
	}

	return
}

// Codes returns the instructions of the program, by address.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for _, addr := range prog.Code {
			code := Code{Word: prog.Words[addr]}
			if code.Op() == OP_RX && int(addr)+1 < len(prog.Words) {
				code.Disp = prog.Words[addr+1]
			}
			if !yield(addr, code) {
				return
			}
		}
	}
}

// Labels returns the symbol names, sorted by address then name.
func (prog *Program) Labels() []string {
	names := slices.Collect(maps.Keys(prog.Symbols))
	slices.SortFunc(names, func(a, b string) int {
		if prog.Symbols[a] != prog.Symbols[b] {
			return int(prog.Symbols[a]) - int(prog.Symbols[b])
		}
		return strings.Compare(a, b)
	})
	return names
}
