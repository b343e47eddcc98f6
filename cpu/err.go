package cpu

import (
	"errors"

	"github.com/ezrec/sigma16/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrNotRunnable    = errors.New(f("not runnable"))
	ErrDivideByZero   = errors.New(f("divide by zero"))
	ErrOpcodeDecode   = errors.New(f("decode"))
	ErrOpcodeRx       = errors.New(f("rx"))
	ErrOpcodeJump     = errors.New(f("jump condition"))
	ErrOpcodeReserved = errors.New(f("reserved"))

	// Assembler errors
	ErrLabelMisplaced          = errors.New(f("labels need to be on a new line"))
	ErrArgumentMismatch        = errors.New(f("instruction and arguments do not match"))
	ErrInstructionNotOnNewLine = errors.New(f("instruction not on a new line"))
	ErrLabelUnresolved         = errors.New(f("label not defined"))
	ErrLabelDuplicate          = errors.New(f("label duplicated"))
	ErrJumpMalformed           = errors.New(f("jump instruction malformed"))
	ErrTokenUnknown            = errors.New(f("unknown token"))
	ErrHaltMissing             = errors.New(f("no trap instruction, program will never terminate when run"))
	ErrOperandInvalid          = errors.New(f("operand invalid"))
	ErrRegisterInvalid         = errors.New(f("register invalid"))
	ErrNumberInvalid           = errors.New(f("number invalid"))
	ErrDataMalformed           = errors.New(f("data directive malformed"))
	ErrProgramTooLarge         = errors.New(f("program larger than memory"))
)

// ErrLabelMissing is a reference to a label that is never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Unwrap() error {
	return ErrLabelUnresolved
}

// ErrOpcode is an instruction that could not be executed.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", eo.Word, Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrSyntax is an assembly error, located at a source line.
type ErrSyntax struct {
	LineNo     int    // 1-based source line.
	Line       string // Source text of the line.
	Err        error
	Resolution string // Suggested fix.
}

func (err *ErrSyntax) Error() string {
	if err.LineNo == 0 {
		return err.Err.Error()
	}
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrParseNumber is an operand that is not a valid literal.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Unwrap() []error {
	return []error{ErrNumberInvalid, ErrOperandInvalid}
}

// ErrParseRegister is an operand that is not a valid register.
type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

func (err ErrParseRegister) Unwrap() []error {
	return []error{ErrRegisterInvalid, ErrOperandInvalid}
}

// ErrLabelReserved is a label spelled as an instruction mnemonic.
type ErrLabelReserved string

func (err ErrLabelReserved) Error() string {
	return f("'%v' is reserved", string(err))
}

func (err ErrLabelReserved) Unwrap() []error {
	return []error{ErrOperandInvalid}
}
