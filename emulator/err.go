package emulator

import (
	"errors"

	"github.com/ezrec/sigma16/translate"
)

var f = translate.From

var (
	ErrConditionInvalid = errors.New(f("condition has no value"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrCondition is a condition expression that failed to parse or evaluate.
type ErrCondition struct {
	Expr string
	Err  error
}

func (err *ErrCondition) Error() string {
	return f("condition '%v': %v", err.Expr, err.Err)
}

func (err *ErrCondition) Unwrap() error {
	return err.Err
}

// ErrAddressRange is a memory address outside of the machine.
type ErrAddressRange int

func (err ErrAddressRange) Error() string {
	return f("address %d out of range", int(err))
}
