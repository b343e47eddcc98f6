package emulator

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/sigma16/cpu"
)

// Condition is a starlark expression over the machine state, used to stop
// a run.
//
// The expression sees R0 to R15, PC, FLAGS and STATE, every program symbol
// bound to its address, and a mem(addr) builtin returning a memory word.
type Condition struct {
	Expr string
}

func (cond *Condition) program() string {
	return "rc=" + cond.Expr + "\n"
}

// ParseCondition checks the syntax of a condition expression.
func ParseCondition(expr string) (cond *Condition, err error) {
	cond = &Condition{Expr: expr}

	opts := syntax.FileOptions{}
	_, err = opts.Parse("condition", cond.program(), 0)
	if err != nil {
		cond = nil
		err = &ErrCondition{Expr: expr, Err: err}
		return
	}

	return
}

// predeclared returns the starlark bindings for the machine state.
func predeclared(cp *cpu.Cpu) (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	for name, addr := range cp.Symbols {
		pred[name] = starlark.MakeInt(int(addr))
	}

	for n := range cp.Register {
		pred[fmt.Sprintf("R%d", n)] = starlark.MakeInt(int(cp.Register[n].Peek()))
	}
	pred["PC"] = starlark.MakeInt(int(cp.Pc.Peek()))
	pred["FLAGS"] = starlark.MakeInt(int(cp.Register[cpu.REG_FLAGS].Peek()))
	pred["STATE"] = starlark.String(cp.State.String())

	pred["mem"] = starlark.NewBuiltin("mem", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var addr int
		err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &addr)
		if err != nil {
			return nil, err
		}
		if addr < 0 || addr >= cpu.MEMORY_SIZE {
			return nil, ErrAddressRange(addr)
		}
		return starlark.MakeInt(int(cp.Memory.Peek(uint16(addr)))), nil
	})

	return
}

// Eval evaluates the condition against the machine state.
func (cond *Condition) Eval(cp *cpu.Cpu) (ok bool, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	dict, err := starlark.ExecFileOptions(&opts, &thread, "condition", cond.program(), predeclared(cp))
	if err != nil {
		err = &ErrCondition{Expr: cond.Expr, Err: err}
		return
	}

	rc, found := dict["rc"]
	if !found {
		err = &ErrCondition{Expr: cond.Expr, Err: ErrConditionInvalid}
		return
	}

	ok = bool(rc.Truth())

	return
}
