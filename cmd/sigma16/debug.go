package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/sigma16/emulator"
)

var (
	debugHistory int
	debugInput   string
	debugOutput  string
)

const debugHelp = `Commands:
  s [n]        step n instructions (default 1)
  b [n]        step back n instructions (default 1)
  r [n]        run, at most n instructions
  u expr       run until the starlark condition holds
  w name       watch a register (R3), symbol, or address ($hhhh)
  p            print the machine state
  l            print the source line at the program counter
  reset        reset the machine
  q            quit
`

var debugCmd = &cobra.Command{
	Use:   "debug sourceFile",
	Short: "Interactively step a source file forwards and backwards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		emu, err := load(args[0])
		if err != nil {
			return
		}
		emu.History.Limit = debugHistory

		closer, err := attachTape(emu, debugInput, debugOutput)
		if err != nil {
			return
		}
		defer closer()

		prompt := ""
		if term.IsTerminal(int(os.Stdin.Fd())) {
			prompt = "(sigma16) "
		}

		dbg := &debugger{emu: emu, out: cmd.OutOrStdout()}
		err = dbg.loop(os.Stdin, prompt)

		return
	},
}

// debugger is the interactive step/back session.
type debugger struct {
	emu *emulator.Emulator
	out io.Writer
}

func (dbg *debugger) loop(in io.Reader, prompt string) (err error) {
	scanner := bufio.NewScanner(in)

	dbg.where()
	for {
		fmt.Fprint(dbg.out, prompt)
		if !scanner.Scan() {
			err = scanner.Err()
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "q" || fields[0] == "quit" {
			return
		}

		dbg.command(fields[0], fields[1:])
	}
}

// count parses an optional repeat count.
func count(args []string, otherwise int) int {
	if len(args) == 0 {
		return otherwise
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return otherwise
	}
	return n
}

func (dbg *debugger) command(name string, args []string) {
	emu := dbg.emu

	switch name {
	case "s", "step":
		for range count(args, 1) {
			err := emu.Step()
			if err != nil {
				fmt.Fprintf(dbg.out, "%v\n", err)
				break
			}
		}
		dbg.monitored()
		dbg.where()
	case "b", "back":
		for range count(args, 1) {
			if !emu.Back() {
				fmt.Fprintln(dbg.out, "at the start of history")
				break
			}
		}
		dbg.where()
	case "r", "run":
		steps, err := emu.Run(count(args, 0))
		dbg.report(steps, err)
	case "u", "until":
		cond, err := emulator.ParseCondition(strings.Join(args, " "))
		if err != nil {
			fmt.Fprintf(dbg.out, "%v\n", err)
			return
		}
		steps, _, err := emu.RunUntil(cond, 0)
		dbg.report(steps, err)
	case "w", "watch":
		for _, arg := range args {
			dbg.watch(arg)
		}
	case "p", "print":
		fmt.Fprint(dbg.out, emu.Cpu.String())
	case "l", "line":
		dbg.where()
	case "reset":
		emu.Reset()
		dbg.where()
	default:
		fmt.Fprint(dbg.out, debugHelp)
	}
}

func (dbg *debugger) report(steps int, err error) {
	if err != nil {
		fmt.Fprintf(dbg.out, "%v\n", err)
	}
	fmt.Fprintf(dbg.out, "%v after %d steps\n", dbg.emu.Cpu.State, steps)
	dbg.where()
}

// watch adds a register, address or symbol to the monitor.
func (dbg *debugger) watch(name string) {
	emu := dbg.emu

	switch {
	case len(name) > 1 && (name[0] == 'R' || name[0] == 'r'):
		n, err := strconv.ParseUint(name[1:], 10, 4)
		if err == nil {
			emu.Watches.WatchRegister(uint8(n))
			emu.Cpu.Monitor.WatchRegister(uint8(n))
			return
		}
	case strings.HasPrefix(name, "$"):
		addr, err := strconv.ParseUint(name[1:], 16, 16)
		if err == nil {
			emu.Watches.WatchAddress(uint16(addr))
			emu.Cpu.Monitor.WatchAddress(uint16(addr))
			return
		}
	}

	if _, ok := emu.Program.Symbols[name]; !ok {
		fmt.Fprintf(dbg.out, "%v: unknown symbol\n", name)
		return
	}
	emu.Watches.WatchSymbol(name)
	emu.Cpu.Monitor.WatchSymbol(name)
}

// monitored prints the watched items altered by the last step.
func (dbg *debugger) monitored() {
	for w := range dbg.emu.Cpu.Monitored() {
		fmt.Fprintf(dbg.out, "  %v\n", w)
	}
}

// where prints the program counter, its source line and instruction.
func (dbg *debugger) where() {
	emu := dbg.emu
	pc := emu.Cpu.Pc.Peek()
	line := ""
	if src, ok := emu.Program.Debug(pc); ok {
		line = fmt.Sprintf("%d: %v", src.LineNo, strings.TrimSpace(src.Line))
	}
	fmt.Fprintf(dbg.out, "%04x [%v] %v ; %v\n", pc, emu.Cpu.State, emu.Code(), line)
}

func init() {
	debugCmd.Flags().IntVar(&debugHistory, "history", 0, "Steps of history to keep; 0 is unlimited")
	debugCmd.Flags().StringVarP(&debugInput, "input", "i", "", "Tape input")
	debugCmd.Flags().StringVarP(&debugOutput, "output", "o", "-", "Tape output")
	rootCmd.AddCommand(debugCmd)
}
