package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/sigma16/emulator"
)

var (
	runUntil  string
	runLimit  int
	runInput  string
	runOutput string
)

var runCmd = &cobra.Command{
	Use:   "run sourceFile",
	Short: "Assemble and run a source file",
	Long: `Run assembles a Sigma16 source file and runs it until it halts,
faults, reaches the step limit, or the --until condition holds.

The condition is a starlark expression over R0..R15, PC, FLAGS, STATE,
the program symbols, and mem(addr).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var cond *emulator.Condition
		if len(runUntil) != 0 {
			cond, err = emulator.ParseCondition(runUntil)
			if err != nil {
				return
			}
		}

		emu, err := load(args[0])
		if err != nil {
			return
		}

		closer, err := attachTape(emu, runInput, runOutput)
		if err != nil {
			return
		}
		defer closer()

		steps, hit, err := emu.RunUntil(cond, runLimit)
		if verbose || err != nil || hit {
			fmt.Fprint(cmd.ErrOrStderr(), emu.Cpu.String())
		}
		if err != nil {
			return
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%v after %d steps\n", emu.Cpu.State, steps)

		return
	},
}

// attachTape connects the tape port to files, '-' being stdin or stdout.
func attachTape(emu *emulator.Emulator, input, output string) (closer func(), err error) {
	var files []*os.File
	closer = func() {
		for _, file := range files {
			file.Close()
		}
	}

	switch input {
	case "":
	case "-":
		emu.Tape.Input = os.Stdin
	default:
		var inf *os.File
		inf, err = os.Open(input)
		if err != nil {
			return
		}
		files = append(files, inf)
		emu.Tape.Input = inf
	}

	switch output {
	case "":
	case "-":
		emu.Tape.Output = os.Stdout
	default:
		var ouf *os.File
		ouf, err = os.Create(output)
		if err != nil {
			closer()
			return
		}
		files = append(files, ouf)
		emu.Tape.Output = ouf
	}

	return
}

func init() {
	runCmd.Flags().StringVarP(&runUntil, "until", "u", "", "Stop when this condition holds")
	runCmd.Flags().IntVarP(&runLimit, "limit", "n", 1000000, "Maximum steps to run; 0 is unlimited")
	runCmd.Flags().StringVarP(&runInput, "input", "i", "-", "Tape input")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "-", "Tape output")
	rootCmd.AddCommand(runCmd)
}
