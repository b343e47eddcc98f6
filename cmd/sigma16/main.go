// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/sigma16/cpu"
	"github.com/ezrec/sigma16/emulator"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sigma16",
	Short: "Sigma16 assembler and interpreter",
	Long: `Sigma16 assembles Sigma16 assembly language into a 16-bit word
memory image, and runs it on an interpreter that can step backwards.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
}

// load assembles a source file into a new emulator.
// Assembly errors are reported to stderr, and returned.
func load(path string) (emu *emulator.Emulator, err error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return
	}

	emu = emulator.NewEmulator()
	emu.Verbose = verbose

	err = emu.Assemble(string(text))
	if err != nil {
		report(path, emu.Program)
	}

	return
}

// report prints the assembly errors of a program, with their resolutions.
func report(path string, prog *cpu.Program) {
	for _, err := range prog.Errors {
		fmt.Fprintf(os.Stderr, "%v: %v\n", path, err)
		if len(err.Resolution) != 0 {
			fmt.Fprintf(os.Stderr, "\t%v\n", err.Resolution)
		}
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
