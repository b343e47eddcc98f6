package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/sigma16/cpu"
)

var asmCmd = &cobra.Command{
	Use:   "asm sourceFile",
	Short: "Assemble a source file and print its listing",
	Long: `Asm assembles a Sigma16 source file, reporting every error found
with a suggested resolution. Without errors, the listing of addresses,
words and source lines is printed, followed by the symbol table.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		inf, err := os.Open(args[0])
		if err != nil {
			return
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err := asm.Parse(inf)
		if err != nil {
			return
		}

		if !prog.Valid() {
			report(args[0], prog)
			return prog.Err()
		}

		out := cmd.OutOrStdout()
		for addr, word := range prog.Words {
			line := ""
			if dbg, ok := prog.Debug(uint16(addr)); ok {
				line = dbg.Line
			}
			fmt.Fprintf(out, "%04x %04x  %v\n", addr, word, line)
		}
		for _, name := range prog.Labels() {
			fmt.Fprintf(out, "%-12v %04x\n", name, prog.Symbols[name])
		}

		return
	},
}

func init() {
	rootCmd.AddCommand(asmCmd)
}
