// Package cpu implements the assembler and interpreter for the Sigma16
// instructional computer.
//
// The machine has a 16-bit program counter, sixteen 16-bit registers (R0
// always zero, R15 the condition flags), and 65536 words of memory.
// Instructions are one word (RRR and RR formats) or two words (RX format,
// the second word being a displacement).
//
// The assembler is a single pass over the lexer's token stream, collecting
// every error with its source line and a suggested resolution, and
// backpatching forward label references at the end of the pass.
package cpu
