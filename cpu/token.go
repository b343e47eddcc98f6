package cpu

import (
	"fmt"
)

// TokenKind is the lexical class of a token.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TOKEN_IGNORE  = TokenKind(0)  // ignore
	TOKEN_LABEL   = TokenKind(1)  // label
	TOKEN_RRR     = TokenKind(2)  // rrr
	TOKEN_RR      = TokenKind(3)  // rr
	TOKEN_IRX     = TokenKind(4)  // irx
	TOKEN_RRR_ARG = TokenKind(5)  // rrr-arg
	TOKEN_RR_ARG  = TokenKind(6)  // rr-arg
	TOKEN_IRX_ARG = TokenKind(7)  // irx-arg
	TOKEN_DATA    = TokenKind(8)  // data
	TOKEN_JUMP    = TokenKind(9)  // jump
	TOKEN_NEWLINE = TokenKind(10) // newline
)

// IsInstruction returns true for the tokens that open an instruction
// and must be followed by their matching argument token.
func (kind TokenKind) IsInstruction() bool {
	return kind == TOKEN_RRR || kind == TOKEN_RR || kind == TOKEN_IRX
}

// Argument returns the argument token kind that completes an instruction
// token kind.
func (kind TokenKind) Argument() (arg TokenKind, ok bool) {
	switch kind {
	case TOKEN_RRR:
		return TOKEN_RRR_ARG, true
	case TOKEN_RR:
		return TOKEN_RR_ARG, true
	case TOKEN_IRX:
		return TOKEN_IRX_ARG, true
	}
	return
}

// Span is a byte range [Start, End) of the source text.
type Span struct {
	Start int
	End   int
}

func (span Span) String() string {
	return fmt.Sprintf("%d..%d", span.Start, span.End)
}

// Token is a lexical token of the assembly language.
type Token struct {
	Kind TokenKind
	Text string // Source text of the token.
	Word uint16 // Partial encoding, for instruction tokens.
	Span Span
}

func (tok Token) String() string {
	switch tok.Kind {
	case TOKEN_IGNORE, TOKEN_NEWLINE:
		return tok.Kind.String()
	case TOKEN_RRR, TOKEN_RR, TOKEN_IRX:
		return fmt.Sprintf("%v(%v %#04x)", tok.Kind, tok.Text, tok.Word)
	}
	return fmt.Sprintf("%v(%v)", tok.Kind, tok.Text)
}
