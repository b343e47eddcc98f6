package cpu

import (
	"iter"
	"regexp"
	"unicode/utf8"
)

type lexRule struct {
	kind TokenKind
	re   *regexp.Regexp
}

func makeLexRule(kind TokenKind, pattern string) (rule lexRule) {
	rule = lexRule{
		kind: kind,
		re:   regexp.MustCompile(`^(?:` + pattern + `)`),
	}
	rule.re.Longest()
	return
}

const (
	lexIdent    = `[A-Za-z][A-Za-z0-9_]*`
	lexRegister = `[Rr][0-9]+`
	lexOperand  = `[^ \t\f\r\n;]+`
)

// lexRules are tried at every position; the longest match wins, and
// earlier rules win ties. Identifier matches are reclassified as
// mnemonics by keyword lookup.
var lexRules = []lexRule{
	makeLexRule(TOKEN_NEWLINE, `\r?\n`),
	makeLexRule(TOKEN_IGNORE, `[ \t\f\r]+`),
	makeLexRule(TOKEN_IGNORE, `;[^\r\n]*`),
	makeLexRule(TOKEN_DATA, `(?:`+lexIdent+`[ \t]+)?data[ \t]+`+lexOperand),
	makeLexRule(TOKEN_JUMP, `jump(?:lt|le|eq|ne|ge|gt)?[ \t]+`+lexOperand),
	makeLexRule(TOKEN_RRR_ARG, lexRegister+`,`+lexRegister+`,`+lexRegister),
	makeLexRule(TOKEN_RR_ARG, lexRegister+`,`+lexRegister),
	makeLexRule(TOKEN_IRX_ARG, lexRegister+`,(?:`+lexIdent+`|[0-9]+|\$[0-9A-Fa-f]+)\[`+lexRegister+`\]`),
	makeLexRule(TOKEN_LABEL, lexIdent),
}

var reUnknown = regexp.MustCompile(`^[^ \t\f\r\n;]+`)

// keywords maps mnemonics to their instruction token and partial encoding.
var keywords = func() map[string]Token {
	kw := map[string]Token{}
	for op := OP_ADD; op <= OP_TRAP; op++ {
		kind := TOKEN_RRR
		if op.Format() == FORMAT_RR {
			kind = TOKEN_RR
		}
		kw[op.String()] = Token{Kind: kind, Word: uint16(op) << 12}
	}
	for op := RX_LEA; op <= RX_TESTSET; op++ {
		if op == RX_JUMP {
			// Only reachable via the jump pseudo-op.
			continue
		}
		kw[op.String()] = Token{Kind: TOKEN_IRX, Word: (uint16(OP_RX) << 12) | uint16(op)}
	}
	for jump := JUMP_ALWAYS; jump <= JUMP_GT; jump++ {
		// A jump mnemonic without a target is a malformed jump.
		kw[jump.String()] = Token{Kind: TOKEN_JUMP}
	}
	return kw
}()

// ErrUnknownToken is a span of source text that is not a token.
type ErrUnknownToken struct {
	Span Span
	Text string
}

func (err ErrUnknownToken) Error() string {
	return f("unknown token '%v' at %v", err.Text, err.Span.String())
}

func (err ErrUnknownToken) Unwrap() error {
	return ErrTokenUnknown
}

// Lex returns the sequence of tokens in the source text.
//
// Unrecognized text is reported as an ErrUnknownToken, after which
// lexing resumes at the next whitespace or comment.
func Lex(source string) iter.Seq2[Token, error] {
	return func(yield func(tok Token, err error) bool) {
		pos := 0
		for pos < len(source) {
			rest := source[pos:]

			best := -1
			length := 0
			for n, rule := range lexRules {
				loc := rule.re.FindStringIndex(rest)
				if loc != nil && loc[1] > length {
					best = n
					length = loc[1]
				}
			}

			if best < 0 {
				length = len(reUnknown.FindString(rest))
				if length == 0 {
					_, length = utf8.DecodeRuneInString(rest)
				}
				span := Span{Start: pos, End: pos + length}
				pos += length
				if !yield(Token{Span: span}, ErrUnknownToken{Span: span, Text: rest[:length]}) {
					return
				}
				continue
			}

			tok := Token{
				Kind: lexRules[best].kind,
				Text: rest[:length],
				Span: Span{Start: pos, End: pos + length},
			}
			if tok.Kind == TOKEN_LABEL {
				kw, ok := keywords[tok.Text]
				if ok {
					tok.Kind = kw.Kind
					tok.Word = kw.Word
				}
			}
			pos += length

			if !yield(tok, nil) {
				return
			}
		}
	}
}
