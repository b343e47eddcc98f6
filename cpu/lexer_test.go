package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lexKinds(source string) (kinds []TokenKind, errs []error) {
	for tok, err := range Lex(source) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		kinds = append(kinds, tok.Kind)
	}
	return
}

func TestLex(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		kinds  []TokenKind
	}){
		{"", nil},
		{" lea R1,1[R0]\n", []TokenKind{TOKEN_IGNORE, TOKEN_IRX, TOKEN_IGNORE, TOKEN_IRX_ARG, TOKEN_NEWLINE}},
		{"add R1,R2,R3", []TokenKind{TOKEN_RRR, TOKEN_IGNORE, TOKEN_RRR_ARG}},
		{"cmp R1,R2", []TokenKind{TOKEN_RR, TOKEN_IGNORE, TOKEN_RR_ARG}},
		{"loop data 0", []TokenKind{TOKEN_DATA}},
		{"data $00ff", []TokenKind{TOKEN_DATA}},
		{"loop\n", []TokenKind{TOKEN_LABEL, TOKEN_NEWLINE}},
		{"loop trap R0,R0,R0 ; halt", []TokenKind{TOKEN_LABEL, TOKEN_IGNORE, TOKEN_RRR, TOKEN_IGNORE, TOKEN_RRR_ARG, TOKEN_IGNORE, TOKEN_IGNORE}},
		{"jumpeq done[R2]", []TokenKind{TOKEN_JUMP}},
		{"jump $0010", []TokenKind{TOKEN_JUMP}},
		{"jump", []TokenKind{TOKEN_JUMP}},
		{"load R1,x[R2]\r\n", []TokenKind{TOKEN_IRX, TOKEN_IGNORE, TOKEN_IRX_ARG, TOKEN_NEWLINE}},
		{"store R1,$0010[R0]", []TokenKind{TOKEN_IRX, TOKEN_IGNORE, TOKEN_IRX_ARG}},
		{"jumper", []TokenKind{TOKEN_LABEL}},
		{"address", []TokenKind{TOKEN_LABEL}},
	}

	for _, entry := range table {
		kinds, errs := lexKinds(entry.source)
		assert.Empty(errs, entry.source)
		assert.Equal(entry.kinds, kinds, entry.source)
	}
}

func TestLex_Token(t *testing.T) {
	assert := assert.New(t)

	var toks []Token
	for tok, err := range Lex("x lea R1,x[R0]") {
		assert.NoError(err)
		toks = append(toks, tok)
	}

	assert.Equal([]Token{
		{Kind: TOKEN_LABEL, Text: "x", Span: Span{0, 1}},
		{Kind: TOKEN_IGNORE, Text: " ", Span: Span{1, 2}},
		{Kind: TOKEN_IRX, Text: "lea", Word: 0xf000, Span: Span{2, 5}},
		{Kind: TOKEN_IGNORE, Text: " ", Span: Span{5, 6}},
		{Kind: TOKEN_IRX_ARG, Text: "R1,x[R0]", Span: Span{6, 14}},
	}, toks)
}

func TestLex_Keywords(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		mnemonic string
		kind     TokenKind
		word     uint16
	}){
		{"add", TOKEN_RRR, 0x0000},
		{"sub", TOKEN_RRR, 0x1000},
		{"mul", TOKEN_RRR, 0x2000},
		{"div", TOKEN_RRR, 0x3000},
		{"cmp", TOKEN_RR, 0x4000},
		{"addc", TOKEN_RRR, 0x5000},
		{"muln", TOKEN_RRR, 0x6000},
		{"divn", TOKEN_RRR, 0x7000},
		{"trap", TOKEN_RRR, 0xc000},
		{"lea", TOKEN_IRX, 0xf000},
		{"load", TOKEN_IRX, 0xf001},
		{"store", TOKEN_IRX, 0xf002},
		{"jal", TOKEN_IRX, 0xf006},
		{"testset", TOKEN_IRX, 0xf009},
	}

	for _, entry := range table {
		for tok, err := range Lex(entry.mnemonic) {
			assert.NoError(err)
			assert.Equal(entry.kind, tok.Kind, entry.mnemonic)
			assert.Equal(entry.word, tok.Word, entry.mnemonic)
		}
	}
}

func TestLex_Unknown(t *testing.T) {
	assert := assert.New(t)

	var kinds []TokenKind
	var errs []error
	for tok, err := range Lex("add # R1") {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		kinds = append(kinds, tok.Kind)
	}

	assert.Equal([]TokenKind{TOKEN_RRR, TOKEN_IGNORE, TOKEN_IGNORE, TOKEN_LABEL}, kinds)
	assert.Len(errs, 1)
	assert.ErrorIs(errs[0], ErrTokenUnknown)

	var unknown ErrUnknownToken
	assert.ErrorAs(errs[0], &unknown)
	assert.Equal(Span{4, 5}, unknown.Span)
	assert.Equal("#", unknown.Text)
}

func TestLex_EarlyStop(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for range Lex("a\nb\nc\nd\n") {
		count++
		if count == 3 {
			break
		}
	}

	assert.Equal(3, count)
}
