// Package lexer tokenizes prose into the positioned token stream used by the
// phrase linter.
//
// Word boundaries follow Unicode UAX #29, so contractions and possessives
// ("client's", "look’s") stay single words while hyphens split compounds
// ("worse-case" is WORD PUNCT WORD). Horizontal whitespace is dropped.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/leapstack-labs/phraselint/pkg/token"
)

// Lexer tokenizes prose input.
type Lexer struct {
	input string
	rest  string // unconsumed input
	state int    // uniseg word-boundary state
	pos   token.Position

	// KeepNewlines controls whether line breaks are emitted as Newline tokens.
	// Matching treats Newline like any other non-word token.
	KeepNewlines bool
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		rest:  input,
		state: -1,
		pos:   token.Position{Line: 1, Column: 1},
	}
}

// NextToken returns the next token. At end of input it returns an EOF token
// positioned after the last byte.
func (l *Lexer) NextToken() token.Token {
	for l.rest != "" {
		var seg string
		seg, l.rest, l.state = uniseg.FirstWordInString(l.rest, l.state)

		start := l.pos
		l.advance(seg)
		kind := classify(seg)

		if kind == token.EOF {
			// whitespace segment
			continue
		}
		if kind == token.Newline && !l.KeepNewlines {
			continue
		}
		return token.Token{
			Kind: kind,
			Text: seg,
			Span: token.Span{Start: start, End: l.pos},
		}
	}
	return token.Token{Kind: token.EOF, Span: token.Span{Start: l.pos, End: l.pos}}
}

// Tokens consumes the rest of the input and returns every non-EOF token.
func (l *Lexer) Tokens() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Tokenize is a convenience wrapper returning all tokens of input, newlines dropped.
func Tokenize(input string) []token.Token {
	return NewLexer(input).Tokens()
}

// advance moves the current position past seg.
func (l *Lexer) advance(seg string) {
	for _, r := range seg {
		l.pos.Offset += utf8.RuneLen(r)
		if r == '\n' {
			l.pos.Line++
			l.pos.Column = 1
			continue
		}
		l.pos.Column++
	}
}

// classify returns the token kind for a word-boundary segment.
// Pure whitespace without a line break yields EOF, which callers skip.
func classify(seg string) token.Kind {
	if strings.TrimFunc(seg, unicode.IsSpace) == "" {
		if strings.ContainsAny(seg, "\n\r\u2028\u2029") {
			return token.Newline
		}
		return token.EOF
	}
	for _, r := range seg {
		if unicode.IsLetter(r) {
			return token.Word
		}
	}
	r, _ := utf8.DecodeRuneInString(seg)
	if unicode.IsDigit(r) {
		return token.Number
	}
	return token.Punct
}
