// Package token defines the positioned token stream consumed by the phrase linter.
//
// Tokens are produced by an external tokenizer (pkg/lexer is the reference one).
// Whitespace never appears in the stream; everything else does, so punctuation
// between two words keeps them from being adjacent for matching purposes.
package token

import "fmt"

// Kind represents the lexical class of a token.
type Kind int

const (
	// EOF marks the end of input. Lexers may omit it from token slices.
	EOF Kind = iota
	// Word is a run of letters, possibly with internal apostrophes ("client's").
	Word
	// Number is a run of digits, possibly with internal separators ("3.14").
	Number
	// Punct is any other non-space segment: hyphens, commas, quotes, emoji.
	Punct
	// Newline marks a line break. Kept so paragraph boundaries stay visible.
	Newline
)

// kindNames maps token kinds to their string representations.
var kindNames = map[Kind]string{
	EOF:     "EOF",
	Word:    "WORD",
	Number:  "NUMBER",
	Punct:   "PUNCT",
	Newline: "NEWLINE",
}

// String returns a human-readable representation of the token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", k)
}

// IsWordLike returns true for tokens that carry lexical content.
func (k Kind) IsWordLike() bool {
	return k == Word || k == Number
}

// Token represents a lexical token with position information.
type Token struct {
	Kind Kind
	Text string // source text, unmodified
	Span Span
}

// String implements fmt.Stringer for debugging output.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Span.Start.Line, t.Span.Start.Column)
}

// SpanOf returns the span covering tokens[start:end].
// It returns the zero Span when the range is empty or out of bounds.
func SpanOf(tokens []Token, start, end int) Span {
	if start < 0 || end > len(tokens) || start >= end {
		return Span{}
	}
	return Span{
		Start: tokens[start].Span.Start,
		End:   tokens[end-1].Span.End,
	}
}
