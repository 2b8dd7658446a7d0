// Package phrase defines the atomic pattern unit of the phrase linter: a short,
// fixed sequence of normalized tokens compared case-insensitively and only on
// exact token boundaries.
package phrase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/phraselint/pkg/lexer"
	"github.com/leapstack-labs/phraselint/pkg/token"
)

// MaxWords is the maximum number of word tokens in a phrase.
// Internal punctuation (hyphens, apostrophes split by the lexer) does not count.
const MaxWords = 5

var (
	// ErrEmpty is returned for phrases without any word.
	ErrEmpty = errors.New("phrase has no words")
	// ErrTooLong is returned for phrases with more than MaxWords words.
	ErrTooLong = errors.New("phrase has too many words")
)

// Phrase is an immutable, ordered sequence of folded tokens.
type Phrase struct {
	text  string   // authored text, verbatim
	parts []string // folded token texts, punctuation included
	words int      // number of word-like tokens in parts
}

// Parse tokenizes text and returns the corresponding phrase.
func Parse(text string) (Phrase, error) {
	toks := lexer.Tokenize(text)
	p := Phrase{text: text, parts: make([]string, 0, len(toks))}
	for _, tok := range toks {
		p.parts = append(p.parts, Fold(tok.Text))
		if tok.Kind.IsWordLike() {
			p.words++
		}
	}
	switch {
	case p.words == 0:
		return Phrase{}, fmt.Errorf("%q: %w", text, ErrEmpty)
	case p.words > MaxWords:
		return Phrase{}, fmt.Errorf("%q: %w (%d > %d)", text, ErrTooLong, p.words, MaxWords)
	}
	return p, nil
}

// MustParse is like Parse but panics on error. Intended for literal rule tables.
func MustParse(text string) Phrase {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseAll parses every text, stopping at the first error.
func ParseAll(texts ...string) ([]Phrase, error) {
	out := make([]Phrase, 0, len(texts))
	for _, t := range texts {
		p, err := Parse(t)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// String returns the authored text.
func (p Phrase) String() string { return p.text }

// Len returns the number of tokens the phrase spans in a token stream.
func (p Phrase) Len() int { return len(p.parts) }

// Words returns the number of word-like tokens.
func (p Phrase) Words() int { return p.words }

// IsZero reports whether p is the zero Phrase.
func (p Phrase) IsZero() bool { return len(p.parts) == 0 }

// Head returns the folded first token.
func (p Phrase) Head() string {
	if len(p.parts) == 0 {
		return ""
	}
	return p.parts[0]
}

// Parts returns a copy of the folded tokens.
func (p Phrase) Parts() []string {
	out := make([]string, len(p.parts))
	copy(out, p.parts)
	return out
}

// Key returns a canonical folded form, usable as a map key.
func (p Phrase) Key() string {
	return strings.Join(p.parts, " ")
}

// Equal reports whether two phrases match the same token sequences.
func (p Phrase) Equal(other Phrase) bool {
	if len(p.parts) != len(other.parts) {
		return false
	}
	for i := range p.parts {
		if p.parts[i] != other.parts[i] {
			return false
		}
	}
	return true
}

// MatchAt reports whether the phrase occurs in tokens starting at index i.
// Comparison uses Fold on each token; no partial-token matches are possible.
func (p Phrase) MatchAt(tokens []token.Token, i int) bool {
	if i < 0 || i+len(p.parts) > len(tokens) || len(p.parts) == 0 {
		return false
	}
	for j, part := range p.parts {
		if Fold(tokens[i+j].Text) != part {
			return false
		}
	}
	return true
}
