package lint

import (
	"sort"
	"strings"
)

// Chooser picks which suggestion of a lint to apply. It returns the
// suggestion index, or -1 to leave the lint unfixed.
type Chooser func(l Lint) int

// FirstSuggestion always picks the first suggestion.
func FirstSuggestion(Lint) int { return 0 }

// Apply returns src with the lint's span replaced by suggestion i.
func (l Lint) Apply(src string, i int) (string, bool) {
	if i < 0 || i >= len(l.Suggestions) || !validSpan(src, l) {
		return src, false
	}
	start, end := l.Span.Start.Offset, l.Span.End.Offset
	return src[:start] + l.Suggestions[i].Text + src[end:], true
}

// ApplyFixes rewrites src by applying one suggestion per lint.
// Lints are applied in document order; a lint overlapping an already applied
// one is skipped. It returns the new text and the number of fixes applied.
func ApplyFixes(src string, lints []Lint, choose Chooser) (string, int) {
	if choose == nil {
		choose = FirstSuggestion
	}

	ordered := make([]Lint, len(lints))
	copy(ordered, lints)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Span.Start.Offset < ordered[j].Span.Start.Offset
	})

	var b strings.Builder
	b.Grow(len(src))

	cursor, applied := 0, 0
	for _, l := range ordered {
		if !validSpan(src, l) || l.Span.Start.Offset < cursor {
			continue
		}
		i := choose(l)
		if i < 0 || i >= len(l.Suggestions) {
			continue
		}
		b.WriteString(src[cursor:l.Span.Start.Offset])
		b.WriteString(l.Suggestions[i].Text)
		cursor = l.Span.End.Offset
		applied++
	}
	b.WriteString(src[cursor:])
	return b.String(), applied
}

func validSpan(src string, l Lint) bool {
	start, end := l.Span.Start.Offset, l.Span.End.Offset
	return start >= 0 && start <= end && end <= len(src)
}
