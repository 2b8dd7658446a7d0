package output

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatHeader returns a markdown heading.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown list item with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

// FormatCodeBlock returns a fenced markdown code block.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```"
}

// Underline returns carets aligned under the 1-based rune columns
// [startCol, endCol) of line when both are printed in a monospace terminal.
// Wide runes take two cells; tabs are kept so alignment survives.
func Underline(line string, startCol, endCol int) string {
	pad, marks := underlineParts(line, startCol, endCol)
	return pad + marks
}

func underlineParts(line string, startCol, endCol int) (string, string) {
	if startCol < 1 {
		startCol = 1
	}
	var pad strings.Builder
	width := 0
	col := 1
	for _, r := range line {
		switch {
		case col < startCol:
			if r == '\t' {
				pad.WriteByte('\t')
			} else {
				pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
			}
		case col < endCol:
			if r == '\t' {
				width += 4
			} else {
				width += runewidth.RuneWidth(r)
			}
		}
		col++
	}
	if width < 1 {
		width = 1
	}
	return pad.String(), strings.Repeat("^", width)
}
