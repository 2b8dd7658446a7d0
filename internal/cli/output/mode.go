// Package output renders command results for terminals, pipes and tools.
//
// A Renderer resolves ModeAuto once at construction: styled text on a TTY,
// markdown everywhere else. JSON and YAML are always plain.
package output

import (
	"fmt"
	"strings"
)

// Mode selects how a Renderer formats output.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// Modes lists every accepted mode.
var Modes = []Mode{ModeAuto, ModeText, ModeMarkdown, ModeJSON, ModeYAML}

// ParseMode converts a flag or config value into a Mode. The empty string is auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case "md":
		return ModeMarkdown, nil
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON, ModeYAML:
		return m, nil
	default:
		return ModeAuto, fmt.Errorf("unknown output format: %s", s)
	}
}

// IsStructured reports whether the mode is machine-readable.
func (m Mode) IsStructured() bool {
	return m == ModeJSON || m == ModeYAML
}
