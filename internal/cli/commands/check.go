package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/phraselint/internal/cli/output"
	"github.com/leapstack-labs/phraselint/pkg/lint"
	"github.com/spf13/cobra"
)

const (
	checkPrompt      = "phraselint> "
	checkHistoryFile = "check_history"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format string
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [text...]",
		Short: "Check sentences interactively",
		Long: `Check a sentence for misused phrases.

With arguments, the joined text is checked once. Without arguments an
interactive prompt starts: type a sentence to see its lints and the
corrected text. Dot-commands toggle rules for the session.`,
		Example: `  # Check one sentence
  phraselint check "It is a mute point."

  # Start the interactive prompt
  phraselint check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if err := cmdCtx.WithFormat(cmd, opts.Format); err != nil {
				return err
			}
			s := &checkSession{group: cmdCtx.Group, r: cmdCtx.Renderer}

			if len(args) > 0 {
				if n := s.check(strings.Join(args, " ")); n > 0 {
					return ErrLintIssues
				}
				return nil
			}
			return runCheckREPL(cmd, s, historyPath(cmdCtx.Cfg.CachePath()))
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

// historyPath places the history next to the cache database when that
// directory exists.
func historyPath(cachePath string) string {
	dir := filepath.Dir(cachePath)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return ""
	}
	return filepath.Join(dir, checkHistoryFile)
}

func runCheckREPL(cmd *cobra.Command, s *checkSession, historyFile string) error {
	var stdin io.ReadCloser
	if in := cmd.InOrStdin(); in != os.Stdin {
		stdin = io.NopCloser(in)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          checkPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newRuleCompleter(s.group.Names()),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           stdin,
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.r.Printf("phraselint check (%d rules enabled)\n", len(s.group.EnabledNames()))
	s.r.Println("Type a sentence to check it, .help for commands, .quit to exit")
	s.r.Println("")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if s.handleLine(line) {
			break
		}
	}
	return nil
}

// checkSession lints lines against a group whose rules can be toggled.
type checkSession struct {
	group *lint.Group
	r     *output.Renderer
}

// handleLine runs a dot-command or checks the line. It reports whether the
// session should end.
func (s *checkSession) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return s.handleDotCommand(line)
	}
	s.check(line)
	s.r.Println("")
	return false
}

// CheckOutput is the structured result of checking one text.
type CheckOutput struct {
	Text  string                  `json:"text" yaml:"text"`
	Fixed string                  `json:"fixed" yaml:"fixed"`
	Lints []output.LintDiagnostic `json:"lints" yaml:"lints"`
}

// check lints text, renders the result and returns the number of lints.
func (s *checkSession) check(text string) int {
	lints := s.group.LintText(text)
	fixed, _ := lint.ApplyFixes(text, lints, nil)

	if s.r.EffectiveMode().IsStructured() {
		if _, err := s.r.Structured(CheckOutput{Text: text, Fixed: fixed, Lints: toDiagnostics(lints)}); err != nil {
			s.r.Warning(err.Error())
		}
		return len(lints)
	}

	if len(lints) == 0 {
		s.r.Success("No issues")
		return 0
	}
	renderLintLines(s.r, text, lints)
	s.r.Printf("  %s %s\n", s.r.Styles().Bold.Render("fixed:"), fixed)
	return len(lints)
}

func (s *checkSession) handleDotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printCheckHelp(s.r.Writer())

	case ".rules":
		for _, ri := range s.group.Rules() {
			s.r.StatusLine(ri.Name, statusOf(ri.Enabled), ri.DefaultSeverity.String())
		}

	case ".enable", ".disable":
		if len(args) == 0 {
			s.r.Warning("usage: " + command + " <rule> [rule...]")
			return false
		}
		enabled := command == ".enable"
		for _, name := range args {
			if err := s.group.SetEnabled(name, enabled); err != nil {
				s.r.Warning(err.Error())
				continue
			}
			s.r.Muted(fmt.Sprintf("%s %sd", name, strings.TrimPrefix(command, ".")))
		}

	case ".all":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			s.r.Warning("usage: .all on|off")
			return false
		}
		s.group.SetAll(args[0] == "on")
		s.r.Muted(fmt.Sprintf("%d rules enabled", len(s.group.EnabledNames())))

	default:
		s.r.Warning(fmt.Sprintf("unknown command: %s (type .help for commands)", command))
	}
	return false
}

func statusOf(enabled bool) string {
	if enabled {
		return "success"
	}
	return "disabled"
}

func printCheckHelp(w io.Writer) {
	help := `
Commands:
  .help                 Show this help message
  .rules                List rules and whether they are enabled
  .enable <rule...>     Enable rules for this session
  .disable <rule...>    Disable rules for this session
  .all on|off           Enable or disable every rule
  .quit / .exit         Exit

Tips:
  - Any other input is checked as text
  - Use arrow keys to navigate history
  - Tab completion works for dot-commands and rule names
`
	_, _ = fmt.Fprintln(w, help)
}

// newRuleCompleter completes dot-commands and rule names.
func newRuleCompleter(names []string) *readline.PrefixCompleter {
	ruleItems := make([]readline.PrefixCompleterInterface, 0, len(names))
	for _, name := range names {
		ruleItems = append(ruleItems, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".rules"),
		readline.PcItem(".enable", ruleItems...),
		readline.PcItem(".disable", ruleItems...),
		readline.PcItem(".all", readline.PcItem("on"), readline.PcItem("off")),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
