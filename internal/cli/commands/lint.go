package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/leapstack-labs/phraselint/internal/cache"
	"github.com/leapstack-labs/phraselint/internal/cli/output"
	"github.com/leapstack-labs/phraselint/pkg/lint"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ErrLintIssues is returned when lints remain after filtering, so the
// process exits non-zero.
var ErrLintIssues = errors.New("lint issues found")

// stdinPath is the argument that selects standard input.
const stdinPath = "-"

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths    []string // Files or directories; "-" reads standard input
	Format   string   // Output format: text, markdown, json, yaml
	Disable  []string // Rule names to disable
	Severity string   // Minimum severity: error, warning, info, hint
	Rules    []string // Run only specific rules
	Fix      bool     // Rewrite files with the first suggestion of each lint
	Watch    bool     // Re-lint files as they change
	Cache    bool     // Use the on-disk result cache
	Jobs     int      // Files linted concurrently
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Check documents for misused phrases",
		Long: `Scan text files for commonly misused phrases and suggest corrections.

Directories are walked recursively; only files whose extension is listed in
lint.extensions are checked. Use "-" to read from standard input.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format`,
		Example: `  # Lint the current directory
  phraselint lint

  # Lint specific files
  phraselint lint README.md docs/

  # Read from standard input
  echo "a whole entire day" | phraselint lint -

  # Apply the first suggestion of every lint
  phraselint lint --fix docs/

  # Disable specific rules
  phraselint lint --disable Discuss,MootPoint

  # Only report errors
  phraselint lint --severity error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule names to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "warning", "Minimum severity: error, warning, info, hint")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVar(&opts.Fix, "fix", false, "Apply the first suggestion of each lint in place")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Watch files and re-lint on change")
	cmd.Flags().BoolVar(&opts.Cache, "cache", false, "Cache results keyed by file content")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Files linted concurrently (default from config)")

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := cmdCtx.WithFormat(cmd, opts.Format); err != nil {
		return err
	}

	threshold, ok := lint.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("unknown severity %q (want error, warning, info or hint)", opts.Severity)
	}

	if err := cmdCtx.Group.ApplyConfig(buildLintConfig(opts)); err != nil {
		return fmt.Errorf("lint configuration: %w", err)
	}

	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	useStdin := slices.Contains(paths, stdinPath)
	if useStdin && len(paths) > 1 {
		return errors.New(`"-" cannot be combined with other paths`)
	}
	if useStdin && (opts.Fix || opts.Watch) {
		return errors.New("--fix and --watch need file paths, not standard input")
	}

	fl := &fileLinter{
		group:  cmdCtx.Group,
		fix:    opts.Fix,
		jobs:   resolveJobs(cmd, opts, cmdCtx.Cfg.Jobs),
		logger: cmdCtx.Logger,
	}

	if useStdin {
		res, err := fl.lintReader("<stdin>", cmd.InOrStdin())
		if err != nil {
			return err
		}
		return reportLint(cmdCtx.Renderer, []fileResult{res}, threshold)
	}

	files, err := collectFiles(paths, cmdCtx.Cfg.Extensions())
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("collected files", slog.Int("files", len(files)), slog.Int("jobs", fl.jobs))

	useCache := cmdCtx.Cfg.Cache.IsEnabled()
	if cmd.Flags().Changed("cache") {
		useCache = opts.Cache
	}
	if useCache {
		store, err := cache.Open(cmdCtx.Cfg.CachePath(), cmdCtx.Logger)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		fl.store = store
		fl.fingerprint = cache.Fingerprint(cmdCtx.Group.Order().String(), cmdCtx.Group.Rules())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var run *cache.Run
	if fl.store != nil {
		if run, err = fl.store.BeginRun(ctx, fl.fingerprint); err != nil {
			cmdCtx.Logger.Warn("cache run not recorded", slog.String("error", err.Error()))
		}
	}

	results, err := fl.lintAll(ctx, files)
	if err != nil {
		return err
	}
	if run != nil {
		completeRun(ctx, fl.store, run, results, cmdCtx.Logger)
	}
	reportErr := reportLint(cmdCtx.Renderer, results, threshold)

	if !opts.Watch {
		return reportErr
	}
	return watchFiles(ctx, paths, cmdCtx.Cfg.Extensions(), cmdCtx.Logger, func(path string) {
		res, err := fl.lintFile(ctx, path)
		if err != nil {
			cmdCtx.Renderer.Warning(err.Error())
			return
		}
		_ = reportLint(cmdCtx.Renderer, []fileResult{res}, threshold)
	})
}

// completeRun stores the run totals. Issues counts lints before the
// severity filter.
func completeRun(ctx context.Context, store *cache.Store, run *cache.Run, results []fileResult, logger *slog.Logger) {
	run.Files = len(results)
	for _, res := range results {
		if res.Cached {
			run.Cached++
		}
		run.Issues += len(res.Lints)
	}
	if err := store.CompleteRun(ctx, run); err != nil {
		logger.Warn("cache run not recorded", slog.String("error", err.Error()))
	}
}

// buildLintConfig converts the --disable and --rule flags into a lint
// config. The project config has already been applied to the group.
func buildLintConfig(opts *LintOptions) *lint.Config {
	lintCfg := lint.NewConfig()
	for _, name := range opts.Disable {
		if name = strings.TrimSpace(name); name != "" {
			lintCfg.Disable(name)
		}
	}
	for _, name := range opts.Rules {
		if name = strings.TrimSpace(name); name != "" {
			lintCfg.Only(name)
		}
	}
	return lintCfg
}

func resolveJobs(cmd *cobra.Command, opts *LintOptions, configured int) int {
	jobs := configured
	if cmd.Flags().Changed("jobs") {
		jobs = opts.Jobs
	}
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}

// collectFiles expands directories into the files whose extension is in
// exts. Explicit file arguments are always kept. The result is sorted and
// free of duplicates.
func collectFiles(paths []string, exts []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot lint %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if hasExtension(path, exts) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// fileResult holds the lints for a single input.
type fileResult struct {
	Path   string
	Source string
	Lints  []lint.Lint
	Fixed  int
	Cached bool
}

// fileLinter lints files against one shared group.
type fileLinter struct {
	group       *lint.Group
	store       *cache.Store // nil when caching is off
	fingerprint string
	fix         bool
	jobs        int
	logger      *slog.Logger
}

// lintAll lints files concurrently, at most jobs at a time. Results keep
// the order of files.
func (fl *fileLinter) lintAll(ctx context.Context, files []string) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(fl.jobs, 1))
	for i, path := range files {
		eg.Go(func() error {
			res, err := fl.lintFile(ctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (fl *fileLinter) lintReader(name string, r io.Reader) (fileResult, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return fileResult{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	src := string(content)
	return fileResult{Path: name, Source: src, Lints: fl.group.LintText(src)}, nil
}

// lintFile lints one file, consulting the cache first. With fix enabled the
// file is rewritten and linted again.
func (fl *fileLinter) lintFile(ctx context.Context, path string) (fileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return fileResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	src := string(content)
	res := fileResult{Path: path, Source: src}

	res.Lints, res.Cached, err = fl.lintSource(ctx, path, src)
	if err != nil {
		return fileResult{}, err
	}

	if !fl.fix || len(res.Lints) == 0 {
		return res, nil
	}

	fixed, n := lint.ApplyFixes(src, res.Lints, nil)
	if n == 0 {
		return res, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fileResult{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(fixed), info.Mode().Perm()); err != nil {
		return fileResult{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	fl.logger.Debug("applied fixes", slog.String("path", path), slog.Int("fixes", n))

	res.Source = fixed
	res.Fixed = n
	res.Lints, res.Cached, err = fl.lintSource(ctx, path, fixed)
	if err != nil {
		return fileResult{}, err
	}
	return res, nil
}

func (fl *fileLinter) lintSource(ctx context.Context, path, src string) ([]lint.Lint, bool, error) {
	if fl.store == nil {
		return fl.group.LintText(src), false, nil
	}

	key := cache.Key([]byte(src), fl.fingerprint)
	if lints, ok, err := fl.store.Get(ctx, path, key); err != nil {
		return nil, false, err
	} else if ok {
		return lints, true, nil
	}

	lints := fl.group.LintText(src)
	if err := fl.store.Put(ctx, path, key, lints); err != nil {
		return nil, false, err
	}
	return lints, false, nil
}

// reportLint filters results by severity, renders them, and returns
// ErrLintIssues when any lint remains.
func reportLint(r *output.Renderer, results []fileResult, threshold lint.Severity) error {
	summary := output.LintSummary{FilesAnalyzed: len(results)}

	var shown []fileResult
	for _, res := range results {
		summary.Fixed += res.Fixed
		if res.Cached {
			summary.Cached++
		}
		res.Lints = lint.FilterBySeverity(res.Lints, threshold)
		if len(res.Lints) == 0 {
			continue
		}
		summary.FilesWithIssues++
		summary.TotalIssues += len(res.Lints)
		for _, l := range res.Lints {
			switch l.Severity {
			case lint.SeverityError:
				summary.Errors++
			case lint.SeverityWarning:
				summary.Warnings++
			case lint.SeverityInfo:
				summary.Info++
			case lint.SeverityHint:
				summary.Hints++
			}
		}
		shown = append(shown, res)
	}
	sort.Slice(shown, func(i, j int) bool { return shown[i].Path < shown[j].Path })

	if err := renderLintResults(r, shown, summary); err != nil {
		return err
	}
	if summary.TotalIssues > 0 {
		return ErrLintIssues
	}
	return nil
}

func renderLintResults(r *output.Renderer, results []fileResult, summary output.LintSummary) error {
	if r.EffectiveMode().IsStructured() {
		out := output.LintOutput{Summary: summary, Files: []output.LintFileResult{}}
		for _, res := range results {
			out.Files = append(out.Files, output.LintFileResult{
				Path:  res.Path,
				Lints: toDiagnostics(res.Lints),
			})
		}
		_, err := r.Structured(out)
		return err
	}

	if summary.Fixed > 0 {
		r.Success(fmt.Sprintf("Applied %d fixes", summary.Fixed))
	}
	if len(results) == 0 {
		r.Success(fmt.Sprintf("No lint issues found in %d files", summary.FilesAnalyzed))
		return nil
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		renderLintMarkdown(r, results)
	} else {
		renderLintText(r, results)
	}

	summaryParts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", summary.Hints))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(summaryParts, ", "), summary.FilesWithIssues)
	return nil
}

func renderLintText(r *output.Renderer, results []fileResult) {
	for _, res := range results {
		r.Println(r.Styles().FilePath.Render(res.Path))
		renderLintLines(r, res.Source, res.Lints)
		r.Println("")
	}
}

// renderLintLines writes each lint with its location, the source line with
// the match underlined, and the suggestions.
func renderLintLines(r *output.Renderer, src string, lints []lint.Lint) {
	st := r.Styles()
	lines := strings.Split(src, "\n")
	for _, l := range lints {
		loc := fmt.Sprintf("%d:%d", l.Span.Start.Line, l.Span.Start.Column)
		r.Printf("  %s  %s  %s  %s\n",
			st.Muted.Render(fmt.Sprintf("%-7s", loc)),
			severityStyle(r, l.Severity),
			st.RuleName.Render(l.RuleName),
			l.Message,
		)
		if n := l.Span.Start.Line; n >= 1 && n <= len(lines) {
			endCol := l.Span.End.Column
			if l.Span.End.Line != n {
				endCol = len([]rune(lines[n-1])) + 1
			}
			r.Snippet("      ", lines[n-1], l.Span.Start.Column, endCol)
		}
		r.Printf("      %s %s\n", st.Muted.Render("suggestion:"), strings.Join(l.SuggestionTexts(), ", "))
	}
}

func renderLintMarkdown(r *output.Renderer, results []fileResult) {
	for _, res := range results {
		r.Header(2, res.Path)
		rows := make([][]string, 0, len(res.Lints))
		for _, l := range res.Lints {
			rows = append(rows, []string{
				fmt.Sprintf("%d:%d", l.Span.Start.Line, l.Span.Start.Column),
				l.Severity.String(),
				l.RuleName,
				"`" + l.MatchedText + "`",
				strings.Join(l.SuggestionTexts(), ", "),
			})
		}
		r.Table([]string{"Location", "Severity", "Rule", "Found", "Suggestions"}, rows)
		r.Println("")
	}
}

func toDiagnostics(lints []lint.Lint) []output.LintDiagnostic {
	out := make([]output.LintDiagnostic, 0, len(lints))
	for _, l := range lints {
		out = append(out, output.LintDiagnostic{
			Rule:        l.RuleName,
			Severity:    l.Severity.String(),
			Message:     l.Message,
			Line:        l.Span.Start.Line,
			Column:      l.Span.Start.Column,
			EndLine:     l.Span.End.Line,
			EndColumn:   l.Span.End.Column,
			Offset:      l.Span.Start.Offset,
			EndOffset:   l.Span.End.Offset,
			Matched:     l.MatchedText,
			Suggestions: l.SuggestionTexts(),
		})
	}
	return out
}

func severityStyle(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case lint.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case lint.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
