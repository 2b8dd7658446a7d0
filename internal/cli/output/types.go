package output

// LintOutput is the structured form of a lint run.
type LintOutput struct {
	Summary LintSummary      `json:"summary" yaml:"summary"`
	Files   []LintFileResult `json:"files" yaml:"files"`
}

// LintSummary counts lints by severity.
type LintSummary struct {
	FilesAnalyzed   int `json:"files_analyzed" yaml:"files_analyzed"`
	FilesWithIssues int `json:"files_with_issues" yaml:"files_with_issues"`
	TotalIssues     int `json:"total_issues" yaml:"total_issues"`
	Errors          int `json:"errors" yaml:"errors"`
	Warnings        int `json:"warnings" yaml:"warnings"`
	Info            int `json:"info" yaml:"info"`
	Hints           int `json:"hints" yaml:"hints"`
	Fixed           int `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Cached          int `json:"cached,omitempty" yaml:"cached,omitempty"`
}

// LintFileResult holds the lints for one input.
type LintFileResult struct {
	Path  string           `json:"path" yaml:"path"`
	Lints []LintDiagnostic `json:"lints" yaml:"lints"`
}

// LintDiagnostic is one lint with 1-based line and column positions.
type LintDiagnostic struct {
	Rule        string   `json:"rule" yaml:"rule"`
	Severity    string   `json:"severity" yaml:"severity"`
	Message     string   `json:"message" yaml:"message"`
	Line        int      `json:"line" yaml:"line"`
	Column      int      `json:"column" yaml:"column"`
	EndLine     int      `json:"end_line" yaml:"end_line"`
	EndColumn   int      `json:"end_column" yaml:"end_column"`
	Offset      int      `json:"offset" yaml:"offset"`
	EndOffset   int      `json:"end_offset" yaml:"end_offset"`
	Matched     string   `json:"matched" yaml:"matched"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}
