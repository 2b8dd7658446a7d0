// Package core defines the shared language of the phraselint system.
//
// This package contains:
//   - Severity levels and rule metadata (RuleInfo)
//   - Configuration types shared by the CLI and library users (LintConfig)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
