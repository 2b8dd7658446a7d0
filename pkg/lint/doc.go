// Package lint provides the rule registry and lint records of the phrase linter.
//
// # Architecture
//
// The lint package has two layers:
//
//  1. Root package (pkg/lint/): the Rule contract, the Lint record, Config and the Group registry
//  2. Phrase engine (pkg/lint/phraseset/): phrase-table rules and the catalog in phraseset/rules
//
// # Groups
//
// A Group owns rules by unique name. It is an ordinary value built at
// startup; there is no package-level registry:
//
//	g := lint.NewGroup(lint.WithOrder(lint.OrderByPosition))
//	if err := g.Register(myRule); err != nil {
//		return err
//	}
//	lints := g.LintText("we need to discuss about this")
//
// Rules start enabled unless the group was built with WithDefaultEnabled(false).
// SetEnabled and SetAll change participation without removing definitions;
// an unknown name returns ErrUnknownRule.
//
// # Configuration
//
// Use Config to control which rules are enabled and their severity:
//
//	config := lint.NewConfig()
//	config.Disable("MootPoint")
//	config.SetSeverity("WorseOrWorst", core.SeverityError)
//	err := g.ApplyConfig(config)
//
// # Fixes
//
// ApplyFixes rewrites source text using lint spans. Lints overlapping an
// earlier fix are skipped.
package lint
