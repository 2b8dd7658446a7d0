// Package phraseset implements rules that flag fixed multi-word phrases and
// propose replacements.
//
// A CorrectionRule bundles one or more CorrectionGroups. In a OneToOne group
// the i-th bad phrase is corrected only by the i-th good phrase. In a
// ManyToMany group any bad phrase yields every good phrase, in authored order.
//
// Compile turns a rule into a Matcher, which indexes bad phrases by their
// folded first token and implements lint.Rule. Matching is case-insensitive
// and token-exact: "piggy bag" never matches inside "piggy bags".
//
//	rule, err := phraseset.OneToOneRule("MootPoint",
//		[]phraseset.Pair{{Bad: "mute point", Good: "moot point"}},
//		"Use `moot` instead of `mute`.",
//		"Corrects `mute point`.")
//	m, err := phraseset.Compile(rule)
//	lints := m.Lint(lexer.Tokenize("That is a mute point."))
package phraseset
