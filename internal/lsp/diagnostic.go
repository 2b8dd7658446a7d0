package lsp

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/phraselint/pkg/lint"
)

// publishDiagnostics lints the document and publishes its lints.
// Unknown URIs publish nothing.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	lints := s.lintDocument(doc)
	diagnostics := make([]Diagnostic, 0, len(lints))
	for _, l := range lints {
		diagnostics = append(diagnostics, toDiagnostic(doc, l))
	}

	s.logger.Debug("Publishing diagnostics", "uri", uri, "count", len(diagnostics))
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     doc.Version,
		Diagnostics: diagnostics,
	})
}

// lintDocument runs the current rule group over the document content.
func (s *Server) lintDocument(doc *Document) []lint.Lint {
	return s.currentGroup().LintText(doc.Content)
}

// toDiagnostic converts a lint to an LSP diagnostic. The rule name is the
// diagnostic code, so code actions can be matched back to the lint.
func toDiagnostic(doc *Document, l lint.Lint) Diagnostic {
	return Diagnostic{
		Range:    doc.RangeOf(l.Span.Start.Offset, l.Span.End.Offset),
		Severity: toLSPSeverity(l.Severity),
		Code:     l.RuleName,
		Source:   serverName,
		Message:  diagnosticMessage(l),
	}
}

// diagnosticMessage appends the suggestions to the rule message.
func diagnosticMessage(l lint.Lint) string {
	texts := l.SuggestionTexts()
	if len(texts) == 0 {
		return l.Message
	}
	quoted := make([]string, len(texts))
	for i, t := range texts {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return fmt.Sprintf("%s Suggestion: %s", l.Message, strings.Join(quoted, " or "))
}

// toLSPSeverity converts lint.Severity to LSP DiagnosticSeverity.
func toLSPSeverity(s lint.Severity) DiagnosticSeverity {
	switch s {
	case lint.SeverityError:
		return DiagnosticSeverityError
	case lint.SeverityWarning:
		return DiagnosticSeverityWarning
	case lint.SeverityInfo:
		return DiagnosticSeverityInformation
	case lint.SeverityHint:
		return DiagnosticSeverityHint
	default:
		return DiagnosticSeverityWarning
	}
}
