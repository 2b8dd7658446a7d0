package lsp

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/phraselint/pkg/lint"
)

// handleCodeAction handles the textDocument/codeAction request.
func (s *Server) handleCodeAction(msg *JSONRPCMessage) error {
	var params CodeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	actions := s.getCodeActions(params)
	s.sendResponse(msg.ID, actions, nil)
	return nil
}

// getCodeActions re-lints the document and offers one quick fix per
// suggestion of every lint touching the requested range.
func (s *Server) getCodeActions(params CodeActionParams) []CodeAction {
	actions := []CodeAction{}

	if len(params.Context.Only) > 0 && !slices.Contains(params.Context.Only, CodeActionKindQuickFix) {
		return actions
	}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return actions
	}

	start := doc.PositionToOffset(params.Range.Start)
	end := doc.PositionToOffset(params.Range.End)

	for _, l := range s.lintDocument(doc) {
		if !touches(l, start, end) {
			continue
		}
		diag := toDiagnostic(doc, l)
		for i, sug := range l.Suggestions {
			actions = append(actions, CodeAction{
				Title:       fmt.Sprintf("Replace with %q", sug.Text),
				Kind:        CodeActionKindQuickFix,
				Diagnostics: []Diagnostic{diag},
				IsPreferred: i == 0,
				Edit: &WorkspaceEdit{
					Changes: map[string][]TextEdit{
						params.TextDocument.URI: {{Range: diag.Range, NewText: sug.Text}},
					},
				},
			})
		}
	}

	return actions
}

// touches reports whether the lint's byte span meets [start, end].
// An empty range is a cursor and matches lints it sits on or next to.
func touches(l lint.Lint, start, end int) bool {
	ls, le := l.Span.Start.Offset, l.Span.End.Offset
	if start == end {
		return ls <= start && start <= le
	}
	return ls < end && start < le
}

// getHover describes the lint under the cursor, if any.
func (s *Server) getHover(params HoverParams) *Hover {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	offset := doc.PositionToOffset(params.Position)
	g := s.currentGroup()
	for _, l := range s.lintDocument(doc) {
		if !l.Span.Contains(offset) {
			continue
		}
		r := doc.RangeOf(l.Span.Start.Offset, l.Span.End.Offset)
		return &Hover{
			Contents: MarkupContent{Kind: MarkupKindMarkdown, Value: hoverText(g, l)},
			Range:    &r,
		}
	}
	return nil
}

func hoverText(g *lint.Group, l lint.Lint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (%s)\n\n", l.RuleName, l.Severity)
	if rule, ok := g.Get(l.RuleName); ok && rule.Description() != "" {
		b.WriteString(rule.Description())
		b.WriteString("\n\n")
	}
	b.WriteString(l.Message)
	if texts := l.SuggestionTexts(); len(texts) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, t := range texts {
			fmt.Fprintf(&b, "\n- `%s`", t)
		}
	}
	return b.String()
}
