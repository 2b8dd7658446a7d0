package lsp

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phraselint/internal/testutil"
	"github.com/leapstack-labs/phraselint/pkg/lint"
)

const testURI = "file:///notes/draft.md"

func newTestServer(t *testing.T, content string) *Server {
	t.Helper()
	s := NewServerWithLogger(strings.NewReader(""), io.Discard, testutil.NewTestLogger(t))
	s.documents.Open(testURI, content, 1)
	return s
}

func TestToDiagnostic(t *testing.T) {
	s := newTestServer(t, "We should discuss about the plan.\nIt is a mute point.")
	doc := s.documents.Get(testURI)

	lints := s.lintDocument(doc)
	require.Len(t, lints, 2)

	discuss := toDiagnostic(doc, lints[0])
	assert.Equal(t, "Discuss", discuss.Code)
	assert.Equal(t, serverName, discuss.Source)
	assert.Equal(t, DiagnosticSeverityWarning, discuss.Severity)
	assert.Equal(t, Range{
		Start: Position{Line: 0, Character: 10},
		End:   Position{Line: 0, Character: 23},
	}, discuss.Range)
	assert.Contains(t, discuss.Message, `Suggestion: "discuss"`)

	moot := toDiagnostic(doc, lints[1])
	assert.Equal(t, "MootPoint", moot.Code)
	assert.Equal(t, Range{
		Start: Position{Line: 1, Character: 8},
		End:   Position{Line: 1, Character: 18},
	}, moot.Range)
}

func TestToDiagnostic_UTF16Range(t *testing.T) {
	s := newTestServer(t, "😀 a mute point")
	doc := s.documents.Get(testURI)

	lints := s.lintDocument(doc)
	require.Len(t, lints, 1)

	// The emoji counts as two UTF-16 code units.
	assert.Equal(t, Range{
		Start: Position{Line: 0, Character: 5},
		End:   Position{Line: 0, Character: 15},
	}, toDiagnostic(doc, lints[0]).Range)
}

func TestDiagnosticMessage(t *testing.T) {
	l := lint.Lint{
		Message:     "Avoid redundancy.",
		Suggestions: []lint.Suggestion{{Text: "a whole"}, {Text: "an entire"}},
	}
	assert.Equal(t, `Avoid redundancy. Suggestion: "a whole" or "an entire"`, diagnosticMessage(l))

	l.Suggestions = nil
	assert.Equal(t, "Avoid redundancy.", diagnosticMessage(l))
}

func TestToLSPSeverity(t *testing.T) {
	tests := []struct {
		in   lint.Severity
		want DiagnosticSeverity
	}{
		{lint.SeverityError, DiagnosticSeverityError},
		{lint.SeverityWarning, DiagnosticSeverityWarning},
		{lint.SeverityInfo, DiagnosticSeverityInformation},
		{lint.SeverityHint, DiagnosticSeverityHint},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toLSPSeverity(tt.in), tt.in.String())
	}
}

func TestGetCodeActions(t *testing.T) {
	s := newTestServer(t, "It took a whole entire day.\nIt is a mute point.")

	t.Run("cursor on lint", func(t *testing.T) {
		actions := s.getCodeActions(CodeActionParams{
			TextDocument: TextDocumentIdentifier{URI: testURI},
			Range:        Range{Start: Position{Line: 0, Character: 12}, End: Position{Line: 0, Character: 12}},
		})
		require.Len(t, actions, 2)

		assert.Equal(t, `Replace with "a whole"`, actions[0].Title)
		assert.True(t, actions[0].IsPreferred)
		assert.Equal(t, `Replace with "an entire"`, actions[1].Title)
		assert.False(t, actions[1].IsPreferred)

		edits := actions[1].Edit.Changes[testURI]
		require.Len(t, edits, 1)
		assert.Equal(t, "an entire", edits[0].NewText)
		assert.Equal(t, Range{
			Start: Position{Line: 0, Character: 8},
			End:   Position{Line: 0, Character: 22},
		}, edits[0].Range)
		assert.Equal(t, "WholeEntire", actions[0].Diagnostics[0].Code)
	})

	t.Run("range spanning both lines", func(t *testing.T) {
		actions := s.getCodeActions(CodeActionParams{
			TextDocument: TextDocumentIdentifier{URI: testURI},
			Range:        Range{Start: Position{Line: 0, Character: 0}, End: Position{Line: 1, Character: 19}},
		})
		assert.Len(t, actions, 3)
	})

	t.Run("range without lints", func(t *testing.T) {
		actions := s.getCodeActions(CodeActionParams{
			TextDocument: TextDocumentIdentifier{URI: testURI},
			Range:        Range{Start: Position{Line: 0, Character: 0}, End: Position{Line: 0, Character: 2}},
		})
		assert.Empty(t, actions)
	})

	t.Run("other kinds requested", func(t *testing.T) {
		actions := s.getCodeActions(CodeActionParams{
			TextDocument: TextDocumentIdentifier{URI: testURI},
			Range:        Range{Start: Position{Line: 1, Character: 9}, End: Position{Line: 1, Character: 9}},
			Context:      CodeActionContext{Only: []CodeActionKind{"refactor"}},
		})
		assert.Empty(t, actions)
	})

	t.Run("unknown document", func(t *testing.T) {
		actions := s.getCodeActions(CodeActionParams{TextDocument: TextDocumentIdentifier{URI: "file:///nope.md"}})
		assert.NotNil(t, actions)
		assert.Empty(t, actions)
	})
}

func TestGetHover(t *testing.T) {
	s := newTestServer(t, "It is a mute point.")

	hover := s.getHover(HoverParams{TextDocumentPositionParams{
		TextDocument: TextDocumentIdentifier{URI: testURI},
		Position:     Position{Line: 0, Character: 10},
	}})
	require.NotNil(t, hover)
	assert.Equal(t, MarkupKindMarkdown, hover.Contents.Kind)
	assert.Contains(t, hover.Contents.Value, "**MootPoint** (warning)")
	assert.Contains(t, hover.Contents.Value, "Corrects `mute` to `moot`")
	assert.Contains(t, hover.Contents.Value, "- `moot point`")
	require.NotNil(t, hover.Range)
	assert.Equal(t, uint32(8), hover.Range.Start.Character)

	assert.Nil(t, s.getHover(HoverParams{TextDocumentPositionParams{
		TextDocument: TextDocumentIdentifier{URI: testURI},
		Position:     Position{Line: 0, Character: 1},
	}}))
}

func TestTouches(t *testing.T) {
	l := lint.Lint{}
	l.Span.Start.Offset = 5
	l.Span.End.Offset = 10

	tests := []struct {
		start, end int
		want       bool
	}{
		{5, 5, true},
		{10, 10, true},
		{11, 11, false},
		{0, 5, false},
		{0, 6, true},
		{9, 20, true},
		{10, 20, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, touches(l, tt.start, tt.end), "[%d,%d]", tt.start, tt.end)
	}
}
