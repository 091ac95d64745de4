// Package lint provides the linting engine shared by all checks: the
// warning/replacement/note model, the enable/disable directive scanner,
// and the per-buffer Linter accumulator.
package lint

import (
	"github.com/yaklabco/prelint/pkg/fix"
	"github.com/yaklabco/prelint/pkg/source"
)

// Note is an informational annotation attached to a warning.
type Note struct {
	// Span is the character range the note refers to.
	Span source.Span

	// Message is the human-readable note text.
	Message string
}

// Warning is a reported issue anchored to a span. It carries a message,
// zero or more suggested replacements, and zero or more explanatory notes.
// Once created a warning only grows: replacements and notes are appended,
// never removed. Suppression by directives excludes a warning from output
// without deleting it.
type Warning struct {
	// Span is the character range the warning is anchored to.
	Span source.Span

	// Message is the human-readable description of the issue.
	Message string

	// Replacements are the suggested fixes, in discovery order.
	Replacements []fix.Replacement

	// Notes are explanatory annotations, in discovery order.
	Notes []Note
}

// AddReplacement appends a suggested fix. Span bounds are not validated
// here; the fixer validates them when it indexes the buffer.
func (w *Warning) AddReplacement(sp source.Span, newText string) *Warning {
	w.Replacements = append(w.Replacements, fix.Replacement{Span: sp, NewText: newText})
	return w
}

// AddNote appends an explanatory note.
func (w *Warning) AddNote(sp source.Span, msg string) *Warning {
	w.Notes = append(w.Notes, Note{Span: sp, Message: msg})
	return w
}

// HasFix returns true if the warning carries at least one replacement.
func (w *Warning) HasFix() bool {
	return len(w.Replacements) > 0
}
