// Package fix applies suggested replacements to a text buffer. Replacements
// are explicit spans with substitute text, supplied by checks; nothing here
// computes diffs or edit distances.
package fix

import (
	"fmt"
	"slices"

	"github.com/yaklabco/prelint/pkg/source"
)

// Replacement is a proposed edit: delete the characters in Span and insert
// NewText in their place. A zero-width span is a pure insertion.
type Replacement struct {
	// Span is the character range to replace.
	Span source.Span

	// NewText is the replacement text.
	NewText string
}

func (r Replacement) String() string {
	return fmt.Sprintf("replacement [%d:%d) %q", r.Span.Start, r.Span.End, r.NewText)
}

// SortReplacements orders replacements by span start, then span end. The
// sort is stable so fully tied replacements keep their discovery order,
// which determines which pair an overlap error names.
func SortReplacements(reps []Replacement) {
	slices.SortStableFunc(reps, func(a, b Replacement) int {
		if a.Span.Start != b.Span.Start {
			return a.Span.Start - b.Span.Start
		}
		return a.Span.End - b.Span.End
	})
}
