// Package source provides the position model for lint checks: character
// spans into a text buffer and a per-buffer line table that maps absolute
// offsets to lines, tolerant of mixed LF/CRLF/CR line endings.
package source

// Span is a pair of character offsets into a buffer. Start must not exceed
// End. A zero-width span (Start == End) denotes an insertion point.
type Span struct {
	// Start is the offset of the first character in the span.
	Start int

	// End is the offset one past the last character in the span.
	End int
}

// Len returns the number of characters covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty returns true if the span is zero-width.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Before reports span ordering by Start, with End as the tie-breaker.
func (s Span) Before(other Span) bool {
	if s.Start != other.Start {
		return s.Start < other.Start
	}
	return s.End < other.End
}

// Text returns the slice of content covered by the span.
func (s Span) Text(content string) string {
	return content[s.Start:s.End]
}
