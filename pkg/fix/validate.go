package fix

import "fmt"

// ValidationError describes a replacement whose span cannot index the
// buffer it was proposed for. It indicates a bug in the check that
// produced the replacement.
type ValidationError struct {
	Replacement Replacement
	Message     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Replacement, e.Message)
}

// OverlapError describes two replacements whose spans intersect. Ambiguous
// edits are never resolved by picking one; the error is surfaced and the
// buffer left untouched.
type OverlapError struct {
	First  Replacement
	Second Replacement
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s overlaps with %s", e.First, e.Second)
}

// Validate checks that every replacement span lies within a buffer of the
// given length with Start <= End. Returns the first violation found.
func Validate(reps []Replacement, contentLen int) error {
	for _, r := range reps {
		switch {
		case r.Span.Start < 0:
			return &ValidationError{Replacement: r, Message: "start is negative"}
		case r.Span.End < r.Span.Start:
			return &ValidationError{Replacement: r, Message: "end is before start"}
		case r.Span.End > contentLen:
			return &ValidationError{
				Replacement: r,
				Message:     fmt.Sprintf("end %d exceeds buffer length %d", r.Span.End, contentLen),
			}
		}
	}
	return nil
}

// DetectOverlap walks adjacent pairs of a sorted slice and returns an
// OverlapError for the first pair whose spans intersect. Replacements must
// be ordered with SortReplacements first.
func DetectOverlap(reps []Replacement) error {
	for i := 1; i < len(reps); i++ {
		prev, cur := reps[i-1], reps[i]
		if prev.Span.End > cur.Span.Start {
			return &OverlapError{First: prev, Second: cur}
		}
	}
	return nil
}
