package fix

import "strings"

// Apply rewrites content by applying all replacements in position order.
// The input slice is not modified. Overlapping replacements are a hard
// error: no partial rewrite is ever produced. With no replacements the
// content is returned byte-identical.
func Apply(content string, reps []Replacement) (string, error) {
	if len(reps) == 0 {
		return content, nil
	}

	if err := Validate(reps, len(content)); err != nil {
		return content, err
	}

	sorted := make([]Replacement, len(reps))
	copy(sorted, reps)
	SortReplacements(sorted)

	if err := DetectOverlap(sorted); err != nil {
		return content, err
	}

	// Estimate the result size.
	delta := 0
	for _, r := range sorted {
		delta += len(r.NewText) - r.Span.Len()
	}

	var out strings.Builder
	out.Grow(len(content) + delta)

	cursor := 0
	for _, r := range sorted {
		out.WriteString(content[cursor:r.Span.Start])
		out.WriteString(r.NewText)
		cursor = r.Span.End
	}
	out.WriteString(content[cursor:])

	return out.String(), nil
}
