package lint

import (
	"slices"

	"github.com/yaklabco/prelint/pkg/fix"
	"github.com/yaklabco/prelint/pkg/source"
)

// Linter accumulates the warnings of one check over one buffer. Warnings
// are recorded in discovery order and sorted by span for output. The
// directive ranges for the (buffer, check) pair are computed on first use
// and cached; the Lines model may be shared between the Linters of
// several checks since it is read-only.
type Linter struct {
	// Path is the file the buffer came from, for reporting.
	Path string

	// Check is the check name used to scope bracketed directives.
	Check string

	// Lines is the buffer's line model.
	Lines *source.Lines

	marker   string
	warnings []*Warning
	ranges   []Range
	scanned  bool
}

// LinterOption configures a Linter.
type LinterOption func(*Linter)

// WithMarker overrides the directive marker phrase.
func WithMarker(marker string) LinterOption {
	return func(l *Linter) {
		if marker != "" {
			l.marker = marker
		}
	}
}

// NewLinter creates a Linter for one (buffer, check) pair.
func NewLinter(path, check string, lines *source.Lines, opts ...LinterOption) *Linter {
	l := &Linter{
		Path:   path,
		Check:  check,
		Lines:  lines,
		marker: DefaultMarker,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Content returns the raw buffer text.
func (l *Linter) Content() string {
	return l.Lines.Content
}

// AddWarning records a warning and returns it for chaining replacements
// and notes onto it. Span bounds are not validated here.
func (l *Linter) AddWarning(sp source.Span, msg string) *Warning {
	w := &Warning{Span: sp, Message: msg}
	l.warnings = append(l.warnings, w)
	return w
}

// Warnings returns all recorded warnings in discovery order, including
// suppressed ones.
func (l *Linter) Warnings() []*Warning {
	return l.warnings
}

// Ranges returns the directive ranges for this buffer and check name,
// scanning on first call.
func (l *Linter) Ranges() []Range {
	if !l.scanned {
		l.ranges = ScanDirectives(l.Lines, l.Check, l.marker)
		l.scanned = true
	}
	return l.ranges
}

// Enabled reports whether a warning survives the directive ranges.
func (l *Linter) Enabled(w *Warning) bool {
	return IsSpanEnabled(l.Ranges(), w.Span)
}

// EnabledWarnings returns the warnings not suppressed by directives,
// sorted by span.
func (l *Linter) EnabledWarnings() []*Warning {
	var enabled []*Warning
	for _, w := range l.warnings {
		if l.Enabled(w) {
			enabled = append(enabled, w)
		}
	}
	slices.SortStableFunc(enabled, func(a, b *Warning) int {
		if a.Span.Start != b.Span.Start {
			return a.Span.Start - b.Span.Start
		}
		return a.Span.End - b.Span.End
	})
	return enabled
}

// Fix applies the replacements of all enabled warnings and returns the
// rewritten buffer. Overlapping replacements are a hard error and the
// original content is returned unchanged.
func (l *Linter) Fix() (string, error) {
	var reps []fix.Replacement
	for _, w := range l.EnabledWarnings() {
		reps = append(reps, w.Replacements...)
	}
	return fix.Apply(l.Content(), reps)
}
