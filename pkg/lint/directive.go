package lint

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/yaklabco/prelint/pkg/source"
)

// DefaultMarker is the phrase that introduces enable/disable directives in
// file text. Directives are matched as plain text, so they work inside any
// host language's comment style:
//
//	# prelint: disable
//	// prelint: enable-next-line
//	/* prelint: disable[copyright,codeowners] */
const DefaultMarker = "prelint"

// Range tags a span of the buffer with a suppression state. The scanner
// produces an ordered, gap-free, non-overlapping list of ranges covering
// the whole buffer.
type Range struct {
	// Span is the character range the state applies to.
	Span source.Span

	// Enabled is false if warnings touching this range are suppressed.
	Enabled bool
}

var (
	directiveMu  sync.Mutex
	directiveREs = make(map[string]*regexp.Regexp)
)

// directivePattern returns the compiled directive regexp for a marker.
// Malformed directive text simply fails to match and is ignored; the
// grammar is a best-effort single-pass scan, not a strict parser.
func directivePattern(marker string) *regexp.Regexp {
	directiveMu.Lock()
	defer directiveMu.Unlock()

	if re, ok := directiveREs[marker]; ok {
		return re
	}
	re := regexp.MustCompile(
		`\b` + regexp.QuoteMeta(marker) + `:[ \t]*(enable|disable)(-next-line)?\b(?:[ \t]*\[([^\n\[\]]*)\])?`,
	)
	directiveREs[marker] = re
	return re
}

// ScanDirectives computes the enable/disable ranges of a buffer for one
// check name. The implicit state before any directive is enabled. A range
// directive takes effect at its own match position; a next-line directive
// overrides exactly the span of the line following its own, with the later
// of two directives targeting the same line winning. A directive with a
// bracketed name list applies only when checkName is in the list.
func ScanDirectives(lines *source.Lines, checkName, marker string) []Range {
	content := lines.Content

	type rangeDirective struct {
		pos     int
		enabled bool
	}
	var rangeDirs []rangeDirective
	overrides := make(map[int]bool)

	for _, m := range directivePattern(marker).FindAllStringSubmatchIndex(content, -1) {
		enabled := content[m[2]:m[3]] == "enable"
		nextLine := m[4] >= 0

		if m[6] >= 0 && !nameListContains(content[m[6]:m[7]], checkName) {
			continue
		}

		if nextLine {
			line, err := lines.LineForPos(m[0])
			if err != nil {
				continue
			}
			// A next-line directive on the last line targets nothing.
			if line+1 < len(lines.Spans) {
				overrides[line+1] = enabled
			}
		} else {
			rangeDirs = append(rangeDirs, rangeDirective{pos: m[0], enabled: enabled})
		}
	}

	// Base ranges from range directives alone. Matches arrive in document
	// order, so positions are increasing.
	var base []Range
	cur, curEnabled := 0, true
	for _, d := range rangeDirs {
		if d.pos > cur {
			base = append(base, Range{Span: source.Span{Start: cur, End: d.pos}, Enabled: curEnabled})
		}
		cur = d.pos
		curEnabled = d.enabled
	}
	base = append(base, Range{Span: source.Span{Start: cur, End: len(content)}, Enabled: curEnabled})

	// Next-line override spans, sorted by target line. An empty target
	// line contributes a zero-width range so its polarity still reaches
	// zero-width warnings anchored on that line.
	targets := make([]int, 0, len(overrides))
	for line := range overrides {
		targets = append(targets, line)
	}
	sort.Ints(targets)

	var overs []Range
	for _, line := range targets {
		overs = append(overs, Range{Span: lines.Spans[line], Enabled: overrides[line]})
	}

	// Clip base ranges around the overrides. An override can swallow base
	// boundaries entirely (range directives sitting on an overridden line)
	// or straddle them; emitted covers everything already produced.
	var out []Range
	oi := 0
	emitted := 0
	for _, b := range base {
		pos := max(b.Span.Start, emitted)
		for oi < len(overs) {
			o := overs[oi]
			// A zero-width override sitting exactly at pos or at the base
			// boundary still belongs to this base range.
			if o.Span.End < pos || (o.Span.End == pos && !o.Span.Empty()) {
				oi++
				continue
			}
			if o.Span.Start > b.Span.End || (o.Span.Start == b.Span.End && !o.Span.Empty()) {
				break
			}
			if o.Span.Start > pos {
				out = append(out, Range{Span: source.Span{Start: pos, End: o.Span.Start}, Enabled: b.Enabled})
			}
			out = append(out, o)
			pos = o.Span.End
			oi++
		}
		if pos < b.Span.End {
			out = append(out, Range{Span: source.Span{Start: pos, End: b.Span.End}, Enabled: b.Enabled})
			pos = b.Span.End
		}
		emitted = max(emitted, pos)
	}

	// An empty buffer still gets its single (empty) range.
	if len(out) == 0 {
		out = append(out, Range{Span: source.Span{Start: 0, End: len(content)}, Enabled: curEnabled})
	}

	return out
}

func nameListContains(list, checkName string) bool {
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == checkName {
			return true
		}
	}
	return false
}
