package lint

import (
	"sort"

	"github.com/yaklabco/prelint/pkg/source"
)

// IsSpanEnabled reports whether a warning at sp survives the directive
// ranges. The warning is enabled if any range it touches is enabled, so a
// span straddling a disabled/enabled transition stays enabled.
//
// The touch rule differs for empty and non-empty spans. A zero-width span
// sitting exactly on a range boundary touches both neighbors, so a
// warning anchored at a transition point is neither suppressed nor
// permitted by luck of tie-breaking. A non-zero-width span touches only
// ranges it shares at least one character with.
func IsSpanEnabled(ranges []Range, sp source.Span) bool {
	if len(ranges) == 0 {
		return true
	}

	var lo, hi int
	if sp.Empty() {
		lo = sort.Search(len(ranges), func(i int) bool {
			return ranges[i].Span.End >= sp.Start
		})
		hi = sort.Search(len(ranges), func(i int) bool {
			return ranges[i].Span.Start > sp.Start
		}) - 1
	} else {
		lo = sort.Search(len(ranges), func(i int) bool {
			return ranges[i].Span.End > sp.Start
		})
		hi = sort.Search(len(ranges), func(i int) bool {
			return ranges[i].Span.Start >= sp.End
		}) - 1
	}

	// hi is sort.Search(...)-1, so it never exceeds len(ranges)-1.
	for i := lo; i <= hi; i++ {
		if ranges[i].Enabled {
			return true
		}
	}
	// A span touching no range at all (out past the coverage) is a caller
	// bug; treat it as enabled so the warning surfaces.
	return lo > hi
}
