package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/prelint/pkg/source"
)

func TestIsSpanEnabled(t *testing.T) {
	// Three alternating ranges covering [0, 30).
	ranges := []Range{
		rng(0, 10, true),
		rng(10, 20, false),
		rng(20, 30, true),
	}

	tests := []struct {
		name string
		span source.Span
		want bool
	}{
		{"inside enabled", source.Span{Start: 2, End: 8}, true},
		{"inside disabled", source.Span{Start: 12, End: 18}, false},
		{"straddles into enabled", source.Span{Start: 5, End: 15}, true},
		{"straddles into trailing enabled", source.Span{Start: 15, End: 25}, true},
		{"covers everything", source.Span{Start: 0, End: 30}, true},
		{"exactly the disabled range", source.Span{Start: 10, End: 20}, false},
		{"ends at disabled start", source.Span{Start: 5, End: 10}, true},
		{"starts at disabled end", source.Span{Start: 20, End: 25}, true},

		// A zero-width span on a boundary touches both neighbors.
		{"empty at enabled-disabled boundary", source.Span{Start: 10, End: 10}, true},
		{"empty at disabled-enabled boundary", source.Span{Start: 20, End: 20}, true},
		{"empty inside disabled", source.Span{Start: 15, End: 15}, false},
		{"empty at start", source.Span{Start: 0, End: 0}, true},
		{"empty at end", source.Span{Start: 30, End: 30}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSpanEnabled(ranges, tt.span))
		})
	}
}

// The boundary matrix around a disabled middle line: a warning is enabled
// exactly when some part of it reaches an enabled range.
func TestIsSpanEnabled_DirectiveBoundaries(t *testing.T) {
	content := "# prelint: enable\n# prelint: disable\n# prelint: enable\n"
	// Line spans: [0,17) \n [18,36) \n [37,54) \n; directives at 2, 20, 39.
	lines := source.NewLines(content)
	ranges := ScanDirectives(lines, "relevant", DefaultMarker)

	tests := []struct {
		name string
		span source.Span
		want bool
	}{
		{"starts exactly at disable directive", source.Span{Start: 20, End: 39}, false},
		{"fully inside disabled", source.Span{Start: 21, End: 38}, false},
		{"reaches left into enabled", source.Span{Start: 19, End: 39}, true},
		{"reaches right into enabled", source.Span{Start: 20, End: 40}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSpanEnabled(ranges, tt.span))
		})
	}
}

func TestIsSpanEnabled_EmptyContent(t *testing.T) {
	ranges := ScanDirectives(source.NewLines(""), "test", DefaultMarker)
	assert.True(t, IsSpanEnabled(ranges, source.Span{Start: 0, End: 0}))
}

func TestIsSpanEnabled_NoDirectives(t *testing.T) {
	ranges := ScanDirectives(source.NewLines("Hello\n"), "test", DefaultMarker)

	assert.True(t, IsSpanEnabled(ranges, source.Span{Start: 0, End: 5}))
	assert.True(t, IsSpanEnabled(ranges, source.Span{Start: 0, End: 0}))
	assert.True(t, IsSpanEnabled(ranges, source.Span{Start: 3, End: 3}))
	assert.True(t, IsSpanEnabled(ranges, source.Span{Start: 6, End: 6}))
}
