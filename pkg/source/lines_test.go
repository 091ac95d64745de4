package source_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/prelint/pkg/source"
)

// longContents exercises every terminator pairing: lone LF, lone CR, CRLF,
// and every adjacent combination of the three.
const longContents = "line 1\nline 2\rline 3\r\nline 4\r\n\nline 6\r\n\r\nline 8\n\r\n" +
	"line 10\r\r\nline 12\r\n\rline 14\n\nline 16\r\rline 18\n\rline 20"

func TestNewLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantSpans []source.Span
		wantLF    int
		wantCRLF  int
		wantCR    int
		wantStyle string
	}{
		{
			name:      "lf",
			content:   "line 1\n",
			wantSpans: []source.Span{{0, 6}, {7, 7}},
			wantLF:    1,
			wantStyle: "\n",
		},
		{
			name:      "crlf",
			content:   "line 1\r\n",
			wantSpans: []source.Span{{0, 6}, {8, 8}},
			wantCRLF:  1,
			wantStyle: "\r\n",
		},
		{
			name:      "cr",
			content:   "line 1\r",
			wantSpans: []source.Span{{0, 6}, {7, 7}},
			wantCR:    1,
			wantStyle: "\r",
		},
		{
			name:      "empty",
			content:   "",
			wantSpans: []source.Span{{0, 0}},
			wantStyle: "\n",
		},
		{
			name:    "complex",
			content: longContents,
			wantSpans: []source.Span{
				{0, 6}, {7, 13}, {14, 20}, {22, 28}, {30, 30},
				{31, 37}, {39, 39}, {41, 47}, {48, 48}, {50, 57},
				{58, 58}, {60, 67}, {69, 69}, {70, 77}, {78, 78},
				{79, 86}, {87, 87}, {88, 95}, {96, 96}, {97, 104},
			},
			wantLF:    6,
			wantCRLF:  7,
			wantCR:    6,
			wantStyle: "\r\n",
		},
		{
			name:      "tied counts prefer lf",
			content:   "a\nb\nc\r\nd\r\ne",
			wantSpans: []source.Span{{0, 1}, {2, 3}, {4, 5}, {7, 8}, {10, 11}},
			wantLF:    2,
			wantCRLF:  2,
			wantStyle: "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := source.NewLines(tt.content)

			if len(lines.Spans) != len(tt.wantSpans) {
				t.Fatalf("got %d lines, want %d: %v", len(lines.Spans), len(tt.wantSpans), lines.Spans)
			}
			for i, sp := range lines.Spans {
				if sp != tt.wantSpans[i] {
					t.Errorf("line %d span = %v, want %v", i, sp, tt.wantSpans[i])
				}
			}

			if lines.LFCount != tt.wantLF || lines.CRLFCount != tt.wantCRLF || lines.CRCount != tt.wantCR {
				t.Errorf("counts = lf:%d crlf:%d cr:%d, want lf:%d crlf:%d cr:%d",
					lines.LFCount, lines.CRLFCount, lines.CRCount, tt.wantLF, tt.wantCRLF, tt.wantCR)
			}
			if lines.NewlineStyle != tt.wantStyle {
				t.Errorf("NewlineStyle = %q, want %q", lines.NewlineStyle, tt.wantStyle)
			}
		})
	}
}

func TestNewLines_SpansPartitionBuffer(t *testing.T) {
	t.Parallel()

	for _, content := range []string{"", "a", longContents, "x\r\ny\rz\n"} {
		lines := source.NewLines(content)

		// Reconstruct the buffer from line spans plus the separator text
		// between consecutive spans.
		var rebuilt string
		for i, sp := range lines.Spans {
			rebuilt += content[sp.Start:sp.End]
			if i+1 < len(lines.Spans) {
				rebuilt += content[sp.End:lines.Spans[i+1].Start]
			}
		}

		if rebuilt != content {
			t.Errorf("rebuilt %q != original %q", rebuilt, content)
		}
	}
}

func TestLineForPos(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		pos      int
		wantLine int
		wantErr  error
	}{
		{name: "start of buffer", content: longContents, pos: 0, wantLine: 0},
		{name: "mid line", content: longContents, pos: 3, wantLine: 0},
		{name: "line end boundary", content: longContents, pos: 6, wantLine: 0},
		{name: "second line", content: longContents, pos: 10, wantLine: 1},
		{name: "inside crlf", content: longContents, pos: 21, wantErr: source.ErrPosInSeparator},
		{name: "after blank line", content: longContents, pos: 34, wantLine: 5},
		{name: "last line start", content: longContents, pos: 97, wantLine: 19},
		{name: "end of buffer", content: longContents, pos: 104, wantLine: 19},
		{name: "past end of buffer", content: longContents, pos: 200, wantErr: source.ErrPosOutOfRange},
		{name: "unterminated start", content: "line 1", pos: 0, wantLine: 0},
		{name: "unterminated mid", content: "line 1", pos: 3, wantLine: 0},
		{name: "unterminated end", content: "line 1", pos: 6, wantLine: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := source.NewLines(tt.content)
			line, err := lines.LineForPos(tt.pos)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LineForPos(%d) error = %v, want %v", tt.pos, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LineForPos(%d) unexpected error: %v", tt.pos, err)
			}
			if line != tt.wantLine {
				t.Errorf("LineForPos(%d) = %d, want %d", tt.pos, line, tt.wantLine)
			}
		})
	}
}

func TestLineForPos_AllValidOffsets(t *testing.T) {
	t.Parallel()

	lines := source.NewLines(longContents)

	for pos := 0; pos <= len(longContents); pos++ {
		inLine := false
		for _, sp := range lines.Spans {
			if sp.Start <= pos && pos <= sp.End {
				inLine = true
				break
			}
		}

		line, err := lines.LineForPos(pos)
		if inLine {
			if err != nil {
				t.Errorf("LineForPos(%d) unexpected error: %v", pos, err)
				continue
			}
			sp := lines.Spans[line]
			if pos < sp.Start || pos > sp.End {
				t.Errorf("LineForPos(%d) = %d with span %v not containing pos", pos, line, sp)
			}
		} else if !errors.Is(err, source.ErrPosInSeparator) {
			t.Errorf("LineForPos(%d) error = %v, want ErrPosInSeparator", pos, err)
		}
	}
}
