package source

import (
	"fmt"
	"sort"
)

// Terminator sentinels for newline style reporting.
const (
	LF   = "\n"
	CRLF = "\r\n"
	CR   = "\r"
)

// Position errors returned by LineForPos.
var (
	// ErrPosOutOfRange indicates an offset beyond the end of the buffer.
	ErrPosOutOfRange = fmt.Errorf("position is not in the buffer")

	// ErrPosInSeparator indicates an offset strictly inside a line
	// terminator sequence.
	ErrPosInSeparator = fmt.Errorf("position is inside a line separator")
)

// Lines is an immutable view of a buffer's physical lines. Each line span
// excludes its terminator characters; consecutive spans are separated by
// exactly the terminator. Built once per buffer, read-only afterward.
type Lines struct {
	// Content is the raw buffer the line table was built from.
	Content string

	// Spans holds one span per physical line, in order. A final
	// unterminated line is always present, possibly empty.
	Spans []Span

	// LFCount, CRLFCount and CRCount are the number of lines terminated
	// by each style.
	LFCount   int
	CRLFCount int
	CRCount   int

	// NewlineStyle is the dominant terminator. Ties resolve toward LF,
	// then CRLF, then CR; an empty buffer reports LF.
	NewlineStyle string
}

// NewLines scans content once and builds the line table. The scan is a
// two-state machine: a bare CR may terminate a line on its own or pair
// with a following LF into a CRLF terminator.
func NewLines(content string) *Lines {
	l := &Lines{Content: content}

	begin, end := 0, 0
	sawCR := false

	for i := 0; i < len(content); i++ {
		c := content[i]

		if sawCR {
			switch c {
			case '\n':
				// The pending CR pairs into a CRLF terminator.
				l.CRLFCount++
				begin = end + 1
				end = begin
				sawCR = false
			case '\r':
				// The pending CR stood alone; another line ends here.
				l.CRCount++
				l.Spans = append(l.Spans, Span{begin, end})
				begin = end + 1
				end = begin
			default:
				l.CRCount++
				end++
				sawCR = false
			}
			continue
		}

		switch c {
		case '\r':
			l.Spans = append(l.Spans, Span{begin, end})
			begin = end + 1
			end = begin
			sawCR = true
		case '\n':
			l.LFCount++
			l.Spans = append(l.Spans, Span{begin, end})
			begin = end + 1
			end = begin
		default:
			end++
		}
	}

	if sawCR {
		l.CRCount++
	}

	// Final unterminated line, possibly empty.
	l.Spans = append(l.Spans, Span{begin, end})

	l.NewlineStyle = LF
	best := l.LFCount
	if l.CRLFCount > best {
		l.NewlineStyle = CRLF
		best = l.CRLFCount
	}
	if l.CRCount > best {
		l.NewlineStyle = CR
	}

	return l
}

// LineCount returns the number of physical lines.
func (l *Lines) LineCount() int {
	return len(l.Spans)
}

// LineText returns the text of the 0-based line, excluding its terminator.
func (l *Lines) LineText(line int) string {
	sp := l.Spans[line]
	return l.Content[sp.Start:sp.End]
}

// LineForPos returns the 0-based line whose span contains pos, where both
// endpoints of a line span are valid positions (a line's end offset is
// shared with its terminator). It fails if pos is strictly inside a
// terminator sequence or beyond the buffer.
func (l *Lines) LineForPos(pos int) (int, error) {
	// First line whose end reaches pos.
	idx := sort.Search(len(l.Spans), func(i int) bool {
		return l.Spans[i].End >= pos
	})

	if idx >= len(l.Spans) {
		return 0, fmt.Errorf("%w: %d", ErrPosOutOfRange, pos)
	}
	if pos < l.Spans[idx].Start {
		return 0, fmt.Errorf("%w: %d", ErrPosInSeparator, pos)
	}

	return idx, nil
}
