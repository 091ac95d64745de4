package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/prelint/internal/ui/pretty"
	"github.com/yaklabco/prelint/pkg/fix"
	"github.com/yaklabco/prelint/pkg/runner"
	"github.com/yaklabco/prelint/pkg/source"
)

// TextReporter formats results as styled terminal output. Each warning is
// shown with its file position, the affected source line with the span
// highlighted, any notes, and a -/+ preview for each suggested fix.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		fr := file.Result.FileResult
		total += len(fr.Warnings)
		r.reportFile(path, file)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.formatSummary(result.Stats))
	}

	return total, nil
}

// reportFile writes the warnings and check errors for one file.
func (r *TextReporter) reportFile(path string, file runner.FileOutcome) {
	fr := file.Result.FileResult

	checkNames := make([]string, 0, len(fr.CheckErrors))
	for name := range fr.CheckErrors {
		checkNames = append(checkNames, name)
	}
	sort.Strings(checkNames)
	for _, name := range checkNames {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("check %s failed: %v", name, fr.CheckErrors[name])),
		)
	}

	for _, w := range fr.Warnings {
		suffix := " " + r.styles.CheckName.Render("["+w.Check+"]")
		r.printNote(fr.Lines, path, r.styles.Warning.Render("warning:"), w.Span, w.Message+suffix, nil)

		for _, note := range w.Notes {
			r.printNote(fr.Lines, path, r.styles.Note.Render("note:"), note.Span, note.Message, nil)
		}

		for _, rep := range w.Replacements {
			preview, msg := r.replacementPreview(fr.Lines, rep, file.Result.Written)
			r.printNote(fr.Lines, path, r.styles.Note.Render("note:"), rep.Span, msg, &preview)
		}
	}
}

// replacementPreview returns the single-line preview text for a
// replacement and the note message describing it. A fix that spans
// multiple lines or inserts a newline cannot be previewed in full.
func (r *TextReporter) replacementPreview(lines *source.Lines, rep fix.Replacement, fixApplied bool) (string, string) {
	preview := rep.NewText
	long := false
	if i := strings.IndexAny(preview, "\r\n"); i >= 0 {
		preview = preview[:i]
		long = true
	}
	if line, err := lines.LineForPos(rep.Span.Start); err == nil && rep.Span.End > lines.Spans[line].End {
		long = true
	}

	var msg string
	switch {
	case fixApplied && long:
		msg = "suggested fix applied but is too long to display"
	case fixApplied:
		msg = "suggested fix applied"
	case long:
		msg = "suggested fix is too long to display, use --fix to apply it"
	default:
		msg = "suggested fix"
	}
	return preview, msg
}

// printNote writes one annotation: position header, highlighted source
// line (with a -/+ preview when replacement text is given), and the
// message itself, followed by a blank line.
func (r *TextReporter) printNote(lines *source.Lines, path, kind string, sp source.Span, msg string, preview *string) {
	line, err := lines.LineForPos(sp.Start)
	if err != nil {
		fmt.Fprintf(r.bw, "In file %s:\n", r.styles.FilePath.Render(path))
	} else {
		lineSpan := lines.Spans[line]
		col := sp.Start - lineSpan.Start + 1
		fmt.Fprintf(r.bw, "In file %s:\n",
			r.styles.FilePath.Render(fmt.Sprintf("%s:%d:%d", path, line+1, col)))
		r.printHighlighted(lines, line, sp, preview)
	}

	fmt.Fprintf(r.bw, "%s %s\n\n", kind, msg)
}

// printHighlighted writes the source line containing the span, bolding
// the part inside it. A span reaching past the line is clipped at the
// line end. With a preview, a removal and an addition line are written
// instead.
func (r *TextReporter) printHighlighted(lines *source.Lines, line int, sp source.Span, preview *string) {
	lineSpan := lines.Spans[line]
	left := sp.Start
	right := sp.End
	if endLine, err := lines.LineForPos(sp.End); err != nil || endLine != line {
		right = lineSpan.End
	}

	content := lines.Content
	prefix := content[lineSpan.Start:left]
	marked := content[left:right]
	rest := content[right:lineSpan.End]

	if preview == nil {
		fmt.Fprintf(r.bw, " %s%s%s\n", prefix, r.styles.Highlight.Render(marked), rest)
		return
	}
	fmt.Fprintln(r.bw, r.styles.Remove.Render("-"+prefix+marked+rest))
	fmt.Fprintln(r.bw, r.styles.Add.Render("+"+prefix+*preview+rest))
}

// displayPath makes path relative to workingDir when it lies beneath it.
func displayPath(workingDir, path string) string {
	if workingDir == "" {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
