package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/prelint/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string        `json:"path"`
	Warnings []JSONWarning `json:"warnings"`
	Modified bool          `json:"modified,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// JSONWarning represents a single warning.
type JSONWarning struct {
	Check        string            `json:"check"`
	Message      string            `json:"message"`
	StartOffset  int               `json:"startOffset"`
	EndOffset    int               `json:"endOffset"`
	Line         int               `json:"line,omitempty"`
	Column       int               `json:"column,omitempty"`
	Fixable      bool              `json:"fixable"`
	Notes        []JSONNote        `json:"notes,omitempty"`
	Replacements []JSONReplacement `json:"replacements,omitempty"`
}

// JSONNote represents an explanatory note attached to a warning.
type JSONNote struct {
	Message     string `json:"message"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
}

// JSONReplacement represents a suggested fix.
type JSONReplacement struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked      int `json:"filesChecked"`
	FilesWithWarnings int `json:"filesWithWarnings"`
	FilesFixed        int `json:"filesFixed"`
	FilesSkipped      int `json:"filesSkipped"`
	FilesErrored      int `json:"filesErrored"`
	Warnings          int `json:"warnings"`
	Suppressed        int `json:"suppressed"`
	Fixable           int `json:"fixable"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Warnings, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:     displayPath(r.opts.WorkingDir, file.Path),
			Warnings: make([]JSONWarning, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if file.Result != nil && file.Result.FileResult != nil {
			fr := file.Result.FileResult
			fileResult.Modified = file.Result.Written

			for _, w := range fr.Warnings {
				jw := JSONWarning{
					Check:       w.Check,
					Message:     w.Message,
					StartOffset: w.Span.Start,
					EndOffset:   w.Span.End,
					Fixable:     w.HasFix(),
				}
				if line, err := fr.Lines.LineForPos(w.Span.Start); err == nil {
					jw.Line = line + 1
					jw.Column = w.Span.Start - fr.Lines.Spans[line].Start + 1
				}
				for _, note := range w.Notes {
					jw.Notes = append(jw.Notes, JSONNote{
						Message:     note.Message,
						StartOffset: note.Span.Start,
						EndOffset:   note.Span.End,
					})
				}
				for _, rep := range w.Replacements {
					jw.Replacements = append(jw.Replacements, JSONReplacement{
						StartOffset: rep.Span.Start,
						EndOffset:   rep.Span.End,
						NewText:     rep.NewText,
					})
				}
				fileResult.Warnings = append(fileResult.Warnings, jw)
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:      stats.FilesProcessed,
		FilesWithWarnings: stats.FilesWithWarnings,
		FilesFixed:        stats.FilesFixed,
		FilesSkipped:      stats.FilesSkipped,
		FilesErrored:      stats.FilesErrored,
		Warnings:          stats.Warnings,
		Suppressed:        stats.Suppressed,
		Fixable:           stats.Fixable,
	}
	return output
}
