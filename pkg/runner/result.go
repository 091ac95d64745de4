package runner

import (
	"errors"

	"github.com/yaklabco/prelint/pkg/lint"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the file that was processed.
	Path string

	// Result is the pipeline result. Nil when processing failed.
	Result *lint.PipelineResult

	// Error is set when the file could not be processed. Binary files
	// are counted as skipped, not errored.
	Error error
}

// Stats aggregates a run.
type Stats struct {
	// FilesDiscovered is the number of files found by discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files linted successfully.
	FilesProcessed int

	// FilesSkipped is the number of files refused as binary.
	FilesSkipped int

	// FilesErrored is the number of files that failed to process.
	FilesErrored int

	// FilesWithWarnings is the number of files with at least one
	// surviving warning.
	FilesWithWarnings int

	// FilesFixed is the number of files rewritten with fixes.
	FilesFixed int

	// Warnings is the total number of surviving warnings.
	Warnings int

	// Suppressed is the number of warnings discarded by directives.
	Suppressed int

	// Fixable is the number of surviving warnings carrying a fix.
	Fixable int
}

// Result is the outcome of a whole run, with files in deterministic
// path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasWarnings reports whether any file produced warnings.
func (r *Result) HasWarnings() bool {
	return r != nil && r.Stats.Warnings > 0
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		if errors.Is(outcome.Error, lint.ErrBinaryFile) {
			r.Stats.FilesSkipped++
		} else {
			r.Stats.FilesErrored++
		}
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	warnings := len(outcome.Result.Warnings)
	r.Stats.Warnings += warnings
	r.Stats.Suppressed += outcome.Result.Suppressed
	if warnings > 0 {
		r.Stats.FilesWithWarnings++
	}
	for _, w := range outcome.Result.Warnings {
		if w.HasFix() {
			r.Stats.Fixable++
		}
	}
	if outcome.Result.Written {
		r.Stats.FilesFixed++
	}
}
