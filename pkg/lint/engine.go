package lint

import (
	"context"
	"errors"
	"fmt"
	"sort"

	enry "github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/prelint/pkg/config"
	"github.com/yaklabco/prelint/pkg/fix"
	"github.com/yaklabco/prelint/pkg/source"
)

// ErrBinaryFile indicates that a file was skipped because its content is
// not text.
var ErrBinaryFile = errors.New("binary file")

// CheckWarning is a warning attributed to the check that produced it.
type CheckWarning struct {
	// Check is the name of the check that produced the warning.
	Check string

	*Warning
}

// FileResult holds the outcome of linting one file.
type FileResult struct {
	// Path is the file that was linted.
	Path string

	// Lines is the line model built from the file content.
	Lines *source.Lines

	// Warnings are the enabled warnings from all checks, in span order.
	Warnings []CheckWarning

	// Suppressed counts warnings discarded by directives.
	Suppressed int

	// Fixed is the content after applying replacements, when fixing.
	Fixed string

	// Modified is true when Fixed differs from the original content.
	Modified bool

	// CheckErrors records internal failures per check. A failed check
	// contributes no warnings but does not abort the other checks.
	CheckErrors map[string]error
}

// HasWarnings reports whether any enabled warnings were produced.
func (fr *FileResult) HasWarnings() bool {
	return len(fr.Warnings) > 0
}

// Engine runs resolved checks against file contents.
type Engine struct {
	checks []*ResolvedCheck
	marker string
}

// NewEngine creates an Engine from the resolved check set. An empty
// marker selects the built-in default.
func NewEngine(checks []*ResolvedCheck, marker string) *Engine {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Engine{checks: checks, marker: marker}
}

// LintFile runs every enabled, matching check over content and collects
// the surviving warnings. When fixing, replacements from auto-fix checks
// are applied and the result is returned in FileResult.Fixed; a
// replacement conflict is returned as an error alongside the unfixed
// result.
func (e *Engine) LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	if enry.IsBinary(content) {
		return nil, fmt.Errorf("%s: %w", path, ErrBinaryFile)
	}

	text := string(content)
	lines := source.NewLines(text)

	result := &FileResult{
		Path:        path,
		Lines:       lines,
		CheckErrors: make(map[string]error),
	}

	var fixReps []fix.Replacement

	for _, rc := range e.checks {
		if !rc.Enabled || !rc.Matches(path) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		linter := NewLinter(path, rc.Check.Name(), lines, WithMarker(e.marker))
		checkCtx := NewCheckContext(ctx, linter, cfg, rc.Config)

		if err := rc.Check.Apply(checkCtx); err != nil {
			result.CheckErrors[rc.Check.Name()] = err
			continue
		}

		enabled := linter.EnabledWarnings()
		result.Suppressed += len(linter.Warnings()) - len(enabled)

		for _, w := range enabled {
			result.Warnings = append(result.Warnings, CheckWarning{
				Check:   rc.Check.Name(),
				Warning: w,
			})
			if rc.AutoFix {
				fixReps = append(fixReps, w.Replacements...)
			}
		}
	}

	sort.SliceStable(result.Warnings, func(i, j int) bool {
		a, b := result.Warnings[i].Span, result.Warnings[j].Span
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})

	if len(fixReps) > 0 {
		fixed, err := fix.Apply(text, fixReps)
		if err != nil {
			return result, fmt.Errorf("%s: %w", path, err)
		}
		result.Fixed = fixed
		result.Modified = fixed != text
	}

	return result, nil
}
