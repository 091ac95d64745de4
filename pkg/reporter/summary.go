package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/prelint/pkg/runner"
)

// formatSummary builds the one-line run summary.
func (r *TextReporter) formatSummary(stats runner.Stats) string {
	if stats.Warnings == 0 && stats.FilesErrored == 0 {
		return r.styles.Success.Render(fmt.Sprintf("No issues found in %s.",
			plural(stats.FilesProcessed, "file")))
	}

	parts := []string{
		fmt.Sprintf("%s checked", plural(stats.FilesProcessed, "file")),
		fmt.Sprintf("%s (%d fixable)", plural(stats.Warnings, "warning"), stats.Fixable),
	}
	if stats.Suppressed > 0 {
		parts = append(parts, fmt.Sprintf("%d suppressed", stats.Suppressed))
	}
	if stats.FilesFixed > 0 {
		parts = append(parts, fmt.Sprintf("%s fixed", plural(stats.FilesFixed, "file")))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", stats.FilesSkipped))
	}

	line := strings.Join(parts, ", ")
	if stats.FilesErrored > 0 {
		line += ", " + r.styles.Failure.Render(plural(stats.FilesErrored, "error"))
	}
	return line
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
