// Package checks contains the built-in prelint checks. Each check is a
// thin policy layer over pkg/lint: it inspects the buffer through the
// Linter and registers warnings with suggested replacements.
package checks

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/yaklabco/prelint/pkg/lint"
	"github.com/yaklabco/prelint/pkg/source"
)

// DefaultCopyrightHolder is used when no holder option is configured.
const DefaultCopyrightHolder = "NVIDIA CORPORATION"

// Copyright verifies that copyright notices are present and that their
// year ranges extend to the current year. When a previous revision of the
// file is available and only the notice changed, the notice bump is
// flagged as spurious and reverted instead.
type Copyright struct {
	lint.BaseCheck

	// Previous resolves the previous revision of a file's content, for
	// example from the merge base of a pull request. Returns found=false
	// when the file is new. A nil resolver means no history is
	// available and every notice is checked against the current year.
	Previous func(ctx context.Context, path string) (content string, found bool, err error)

	// Now is the clock used to determine the current year. Defaults to
	// time.Now.
	Now func() time.Time
}

// NewCopyright creates the copyright check.
func NewCopyright() *Copyright {
	return &Copyright{
		BaseCheck: lint.NewBaseCheck(
			"copyright",
			"Verify that copyright notices exist and are up to date.",
			[]string{"legal"},
			true,
			"",
		),
		Now: time.Now,
	}
}

// copyrightPattern matches one notice. Submatch indices: 1 = years,
// 2 = first year, 4 = last year. The holder is matched case-insensitively
// but rewritten canonically in fixes.
func copyrightPattern(holder string) *regexp.Regexp {
	return regexp.MustCompile(
		`Copyright *(?:\(c\))? *((\d{4})(-(\d{4}))?),? *(?i:` + regexp.QuoteMeta(holder) + `)`,
	)
}

type copyrightMatch struct {
	full  source.Span
	years source.Span
	first int
	last  int // equal to first when the notice has a single year
}

func matchCopyright(re *regexp.Regexp, content string) []copyrightMatch {
	var matches []copyrightMatch
	for _, m := range re.FindAllStringSubmatchIndex(content, -1) {
		first, _ := strconv.Atoi(content[m[4]:m[5]])
		last := first
		if m[8] >= 0 {
			last, _ = strconv.Atoi(content[m[8]:m[9]])
		}
		matches = append(matches, copyrightMatch{
			full:  source.Span{Start: m[0], End: m[1]},
			years: source.Span{Start: m[2], End: m[3]},
			first: first,
			last:  last,
		})
	}
	return matches
}

// stripCopyright cuts the notices out of content, returning the pieces
// between them. Two revisions with equal pieces differ only in their
// notices.
func stripCopyright(content string, matches []copyrightMatch) []string {
	pieces := make([]string, 0, len(matches)+1)
	start := 0
	for _, m := range matches {
		pieces = append(pieces, content[start:m.full.Start])
		start = m.full.End
	}
	return append(pieces, content[start:])
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (c *Copyright) Apply(ctx *lint.CheckContext) error {
	holder := ctx.OptionString("holder", DefaultCopyrightHolder)
	re := copyrightPattern(holder)

	var oldContent *string
	if c.Previous != nil {
		content, found, err := c.Previous(ctx.Ctx, ctx.Linter.Path)
		if err != nil {
			return fmt.Errorf("resolve previous content: %w", err)
		}
		if found {
			oldContent = &content
		}
	}

	c.applyToContent(ctx.Linter, re, holder, oldContent)
	return nil
}

func (c *Copyright) applyToContent(linter *lint.Linter, re *regexp.Regexp, holder string, oldContent *string) {
	content := linter.Content()
	if oldContent != nil && content == *oldContent {
		return
	}

	now := c.Now
	if now == nil {
		now = time.Now
	}
	currentYear := now().Year()

	newMatches := matchCopyright(re, content)

	if oldContent != nil {
		oldMatches := matchCopyright(re, *oldContent)
		if equalStrings(stripCopyright(*oldContent, oldMatches), stripCopyright(content, newMatches)) {
			// Only the notices changed. Any altered notice is a spurious
			// bump and is reverted.
			for i := range min(len(oldMatches), len(newMatches)) {
				oldText := oldMatches[i].full.Text(*oldContent)
				newText := newMatches[i].full.Text(content)
				if oldText == newText {
					continue
				}
				warnSpan := newMatches[i].years
				if oldMatches[i].years.Text(*oldContent) == newMatches[i].years.Text(content) {
					warnSpan = newMatches[i].full
				}
				linter.AddWarning(warnSpan,
					"copyright is not out of date and should not be updated").
					AddReplacement(newMatches[i].full, oldText)
			}
			return
		}
	}

	if len(newMatches) == 0 {
		linter.AddWarning(source.Span{}, "no copyright notice found")
		return
	}
	for _, m := range newMatches {
		if m.last < currentYear {
			linter.AddWarning(m.years, "copyright is out of date").
				AddReplacement(m.full, fmt.Sprintf(
					"Copyright (c) %d-%d, %s", m.first, currentYear, holder))
		}
	}
}
