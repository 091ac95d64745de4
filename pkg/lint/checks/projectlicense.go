package checks

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/yaklabco/prelint/pkg/lint"
	"github.com/yaklabco/prelint/pkg/source"
)

// DefaultPreferredLicense is the license written by fixes when none is
// configured.
const DefaultPreferredLicense = "Apache-2.0"

var (
	projectHeaderRE = regexp.MustCompile(`(?m)^\[project\][ \t]*\r?\n`)
	tableHeaderRE   = regexp.MustCompile(`(?m)^\[`)
	licenseLineRE   = regexp.MustCompile(`(?m)^[ \t]*license[ \t]*=[ \t]*(.*)$`)
	tomlStringRE    = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
)

// pyprojectDoc mirrors the part of pyproject.toml the check cares about.
// The license field is either a bare SPDX string or an inline table with
// a text key.
type pyprojectDoc struct {
	Project *struct {
		License any `toml:"license"`
	} `toml:"project"`
}

// ProjectLicense verifies the project.license value of pyproject.toml:
// a missing table or key gets an insertion fix, an unacceptable license
// is replaced with the preferred one.
type ProjectLicense struct {
	lint.BaseCheck
}

// NewProjectLicense creates the project-license check.
func NewProjectLicense() *ProjectLicense {
	return &ProjectLicense{
		BaseCheck: lint.NewBaseCheck(
			"project-license",
			"Verify that pyproject.toml declares an acceptable license.",
			[]string{"legal", "dependencies"},
			true,
			`(^|/)pyproject\.toml$`,
		),
	}
}

// DefaultEnabled is false: which licenses are acceptable is a project
// policy decision.
func (c *ProjectLicense) DefaultEnabled() bool {
	return false
}

func (c *ProjectLicense) Apply(ctx *lint.CheckContext) error {
	preferred := ctx.OptionString("preferred", DefaultPreferredLicense)
	acceptable := ctx.OptionStringSlice("acceptable", []string{preferred})
	if !slices.Contains(acceptable, preferred) {
		acceptable = append(acceptable, preferred)
	}

	linter := ctx.Linter
	content := linter.Content()

	var doc pyprojectDoc
	if _, err := toml.Decode(content, &doc); err != nil {
		return fmt.Errorf("parse toml: %w", err)
	}

	license, ok := licenseText(doc)
	if !ok {
		c.addMissingLicense(linter, preferred)
		return nil
	}
	if slices.Contains(acceptable, license) {
		return nil
	}

	span, ok := licenseValueSpan(content)
	if !ok {
		// The value exists but its text form is something the fixer
		// cannot rewrite safely (multiline string, exotic layout).
		linter.AddWarning(source.Span{},
			fmt.Sprintf("license should be %q", preferred))
		return nil
	}
	linter.AddWarning(span, fmt.Sprintf("license should be %q", preferred)).
		AddReplacement(span, fmt.Sprintf("%q", preferred))
	return nil
}

// licenseText extracts the license string from either form: the PEP 621
// SPDX string or the legacy { text = "..." } table.
func licenseText(doc pyprojectDoc) (string, bool) {
	if doc.Project == nil || doc.Project.License == nil {
		return "", false
	}
	switch v := doc.Project.License.(type) {
	case string:
		return v, true
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			return text, true
		}
	}
	return "", false
}

// addMissingLicense inserts a license declaration: into the existing
// [project] table right after its header, or as a whole new table at the
// end of the file.
func (c *ProjectLicense) addMissingLicense(linter *lint.Linter, preferred string) {
	content := linter.Content()
	msg := fmt.Sprintf("add project.license with value { text = %q }", preferred)

	if m := projectHeaderRE.FindStringIndex(content); m != nil {
		pos := source.Span{Start: m[1], End: m[1]}
		linter.AddWarning(pos, msg).
			AddReplacement(pos, fmt.Sprintf("license = { text = %q }\n", preferred))
		return
	}

	newText := fmt.Sprintf("[project]\nlicense = { text = %q }\n", preferred)
	if len(content) != 0 && !strings.HasSuffix(content, "\n") {
		newText = "\n" + newText
	}
	end := source.Span{Start: len(content), End: len(content)}
	linter.AddWarning(end, msg).AddReplacement(end, newText)
}

// licenseValueSpan locates the string literal holding the license value
// inside the [project] table. For the inline-table form the span covers
// only the text value, so the fix rewrites the license and nothing else.
func licenseValueSpan(content string) (source.Span, bool) {
	header := projectHeaderRE.FindStringIndex(content)
	if header == nil {
		return source.Span{}, false
	}
	tableEnd := len(content)
	if next := tableHeaderRE.FindStringIndex(content[header[1]:]); next != nil {
		tableEnd = header[1] + next[0]
	}

	table := content[header[1]:tableEnd]
	line := licenseLineRE.FindStringSubmatchIndex(table)
	if line == nil {
		return source.Span{}, false
	}

	value := table[line[2]:line[3]]
	literal := tomlStringRE.FindStringIndex(value)
	if literal == nil {
		return source.Span{}, false
	}

	start := header[1] + line[2] + literal[0]
	return source.Span{Start: start, End: start + (literal[1] - literal[0])}, true
}
