package checks

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/prelint/pkg/lint"
	"github.com/yaklabco/prelint/pkg/source"
)

// Owner and file patterns follow the CODEOWNERS syntax: any run of
// characters that is not whitespace, "#", or a bare backslash, with
// backslash escapes allowed.
const codeownersTokenPattern = `(?:[^\n#\s\\]|\\[^\n])+`

var (
	codeownersLineRE  = regexp.MustCompile(`^(` + codeownersTokenPattern + `)((?:\s+` + codeownersTokenPattern + `)+)`)
	codeownersOwnerRE = regexp.MustCompile(`(\s+)(` + codeownersTokenPattern + `)`)
)

// RequiredOwners states which owners a file pattern must have in a
// CODEOWNERS file. Owner names may contain a {prefix} placeholder that
// expands from the project_prefix option.
type RequiredOwners struct {
	// File is the file pattern, matched verbatim against the pattern
	// column of each CODEOWNERS line.
	File string

	// Owners are the required owner names.
	Owners []string

	// AllowExtra permits owners beyond the required ones.
	AllowExtra bool
}

type codeownersOwner struct {
	name string
	pos  source.Span
	// posWithWS includes the leading whitespace, so removing the owner
	// does not leave a double space behind.
	posWithWS source.Span
}

type codeownersLine struct {
	file    string
	filePos source.Span
	owners  []codeownersOwner
}

// Codeowners validates a CODEOWNERS file against configured required
// owners: extraneous owners are removed, missing owners appended, and
// whole missing lines added at the end of the file.
type Codeowners struct {
	lint.BaseCheck
}

// NewCodeowners creates the codeowners check.
func NewCodeowners() *Codeowners {
	return &Codeowners{
		BaseCheck: lint.NewBaseCheck(
			"codeowners",
			"Verify that the CODEOWNERS file has the correct owners.",
			[]string{"repository"},
			true,
			`(^|/)CODEOWNERS$`,
		),
	}
}

// DefaultEnabled is false: the check is meaningless without a configured
// required-owners list.
func (c *Codeowners) DefaultEnabled() bool {
	return false
}

func parseCodeownersLine(line string, skip int) (codeownersLine, bool) {
	m := codeownersLineRE.FindStringSubmatchIndex(line)
	if m == nil {
		return codeownersLine{}, false
	}

	parsed := codeownersLine{
		file:    line[m[2]:m[3]],
		filePos: source.Span{Start: m[2] + skip, End: m[3] + skip},
	}

	ownersBlock := line[m[4]:m[5]]
	blockSkip := skip + m[4]
	for _, om := range codeownersOwnerRE.FindAllStringSubmatchIndex(ownersBlock, -1) {
		parsed.owners = append(parsed.owners, codeownersOwner{
			name:      ownersBlock[om[4]:om[5]],
			pos:       source.Span{Start: om[4] + blockSkip, End: om[5] + blockSkip},
			posWithWS: source.Span{Start: om[0] + blockSkip, End: om[5] + blockSkip},
		})
	}
	return parsed, true
}

// requiredOwnersFromOptions decodes the required list from the check's
// YAML options.
func requiredOwnersFromOptions(ctx *lint.CheckContext) ([]RequiredOwners, error) {
	raw := ctx.Option("required", nil)
	if raw == nil {
		return nil, nil
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("required option must be a list")
	}

	var required []RequiredOwners
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("required entries must be mappings")
		}
		var req RequiredOwners
		if file, ok := m["file"].(string); ok {
			req.File = file
		} else {
			return nil, fmt.Errorf("required entry is missing a file")
		}
		owners, _ := m["owners"].([]any)
		for _, owner := range owners {
			if s, ok := owner.(string); ok {
				req.Owners = append(req.Owners, s)
			}
		}
		if allowExtra, ok := m["allow_extra"].(bool); ok {
			req.AllowExtra = allowExtra
		}
		required = append(required, req)
	}
	return required, nil
}

func expandOwners(owners []string, prefix string) []string {
	expanded := make([]string, len(owners))
	for i, owner := range owners {
		expanded[i] = strings.ReplaceAll(owner, "{prefix}", prefix)
	}
	return expanded
}

func (c *Codeowners) Apply(ctx *lint.CheckContext) error {
	required, err := requiredOwnersFromOptions(ctx)
	if err != nil {
		return err
	}
	prefix := ctx.OptionString("project_prefix", "")

	linter := ctx.Linter
	content := linter.Content()

	foundFiles := make(map[string]bool)
	for _, span := range linter.Lines.Spans {
		line, ok := parseCodeownersLine(span.Text(content), span.Start)
		if !ok {
			continue
		}
		checkCodeownersLine(linter, line, required, prefix, foundFiles)
	}

	// Required files with no line at all get appended wholesale.
	var missing strings.Builder
	for _, req := range required {
		if foundFiles[req.File] {
			continue
		}
		missing.WriteString(req.File)
		for _, owner := range expandOwners(req.Owners, prefix) {
			missing.WriteString(" ")
			missing.WriteString(owner)
		}
		missing.WriteString("\n")
	}
	if missing.Len() > 0 {
		newText := missing.String()
		if len(content) != 0 && !strings.HasSuffix(content, "\n") {
			newText = "\n" + newText
		}
		end := source.Span{Start: len(content), End: len(content)}
		linter.AddWarning(source.Span{}, "missing required codeowners").
			AddReplacement(end, newText)
	}
	return nil
}

func checkCodeownersLine(linter *lint.Linter, line codeownersLine, required []RequiredOwners, prefix string, foundFiles map[string]bool) {
	for _, req := range required {
		if req.File != line.file {
			continue
		}
		requiredOwners := expandOwners(req.Owners, prefix)

		var warning *lint.Warning
		warn := func() *lint.Warning {
			if warning == nil {
				warning = linter.AddWarning(line.filePos,
					fmt.Sprintf("file '%s' has incorrect owners", line.file))
			}
			return warning
		}

		if !req.AllowExtra {
			for _, owner := range line.owners {
				if !slices.Contains(requiredOwners, owner.name) {
					warn().AddReplacement(owner.posWithWS, "")
				}
			}
		}

		var missing []string
		for _, requiredOwner := range requiredOwners {
			found := false
			for _, owner := range line.owners {
				if owner.name == requiredOwner {
					found = true
					break
				}
			}
			if !found {
				missing = append(missing, requiredOwner)
			}
		}
		if len(missing) > 0 {
			last := line.owners[len(line.owners)-1].pos.End
			warn().AddReplacement(
				source.Span{Start: last, End: last},
				" "+strings.Join(missing, " "))
		}

		foundFiles[line.file] = true
		break
	}
}
