package checks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"

	"github.com/yaklabco/prelint/pkg/lint"
	"github.com/yaklabco/prelint/pkg/source"
)

// DefaultVersionFile is read when no version_file option is configured.
const DefaultVersionFile = "VERSION"

var (
	versionLiteralRE = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})(\.(\d{1,2}))?`)
	versionFileRE    = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{1,2})\n$`)
)

// ProjectVersion is a full major.minor.patch project version.
type ProjectVersion struct {
	Major int
	Minor int
	Patch int
}

// HardcodedVersion warns on major.minor[.patch] literals matching the
// project version, which must be read from the version file instead of
// being hard-coded.
type HardcodedVersion struct {
	lint.BaseCheck

	// Version resolves the project version instead of reading the
	// version file. path is the configured version file path. A nil
	// resolver reads and parses the file directly.
	Version func(ctx context.Context, path string) (ProjectVersion, error)

	mu    sync.Mutex
	cache map[string]versionResult
}

type versionResult struct {
	version ProjectVersion
	err     error
}

// NewHardcodedVersion creates the hardcoded-version check.
func NewHardcodedVersion() *HardcodedVersion {
	return &HardcodedVersion{
		BaseCheck: lint.NewBaseCheck(
			"hardcoded-version",
			"Verify that files do not contain hard-coded software versions.",
			[]string{"versioning"},
			false,
			"",
		),
	}
}

// DefaultEnabled is false: the check requires a version file to compare
// against.
func (c *HardcodedVersion) DefaultEnabled() bool {
	return false
}

type versionLiteral struct {
	full     source.Span
	major    int
	minor    int
	patch    int
	hasPatch bool
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// findVersionLiterals locates major.minor[.patch] literals that are not
// part of a longer digit run. A literal whose patch component runs into
// further digits still matches without the patch, as the trailing dot is
// a valid boundary.
func findVersionLiterals(content string) []versionLiteral {
	var found []versionLiteral
	for _, m := range versionLiteralRE.FindAllStringSubmatchIndex(content, -1) {
		start, end := m[0], m[1]
		if start > 0 && isDigit(content[start-1]) {
			continue
		}

		lit := versionLiteral{hasPatch: m[6] >= 0}
		lit.major, _ = strconv.Atoi(content[m[2]:m[3]])
		lit.minor, _ = strconv.Atoi(content[m[4]:m[5]])
		if lit.hasPatch {
			lit.patch, _ = strconv.Atoi(content[m[8]:m[9]])
		}

		if end < len(content) && isDigit(content[end]) {
			if !lit.hasPatch {
				continue
			}
			end = m[6]
			lit.hasPatch = false
			lit.patch = 0
		}

		lit.full = source.Span{Start: start, End: end}
		found = append(found, lit)
	}
	return found
}

// parseVersionFile validates that content is exactly one full
// major.minor.patch version followed by a newline.
func parseVersionFile(content string) (ProjectVersion, error) {
	m := versionFileRE.FindStringSubmatch(content)
	if m == nil {
		return ProjectVersion{}, fmt.Errorf("expected a single major.minor.patch version followed by a newline")
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return ProjectVersion{Major: major, Minor: minor, Patch: patch}, nil
}

func readVersionFile(path string) (ProjectVersion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProjectVersion{}, fmt.Errorf("read version file: %w", err)
	}
	version, err := parseVersionFile(string(data))
	if err != nil {
		return ProjectVersion{}, fmt.Errorf("version file %s: %w", path, err)
	}
	return version, nil
}

// projectVersion memoizes version file reads across the files of a run.
// The cache is keyed by absolute path, so relative version_file options
// resolve per working directory.
func (c *HardcodedVersion) projectVersion(ctx context.Context, path string) (ProjectVersion, error) {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.cache[key]; ok {
		return r.version, r.err
	}

	var r versionResult
	if c.Version != nil {
		r.version, r.err = c.Version(ctx, path)
	} else {
		r.version, r.err = readVersionFile(path)
	}
	if c.cache == nil {
		c.cache = make(map[string]versionResult)
	}
	c.cache[key] = r
	return r.version, r.err
}

func (c *HardcodedVersion) Apply(ctx *lint.CheckContext) error {
	versionFile := ctx.OptionString("version_file", DefaultVersionFile)

	// The version file is the one place the version belongs.
	if filepath.Clean(ctx.Linter.Path) == filepath.Clean(versionFile) {
		return nil
	}

	version, err := c.projectVersion(ctx.Ctx, versionFile)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("do not hard-code version, read from %s file instead", versionFile)
	for _, lit := range findVersionLiterals(ctx.Linter.Content()) {
		if lit.major != version.Major || lit.minor != version.Minor {
			continue
		}
		if lit.hasPatch && lit.patch != version.Patch {
			continue
		}
		ctx.Linter.AddWarning(lit.full, message)
	}
	return nil
}
