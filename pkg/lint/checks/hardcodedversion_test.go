package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/prelint/pkg/config"
	"github.com/yaklabco/prelint/pkg/lint"
	"github.com/yaklabco/prelint/pkg/source"
)

func newHardcodedVersionAt(major, minor, patch int) *HardcodedVersion {
	check := NewHardcodedVersion()
	check.Version = func(_ context.Context, _ string) (ProjectVersion, error) {
		return ProjectVersion{Major: major, Minor: minor, Patch: patch}, nil
	}
	return check
}

func lit(start, end, major, minor int) versionLiteral {
	return versionLiteral{
		full:  source.Span{Start: start, End: end},
		major: major,
		minor: minor,
	}
}

func litPatch(start, end, major, minor, patch int) versionLiteral {
	l := lit(start, end, major, minor)
	l.patch = patch
	l.hasPatch = true
	return l
}

func TestFindVersionLiterals(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []versionLiteral
	}{
		{
			name:    "full contents",
			content: "26.02",
			want:    []versionLiteral{lit(0, 5, 26, 2)},
		},
		{
			name:    "text before",
			content: "a26.02",
			want:    []versionLiteral{lit(1, 6, 26, 2)},
		},
		{
			name:    "text after",
			content: "26.02a",
			want:    []versionLiteral{lit(0, 5, 26, 2)},
		},
		{
			name:    "text before and after",
			content: "a26.02a",
			want:    []versionLiteral{lit(1, 6, 26, 2)},
		},
		{
			name:    "multiple instances",
			content: "26.02\n26.02",
			want:    []versionLiteral{lit(0, 5, 26, 2), lit(6, 11, 26, 2)},
		},
		{
			name:    "patch version",
			content: "26.02.00",
			want:    []versionLiteral{litPatch(0, 8, 26, 2, 0)},
		},
		{
			name:    "number before",
			content: "026.02",
			want:    nil,
		},
		{
			name:    "number after",
			content: "26.020",
			want:    nil,
		},
		{
			// The trailing dot is still a valid boundary when the patch
			// component runs into further digits.
			name:    "patch runs long",
			content: "26.02.001",
			want:    []versionLiteral{lit(0, 5, 26, 2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findVersionLiterals(tt.content))
		})
	}
}

func TestParseVersionFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    ProjectVersion
		wantErr bool
	}{
		{
			name:    "full version",
			content: "26.02.00\n",
			want:    ProjectVersion{Major: 26, Minor: 2},
		},
		{
			name:    "zero major",
			content: "0.48.00\n",
			want:    ProjectVersion{Minor: 48},
		},
		{name: "missing newline", content: "26.02.00", wantErr: true},
		{name: "missing patch", content: "26.02\n", wantErr: true},
		{name: "empty", content: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVersionFile(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadVersionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "VERSION")
	require.NoError(t, os.WriteFile(path, []byte("26.02.00\n"), 0644))

	version, err := readVersionFile(path)
	require.NoError(t, err)
	assert.Equal(t, ProjectVersion{Major: 26, Minor: 2}, version)

	_, err = readVersionFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestHardcodedVersion_Match(t *testing.T) {
	content := "RAPIDS 26.02\n"
	linter := runCheck(t, newHardcodedVersionAt(26, 2, 0), "file.txt", content, nil)

	warnings := linter.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, source.Span{Start: 7, End: 12}, warnings[0].Span)
	assert.Equal(t, "do not hard-code version, read from VERSION file instead",
		warnings[0].Message)
	assert.False(t, warnings[0].HasFix())
}

func TestHardcodedVersion_PatchLiteral(t *testing.T) {
	linter := runCheck(t, newHardcodedVersionAt(26, 2, 0), "file.txt", "RAPIDS 26.02.00\n", nil)

	warnings := linter.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, source.Span{Start: 7, End: 15}, warnings[0].Span)
}

func TestHardcodedVersion_WrongVersion(t *testing.T) {
	check := newHardcodedVersionAt(26, 2, 0)
	linter := runCheck(t, check, "file.txt", "RAPIDS 26.02.01\n", nil)
	assert.Empty(t, linter.Warnings())

	linter = runCheck(t, check, "file.txt", "RAPIDS 26.04\n", nil)
	assert.Empty(t, linter.Warnings())
}

func TestHardcodedVersion_CustomVersionFile(t *testing.T) {
	check := NewHardcodedVersion()
	var resolvedPath string
	check.Version = func(_ context.Context, path string) (ProjectVersion, error) {
		resolvedPath = path
		return ProjectVersion{Major: 26, Minor: 2}, nil
	}

	linter := runCheck(t, check, "file.txt", "RAPIDS 26.02\n",
		map[string]any{"version_file": "RAPIDS_VERSION"})

	require.Len(t, linter.Warnings(), 1)
	assert.Equal(t, "do not hard-code version, read from RAPIDS_VERSION file instead",
		linter.Warnings()[0].Message)
	assert.Equal(t, "RAPIDS_VERSION", resolvedPath)
}

func TestHardcodedVersion_SkipsVersionFile(t *testing.T) {
	check := NewHardcodedVersion()
	check.Version = func(_ context.Context, _ string) (ProjectVersion, error) {
		t.Fatal("version resolved while linting the version file itself")
		return ProjectVersion{}, nil
	}

	linter := runCheck(t, check, "VERSION", "26.02.00\n", nil)
	assert.Empty(t, linter.Warnings())
}

func TestHardcodedVersion_CachesVersion(t *testing.T) {
	check := NewHardcodedVersion()
	calls := 0
	check.Version = func(_ context.Context, _ string) (ProjectVersion, error) {
		calls++
		return ProjectVersion{Major: 26, Minor: 2}, nil
	}

	runCheck(t, check, "a.txt", "26.02\n", nil)
	runCheck(t, check, "b.txt", "26.02\n", nil)
	assert.Equal(t, 1, calls)
}

func TestHardcodedVersion_ReadsVersionFile(t *testing.T) {
	dir := t.TempDir()
	versionFile := filepath.Join(dir, "VERSION")
	require.NoError(t, os.WriteFile(versionFile, []byte("26.02.00\n"), 0644))

	check := NewHardcodedVersion()
	linter := runCheck(t, check, "file.txt", "RAPIDS 26.02\n",
		map[string]any{"version_file": versionFile})
	require.Len(t, linter.Warnings(), 1)
}

func TestHardcodedVersion_MissingVersionFile(t *testing.T) {
	check := NewHardcodedVersion()
	linter := lint.NewLinter("file.txt", check.Name(), source.NewLines("26.02\n"))
	ctx := lint.NewCheckContext(context.Background(), linter, config.NewConfig(),
		&config.CheckConfig{Options: map[string]any{
			"version_file": filepath.Join(t.TempDir(), "VERSION"),
		}})

	require.Error(t, check.Apply(ctx))
}
