package lint

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/prelint/pkg/config"
)

// shoutCheck flags every "!" and offers to delete it.
type shoutCheck struct {
	BaseCheck
}

func newShoutCheck() *shoutCheck {
	return &shoutCheck{
		BaseCheck: NewBaseCheck("shout", "Flags exclamation marks.", nil, true, ""),
	}
}

func (c *shoutCheck) Apply(ctx *CheckContext) error {
	content := ctx.Linter.Content()
	for i, r := range content {
		if r == '!' {
			span := sp(i, i+1)
			ctx.Linter.AddWarning(span, "don't shout").AddReplacement(span, "")
		}
	}
	return nil
}

// failingCheck always reports an internal error.
type failingCheck struct {
	BaseCheck
}

func (c *failingCheck) Apply(_ *CheckContext) error {
	return errors.New("boom")
}

func engineFor(cfg *config.Config, checks ...Check) *Engine {
	resolved := make([]*ResolvedCheck, 0, len(checks))
	for _, check := range checks {
		var re *regexp.Regexp
		if p := check.DefaultFilePattern(); p != "" {
			re = regexp.MustCompile(p)
		}
		resolved = append(resolved, &ResolvedCheck{
			Check:       check,
			Enabled:     true,
			AutoFix:     cfg.Fix && check.CanFix(),
			FilePattern: re,
		})
	}
	return NewEngine(resolved, cfg.Marker)
}

func TestEngine_LintFile(t *testing.T) {
	cfg := config.NewConfig()
	engine := engineFor(cfg, newShoutCheck())

	result, err := engine.LintFile(context.Background(), "a.txt", []byte("Hello! world!\n"), cfg)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 2)
	assert.Equal(t, "shout", result.Warnings[0].Check)
	assert.Equal(t, sp(5, 6), result.Warnings[0].Span)
	assert.Equal(t, sp(12, 13), result.Warnings[1].Span)
	assert.False(t, result.Modified)
	assert.Empty(t, result.Fixed)
	assert.Equal(t, 0, result.Suppressed)
}

func TestEngine_LintFileFix(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Fix = true
	engine := engineFor(cfg, newShoutCheck())

	result, err := engine.LintFile(context.Background(), "a.txt", []byte("Hello! world!\n"), cfg)
	require.NoError(t, err)
	assert.True(t, result.Modified)
	assert.Equal(t, "Hello world\n", result.Fixed)
}

func TestEngine_DirectiveSuppression(t *testing.T) {
	cfg := config.NewConfig()
	content := "Hello!\n# prelint: disable\nworld!\n"
	engine := engineFor(cfg, newShoutCheck())

	result, err := engine.LintFile(context.Background(), "a.txt", []byte(content), cfg)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, sp(5, 6), result.Warnings[0].Span)
	assert.Equal(t, 1, result.Suppressed)
}

func TestEngine_SuppressedWarningsNotFixed(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Fix = true
	content := "# prelint: disable\nHello!\n"
	engine := engineFor(cfg, newShoutCheck())

	result, err := engine.LintFile(context.Background(), "a.txt", []byte(content), cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.Modified)
}

func TestEngine_BinaryFile(t *testing.T) {
	cfg := config.NewConfig()
	engine := engineFor(cfg, newShoutCheck())

	content := append([]byte("PK\x03\x04"), 0x00, 0x01, 0x02)
	_, err := engine.LintFile(context.Background(), "a.zip", content, cfg)
	assert.ErrorIs(t, err, ErrBinaryFile)
}

func TestEngine_FilePattern(t *testing.T) {
	cfg := config.NewConfig()
	check := &shoutCheck{
		BaseCheck: NewBaseCheck("shout", "", nil, true, `\.txt$`),
	}
	engine := engineFor(cfg, check)

	result, err := engine.LintFile(context.Background(), "a.md", []byte("Hello!\n"), cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}

func TestEngine_CheckErrorDoesNotAbort(t *testing.T) {
	cfg := config.NewConfig()
	failing := &failingCheck{BaseCheck: NewBaseCheck("failing", "", nil, false, "")}
	engine := engineFor(cfg, failing, newShoutCheck())

	result, err := engine.LintFile(context.Background(), "a.txt", []byte("Hello!\n"), cfg)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.EqualError(t, result.CheckErrors["failing"], "boom")
}

func TestEngine_CustomMarker(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Marker = "mylint"
	content := "# mylint: disable\nHello!\n"
	engine := engineFor(cfg, newShoutCheck())

	result, err := engine.LintFile(context.Background(), "a.txt", []byte(content), cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 1, result.Suppressed)
}

func TestEngine_WarningsSortedAcrossChecks(t *testing.T) {
	cfg := config.NewConfig()
	first := &shoutCheck{BaseCheck: NewBaseCheck("a-check", "", nil, true, "")}
	second := &shoutCheck{BaseCheck: NewBaseCheck("b-check", "", nil, true, "")}
	engine := engineFor(cfg, second, first)

	result, err := engine.LintFile(context.Background(), "a.txt", []byte("Hi!\n"), cfg)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, result.Warnings[0].Span, result.Warnings[1].Span)
}

func TestEngine_OverlapError(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Fix = true
	// Two copies of the same fixing check produce identical replacements,
	// which is an overlap the fixer refuses to resolve.
	first := &shoutCheck{BaseCheck: NewBaseCheck("a-check", "", nil, true, "")}
	second := &shoutCheck{BaseCheck: NewBaseCheck("b-check", "", nil, true, "")}
	engine := engineFor(cfg, first, second)

	result, err := engine.LintFile(context.Background(), "a.txt", []byte("Hi!\n"), cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "overlaps with"))
	require.NotNil(t, result)
	assert.False(t, result.Modified)
}
