package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/prelint/pkg/config"
	"github.com/yaklabco/prelint/pkg/lint"
	"github.com/yaklabco/prelint/pkg/source"
)

// runCheck applies a check to one buffer and returns the Linter carrying
// its warnings.
func runCheck(t *testing.T, check lint.Check, path, content string, options map[string]any) *lint.Linter {
	t.Helper()
	linter := lint.NewLinter(path, check.Name(), source.NewLines(content))
	var checkCfg *config.CheckConfig
	if options != nil {
		checkCfg = &config.CheckConfig{Options: options}
	}
	ctx := lint.NewCheckContext(context.Background(), linter, config.NewConfig(), checkCfg)
	require.NoError(t, check.Apply(ctx))
	return linter
}

func TestRegisterBuiltins(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterBuiltins(registry)

	require.Equal(t,
		[]string{"alpha-spec", "codeowners", "conda-yes", "copyright", "hardcoded-version", "project-license"},
		registry.Names())

	for _, name := range []string{"copyright", "conda-yes"} {
		check, ok := registry.Get(name)
		require.True(t, ok)
		require.True(t, check.DefaultEnabled(), name)
	}
	for _, name := range []string{"codeowners", "alpha-spec", "project-license", "hardcoded-version"} {
		check, ok := registry.Get(name)
		require.True(t, ok)
		require.False(t, check.DefaultEnabled(), name)
	}
}
