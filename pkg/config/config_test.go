package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Empty(t, cfg.Marker)
	assert.NotNil(t, cfg.Checks)
	assert.True(t, cfg.Backups.Enabled)
	assert.Equal(t, "sidecar", cfg.Backups.Mode)
	assert.Equal(t, FormatText, cfg.Format)
	assert.False(t, cfg.Fix)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ".prelint.yaml", `
marker: mylint
checks:
  copyright:
    enabled: false
    options:
      holder: ACME Corporation
ignore:
  - "vendor/**"
backups:
  enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mylint", cfg.Marker)
	require.Contains(t, cfg.Checks, "copyright")
	require.NotNil(t, cfg.Checks["copyright"].Enabled)
	assert.False(t, *cfg.Checks["copyright"].Enabled)
	assert.Equal(t, "ACME Corporation", cfg.Checks["copyright"].Options["holder"])
	assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
	assert.False(t, cfg.Backups.Enabled)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "bad.yaml", "checks: [not, a, map]")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDiscover_AncestorWalk(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ".prelint.yaml", "marker: found")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, path, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".prelint.yaml"), path)
	assert.Equal(t, "found", cfg.Marker)
}

func TestDiscover_NotFound(t *testing.T) {
	_, _, err := Discover(t.TempDir())
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestLoadOrDefault_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom.yaml", "marker: custom")

	cfg, err := LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Marker)
}

func TestLoadOrDefault_Discovery(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".prelint.yaml", "marker: discovered")
	t.Chdir(dir)

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "discovered", cfg.Marker)
}

func TestDefaultTemplate_Parses(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ".prelint.yaml", DefaultTemplate)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prelint", cfg.Marker)
	require.Contains(t, cfg.Checks, "alpha-spec")
	assert.Equal(t, "development", cfg.Checks["alpha-spec"].Options["mode"])
	require.Contains(t, cfg.Checks, "conda-yes")
	require.NotNil(t, cfg.Checks["conda-yes"].Enabled)
	assert.True(t, *cfg.Checks["conda-yes"].Enabled)
	assert.True(t, cfg.Backups.Enabled)
}
