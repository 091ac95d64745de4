// Package config defines the configuration types for prelint. These are
// pure data structures; loading lives in yaml.go.
package config

// CheckConfig holds per-check configuration.
type CheckConfig struct {
	// Enabled overrides the check's default enablement.
	Enabled *bool `yaml:"enabled"`

	// AutoFix overrides whether the check's replacements are applied in
	// fix mode.
	AutoFix *bool `yaml:"auto_fix"`

	// Files overrides the check's default file pattern (a regular
	// expression matched against the file path).
	Files *string `yaml:"files"`

	// Options holds check-specific options.
	Options map[string]any `yaml:"options"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat specifies the output format for warnings.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Config is the root configuration structure.
type Config struct {
	// Marker is the directive marker phrase recognized in file text.
	// Empty means the built-in default.
	Marker string `yaml:"marker"`

	// Checks contains per-check configuration keyed by check name.
	Checks map[string]CheckConfig `yaml:"checks"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options, not persisted to config files.

	// Fix enables applying suggested replacements.
	Fix bool `yaml:"-"`

	// DryRun reports what would be fixed without writing files.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs is the number of parallel workers (0 means one per CPU).
	Jobs int `yaml:"-"`

	// EnableChecks and DisableChecks explicitly toggle checks from the
	// command line.
	EnableChecks  []string `yaml:"-"`
	DisableChecks []string `yaml:"-"`

	// FixChecks limits fixing to specific checks.
	FixChecks []string `yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Checks: make(map[string]CheckConfig),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
	}
}
