package lint

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/yaklabco/prelint/pkg/config"
)

// ResolvedCheck is a check together with its effective settings after
// merging defaults, config file entries, and command-line toggles.
type ResolvedCheck struct {
	Check Check

	// Enabled is the effective enablement.
	Enabled bool

	// AutoFix is whether this check's replacements are applied in fix
	// mode.
	AutoFix bool

	// FilePattern selects the files the check applies to. Nil matches
	// all files.
	FilePattern *regexp.Regexp

	// Config is the check's configuration entry, if any.
	Config *config.CheckConfig
}

// Matches reports whether the check applies to the given path.
func (rc *ResolvedCheck) Matches(path string) bool {
	if rc.FilePattern == nil {
		return true
	}
	return rc.FilePattern.MatchString(path)
}

// Resolve merges the registry's checks with the configuration into the
// effective check set. Precedence for enablement, lowest to highest:
// check default, config file entry, --disable, --enable. A check's
// replacements are applied when fixing is on, the check can fix, and it
// is not excluded by auto_fix or --fix-check.
func Resolve(registry *Registry, cfg *config.Config) ([]*ResolvedCheck, error) {
	resolved := make([]*ResolvedCheck, 0)

	for _, check := range registry.All() {
		name := check.Name()

		var checkCfg *config.CheckConfig
		if entry, ok := cfg.Checks[name]; ok {
			entryCopy := entry
			checkCfg = &entryCopy
		}

		enabled := check.DefaultEnabled()
		if checkCfg != nil && checkCfg.Enabled != nil {
			enabled = *checkCfg.Enabled
		}
		if slices.Contains(cfg.DisableChecks, name) {
			enabled = false
		}
		if slices.Contains(cfg.EnableChecks, name) {
			enabled = true
		}

		autoFix := cfg.Fix && check.CanFix()
		if autoFix && checkCfg != nil && checkCfg.AutoFix != nil {
			autoFix = *checkCfg.AutoFix
		}
		if autoFix && len(cfg.FixChecks) > 0 {
			autoFix = slices.Contains(cfg.FixChecks, name)
		}

		pattern := check.DefaultFilePattern()
		if checkCfg != nil && checkCfg.Files != nil {
			pattern = *checkCfg.Files
		}
		var re *regexp.Regexp
		if pattern != "" {
			var err error
			re, err = regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("check %s: invalid file pattern %q: %w", name, pattern, err)
			}
		}

		resolved = append(resolved, &ResolvedCheck{
			Check:       check,
			Enabled:     enabled,
			AutoFix:     autoFix,
			FilePattern: re,
			Config:      checkCfg,
		})
	}

	return resolved, nil
}

// ValidateCheckNames verifies that every name mentioned by the
// command-line toggles refers to a registered check.
func ValidateCheckNames(registry *Registry, cfg *config.Config) error {
	for _, names := range [][]string{cfg.EnableChecks, cfg.DisableChecks, cfg.FixChecks} {
		for _, name := range names {
			if _, ok := registry.Get(name); !ok {
				return fmt.Errorf("unknown check: %s", name)
			}
		}
	}
	return nil
}
