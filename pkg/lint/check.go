package lint

import (
	"context"

	"github.com/yaklabco/prelint/pkg/config"
)

// Check defines the interface that all lint checks implement. A check is a
// thin policy layer over the engine: it reads the buffer and line model
// through the Linter and registers findings with AddWarning.
type Check interface {
	// Name returns the unique name of the check (e.g. "copyright"). The
	// name is also what bracketed directives match against.
	Name() string

	// Description returns a detailed description of what the check does.
	Description() string

	// Tags returns categorization tags for this check.
	Tags() []string

	// DefaultEnabled returns whether the check runs without explicit
	// configuration.
	DefaultEnabled() bool

	// CanFix returns whether the check proposes replacements.
	CanFix() bool

	// DefaultFilePattern returns a regular expression matched against
	// file paths to select the files this check applies to. Empty means
	// all files.
	DefaultFilePattern() string

	// Apply executes the check, registering warnings on ctx.Linter.
	// It returns an error only for internal failures, not findings.
	Apply(ctx *CheckContext) error
}

// CheckContext provides everything a check needs for one pass over one
// buffer. It is a short-lived parameter object created per check
// invocation; storing the context.Context as a field keeps the Check
// interface to a single Apply method while still supporting cancellation.
type CheckContext struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// Linter is the warning accumulator for this (buffer, check) pair.
	Linter *Linter

	// Config is the resolved configuration.
	Config *config.Config

	// CheckConfig is the check-specific configuration (may be nil).
	CheckConfig *config.CheckConfig
}

// NewCheckContext creates a CheckContext.
func NewCheckContext(ctx context.Context, linter *Linter, cfg *config.Config, checkCfg *config.CheckConfig) *CheckContext {
	return &CheckContext{
		Ctx:         ctx,
		Linter:      linter,
		Config:      cfg,
		CheckConfig: checkCfg,
	}
}

// Cancelled returns true if the context has been cancelled.
func (cc *CheckContext) Cancelled() bool {
	select {
	case <-cc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Option returns a check-specific option value, or the default if unset.
func (cc *CheckContext) Option(key string, defaultValue any) any {
	if cc.CheckConfig == nil || cc.CheckConfig.Options == nil {
		return defaultValue
	}
	if v, ok := cc.CheckConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionString returns a check-specific string option, or the default.
func (cc *CheckContext) OptionString(key, defaultValue string) string {
	if s, ok := cc.Option(key, defaultValue).(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a check-specific boolean option, or the default.
func (cc *CheckContext) OptionBool(key string, defaultValue bool) bool {
	if b, ok := cc.Option(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a check-specific string slice option, or the
// default. YAML parsing produces []any, which is converted element-wise.
func (cc *CheckContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := cc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	if iface, ok := v.([]any); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return defaultValue
}
