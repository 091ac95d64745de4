package lint

// BaseCheck provides a default implementation of the Check interface.
// Embed it in check implementations and override methods as needed.
//
// Fields are unexported to avoid name collisions with interface methods.
type BaseCheck struct {
	name        string   // Unique check name
	desc        string   // Detailed description
	tags        []string // Categorization tags
	fixable     bool     // Whether the check proposes replacements
	filePattern string   // Default file pattern (regexp; empty = all files)
}

// NewBaseCheck creates a BaseCheck with the given properties.
func NewBaseCheck(name, desc string, tags []string, fixable bool, filePattern string) BaseCheck {
	return BaseCheck{
		name:        name,
		desc:        desc,
		tags:        tags,
		fixable:     fixable,
		filePattern: filePattern,
	}
}

// Name returns the unique name of the check.
func (c *BaseCheck) Name() string {
	return c.name
}

// Description returns a detailed description of what the check does.
func (c *BaseCheck) Description() string {
	return c.desc
}

// Tags returns categorization tags for this check.
func (c *BaseCheck) Tags() []string {
	return c.tags
}

// DefaultEnabled returns whether the check runs without configuration.
// Override to change the default.
func (c *BaseCheck) DefaultEnabled() bool {
	return true
}

// CanFix returns whether the check proposes replacements.
func (c *BaseCheck) CanFix() bool {
	return c.fixable
}

// DefaultFilePattern returns the default file selection pattern.
func (c *BaseCheck) DefaultFilePattern() string {
	return c.filePattern
}

// Apply must be overridden by concrete checks.
func (c *BaseCheck) Apply(_ *CheckContext) error {
	return nil
}
