package checks

import "github.com/yaklabco/prelint/pkg/lint"

// RegisterBuiltins registers every built-in check into the given
// registry.
func RegisterBuiltins(registry *lint.Registry) {
	registry.MustRegister(NewCopyright())
	registry.MustRegister(NewCodeowners())
	registry.MustRegister(NewAlphaSpec())
	registry.MustRegister(NewProjectLicense())
	registry.MustRegister(NewCondaYes())
	registry.MustRegister(NewHardcodedVersion())
}

func init() {
	RegisterBuiltins(lint.DefaultRegistry)
}
