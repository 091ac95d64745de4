// Package cli provides the Cobra command structure for prelint.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/prelint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root prelint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "prelint",
		Short: "A self-fixing linter for repository conventions",
		Long: `prelint checks source files against repository conventions: copyright
notice years, CODEOWNERS coverage, alpha specifiers in dependency
lists, pyproject license metadata, hard-coded project versions, and
interactive conda commands in shell scripts.

Warnings are anchored to exact character ranges and carry suggested
fixes that prelint can apply safely, with conflict detection, dry-run
mode, and optional backups. Inline directives such as
"prelint: disable[copyright]" suppress warnings per region or line.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newChecksCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
