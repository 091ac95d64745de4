package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/prelint/pkg/lint"
	_ "github.com/yaklabco/prelint/pkg/lint/checks" // Register built-in checks
)

type checksFlags struct {
	format string
}

const formatJSON = "json"

// checkInfo represents a check in JSON output.
type checkInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Enabled     bool     `json:"enabledByDefault"`
	Fixable     bool     `json:"fixable"`
	FilePattern string   `json:"filePattern,omitempty"`
}

func newChecksCommand() *cobra.Command {
	flags := &checksFlags{}

	cmd := &cobra.Command{
		Use:   "checks",
		Short: "List available checks",
		Long: `List all available checks with their names, descriptions, default
enablement, and whether they support auto-fixing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checks := lint.DefaultRegistry.All()

			if flags.format == formatJSON {
				return outputChecksJSON(cmd, checks)
			}

			for _, check := range checks {
				enabled := "off"
				if check.DefaultEnabled() {
					enabled = "on"
				}
				fixable := "-"
				if check.CanFix() {
					fixable = "fixable"
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-4s %-8s %s\n",
					check.Name(), enabled, fixable, check.Description())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// outputChecksJSON outputs checks as a JSON array.
func outputChecksJSON(cmd *cobra.Command, checks []lint.Check) error {
	infos := make([]checkInfo, 0, len(checks))
	for _, check := range checks {
		infos = append(infos, checkInfo{
			Name:        check.Name(),
			Description: check.Description(),
			Tags:        check.Tags(),
			Enabled:     check.DefaultEnabled(),
			Fixable:     check.CanFix(),
			FilePattern: check.DefaultFilePattern(),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding checks: %w", err)
	}
	return nil
}
