package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/prelint/internal/logging"
	"github.com/yaklabco/prelint/pkg/config"
	"github.com/yaklabco/prelint/pkg/lint"
	_ "github.com/yaklabco/prelint/pkg/lint/checks" // Register built-in checks
	"github.com/yaklabco/prelint/pkg/reporter"
	"github.com/yaklabco/prelint/pkg/runner"
)

type lintFlags struct {
	fix       bool
	dryRun    bool
	noBackups bool
	jobs      int
	format    string
	ignore    []string
	checks    []string
	enable    []string
	disable   []string
	fixChecks []string
	compact   bool
	noSummary bool
}

func newLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint files for repository convention issues",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint files for repository convention issues.

By default, lints all files in the current directory and subdirectories
that match each check's file pattern. Specify paths to lint specific
files or directories.

Examples:
  prelint lint                     # Lint current directory
  prelint lint src/                # Lint src directory
  prelint lint build.sh            # Lint single file
  prelint lint --fix               # Lint and apply suggested fixes
  prelint lint --fix --dry-run     # Show fixes without applying
  prelint lint --format json       # Output as JSON for CI
  prelint lint --enable codeowners # Force a check on for this run`

func runLint(cmd *cobra.Command, args []string, flags *lintFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	// Command-line flags override the config file.
	cfg.Fix = flags.fix
	cfg.DryRun = flags.dryRun
	cfg.NoBackups = flags.noBackups
	cfg.Jobs = flags.jobs
	cfg.EnableChecks = flags.enable
	cfg.DisableChecks = flags.disable
	cfg.FixChecks = flags.fixChecks
	applyCheckSelection(cfg, flags.checks)
	cfg.Ignore = append(cfg.Ignore, flags.ignore...)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	cfg.Format = config.OutputFormat(format)

	if err := lint.ValidateCheckNames(lint.DefaultRegistry, cfg); err != nil {
		return err
	}
	resolved, err := lint.Resolve(lint.DefaultRegistry, cfg)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	engine := lint.NewEngine(resolved, cfg.Marker)
	pipeline := lint.NewPipeline(engine, cfg)
	lintRunner := runner.New(pipeline)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: !flags.noSummary && format == reporter.FormatText,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result) {
	case ExitError:
		return errors.New("some files could not be processed")
	case ExitWarnings:
		return ErrWarningsFound
	}

	return nil
}

// applyCheckSelection narrows the run to only the named checks by
// enabling them and disabling every other registered check.
func applyCheckSelection(cfg *config.Config, checks []string) {
	if len(checks) == 0 {
		return
	}
	selected := make(map[string]bool, len(checks))
	for _, name := range checks {
		selected[name] = true
	}
	cfg.EnableChecks = append(cfg.EnableChecks, checks...)
	for _, name := range lint.DefaultRegistry.Names() {
		if !selected[name] {
			cfg.DisableChecks = append(cfg.DisableChecks, name)
		}
	}
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "apply suggested fixes")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.checks, "check", nil, "run only the named checks")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "check names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "check names to disable")
	cmd.Flags().StringSliceVar(&flags.fixChecks, "fix-check", nil, "limit fixing to specific checks")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
}
