package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/enumcmp/internal/configloader"
	"github.com/yaklabco/enumcmp/internal/logging"
	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/lint"
	_ "github.com/yaklabco/enumcmp/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/enumcmp/pkg/parser/csharp"
	"github.com/yaklabco/enumcmp/pkg/reporter"
	"github.com/yaklabco/enumcmp/pkg/runner"
	"github.com/yaklabco/enumcmp/pkg/semantic"
)

// ErrLintIssuesFound is returned when lint issues are found.
var ErrLintIssuesFound = errors.New("lint issues found")

type lintFlags struct {
	format           string
	ruleFormat       string
	ignore           []string
	include          []string
	enable           []string
	disable          []string
	fixRules         []string
	knownEnums       []string
	includeGenerated bool
	followSymlinks   bool
	strict           bool
	noContext        bool
	compact          bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Report enum comparisons made with Equals",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Report calls of the form value.Equals(other) where value is an enum.

By default, lints every C# source under the current directory. Generated
sources (*.g.cs, *.Designer.cs, files with an <auto-generated> header) are
skipped unless named explicitly or --include-generated is given.

Examples:
  enumcmp lint                        # Lint current directory
  enumcmp lint src/                   # Lint src directory
  enumcmp lint Program.cs             # Lint single file
  enumcmp lint --fix                  # Rewrite every call to ==
  enumcmp lint --fix --dry-run        # Show the rewrite as a diff
  enumcmp lint --format sarif         # Output SARIF for code scanning
  enumcmp lint --known-enums Ns.Mode  # Treat an external type as an enum`

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags, info BuildInfo) error {
	logger := logging.Default()

	// Only values given on the command line take part in the CLI layer.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	cfg.Ignore = flags.ignore
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules
	cfg.Semantic.KnownEnums = flags.knownEnums

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
		Registry:     lint.DefaultRegistry,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldKnownEnums, finalCfg.Semantic.KnownEnums,
	)

	provider := semantic.NewProvider(semantic.Options{
		KnownEnums:         finalCfg.Semantic.KnownEnums,
		AssumeUnknownEnums: finalCfg.Semantic.AssumeUnknownEnums,
	})

	engine := lint.NewEngine(csharp.New(), lint.SemanticFacts(provider), lint.DefaultRegistry)
	lintRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.Options{
		Paths:            args,
		WorkingDir:       workDir,
		IncludeGlobs:     flags.include,
		ExcludeGlobs:     finalCfg.Ignore,
		IncludeGenerated: flags.includeGenerated,
		FollowSymlinks:   flags.followSymlinks,
		Jobs:             finalCfg.Jobs,
		Config:           finalCfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
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

	formatName := string(finalCfg.Format)
	if formatName == "" {
		formatName = flags.format
	}
	format, err := reporter.ParseFormat(formatName)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		RuleFormat:  finalCfg.RuleFormat,
		WorkingDir:  workDir,
		Version:     info.Version,
		Registry:    lint.DefaultRegistry,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result, flags.strict) != ExitSuccess {
		return ErrLintIssuesFound
	}

	return nil
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "rewrite reported calls to ==")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: "+reporter.FormatNames())
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only lint files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rule IDs")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().StringSliceVar(&flags.knownEnums, "known-enums", nil,
		"type names declared outside the linted files to treat as enums")
	cmd.Flags().BoolVar(&cfg.Semantic.AssumeUnknownEnums, "assume-unknown-enums", false,
		"treat unresolved Type.Member constants as enum values")
	cmd.Flags().BoolVar(&flags.includeGenerated, "include-generated", false, "lint generated sources too")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
}
