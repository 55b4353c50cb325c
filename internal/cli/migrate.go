package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/enumcmp/internal/configloader"
	"github.com/yaklabco/enumcmp/internal/logging"
	"github.com/yaklabco/enumcmp/pkg/lint"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Import rule severities from .editorconfig or .globalconfig",
		Long: `Import the analyzer severities of an .editorconfig or .globalconfig into
an enumcmp configuration file (.enumcmp.yml).

The following keys are read when they apply to C# sources:
  dotnet_diagnostic.<rule>.severity
  dotnet_analyzer_diagnostic.category-<category>.severity
  dotnet_analyzer_diagnostic.severity

error and warning keep their meaning, suggestion becomes info, and silent or
none disables the rule. Keys for other analyzers are ignored.

If no input file is specified, the current directory is searched for an
analyzer config that mentions a registered rule.

Examples:
  enumcmp migrate                       Auto-detect and import
  enumcmp migrate .globalconfig         Import a specific file
  enumcmp migrate --output ci.yml       Write to a custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.DefaultConfigFile, "Output file path")

	return cmd
}

func runMigrate(flags *migrateFlags) error {
	logger := logging.NewInteractive()

	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindAnalyzerConfig(cwd)
		if inputPath == "" {
			return errors.New("no .editorconfig or .globalconfig configuring enumcmp rules found in current directory")
		}

		logger.Info("found analyzer config", logging.FieldPath, inputPath)
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	if _, err := os.Stat(absOutput); err == nil {
		if !flags.force {
			return fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertAnalyzerConfig(inputPath, lint.DefaultRegistry)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if len(result.Imported) == 0 {
		logger.Warn("no severities for registered rules found; writing defaults", logging.FieldInput, inputPath)
	}

	header := configloader.GenerateMigrationHeader(inputPath)
	if err := configloader.WriteConfig(result.Config, absOutput, header); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("migration complete",
		logging.FieldInput, inputPath,
		logging.FieldOutput, flags.output,
		logging.FieldRule, strings.Join(result.Imported, ","),
	)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the imported configuration")
	}

	return nil
}
