package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/enumcmp/internal/configloader"
	"github.com/yaklabco/enumcmp/internal/logging"
	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/lint"
	"github.com/yaklabco/enumcmp/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new enumcmp configuration file",
		Long: `Create a new .enumcmp.yml configuration file in the current directory.
Every registered rule is written with its defaults and a short description,
together with the ignore, backup and type resolution settings.

A pack seeds the rules block for a particular use case:
  default   report enum Equals calls as errors and fix them with --fix
  advisory  report as warnings without fixing
  off       disable all rules

Examples:
  enumcmp init                      Create .enumcmp.yml
  enumcmp init --pack advisory      Start from the advisory pack
  enumcmp init --format json        Create .enumcmp.json instead
  enumcmp init --output ci.yml      Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: "+configloader.DefaultConfigFile+" or .enumcmp.json)")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"Seed rules from a pack: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("invalid format %q: must be yaml or json", flags.format)
	}

	opts := config.TemplateOptions{Format: flags.format}
	if flags.pack != "" {
		pack := rules.PackByName(flags.pack)
		if pack == nil {
			return fmt.Errorf("unknown pack %q: must be one of %s",
				flags.pack, strings.Join(rules.PackNames(), ", "))
		}
		opts.Rules = pack.Rules
		opts.PackName = pack.Name
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".enumcmp.json"
		} else {
			outputPath = configloader.DefaultConfigFile
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(opts, registeredRuleInfo)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if opts.PackName != "" {
		logger.Info("rules seeded from pack", "pack", opts.PackName)
	}
	logger.Info("run 'enumcmp rules' to see all available rules")

	return nil
}

// registeredRuleInfo describes the rules in lint.DefaultRegistry for templates.
func registeredRuleInfo() []config.RuleInfo {
	registered := lint.DefaultRegistry.Rules()
	infos := make([]config.RuleInfo, 0, len(registered))
	for _, rule := range registered {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Category:    rule.Category(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
			CanFix:      rule.CanFix(),
		})
	}
	return infos
}
