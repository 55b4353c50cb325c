// Package cli provides the Cobra command structure for enumcmp.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/enumcmp/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root enumcmp command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "enumcmp",
		Short: "Find and fix enum comparisons made with Equals in C# code",
		Long: `enumcmp finds C# calls of the form value.Equals(other) where value is an
enum and the call binds to Equals(object). Such calls box both operands and
dispatch virtually, where the == operator compares the underlying values
directly.

Every reported call can be rewritten to value == other, one at a time or
across whole files with --fix. Fixes are checked by re-parsing the result,
and the original is kept in a backup unless --no-backups is given.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
