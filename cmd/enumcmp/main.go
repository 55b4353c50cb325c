// Package main is the entry point for the enumcmp CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/enumcmp/internal/cli"
	"github.com/yaklabco/enumcmp/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.Execute(); err != nil {
		// ErrLintIssuesFound only selects the exit code; the report already said why.
		if !errors.Is(err, cli.ErrLintIssuesFound) {
			logging.Default().Error("command failed", logging.FieldError, err)
			return cli.ExitInternalError
		}
		return cli.ExitLintErrors
	}

	return cli.ExitSuccess
}
